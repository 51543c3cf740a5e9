package ports

import (
	"time"

	"github.com/ceresbotanicals/menusync/internal/config"
)

// TUIRunInfo contains past sync run metadata for display.
type TUIRunInfo struct {
	Timestamp time.Time
	Committed bool
	Message   string
	Reason    string
	SizeBytes int64
	SHA256    string
	GitHead   string
}

// TUISyncResult contains the outcome of a sync triggered from the TUI.
type TUISyncResult struct {
	Committed bool
	Skipped   bool
	Reason    string
	Message   string
	SizeBytes int64
	Error     error
}

// TUIService provides operations needed by the TUI.
// This abstraction allows the TUI to be tested without real git/filesystem operations.
type TUIService interface {
	// LoadConfig loads the application configuration.
	LoadConfig() (*config.Config, error)

	// History returns past sync runs, newest first, at most limit entries.
	History(cfg *config.Config, limit int) ([]TUIRunInfo, error)

	// RunSync performs a full sync run.
	RunSync(cfg *config.Config) TUISyncResult
}
