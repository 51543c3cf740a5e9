// Package tuisvc provides the default TUIService backed by the real
// config, journal and sync pipeline.
package tuisvc

import (
	"github.com/ceresbotanicals/menusync/internal/adapters/execgit"
	"github.com/ceresbotanicals/menusync/internal/adapters/osfs"
	"github.com/ceresbotanicals/menusync/internal/config"
	"github.com/ceresbotanicals/menusync/internal/journal"
	"github.com/ceresbotanicals/menusync/internal/ports"
	"github.com/ceresbotanicals/menusync/internal/syncer"
)

// Service implements ports.TUIService using the exec git and os adapters.
type Service struct {
	git ports.GitClient
	fs  ports.FileSystem
}

// New creates a new Service adapter.
func New() *Service {
	return &Service{
		git: execgit.New(),
		fs:  osfs.New(),
	}
}

// LoadConfig loads the application configuration.
func (s *Service) LoadConfig() (*config.Config, error) {
	return config.Load()
}

// History returns past sync runs, newest first, at most limit entries.
func (s *Service) History(cfg *config.Config, limit int) ([]ports.TUIRunInfo, error) {
	j, err := journal.Load(config.JournalPath())
	if err != nil {
		return nil, err
	}

	var runs []ports.TUIRunInfo
	for i := len(j.Runs) - 1; i >= 0; i-- {
		if limit > 0 && len(runs) >= limit {
			break
		}
		r := j.Runs[i]
		runs = append(runs, ports.TUIRunInfo{
			Timestamp: r.Timestamp,
			Committed: r.Committed,
			Message:   r.Message,
			Reason:    r.Reason,
			SizeBytes: r.SizeBytes,
			SHA256:    r.SHA256,
			GitHead:   r.GitHead,
		})
	}
	return runs, nil
}

// RunSync performs a full sync run and records it in the journal.
func (s *Service) RunSync(cfg *config.Config) ports.TUISyncResult {
	result := syncer.New(s.git, s.fs).Run(cfg)
	if result.Error != nil {
		return ports.TUISyncResult{Error: result.Error}
	}

	// Journaling failures are not surfaced here; the run itself succeeded.
	_ = journal.Record(config.JournalPath(), result.JournalEntry(), cfg.History.KeepLast)

	return ports.TUISyncResult{
		Committed: result.Committed,
		Skipped:   result.Skipped,
		Reason:    result.Reason,
		Message:   result.Message,
		SizeBytes: result.SizeBytes,
	}
}

// Compile-time check that Service implements ports.TUIService.
var _ ports.TUIService = (*Service)(nil)
