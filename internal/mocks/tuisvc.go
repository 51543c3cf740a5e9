package mocks

import (
	"github.com/ceresbotanicals/menusync/internal/config"
	"github.com/ceresbotanicals/menusync/internal/ports"
)

// MockTUIService implements ports.TUIService for testing.
type MockTUIService struct {
	Config    *config.Config
	ConfigErr error

	HistoryRuns []ports.TUIRunInfo
	HistoryErr  error

	SyncResult ports.TUISyncResult

	RunSyncCalls int
}

// NewMockTUIService creates a mock TUI service with a default config.
func NewMockTUIService() *MockTUIService {
	return &MockTUIService{
		Config: config.DefaultConfig(),
	}
}

// LoadConfig returns the configured config or error.
func (m *MockTUIService) LoadConfig() (*config.Config, error) {
	if m.ConfigErr != nil {
		return nil, m.ConfigErr
	}
	return m.Config, nil
}

// History returns the configured runs, honoring the limit.
func (m *MockTUIService) History(cfg *config.Config, limit int) ([]ports.TUIRunInfo, error) {
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	if limit > 0 && len(m.HistoryRuns) > limit {
		return m.HistoryRuns[:limit], nil
	}
	return m.HistoryRuns, nil
}

// RunSync records the call and returns the configured result.
func (m *MockTUIService) RunSync(cfg *config.Config) ports.TUISyncResult {
	m.RunSyncCalls++
	return m.SyncResult
}

// Compile-time check that MockTUIService implements ports.TUIService.
var _ ports.TUIService = (*MockTUIService)(nil)
