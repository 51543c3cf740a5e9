package mocks

import (
	"github.com/ceresbotanicals/menusync/internal/ports"
)

// InstallCall records an Install invocation.
type InstallCall struct {
	ExecPath string
	Hour     int
	Minute   int
}

// MockLaunchdService implements ports.LaunchdService for testing.
type MockLaunchdService struct {
	Installed bool
	Loaded    bool
	// Errors maps operation names (Install, Uninstall) to errors
	Errors map[string]error

	InstallCalls   []InstallCall
	UninstallCalls int
}

// NewMockLaunchdService creates a new mock launchd service.
func NewMockLaunchdService() *MockLaunchdService {
	return &MockLaunchdService{
		Errors: make(map[string]error),
	}
}

// PlistPath returns a fixed fake path.
func (m *MockLaunchdService) PlistPath() string {
	return "/mock/Library/LaunchAgents/com.user.menusync.plist"
}

// LogPath returns a fixed fake path.
func (m *MockLaunchdService) LogPath() string {
	return "/mock/.menusync/menusync.log"
}

// Install records the call and marks the service installed and loaded.
func (m *MockLaunchdService) Install(execPath string, hour, minute int) error {
	if err := m.Errors["Install"]; err != nil {
		return err
	}
	m.InstallCalls = append(m.InstallCalls, InstallCall{ExecPath: execPath, Hour: hour, Minute: minute})
	m.Installed = true
	m.Loaded = true
	return nil
}

// Uninstall marks the service removed.
func (m *MockLaunchdService) Uninstall() error {
	if err := m.Errors["Uninstall"]; err != nil {
		return err
	}
	m.UninstallCalls++
	m.Installed = false
	m.Loaded = false
	return nil
}

// IsInstalled reports the mock installed state.
func (m *MockLaunchdService) IsInstalled() bool {
	return m.Installed
}

// Status reports the mock state.
func (m *MockLaunchdService) Status() string {
	if !m.Installed {
		return "not installed"
	}
	if m.Loaded {
		return "loaded"
	}
	return "not loaded"
}

// Compile-time check that MockLaunchdService implements ports.LaunchdService.
var _ ports.LaunchdService = (*MockLaunchdService)(nil)
