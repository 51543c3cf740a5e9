package mocks

import (
	"github.com/ceresbotanicals/menusync/internal/ports"
)

// PullCall records a Pull invocation.
type PullCall struct {
	RepoDir string
	Remote  string
	Branch  string
}

// PushCall records a Push invocation.
type PushCall struct {
	RepoDir string
	Remote  string
	Branch  string
}

// MockGitClient implements ports.GitClient for testing.
type MockGitClient struct {
	// Repos maps paths to whether they are git repos
	Repos map[string]bool
	// Heads maps repository paths to HEAD commit hashes
	Heads map[string]string
	// StatusOutput is returned by Status when StatusQueue is empty
	StatusOutput string
	// StatusQueue, when non-empty, yields one Status output per call
	StatusQueue []string
	// Errors maps operation names (Pull, Status, Add, Commit, Push) to errors
	Errors map[string]error

	// Call records
	PullCalls   []PullCall
	StatusCalls int
	AddCalls    []string
	CommitCalls []string
	PushCalls   []PushCall
}

// NewMockGitClient creates a new mock git client.
func NewMockGitClient() *MockGitClient {
	return &MockGitClient{
		Repos:  make(map[string]bool),
		Heads:  make(map[string]string),
		Errors: make(map[string]error),
	}
}

// IsRepo checks if the given path is a git repository.
func (m *MockGitClient) IsRepo(path string) bool {
	return m.Repos[path]
}

// Pull records the call and returns any injected error.
func (m *MockGitClient) Pull(repoDir, remote, branch string) error {
	m.PullCalls = append(m.PullCalls, PullCall{RepoDir: repoDir, Remote: remote, Branch: branch})
	return m.Errors["Pull"]
}

// Status returns the next queued output, or StatusOutput.
func (m *MockGitClient) Status(repoDir string) (string, error) {
	m.StatusCalls++
	if err := m.Errors["Status"]; err != nil {
		return "", err
	}
	if len(m.StatusQueue) > 0 {
		out := m.StatusQueue[0]
		m.StatusQueue = m.StatusQueue[1:]
		return out, nil
	}
	return m.StatusOutput, nil
}

// Add records the staged path and returns any injected error.
func (m *MockGitClient) Add(repoDir, relPath string) error {
	if err := m.Errors["Add"]; err != nil {
		return err
	}
	m.AddCalls = append(m.AddCalls, relPath)
	return nil
}

// Commit records the message and returns any injected error.
func (m *MockGitClient) Commit(repoDir, message string) error {
	if err := m.Errors["Commit"]; err != nil {
		return err
	}
	m.CommitCalls = append(m.CommitCalls, message)
	return nil
}

// Push records the call and returns any injected error.
func (m *MockGitClient) Push(repoDir, remote, branch string) error {
	if err := m.Errors["Push"]; err != nil {
		return err
	}
	m.PushCalls = append(m.PushCalls, PushCall{RepoDir: repoDir, Remote: remote, Branch: branch})
	return nil
}

// Head returns the configured HEAD commit hash.
func (m *MockGitClient) Head(repoDir string) string {
	return m.Heads[repoDir]
}

// Compile-time check that MockGitClient implements ports.GitClient.
var _ ports.GitClient = (*MockGitClient)(nil)
