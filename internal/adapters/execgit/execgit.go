// Package execgit provides a git client adapter using exec.Command.
package execgit

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ceresbotanicals/menusync/internal/ports"
)

// ExecGitClient implements ports.GitClient using exec.Command.
type ExecGitClient struct {
	// gitPath is the path to the git binary. Defaults to "git".
	gitPath string
}

// Option is a functional option for configuring ExecGitClient.
type Option func(*ExecGitClient)

// WithGitPath sets a custom path to the git binary.
func WithGitPath(path string) Option {
	return func(c *ExecGitClient) {
		c.gitPath = path
	}
}

// New creates a new ExecGitClient adapter.
func New(opts ...Option) *ExecGitClient {
	c := &ExecGitClient{
		gitPath: "git",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsRepo checks if the given path is a git repository.
func (g *ExecGitClient) IsRepo(path string) bool {
	gitDir := filepath.Join(path, ".git")
	info, err := os.Stat(gitDir)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Pull rebases the working tree onto the remote branch, suppressing
// routine progress output.
func (g *ExecGitClient) Pull(repoDir, remote, branch string) error {
	cmd := g.command(repoDir, "pull", "--rebase", "--quiet", remote, branch)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git pull failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Status returns the porcelain status of the working tree. Empty output
// means the tree matches the last commit.
func (g *ExecGitClient) Status(repoDir string) (string, error) {
	cmd := g.command(repoDir, "status", "--porcelain")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git status failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// Add stages a single path relative to the repository root.
func (g *ExecGitClient) Add(repoDir, relPath string) error {
	cmd := g.command(repoDir, "add", "--", relPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git add failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Commit records staged changes with the given message.
func (g *ExecGitClient) Commit(repoDir, message string) error {
	cmd := g.command(repoDir, "commit", "-m", message)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git commit failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Push publishes the current branch to the remote branch.
func (g *ExecGitClient) Push(repoDir, remote, branch string) error {
	cmd := g.command(repoDir, "push", remote, branch)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git push failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Head returns the current HEAD commit hash for the repository.
// Returns empty string if not a git repo or on error.
func (g *ExecGitClient) Head(repoDir string) string {
	cmd := g.command(repoDir, "rev-parse", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// command creates an exec.Cmd for the git binary scoped to repoDir.
func (g *ExecGitClient) command(repoDir string, args ...string) *exec.Cmd {
	cmd := exec.Command(g.gitPath, args...)
	cmd.Dir = repoDir
	return cmd
}

// Compile-time check that ExecGitClient implements ports.GitClient.
var _ ports.GitClient = (*ExecGitClient)(nil)
