package ports

// GitClient abstracts the version-control client for testability.
// Production code uses ExecGitClient adapter; tests use MockGitClient.
type GitClient interface {
	// IsRepo checks if the given path is a git repository.
	IsRepo(path string) bool

	// Pull updates the working tree from the remote branch, quietly.
	Pull(repoDir, remote, branch string) error

	// Status returns the porcelain status of the working tree.
	// Empty output means no changes relative to the last commit.
	Status(repoDir string) (string, error)

	// Add stages a single path, relative to the repository root.
	Add(repoDir, relPath string) error

	// Commit records staged changes with the given message.
	Commit(repoDir, message string) error

	// Push publishes the current branch to the remote branch.
	Push(repoDir, remote, branch string) error

	// Head returns the current HEAD commit hash.
	// Returns empty string if not a git repo or on error.
	Head(repoDir string) string
}
