// Package syncer implements the sync-and-publish pipeline: refresh the
// repository clone, overwrite the tracked artifact with the cloud-synced
// source, and commit and push when the working tree changed.
package syncer

import (
	"fmt"
	"strings"
	"time"

	"github.com/ceresbotanicals/menusync/internal/config"
	"github.com/ceresbotanicals/menusync/internal/journal"
	"github.com/ceresbotanicals/menusync/internal/ports"
)

// TimestampLayout is the human-readable timestamp embedded in commit
// messages, minute resolution.
const TimestampLayout = "2006-01-02 15:04"

// Result describes the outcome of a single sync run.
type Result struct {
	Committed bool
	Skipped   bool
	Reason    string
	Timestamp time.Time
	Message   string
	SizeBytes int64
	SHA256    string
	GitHead   string
	Error     error
}

// Syncer runs the pipeline against injected git and filesystem clients.
type Syncer struct {
	Git ports.GitClient
	FS  ports.FileSystem

	// Now supplies the commit timestamp; overridable in tests.
	Now func() time.Time
}

// New creates a Syncer with the given clients.
func New(git ports.GitClient, fs ports.FileSystem) *Syncer {
	return &Syncer{
		Git: git,
		FS:  fs,
		Now: time.Now,
	}
}

// Run performs one sync: pull, copy, status, and a conditional
// stage/commit/push. Every step is fire-and-forget; a failure aborts the
// remaining steps and is reported in Result.Error. The next scheduled run
// starts with a fresh pull, which self-heals most transient states.
func (s *Syncer) Run(cfg *config.Config) Result {
	result := Result{Timestamp: s.Now()}

	if err := cfg.Validate(); err != nil {
		result.Error = fmt.Errorf("invalid config: %w", err)
		return result
	}

	repoDir := config.ExpandPath(cfg.RepoDir)
	sourcePath := config.ExpandPath(cfg.SourcePath)

	if !s.Git.IsRepo(repoDir) {
		result.Error = fmt.Errorf("not a git repository: %s", repoDir)
		return result
	}

	// Step 1: bring the clone up to date before touching the tree.
	if err := s.Git.Pull(repoDir, cfg.Remote, cfg.Branch); err != nil {
		result.Error = err
		return result
	}

	// Step 2: overwrite the tracked artifact byte-for-byte.
	data, err := s.FS.ReadFile(sourcePath)
	if err != nil {
		result.Error = fmt.Errorf("reading source artifact: %w", err)
		return result
	}
	if err := s.FS.WriteFile(cfg.TargetPath(), data, 0644); err != nil {
		result.Error = fmt.Errorf("writing target artifact: %w", err)
		return result
	}
	result.SizeBytes = int64(len(data))
	result.SHA256 = journal.ComputeSHA256(data)

	// Step 3: change detection. The status is repository-wide on purpose:
	// the original tool gates on the whole tree, so unrelated edits inside
	// the clone also trigger a publish of the target file.
	status, err := s.Git.Status(repoDir)
	if err != nil {
		result.Error = err
		return result
	}
	if strings.TrimSpace(status) == "" {
		result.Skipped = true
		result.Reason = "no changes"
		return result
	}

	// Step 4: stage exactly the target, commit with a timestamped message,
	// push. A push rejection leaves an un-pushed local commit behind; that
	// is accepted, the next run pulls first.
	if err := s.Git.Add(repoDir, cfg.TargetFile); err != nil {
		result.Error = err
		return result
	}

	result.Timestamp = s.Now()
	result.Message = fmt.Sprintf("%s %s", cfg.CommitLabel, result.Timestamp.Format(TimestampLayout))
	if err := s.Git.Commit(repoDir, result.Message); err != nil {
		result.Error = err
		return result
	}

	if err := s.Git.Push(repoDir, cfg.Remote, cfg.Branch); err != nil {
		result.Error = err
		return result
	}

	result.Committed = true
	result.GitHead = s.Git.Head(repoDir)
	return result
}

// JournalEntry converts a Result into a journal entry.
func (r Result) JournalEntry() journal.Entry {
	return journal.Entry{
		Timestamp: r.Timestamp,
		SHA256:    r.SHA256,
		SizeBytes: r.SizeBytes,
		Committed: r.Committed,
		Message:   r.Message,
		GitHead:   r.GitHead,
		Reason:    r.Reason,
	}
}

// FormatSize formats bytes as human-readable
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
