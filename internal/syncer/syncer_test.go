package syncer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/ceresbotanicals/menusync/internal/adapters/osfs"
	"github.com/ceresbotanicals/menusync/internal/config"
	"github.com/ceresbotanicals/menusync/internal/mocks"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.SourcePath = "/exports/menu.json"
	cfg.RepoDir = "/repo"
	return cfg
}

func testSyncer(git *mocks.MockGitClient, fs *mocks.MockFileSystem) *Syncer {
	s := New(git, fs)
	s.Now = func() time.Time {
		return time.Date(2024, 6, 3, 14, 7, 0, 0, time.Local)
	}
	return s
}

func TestRunCommitsOnChange(t *testing.T) {
	git := mocks.NewMockGitClient()
	git.Repos["/repo"] = true
	git.Heads["/repo"] = "abc123"
	git.StatusOutput = " M menu.json\n"

	fs := mocks.NewMockFileSystem()
	fs.Files["/exports/menu.json"] = []byte(`{"a":1}`)
	fs.Files["/repo/menu.json"] = []byte(`{"a":0}`)

	cfg := testConfig()
	result := testSyncer(git, fs).Run(cfg)

	if result.Error != nil {
		t.Fatalf("Run failed: %v", result.Error)
	}
	if !result.Committed || result.Skipped {
		t.Fatalf("expected committed result, got %+v", result)
	}

	// Target holds the source bytes
	if string(fs.Files["/repo/menu.json"]) != `{"a":1}` {
		t.Errorf("target = %q", fs.Files["/repo/menu.json"])
	}

	// Pull before anything else, against the configured remote/branch
	if len(git.PullCalls) != 1 {
		t.Fatalf("PullCalls = %d, expected 1", len(git.PullCalls))
	}
	if git.PullCalls[0].Remote != "origin" || git.PullCalls[0].Branch != "main" {
		t.Errorf("pull = %+v", git.PullCalls[0])
	}

	// Staging is scoped to the target file, not the whole tree
	if len(git.AddCalls) != 1 || git.AddCalls[0] != "menu.json" {
		t.Errorf("AddCalls = %v", git.AddCalls)
	}

	// Commit message is label + timestamp, minute resolution
	if len(git.CommitCalls) != 1 {
		t.Fatalf("CommitCalls = %v", git.CommitCalls)
	}
	msg := git.CommitCalls[0]
	if msg != "Auto-update @ 2024-06-03 14:07" {
		t.Errorf("commit message = %q", msg)
	}
	re := regexp.MustCompile(`^Auto-update @ \d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)
	if !re.MatchString(msg) {
		t.Errorf("commit message %q does not match expected format", msg)
	}
	if result.Message != msg {
		t.Errorf("Result.Message = %q, expected %q", result.Message, msg)
	}

	if len(git.PushCalls) != 1 || git.PushCalls[0].Remote != "origin" || git.PushCalls[0].Branch != "main" {
		t.Errorf("PushCalls = %+v", git.PushCalls)
	}
	if result.GitHead != "abc123" {
		t.Errorf("GitHead = %q", result.GitHead)
	}
	if result.SizeBytes != int64(len(`{"a":1}`)) {
		t.Errorf("SizeBytes = %d", result.SizeBytes)
	}
}

func TestRunNoChanges(t *testing.T) {
	git := mocks.NewMockGitClient()
	git.Repos["/repo"] = true
	git.StatusOutput = "" // clean tree

	fs := mocks.NewMockFileSystem()
	fs.Files["/exports/menu.json"] = []byte(`{"a":1}`)
	fs.Files["/repo/menu.json"] = []byte(`{"a":1}`)

	result := testSyncer(git, fs).Run(testConfig())

	if result.Error != nil {
		t.Fatalf("Run failed: %v", result.Error)
	}
	if !result.Skipped || result.Committed {
		t.Fatalf("expected skipped result, got %+v", result)
	}
	if result.Reason != "no changes" {
		t.Errorf("Reason = %q", result.Reason)
	}

	// The cheap exit path performs no staging, commit or push
	if len(git.AddCalls) != 0 || len(git.CommitCalls) != 0 || len(git.PushCalls) != 0 {
		t.Errorf("no git mutations expected, got add=%v commit=%v push=%v",
			git.AddCalls, git.CommitCalls, git.PushCalls)
	}

	// The copy itself still happened
	if string(fs.Files["/repo/menu.json"]) != `{"a":1}` {
		t.Errorf("target = %q", fs.Files["/repo/menu.json"])
	}
}

func TestRunIdempotentNoOp(t *testing.T) {
	git := mocks.NewMockGitClient()
	git.Repos["/repo"] = true
	// First run sees a dirty tree, second run sees a clean one
	git.StatusQueue = []string{" M menu.json\n", ""}

	fs := mocks.NewMockFileSystem()
	fs.Files["/exports/menu.json"] = []byte(`{"a":1}`)
	fs.Files["/repo/menu.json"] = []byte(`{"a":0}`)

	s := testSyncer(git, fs)
	cfg := testConfig()

	first := s.Run(cfg)
	if first.Error != nil || !first.Committed {
		t.Fatalf("first run = %+v", first)
	}

	second := s.Run(cfg)
	if second.Error != nil {
		t.Fatalf("second run failed: %v", second.Error)
	}
	if !second.Skipped {
		t.Fatalf("second run should be a no-op, got %+v", second)
	}

	// Exactly one commit total across both runs
	if len(git.CommitCalls) != 1 {
		t.Errorf("CommitCalls = %d, expected 1", len(git.CommitCalls))
	}
	if len(git.PushCalls) != 1 {
		t.Errorf("PushCalls = %d, expected 1", len(git.PushCalls))
	}
}

func TestRunPullFailureAborts(t *testing.T) {
	git := mocks.NewMockGitClient()
	git.Repos["/repo"] = true
	git.Errors["Pull"] = errors.New("git pull failed: network unreachable")

	fs := mocks.NewMockFileSystem()
	fs.Files["/exports/menu.json"] = []byte(`{"a":1}`)
	fs.Files["/repo/menu.json"] = []byte(`{"a":0}`)

	result := testSyncer(git, fs).Run(testConfig())

	if result.Error == nil {
		t.Fatal("expected pull error to propagate")
	}
	// No copy, no commit attempted
	if string(fs.Files["/repo/menu.json"]) != `{"a":0}` {
		t.Errorf("target should be untouched, got %q", fs.Files["/repo/menu.json"])
	}
	if git.StatusCalls != 0 || len(git.CommitCalls) != 0 {
		t.Error("no further git operations expected after pull failure")
	}
}

func TestRunMissingSourceAborts(t *testing.T) {
	git := mocks.NewMockGitClient()
	git.Repos["/repo"] = true

	fs := mocks.NewMockFileSystem()
	// Source artifact never materialized by the cloud-sync client
	fs.Files["/repo/menu.json"] = []byte(`{"a":0}`)

	result := testSyncer(git, fs).Run(testConfig())

	if result.Error == nil {
		t.Fatal("expected copy error to propagate")
	}
	if !errors.Is(result.Error, os.ErrNotExist) {
		t.Errorf("error = %v, expected wrapped os.ErrNotExist", result.Error)
	}

	// Pull ran, but nothing after the failed copy
	if len(git.PullCalls) != 1 {
		t.Errorf("PullCalls = %d, expected 1", len(git.PullCalls))
	}
	if git.StatusCalls != 0 || len(git.AddCalls) != 0 || len(git.CommitCalls) != 0 {
		t.Error("no git operations expected after copy failure")
	}
	// Target retains its prior content
	if string(fs.Files["/repo/menu.json"]) != `{"a":0}` {
		t.Errorf("target should be untouched, got %q", fs.Files["/repo/menu.json"])
	}
}

func TestRunPushFailurePropagates(t *testing.T) {
	git := mocks.NewMockGitClient()
	git.Repos["/repo"] = true
	git.StatusOutput = " M menu.json\n"
	git.Errors["Push"] = errors.New("git push failed: remote advanced")

	fs := mocks.NewMockFileSystem()
	fs.Files["/exports/menu.json"] = []byte(`{"a":1}`)

	result := testSyncer(git, fs).Run(testConfig())

	if result.Error == nil {
		t.Fatal("expected push error to propagate")
	}
	if result.Committed {
		t.Error("result should not report a successful publish")
	}
	// The local commit already exists; that is the documented behavior
	if len(git.CommitCalls) != 1 {
		t.Errorf("CommitCalls = %d, expected 1", len(git.CommitCalls))
	}
}

func TestRunNotARepo(t *testing.T) {
	git := mocks.NewMockGitClient()
	fs := mocks.NewMockFileSystem()

	result := testSyncer(git, fs).Run(testConfig())
	if result.Error == nil {
		t.Fatal("expected error for non-repo dir")
	}
	if len(git.PullCalls) != 0 {
		t.Error("pull should not run against a non-repo")
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.TargetFile = "../escape.json"

	result := testSyncer(mocks.NewMockGitClient(), mocks.NewMockFileSystem()).Run(cfg)
	if result.Error == nil {
		t.Fatal("expected validation error")
	}
}

// TestRunContentFidelity copies through the real osfs adapter to check
// byte-for-byte fidelity, including empty and non-UTF8 content.
func TestRunContentFidelity(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"json", []byte(`{"a":1}`)},
		{"empty", []byte{}},
		{"non-utf8", []byte{0xff, 0xfe, 0x00, 0x80, 0x81}},
		{"large", bytes.Repeat([]byte("0123456789abcdef"), 64*1024)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			sourcePath := filepath.Join(tempDir, "export.json")
			repoDir := filepath.Join(tempDir, "repo")
			if err := os.MkdirAll(repoDir, 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(sourcePath, tt.content, 0644); err != nil {
				t.Fatal(err)
			}

			git := mocks.NewMockGitClient()
			git.Repos[repoDir] = true
			git.StatusOutput = " M menu.json\n"

			cfg := testConfig()
			cfg.SourcePath = sourcePath
			cfg.RepoDir = repoDir

			result := New(git, osfs.New()).Run(cfg)
			if result.Error != nil {
				t.Fatalf("Run failed: %v", result.Error)
			}

			got, err := os.ReadFile(filepath.Join(repoDir, "menu.json"))
			if err != nil {
				t.Fatalf("reading target: %v", err)
			}
			if !bytes.Equal(got, tt.content) {
				t.Errorf("target bytes differ from source: got %d bytes, want %d", len(got), len(tt.content))
			}
			if result.SizeBytes != int64(len(tt.content)) {
				t.Errorf("SizeBytes = %d, expected %d", result.SizeBytes, len(tt.content))
			}
		})
	}
}

func TestJournalEntry(t *testing.T) {
	r := Result{
		Committed: true,
		Timestamp: time.Date(2024, 6, 3, 14, 7, 0, 0, time.UTC),
		Message:   "Auto-update @ 2024-06-03 14:07",
		SizeBytes: 7,
		SHA256:    "abc",
		GitHead:   "def",
	}

	e := r.JournalEntry()
	if !e.Committed || e.Message != r.Message || e.SHA256 != "abc" || e.GitHead != "def" {
		t.Errorf("entry = %+v", e)
	}
	if e.SizeBytes != 7 {
		t.Errorf("SizeBytes = %d", e.SizeBytes)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatSize(tt.bytes); got != tt.expected {
				t.Errorf("FormatSize(%d) = %q, expected %q", tt.bytes, got, tt.expected)
			}
		})
	}
}
