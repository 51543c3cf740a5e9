// Package journal records the outcome of past sync runs as a JSON file.
// The journal is bookkeeping only: the pipeline never consults it, so a
// lost or corrupt journal cannot affect what gets committed.
package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	SHA256    string    `json:"sha256"`
	SizeBytes int64     `json:"size_bytes"`
	Committed bool      `json:"committed"`
	Message   string    `json:"message,omitempty"`
	GitHead   string    `json:"git_head,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

type Journal struct {
	Runs []Entry `json:"runs"`
}

func Load(path string) (*Journal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Journal{Runs: []Entry{}}, nil
		}
		return nil, err
	}

	var j Journal
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}

	return &j, nil
}

func (j *Journal) Save(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (j *Journal) Append(entry Entry) {
	j.Runs = append(j.Runs, entry)
}

func (j *Journal) Latest() *Entry {
	if len(j.Runs) == 0 {
		return nil
	}
	return &j.Runs[len(j.Runs)-1]
}

// Prune drops the oldest runs exceeding keepLast. Runs are ordered oldest
// to newest. Returns the number of dropped entries.
func (j *Journal) Prune(keepLast int) int {
	if keepLast <= 0 || len(j.Runs) <= keepLast {
		return 0
	}
	dropped := len(j.Runs) - keepLast
	j.Runs = j.Runs[dropped:]
	return dropped
}

// Record loads the journal at path, appends entry, prunes to keepLast and
// saves it back. Used by callers that do not care about the full history.
func Record(path string, entry Entry, keepLast int) error {
	j, err := Load(path)
	if err != nil {
		return err
	}
	j.Append(entry)
	j.Prune(keepLast)
	return j.Save(path)
}

// ComputeSHA256 returns the hex digest of data.
func ComputeSHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
