package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	SourcePath  string `yaml:"source_path"`
	RepoDir     string `yaml:"repo_dir"`
	TargetFile  string `yaml:"target_file"`
	Remote      string `yaml:"remote"`
	Branch      string `yaml:"branch"`
	CommitLabel string `yaml:"commit_label"`
	Schedule    struct {
		Time string `yaml:"time"`
	} `yaml:"schedule"`
	History struct {
		KeepLast int `yaml:"keep_last"`
	} `yaml:"history"`
}

func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "." // Fallback to current directory
	}
	cfg := &Config{
		SourcePath:  filepath.Join(home, "Dropbox", "exports", "menu.json"),
		RepoDir:     filepath.Join(home, "live-menu"),
		TargetFile:  "menu.json",
		Remote:      "origin",
		Branch:      "main",
		CommitLabel: "Auto-update @",
	}
	cfg.Schedule.Time = "06:00"
	cfg.History.KeepLast = 90
	return cfg
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".menusync", "config.yaml")
}

// JournalPath is where the run journal lives, next to the config.
func JournalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".menusync", "journal.json")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the config can drive a sync run. Paths are checked
// for shape only; reachability of the remote is left to git itself.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SourcePath) == "" {
		return fmt.Errorf("source_path is required")
	}
	if strings.TrimSpace(c.RepoDir) == "" {
		return fmt.Errorf("repo_dir is required")
	}
	if strings.TrimSpace(c.TargetFile) == "" {
		return fmt.Errorf("target_file is required")
	}
	if filepath.IsAbs(c.TargetFile) {
		return fmt.Errorf("target_file must be relative to repo_dir, got %q", c.TargetFile)
	}
	if strings.ContainsRune(c.TargetFile, os.PathSeparator) || strings.Contains(c.TargetFile, "..") {
		return fmt.Errorf("target_file must name a file at the repo root, got %q", c.TargetFile)
	}
	if strings.TrimSpace(c.Remote) == "" {
		return fmt.Errorf("remote is required")
	}
	if strings.TrimSpace(c.Branch) == "" {
		return fmt.Errorf("branch is required")
	}
	return nil
}

// TargetPath returns the absolute path of the tracked artifact.
func (c *Config) TargetPath() string {
	return filepath.Join(ExpandPath(c.RepoDir), c.TargetFile)
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path // Return unexpanded if home unavailable
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
