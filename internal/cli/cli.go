// Package cli provides the command-line interface with injectable io.Writer for testing.
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/ceresbotanicals/menusync/internal/adapters/execgit"
	"github.com/ceresbotanicals/menusync/internal/adapters/maclaunchd"
	"github.com/ceresbotanicals/menusync/internal/adapters/osfs"
	"github.com/ceresbotanicals/menusync/internal/config"
	"github.com/ceresbotanicals/menusync/internal/journal"
	"github.com/ceresbotanicals/menusync/internal/ports"
	"github.com/ceresbotanicals/menusync/internal/syncer"
)

// ConfigService provides configuration operations for the CLI.
type ConfigService interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
	ConfigPath() string
	DefaultConfig() *config.Config
}

// SyncService provides sync operations for the CLI.
type SyncService interface {
	Run(cfg *config.Config) syncer.Result
}

// JournalService provides run-history operations for the CLI.
type JournalService interface {
	Load() (*journal.Journal, error)
	Record(entry journal.Entry, keepLast int) error
}

// CLI represents the command-line interface with injectable dependencies.
type CLI struct {
	Out     io.Writer // Standard output
	Err     io.Writer // Standard error
	Version string    // Application version
	Args    []string  // Command arguments (like os.Args)

	// Exit function for testability (defaults to os.Exit)
	Exit func(code int)

	// Injectable dependencies (nil means use defaults)
	ConfigSvc  ConfigService
	SyncSvc    SyncService
	JournalSvc JournalService
	LaunchdSvc ports.LaunchdService

	// Color functions (can be disabled for testing)
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	gray   func(a ...interface{}) string
	red    func(a ...interface{}) string
}

// New creates a new CLI with default settings.
func New(version string) *CLI {
	return &CLI{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Version: version,
		Args:    os.Args,
		Exit:    os.Exit,
		green:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		cyan:    color.New(color.FgCyan).SprintFunc(),
		gray:    color.New(color.FgHiBlack).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
	}
}

// NewForTesting creates a CLI configured for testing (no colors, captured output).
func NewForTesting(out, errOut io.Writer, args []string) *CLI {
	noColor := func(a ...interface{}) string { return fmt.Sprint(a...) }
	exitCode := 0
	return &CLI{
		Out:     out,
		Err:     errOut,
		Version: "test",
		Args:    args,
		Exit:    func(code int) { exitCode = code; _ = exitCode },
		green:   noColor,
		yellow:  noColor,
		cyan:    noColor,
		gray:    noColor,
		red:     noColor,
	}
}

// defaultConfigService wraps the config package functions.
type defaultConfigService struct{}

func (d *defaultConfigService) Load() (*config.Config, error)  { return config.Load() }
func (d *defaultConfigService) Save(cfg *config.Config) error  { return cfg.Save() }
func (d *defaultConfigService) ConfigPath() string             { return config.ConfigPath() }
func (d *defaultConfigService) DefaultConfig() *config.Config  { return config.DefaultConfig() }

// defaultSyncService runs the pipeline with the exec git and os adapters.
type defaultSyncService struct{}

func (d *defaultSyncService) Run(cfg *config.Config) syncer.Result {
	return syncer.New(execgit.New(), osfs.New()).Run(cfg)
}

// defaultJournalService wraps the journal package functions.
type defaultJournalService struct{}

func (d *defaultJournalService) Load() (*journal.Journal, error) {
	return journal.Load(config.JournalPath())
}
func (d *defaultJournalService) Record(entry journal.Entry, keepLast int) error {
	return journal.Record(config.JournalPath(), entry, keepLast)
}

// Helper methods to get the service or default
func (c *CLI) configSvc() ConfigService {
	if c.ConfigSvc != nil {
		return c.ConfigSvc
	}
	return &defaultConfigService{}
}

func (c *CLI) syncSvc() SyncService {
	if c.SyncSvc != nil {
		return c.SyncSvc
	}
	return &defaultSyncService{}
}

func (c *CLI) journalSvc() JournalService {
	if c.JournalSvc != nil {
		return c.JournalSvc
	}
	return &defaultJournalService{}
}

func (c *CLI) launchdSvc() ports.LaunchdService {
	if c.LaunchdSvc != nil {
		return c.LaunchdSvc
	}
	return maclaunchd.New()
}

// Run executes the CLI with the configured arguments.
func (c *CLI) Run() {
	if len(c.Args) < 2 {
		// No command - would launch TUI, but we skip that for CLI testing
		fmt.Fprintln(c.Out, "No command specified. Use 'menusync help' for usage.")
		return
	}

	switch c.Args[1] {
	case "sync", "run":
		c.RunSync()
	case "status":
		c.ShowStatus()
	case "history":
		c.ShowHistory()
	case "init":
		c.InitConfig()
	case "install":
		c.InstallLaunchd()
	case "uninstall":
		c.UninstallLaunchd()
	case "version", "-v", "--version":
		fmt.Fprintf(c.Out, "menusync v%s\n", c.Version)
	case "help", "-h", "--help":
		c.PrintUsage()
	default:
		fmt.Fprintf(c.Err, "Unknown command: %s\n", c.Args[1])
		c.PrintUsage()
		c.Exit(1)
	}
}

// PrintUsage prints the help message.
func (c *CLI) PrintUsage() {
	fmt.Fprintln(c.Out, `menusync - Publish a cloud-synced menu export to a git repository

Usage:
  menusync                 Launch interactive TUI
  menusync ui              Launch interactive TUI
  menusync sync            Pull, copy the export into the repo, commit and push if changed
  menusync status          Show configuration, last run and launchd state
  menusync history         List past sync runs
  menusync init            Create default config file
  menusync install         Install daily launchd schedule (from schedule.time)
  menusync uninstall       Remove launchd schedule
  menusync version, -v     Show version
  menusync help, -h        Show this help

Config: ~/.menusync/config.yaml`)
}

// RunSync runs the sync pipeline once.
func (c *CLI) RunSync() {
	cfgSvc := c.configSvc()

	cfg, err := cfgSvc.Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return
	}

	result := c.syncSvc().Run(cfg)
	if result.Error != nil {
		fmt.Fprintf(c.Err, "Sync failed: %v\n", result.Error)
		c.Exit(1)
		return
	}

	// The journal is bookkeeping; a journaling failure must not fail the run.
	if err := c.journalSvc().Record(result.JournalEntry(), cfg.History.KeepLast); err != nil {
		fmt.Fprintf(c.Err, "Warning: could not record run: %v\n", err)
	}

	if result.Skipped {
		fmt.Fprintf(c.Out, "%s No changes to publish.\n", c.gray("-"))
		return
	}

	fmt.Fprintf(c.Out, "%s Published %s at %s (%s)\n",
		c.green("*"),
		cfg.TargetFile,
		result.Timestamp.Format(syncer.TimestampLayout),
		c.yellow(syncer.FormatSize(result.SizeBytes)))
}

// ShowStatus shows the current status.
func (c *CLI) ShowStatus() {
	cfgSvc := c.configSvc()
	launchdSvc := c.launchdSvc()

	cfg, err := cfgSvc.Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return
	}

	fmt.Fprintln(c.Out, "menusync status:")
	fmt.Fprintf(c.Out, "  Source:  %s\n", cfg.SourcePath)
	fmt.Fprintf(c.Out, "  Repo:    %s\n", cfg.RepoDir)
	fmt.Fprintf(c.Out, "  Target:  %s\n", cfg.TargetFile)
	fmt.Fprintf(c.Out, "  Branch:  %s/%s\n", cfg.Remote, cfg.Branch)
	fmt.Fprintf(c.Out, "  Config:  %s\n", cfgSvc.ConfigPath())

	if j, err := c.journalSvc().Load(); err == nil {
		if last := j.Latest(); last != nil {
			outcome := "no changes"
			if last.Committed {
				outcome = last.Message
			}
			fmt.Fprintf(c.Out, "  Last run: %s (%s)\n",
				last.Timestamp.Format(syncer.TimestampLayout), outcome)
		} else {
			fmt.Fprintf(c.Out, "  Last run: %s\n", c.gray("never"))
		}
	}

	switch launchdSvc.Status() {
	case "loaded":
		fmt.Fprintf(c.Out, "  launchd: %s\n", c.green("installed & loaded"))
	case "not loaded":
		fmt.Fprintf(c.Out, "  launchd: %s\n", c.gray("installed (not loaded)"))
	default:
		fmt.Fprintf(c.Out, "  launchd: %s\n", c.gray("not installed"))
	}
}

// ShowHistory lists past sync runs, newest first.
func (c *CLI) ShowHistory() {
	j, err := c.journalSvc().Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading journal: %v\n", err)
		c.Exit(1)
		return
	}

	if len(j.Runs) == 0 {
		fmt.Fprintln(c.Out, "No runs recorded yet.")
		return
	}

	fmt.Fprintf(c.Out, "  %-18s %-10s %10s %-9s %s\n", "TIME", "RESULT", "SIZE", "SHA256", "COMMIT")
	fmt.Fprintf(c.Out, "  %-18s %-10s %10s %-9s %s\n", "----", "------", "----", "------", "------")

	for i := len(j.Runs) - 1; i >= 0; i-- {
		r := j.Runs[i]
		outcome := c.gray("no-op")
		if r.Committed {
			outcome = c.green("published")
		}
		sha := r.SHA256
		if len(sha) > 7 {
			sha = sha[:7]
		}
		head := r.GitHead
		if len(head) > 7 {
			head = head[:7]
		}
		if head == "" {
			head = c.gray("-")
		}
		fmt.Fprintf(c.Out, "  %-18s %-10s %10s %-9s %s\n",
			r.Timestamp.Format(syncer.TimestampLayout),
			outcome,
			syncer.FormatSize(r.SizeBytes),
			sha,
			head)
	}
}

// InitConfig creates the default config file.
func (c *CLI) InitConfig() {
	svc := c.configSvc()
	cfg := svc.DefaultConfig()
	if err := svc.Save(cfg); err != nil {
		fmt.Fprintf(c.Err, "Error saving config: %v\n", err)
		c.Exit(1)
		return
	}
	fmt.Fprintf(c.Out, "Created config at %s\n", svc.ConfigPath())
}

// InstallLaunchd installs the launchd schedule.
func (c *CLI) InstallLaunchd() {
	svc := c.launchdSvc()

	if svc.IsInstalled() {
		fmt.Fprintln(c.Out, "launchd already installed. Uninstall first to reinstall.")
		c.Exit(1)
		return
	}

	cfg, err := c.configSvc().Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return
	}

	hour, minute, err := parseScheduleTime(cfg.Schedule.Time)
	if err != nil {
		fmt.Fprintf(c.Err, "Error in schedule.time: %v\n", err)
		c.Exit(1)
		return
	}

	if err := svc.Install("", hour, minute); err != nil {
		fmt.Fprintf(c.Err, "Error installing launchd: %v\n", err)
		c.Exit(1)
		return
	}

	fmt.Fprintf(c.Out, "%s Installed launchd schedule (daily at %02d:%02d)\n", c.green("*"), hour, minute)
	fmt.Fprintf(c.Out, "  Plist: %s\n", svc.PlistPath())
	fmt.Fprintf(c.Out, "  Log:   %s\n", svc.LogPath())
}

// UninstallLaunchd removes the launchd schedule.
func (c *CLI) UninstallLaunchd() {
	svc := c.launchdSvc()

	if !svc.IsInstalled() {
		fmt.Fprintln(c.Out, "launchd not installed.")
		c.Exit(1)
		return
	}

	if err := svc.Uninstall(); err != nil {
		fmt.Fprintf(c.Err, "Error uninstalling launchd: %v\n", err)
		c.Exit(1)
		return
	}

	fmt.Fprintf(c.Out, "%s Uninstalled launchd schedule\n", c.yellow("-"))
}

// parseScheduleTime parses "HH:MM" into hour and minute.
func parseScheduleTime(s string) (int, int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}
