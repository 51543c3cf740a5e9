package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ceresbotanicals/menusync/internal/adapters/tuisvc"
	"github.com/ceresbotanicals/menusync/internal/config"
	"github.com/ceresbotanicals/menusync/internal/ports"
	"github.com/ceresbotanicals/menusync/internal/syncer"
)

// historyLimit caps how many past runs the list loads at once.
const historyLimit = 50

// RunItem represents a past sync run in the list
type RunItem struct {
	Timestamp time.Time
	Committed bool
	Message   string
	Reason    string
	SizeBytes int64
	SHA256    string
}

// Model is the main TUI model
type Model struct {
	svc      ports.TUIService
	config   *config.Config
	width    int
	height   int
	quitting bool
	syncing  bool

	// Runs list
	runs      []RunItem
	runCursor int

	// Status message
	statusMsg string
	statusErr bool
}

// Key bindings
type keyMap struct {
	Up   key.Binding
	Down key.Binding
	Sync key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Sync: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "run sync"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// NewModel creates a new TUI model backed by the given service
func NewModel(svc ports.TUIService) (*Model, error) {
	cfg, err := svc.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	m := &Model{
		svc:    svc,
		config: cfg,
	}

	if err := m.loadRuns(); err != nil {
		return nil, err
	}

	return m, nil
}

// loadRuns loads recent sync runs, newest first
func (m *Model) loadRuns() error {
	runs, err := m.svc.History(m.config, historyLimit)
	if err != nil {
		return err
	}

	m.runs = nil
	for _, r := range runs {
		m.runs = append(m.runs, RunItem{
			Timestamp: r.Timestamp,
			Committed: r.Committed,
			Message:   r.Message,
			Reason:    r.Reason,
			SizeBytes: r.SizeBytes,
			SHA256:    r.SHA256,
		})
	}
	if m.runCursor >= len(m.runs) {
		m.runCursor = 0
	}

	return nil
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusMsg:
		m.syncing = false
		m.statusMsg = msg.msg
		m.statusErr = msg.err
		// Reload data to reflect changes
		_ = m.loadRuns()
		return m, nil

	case tea.KeyMsg:
		if m.syncing {
			// A sync is in flight; only quitting is allowed
			if key.Matches(msg, keys.Quit) {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		// Clear status on any key
		m.statusMsg = ""
		m.statusErr = false

		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)

		case key.Matches(msg, keys.Down):
			m.moveCursor(1)

		case key.Matches(msg, keys.Sync):
			m.syncing = true
			m.statusMsg = "Syncing..."
			return m, m.runSync()
		}
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.runCursor += delta
	if m.runCursor < 0 {
		m.runCursor = 0
	}
	if m.runCursor >= len(m.runs) {
		m.runCursor = len(m.runs) - 1
	}
	if m.runCursor < 0 {
		m.runCursor = 0
	}
}

func (m *Model) runSync() tea.Cmd {
	return func() tea.Msg {
		result := m.svc.RunSync(m.config)
		if result.Error != nil {
			return statusMsg{err: true, msg: fmt.Sprintf("Sync failed: %v", result.Error)}
		}
		if result.Skipped {
			return statusMsg{msg: "No changes to publish"}
		}
		return statusMsg{msg: fmt.Sprintf("✓ Published %s (%s)", m.config.TargetFile, syncer.FormatSize(result.SizeBytes))}
	}
}

type statusMsg struct {
	msg string
	err bool
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render(" 🍃 menusync "))
	b.WriteString("\n\n")

	// Config summary
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s -> %s (%s/%s)",
		m.config.SourcePath, m.config.TargetFile, m.config.Remote, m.config.Branch)))
	b.WriteString("\n\n")

	// Header
	header := fmt.Sprintf("  %-18s %-10s %10s %s", "TIME", "RESULT", "SIZE", "SHA256")
	b.WriteString(dimStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", 60)))
	b.WriteString("\n")

	if len(m.runs) == 0 {
		b.WriteString(dimStyle.Render("  No runs recorded yet. Press r to sync."))
		b.WriteString("\n")
	}

	visibleHeight := m.height - 12
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	start := 0
	if m.runCursor >= visibleHeight {
		start = m.runCursor - visibleHeight + 1
	}

	for i := start; i < len(m.runs) && i < start+visibleHeight; i++ {
		r := m.runs[i]

		outcome := "no-op"
		if r.Committed {
			outcome = "published"
		}
		sha := r.SHA256
		if len(sha) > 7 {
			sha = sha[:7]
		}

		line := fmt.Sprintf("%-18s %-10s %10s %s",
			r.Timestamp.Format(syncer.TimestampLayout),
			outcome,
			syncer.FormatSize(r.SizeBytes),
			sha)

		if i == m.runCursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	// Status
	b.WriteString("\n")
	if m.statusMsg != "" {
		if m.statusErr {
			b.WriteString(errorBadge.Render(m.statusMsg))
		} else {
			b.WriteString(successBadge.Render(m.statusMsg))
		}
	}
	b.WriteString("\n")

	// Help
	help := "[↑/↓] scroll  [r] run sync  [q] quit"
	b.WriteString(helpStyle.Render(help))

	return appStyle.Render(b.String())
}

// Run starts the TUI
func Run() error {
	m, err := NewModel(tuisvc.New())
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
