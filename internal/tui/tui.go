package tui

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/GhostOf0days/casino/internal/game"
)

// Model is the Bubble Tea model hosting one casino session
type Model struct {
	session *game.Session
	logger  *log.Logger
	ctx     context.Context

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	// State
	snap        game.Snapshot
	gameLog     []string
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// events published by the session, drained on the UI goroutine
	mu          sync.Mutex
	pending     []game.Event
	signal      chan struct{}
	unsubscribe func()

	// Dimensions
	width  int
	height int
}

// eventsMsg tells Update that session events are waiting
type eventsMsg struct{}

// NewModel creates a model for the session. The model subscribes to the
// session; call Close when done.
func NewModel(ctx context.Context, session *game.Session, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Type a command (help for a list)"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		session:     session,
		logger:      logger.WithPrefix("tui"),
		ctx:         ctx,
		logViewport: vp,
		input:       ti,
		snap:        session.Snapshot(),
		focusedPane: 1,
		signal:      make(chan struct{}, 1),
	}
	m.unsubscribe = session.Subscribe(game.SubscriberFunc(m.onEvent))
	m.AddLogEntry(HeaderStyle.Render(" Welcome to the casino ") + " " + InfoStyle.Render(game.House.Description))
	return m
}

// onEvent queues an event. It may run on any goroutine, including the
// UI goroutine itself, so it never blocks.
func (m *Model) onEvent(e game.Event) {
	m.mu.Lock()
	m.pending = append(m.pending, e)
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
}

// waitForEvents returns a command that fires when events are queued
func (m *Model) waitForEvents() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.signal:
			return eventsMsg{}
		case <-m.ctx.Done():
			return tea.Quit()
		}
	}
}

// drain applies queued events to the log and refreshes the snapshot
func (m *Model) drain() {
	m.mu.Lock()
	events := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, e := range events {
		if line := describeEvent(e); line != "" {
			m.AddLogEntry(line)
		}
	}
	m.snap = m.session.Snapshot()
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvents())
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case eventsMsg:
		m.drain()
		cmds = append(cmds, m.waitForEvents())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				line := strings.TrimSpace(m.input.Value())
				m.input.SetValue("")
				if m.Submit(line) {
					m.quitting = true
					return m, tea.Sequence(tea.ClearScreen, tea.Quit)
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// Submit runs one line of input against the session. It reports whether
// the player asked to quit.
func (m *Model) Submit(line string) bool {
	cmd := ParseCommand(line, m.snap)
	if cmd.Action == "help" || cmd.Action == "?" {
		m.AddLogEntry(InfoStyle.Render(helpText(m.snap)))
	}

	err := execute(m.ctx, m.session, m.snap, cmd)
	switch {
	case errors.Is(err, errQuit):
		return true
	case err == nil:
	case game.IsNotice(err):
		// the session already published a notice
	case errors.Is(err, game.ErrInvalidTransition):
		m.logger.Debug("Ignored command", "command", cmd.Action, "error", err)
	default:
		m.AddLogEntry(ErrorStyle.Render(err.Error()))
	}
	m.drain()
	return false
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(max(1, m.width-2)).
		Height(max(1, actionHeight)).
		Render(actionContent)

	topHeight := max(1, m.height-actionHeight-4)

	sidebarContent := renderSidebar(m.snap)
	sidebarWidth := max(25, lipgloss.Width(sidebarContent))
	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(topHeight).
		Render(sidebarContent)

	tableContent := renderTable(m.snap)
	tableHeight := lipgloss.Height(tableContent)
	mainWidth := max(1, m.width-sidebarWidth-4)

	m.logViewport.Width = mainWidth
	m.logViewport.Height = max(1, topHeight-tableHeight-1)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	logBorder := lipgloss.Color("#626262")
	if m.focusedPane == 0 {
		logBorder = lipgloss.Color("#04B575")
	}
	mainPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(logBorder).
		Width(mainWidth).
		Height(topHeight).
		Render(TableStyle.Render(tableContent) + "\n" + m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, mainPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderActionPane renders the input and the commands available now
func (m *Model) renderActionPane() string {
	var content strings.Builder
	content.WriteString(ActionsStyle.Render("Commands: " + helpText(m.snap)))
	content.WriteString("\n")
	content.WriteString(m.input.View())
	content.WriteString("\n")
	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return content.String()
}

// AddLogEntry adds an entry to the game log and scrolls to it
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns a copy of the log entries
func (m *Model) Log() []string {
	out := make([]string, len(m.gameLog))
	copy(out, m.gameLog)
	return out
}

// Snapshot returns the session state the model last rendered
func (m *Model) Snapshot() game.Snapshot {
	return m.snap
}

// Close unsubscribes from the session
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Run hosts the session in a full-screen terminal UI until the player quits.
// The session is reset on exit, as closing the casino dialog would.
func Run(ctx context.Context, session *game.Session, logger *log.Logger) error {
	m := NewModel(ctx, session, logger)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	if rerr := session.Reset(); rerr != nil && err == nil && !errors.Is(rerr, game.ErrSessionClosed) {
		err = rerr
	}
	return err
}
