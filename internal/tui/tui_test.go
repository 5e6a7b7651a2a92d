package tui

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhostOf0days/casino/internal/game"
	"github.com/GhostOf0days/casino/internal/randutil"
)

func TestMain(m *testing.M) {
	// plain text output so assertions can match rendered strings
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, balance int) (*Model, *game.Session) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	s := game.NewSession(balance,
		game.WithRand(randutil.New(42)),
		game.WithPacing(game.Instant),
		game.WithLogger(logger),
		game.WithCollaborator(game.VariantRoulette, game.NewRouletteWheel(randutil.New(1), game.Red)),
	)
	m := NewModel(context.Background(), s, logger)
	t.Cleanup(func() {
		m.Close()
		_ = s.Close()
	})
	return m, s
}

func TestModelPlaysAPokerRound(t *testing.T) {
	m, s := newTestModel(t, 1000)

	require.False(t, m.Submit("play poker"))
	assert.Equal(t, game.StateBetting, m.Snapshot().State)

	require.False(t, m.Submit("bet 100"))
	assert.Equal(t, 100, m.Snapshot().Bet)

	require.False(t, m.Submit("deal"))
	assert.Equal(t, game.StatePlaying, m.Snapshot().State)

	require.False(t, m.Submit("1 2"))
	assert.Equal(t, []bool{true, true, false, false, false}, m.Snapshot().Poker.Held)

	require.False(t, m.Submit("draw"))
	snap := m.Snapshot()
	assert.Equal(t, game.StateResult, snap.State)
	assert.Equal(t, s.Balance(), snap.Balance)

	settled := snap.Last.Pays()
	found := false
	for _, line := range m.Log() {
		if settled && strings.HasPrefix(line, "Congratulations!") || !settled && line == "You lost 100 tokens!" {
			found = true
		}
	}
	assert.True(t, found, "settlement notice missing from log: %v", m.Log())

	require.False(t, m.Submit(""))
	assert.Equal(t, game.StateBetting, m.Snapshot().State)
}

func TestModelShowsInsufficientBalanceNotice(t *testing.T) {
	m, _ := newTestModel(t, 40)

	m.Submit("play coin")
	m.Submit("start")

	assert.Equal(t, game.StateBetting, m.Snapshot().State)
	assert.Contains(t, m.Log(), "You don't have enough balance for this bet!")
}

func TestModelReportsUnknownCommands(t *testing.T) {
	m, _ := newTestModel(t, 1000)

	m.Submit("blackjack")
	lines := m.Log()
	assert.Contains(t, lines[len(lines)-1], "unknown command")

	m.Submit("play baccarat")
	lines = m.Log()
	assert.Contains(t, lines[len(lines)-1], "unknown game")
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, 1000)
	assert.True(t, m.Submit("quit"))
}

func TestModelDelegatesRoulette(t *testing.T) {
	m, s := newTestModel(t, 1000)

	m.Submit("play roulette")
	m.Submit("start")
	m.Submit("go")

	snap := m.Snapshot()
	assert.Equal(t, game.StateResult, snap.State)
	assert.Contains(t, snap.Delegated.Detail, "ball landed on")
	assert.Equal(t, s.Balance(), snap.Balance)
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	playing := func(v game.Variant) game.Snapshot {
		return game.Snapshot{State: game.StatePlaying, Variant: v}
	}

	tests := []struct {
		name  string
		input string
		snap  game.Snapshot
		want  Command
	}{
		{"empty", "   ", game.Snapshot{}, Command{}},
		{"lowercases", "PLAY Poker", game.Snapshot{}, Command{Action: "play", Args: []string{"poker"}}},
		{"memory shorthand", "3", playing(game.VariantMemoryMatch), Command{Action: "reveal", Args: []string{"3"}}},
		{"poker shorthand", "1 5", playing(game.VariantPoker), Command{Action: "hold", Args: []string{"1", "5"}}},
		{"number outside play", "3", game.Snapshot{State: game.StateBetting}, Command{Action: "3", Args: []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseCommand(tt.input, tt.snap))
		})
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	snap := game.Snapshot{
		State:     game.StatePlaying,
		Variant:   game.VariantMemoryMatch,
		ActiveBet: 50,
		Memory: &game.MemoryView{
			Cards:    []string{"A♠", "", "", "", "", "", "", "10♥"},
			Revealed: []bool{true, false, false, false, false, false, false, true},
			Selected: -1,
		},
	}
	out := renderTable(snap)
	assert.Contains(t, out, "Memory Match")
	assert.Contains(t, out, "1:[A♠]")
	assert.Contains(t, out, "2:[??]")
	assert.Contains(t, out, "8:[10♥]")
}

func TestViewRendersAfterResize(t *testing.T) {
	m, _ := newTestModel(t, 1000)
	assert.Equal(t, "Loading...", m.View())

	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	assert.Contains(t, view, "Balance: 1000")
	assert.Contains(t, view, "Choose a game")
}
