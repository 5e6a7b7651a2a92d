package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.hcl")
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cards []string
		bet   int
		want  []string
		err   bool
	}{
		{
			name:  "royal flush",
			cards: []string{"Ts", "Js", "Qs", "Ks", "As"},
			bet:   1000,
			want:  []string{"Royal Flush", "pays 100×", "+70000"},
		},
		{
			name:  "single argument",
			cards: []string{"2h 2d 9c 9s Kd"},
			bet:   50,
			want:  []string{"Two Pair", "+70"},
		},
		{
			name:  "jacks high pays half",
			cards: []string{"2h", "5d", "9c", "Js", "3d"},
			bet:   100,
			want:  []string{"High Card (J or better)", "pays 0.5×", "+35"},
		},
		{
			name:  "losing hand",
			cards: []string{"2h", "5d", "9c", "Ts", "3d"},
			bet:   50,
			want:  []string{"High Card", "no payout: lose 50"},
		},
		{name: "four cards", cards: []string{"2h", "5d", "9c", "Ts"}, bet: 50, err: true},
		{name: "duplicate", cards: []string{"2h", "2h", "9c", "Ts", "3d"}, bet: 50, err: true},
		{name: "bad bet", cards: []string{"2h", "5d", "9c", "Ts", "3d"}, bet: 5, err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			cmd := EvaluateCmd{Cards: tt.cards, Bet: tt.bet}
			err := cmd.evaluate(&buf)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestEvaluateHint(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cmd := EvaluateCmd{Cards: []string{"Kh", "Kd", "9c", "4s", "2d"}, Bet: 50, Hint: true}
	require.NoError(t, cmd.evaluate(&buf))
	assert.Contains(t, buf.String(), "hold: K♥ K♦")
}

func TestParseCommands(t *testing.T) {
	t.Parallel()

	parse := func(t *testing.T, args ...string) (*CLI, string, error) {
		t.Helper()
		var cli CLI
		parser, err := kong.New(&cli,
			kong.Name("casino"),
			kong.Vars{"version": "test"},
			kong.Exit(func(int) {}),
			kong.Writers(io.Discard, io.Discard),
		)
		require.NoError(t, err)
		ctx, err := parser.Parse(args)
		if err != nil {
			return &cli, "", err
		}
		return &cli, ctx.Command(), nil
	}

	t.Run("play is the default", func(t *testing.T) {
		t.Parallel()
		_, cmd, err := parse(t)
		require.NoError(t, err)
		assert.Equal(t, "play", cmd)
	})

	t.Run("simulate flags", func(t *testing.T) {
		t.Parallel()
		cli, cmd, err := parse(t, "--seed", "7", "simulate", "slots", "-n", "500", "-f", "yaml", "--no-progress")
		require.NoError(t, err)
		assert.Equal(t, "simulate <game>", cmd)
		assert.Equal(t, "slots", cli.Simulate.Game)
		assert.Equal(t, 500, cli.Simulate.Rounds)
		assert.Equal(t, "yaml", cli.Simulate.Format)
		assert.False(t, cli.Simulate.Progress)
		require.NotNil(t, cli.Seed)
		assert.Equal(t, int64(7), *cli.Seed)
	})

	t.Run("bad format", func(t *testing.T) {
		t.Parallel()
		_, _, err := parse(t, "simulate", "slots", "-f", "xml")
		assert.Error(t, err)
	})

	t.Run("serve address", func(t *testing.T) {
		t.Parallel()
		cli, cmd, err := parse(t, "serve", "-a", ":9000")
		require.NoError(t, err)
		assert.Equal(t, "serve", cmd)
		assert.Equal(t, ":9000", cli.Serve.Addr)
		assert.Equal(t, "casino.hcl", cli.Config)
	})
}

func TestGlobalsLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing file uses defaults", func(t *testing.T) {
		t.Parallel()
		g := Globals{Config: missingConfig(t)}
		cfg, err := g.load()
		require.NoError(t, err)
		assert.Equal(t, 1000, cfg.Session.InitialBalance)
		assert.Equal(t, "info", cfg.Server.LogLevel)
	})

	t.Run("flags override the file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "casino.hcl")
		src := "session {\n  default_bet = 100\n  seed = 3\n}\nserver {\n  log_level = \"warn\"\n}\n"
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

		seed := int64(9)
		g := Globals{Config: path, LogLevel: "debug", Seed: &seed}
		cfg, err := g.load()
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.Session.DefaultBet)
		assert.Equal(t, int64(9), cfg.Session.Seed)
		assert.Equal(t, "debug", cfg.Server.LogLevel)
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Parallel()
		g := Globals{Config: missingConfig(t), LogLevel: "loud"}
		_, err := g.load()
		assert.Error(t, err)
	})
}

func TestSimulateReport(t *testing.T) {
	t.Parallel()
	seed := int64(21)
	g := &Globals{Config: missingConfig(t), LogLevel: "error", Seed: &seed}
	cmd := SimulateCmd{
		Game:       "coin_flip",
		Rounds:     200,
		Workers:    2,
		Bet:        50,
		Confidence: 0.95,
		Format:     "yaml",
	}

	var out bytes.Buffer
	require.NoError(t, cmd.run(g, &out, io.Discard))

	var report map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "coin_flip", report["game"])
	assert.Equal(t, 200, report["rounds"])
}

func TestSimulateUnknownGame(t *testing.T) {
	t.Parallel()
	g := &Globals{Config: missingConfig(t), LogLevel: "error"}
	cmd := SimulateCmd{Game: "baccarat", Rounds: 10, Bet: 50, Confidence: 0.95, Format: "text"}
	assert.Error(t, cmd.run(g, io.Discard, io.Discard))
}

func TestSimulateOutputFile(t *testing.T) {
	t.Parallel()
	seed := int64(4)
	path := filepath.Join(t.TempDir(), "slots.json")
	g := &Globals{Config: missingConfig(t), LogLevel: "error", Seed: &seed}
	cmd := SimulateCmd{
		Game:       "slots",
		Rounds:     100,
		Workers:    1,
		Bet:        100,
		Confidence: 0.9,
		Format:     "json",
		Output:     path,
	}

	var out bytes.Buffer
	require.NoError(t, cmd.run(g, &out, io.Discard))
	assert.Zero(t, out.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"game": "slots"`)
}
