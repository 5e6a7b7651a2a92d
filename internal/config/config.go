package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/GhostOf0days/casino/internal/game"
	"github.com/GhostOf0days/casino/internal/randutil"
)

// Config represents the complete casino configuration. Every block is
// optional; missing values take their defaults.
type Config struct {
	Session       SessionSettings
	Pacing        PacingSettings
	Server        ServerSettings
	Collaborators CollaboratorSettings
}

// SessionSettings controls a new casino visit
type SessionSettings struct {
	InitialBalance int   `hcl:"initial_balance,optional"`
	DefaultBet     int   `hcl:"default_bet,optional"`
	Seed           int64 `hcl:"seed,optional"`
}

// PacingSettings holds the animation delays as duration strings ("1.5s").
type PacingSettings struct {
	Reveal  string `hcl:"reveal,optional"`
	Flip    string `hcl:"flip,optional"`
	SpinMin string `hcl:"spin_min,optional"`
	SpinMax string `hcl:"spin_max,optional"`
}

// ServerSettings contains websocket server configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// CollaboratorSettings configures the built-in Roulette and Card Counting games
type CollaboratorSettings struct {
	RoulettePick  string `hcl:"roulette_pick,optional"`
	CountingGuess string `hcl:"counting_guess,optional"`
	CountingCards int    `hcl:"counting_cards,optional"`
}

// file mirrors Config with optional blocks for decoding.
type file struct {
	Session       *SessionSettings      `hcl:"session,block"`
	Pacing        *PacingSettings       `hcl:"pacing,block"`
	Server        *ServerSettings       `hcl:"server,block"`
	Collaborators *CollaboratorSettings `hcl:"collaborators,block"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Session: SessionSettings{
			InitialBalance: game.DefaultBalance,
			DefaultBet:     game.DefaultBet,
		},
		Pacing: PacingSettings{
			Reveal:  game.DefaultPacing.Reveal.String(),
			Flip:    game.DefaultPacing.Flip.String(),
			SpinMin: game.DefaultPacing.SpinMin.String(),
			SpinMax: game.DefaultPacing.SpinMax.String(),
		},
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Collaborators: CollaboratorSettings{
			RoulettePick:  game.Red.String(),
			CountingGuess: game.CountPositive.String(),
			CountingCards: game.DefaultCountingCards,
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies defaults for missing values.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if s := raw.Session; s != nil {
		if s.InitialBalance != 0 {
			cfg.Session.InitialBalance = s.InitialBalance
		}
		if s.DefaultBet != 0 {
			cfg.Session.DefaultBet = s.DefaultBet
		}
		cfg.Session.Seed = s.Seed
	}
	if p := raw.Pacing; p != nil {
		setString(&cfg.Pacing.Reveal, p.Reveal)
		setString(&cfg.Pacing.Flip, p.Flip)
		setString(&cfg.Pacing.SpinMin, p.SpinMin)
		setString(&cfg.Pacing.SpinMax, p.SpinMax)
	}
	if s := raw.Server; s != nil {
		setString(&cfg.Server.Address, s.Address)
		setString(&cfg.Server.LogLevel, s.LogLevel)
		setString(&cfg.Server.LogFile, s.LogFile)
		if s.Port != 0 {
			cfg.Server.Port = s.Port
		}
	}
	if c := raw.Collaborators; c != nil {
		setString(&cfg.Collaborators.RoulettePick, c.RoulettePick)
		setString(&cfg.Collaborators.CountingGuess, c.CountingGuess)
		if c.CountingCards != 0 {
			cfg.Collaborators.CountingCards = c.CountingCards
		}
	}
	return cfg, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Session.InitialBalance < 0 {
		return fmt.Errorf("initial balance must not be negative: %d", c.Session.InitialBalance)
	}
	bet := c.Session.DefaultBet
	if bet < game.MinBet || bet > game.MaxBet || bet%game.BetStep != 0 {
		return fmt.Errorf("default bet must be a multiple of %d between %d and %d: %d",
			game.BetStep, game.MinBet, game.MaxBet, bet)
	}

	pacing, err := c.GamePacing()
	if err != nil {
		return err
	}
	if pacing.SpinMax < pacing.SpinMin {
		return fmt.Errorf("spin_max %s is shorter than spin_min %s", pacing.SpinMax, pacing.SpinMin)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Server.LogLevel)
	}

	if _, err := game.ParseColour(c.Collaborators.RoulettePick); err != nil {
		return err
	}
	if _, err := game.ParseCountSign(c.Collaborators.CountingGuess); err != nil {
		return err
	}
	if n := c.Collaborators.CountingCards; n < 1 || n > 52 {
		return fmt.Errorf("counting_cards must be between 1 and 52: %d", n)
	}
	return nil
}

// GamePacing parses the pacing durations
func (c *Config) GamePacing() (game.Pacing, error) {
	var p game.Pacing
	fields := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"reveal", c.Pacing.Reveal, &p.Reveal},
		{"flip", c.Pacing.Flip, &p.Flip},
		{"spin_min", c.Pacing.SpinMin, &p.SpinMin},
		{"spin_max", c.Pacing.SpinMax, &p.SpinMax},
	}
	for _, f := range fields {
		d, err := time.ParseDuration(f.raw)
		if err != nil {
			return p, fmt.Errorf("pacing %s: %w", f.name, err)
		}
		if d < 0 {
			return p, fmt.Errorf("pacing %s must not be negative", f.name)
		}
		*f.dst = d
	}
	return p, nil
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// SessionOptions builds the options for a new game.Session: pacing, default
// bet, a random source and the two built-in collaborators. Each session
// gets its own source; seed 0 draws from the clock, otherwise index
// derives a distinct reproducible stream.
func (c *Config) SessionOptions(logger *log.Logger, index int) ([]game.Option, error) {
	pacing, err := c.GamePacing()
	if err != nil {
		return nil, err
	}
	pick, err := game.ParseColour(c.Collaborators.RoulettePick)
	if err != nil {
		return nil, err
	}
	guess, err := game.ParseCountSign(c.Collaborators.CountingGuess)
	if err != nil {
		return nil, err
	}

	seed := c.Session.Seed
	if seed != 0 {
		seed = randutil.Derive(seed, index)
	}
	src := randutil.NewFromSeed(seed)

	counter := game.NewHiLoCounter(randutil.New(int64(src.Uint64())), guess)
	counter.Cards = c.Collaborators.CountingCards

	return []game.Option{
		game.WithPacing(pacing),
		game.WithDefaultBet(c.Session.DefaultBet),
		game.WithLogger(logger),
		game.WithRand(src),
		game.WithCollaborator(game.VariantRoulette, game.NewRouletteWheel(randutil.New(int64(src.Uint64())), pick)),
		game.WithCollaborator(game.VariantCardCounting, counter),
	}, nil
}
