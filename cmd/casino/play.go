package main

import (
	"fmt"
	"os"

	"github.com/GhostOf0days/casino/internal/game"
	"github.com/GhostOf0days/casino/internal/tui"
)

// PlayCmd opens one session in the terminal UI
type PlayCmd struct {
	Balance int    `help:"Starting balance (overrides config)"`
	LogFile string `help:"Write logs to this file (overrides config)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	// the terminal belongs to the UI, so logs go to a file
	path := cfg.Server.LogFile
	if c.LogFile != "" {
		path = c.LogFile
	}
	if path == "" {
		path = "casino.log"
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger, err := newLogger(logFile, cfg.Server.LogLevel)
	if err != nil {
		return err
	}

	balance := cfg.Session.InitialBalance
	if c.Balance > 0 {
		balance = c.Balance
	}
	opts, err := cfg.SessionOptions(logger, 0)
	if err != nil {
		return err
	}
	session := game.NewSession(balance, opts...)
	defer func() { _ = session.Close() }()

	ctx, cancel := signalContext(logger)
	defer cancel()

	logger.Info("Starting casino", "balance", balance, "session", session.ID())
	if err := tui.Run(ctx, session, logger); err != nil {
		return err
	}
	fmt.Printf("You left the casino with %d tokens.\n", session.Balance())
	return nil
}
