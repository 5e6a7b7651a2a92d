package main

import (
	"os"

	"github.com/GhostOf0days/casino/internal/server"
)

// ServeCmd hosts a session per websocket client
type ServeCmd struct {
	Addr string `short:"a" help:"Server address to bind to (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg.Server.LogLevel)
	if err != nil {
		return err
	}

	addr := cfg.GetServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	srv := server.NewServer(logger, server.ConfigSessions(cfg, logger))
	logger.Info("Casino server configured",
		"addr", addr,
		"balance", cfg.Session.InitialBalance,
		"default_bet", cfg.Session.DefaultBet,
		"seeded", cfg.Session.Seed != 0)
	return srv.Serve(ctx, addr)
}
