package main

import (
	"io"
	"os"
	"runtime"

	"github.com/GhostOf0days/casino/internal/fileutil"
	"github.com/GhostOf0days/casino/internal/game"
	"github.com/GhostOf0days/casino/internal/simulator"
)

// SimulateCmd estimates the return to player of one game
type SimulateCmd struct {
	Game       string  `arg:"" help:"Game to simulate (higher_lower, matching, coin_flip, slots, poker, card_counting, roulette)"`
	Rounds     int     `short:"n" default:"100000" help:"Number of rounds to play"`
	Workers    int     `short:"w" help:"Parallel workers (default: number of CPUs)"`
	Bet        int     `short:"b" default:"50" help:"Bet per round"`
	Confidence float64 `default:"0.95" help:"Confidence level of the reported intervals"`
	Format     string  `short:"f" enum:"text,yaml,json" default:"text" help:"Report format (text, yaml, json)"`
	Progress   bool    `default:"true" negatable:"" help:"Show a progress bar"`
	Output     string  `short:"o" help:"Write the report to this file instead of stdout"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	return c.run(g, os.Stdout, os.Stderr)
}

func (c *SimulateCmd) run(g *Globals, out, progress io.Writer) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger, err := newLogger(progress, cfg.Server.LogLevel)
	if err != nil {
		return err
	}
	v, err := game.ParseVariant(c.Game)
	if err != nil {
		return err
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if !c.Progress {
		progress = nil
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	report, err := simulator.New(simulator.Config{
		Variant:    v,
		Rounds:     c.Rounds,
		Workers:    workers,
		Bet:        c.Bet,
		Seed:       cfg.Session.Seed,
		Confidence: c.Confidence,
		Options: func(worker int) ([]game.Option, error) {
			return cfg.SessionOptions(logger, worker)
		},
		Progress: progress,
		Logger:   logger,
	}).Run(ctx)
	if err != nil {
		return err
	}
	if c.Output != "" {
		if err := fileutil.WriteAtomic(c.Output, 0o644, func(w io.Writer) error {
			return report.Write(w, c.Format)
		}); err != nil {
			return err
		}
		logger.Info("Report written", "path", c.Output)
		return nil
	}
	return report.Write(out, c.Format)
}
