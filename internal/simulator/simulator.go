// Package simulator estimates the return to player of each game by playing
// many rounds with a simple autoplayer.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"

	"github.com/GhostOf0days/casino/internal/game"
	"github.com/GhostOf0days/casino/internal/randutil"
)

// bankroll is the balance each simulated session starts with. Sessions are
// reopened when it can no longer cover the bet.
const bankroll = 1_000_000_000

// Config holds configuration for running simulations
type Config struct {
	Variant    game.Variant
	Rounds     int
	Workers    int
	Bet        int
	Seed       int64
	Confidence float64

	// Options adds session options for worker i, such as configured
	// collaborators. Pacing is always instant.
	Options func(worker int) ([]game.Option, error)

	// Progress receives a progress bar; nil disables it.
	Progress io.Writer
	Logger   *log.Logger
}

// Simulator runs game simulations
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.Bet == 0 {
		config.Bet = game.DefaultBet
	}
	if config.Confidence == 0 {
		config.Confidence = 0.95
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{config: config, logger: logger.WithPrefix("simulator")}
}

// Validate checks the configuration
func (s *Simulator) Validate() error {
	c := s.config
	if c.Variant == game.VariantNone {
		return errors.New("simulator: no game selected")
	}
	if c.Rounds <= 0 {
		return fmt.Errorf("simulator: rounds must be positive, got %d", c.Rounds)
	}
	if c.Bet < game.MinBet || c.Bet > game.MaxBet || c.Bet%game.BetStep != 0 {
		return fmt.Errorf("simulator: bet %d: %w", c.Bet, game.ErrBetOutOfRange)
	}
	if c.Confidence <= 0 || c.Confidence >= 1 {
		return fmt.Errorf("simulator: confidence must be in (0, 1), got %g", c.Confidence)
	}
	return nil
}

// tally accumulates one worker's rounds
type tally struct {
	rounds   int
	wins     int
	wagered  int64
	net      int64
	sum      float64
	sumSq    float64
	outcomes map[string]int
}

func (t *tally) add(bet, delta int, result game.Result, label string) {
	t.rounds++
	if result == game.Win {
		t.wins++
	}
	t.wagered += int64(bet)
	t.net += int64(delta)
	x := float64(bet+delta) / float64(bet)
	t.sum += x
	t.sumSq += x * x
	if label == "" {
		label = result.String()
	}
	t.outcomes[label]++
}

func (t *tally) merge(o *tally) {
	t.rounds += o.rounds
	t.wins += o.wins
	t.wagered += o.wagered
	t.net += o.net
	t.sum += o.sum
	t.sumSq += o.sumSq
	for k, v := range o.outcomes {
		t.outcomes[k] += v
	}
}

// Run plays the configured rounds across the workers and summarises them
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	c := s.config

	bar := pb.New(c.Rounds)
	if c.Progress != nil {
		bar.SetWriter(c.Progress)
	} else {
		bar.SetWriter(io.Discard)
	}
	bar.Start()
	defer bar.Finish()

	start := time.Now()
	total := &tally{outcomes: make(map[string]int)}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for w := range c.Workers {
		rounds := c.Rounds / c.Workers
		if w < c.Rounds%c.Workers {
			rounds++
		}
		if rounds == 0 {
			continue
		}
		g.Go(func() error {
			t, err := s.work(ctx, w, rounds, bar)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			mu.Lock()
			total.merge(t)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	s.logger.Info("Simulation complete", "game", c.Variant, "rounds", total.rounds, "elapsed", elapsed)
	return s.report(total, elapsed), nil
}

func (s *Simulator) openSession(w int, seed int64) (*game.Session, error) {
	opts := []game.Option{
		game.WithRand(randutil.New(seed)),
		game.WithCollaborator(game.VariantRoulette, game.NewRouletteWheel(randutil.New(randutil.Derive(seed, 1)), game.Red)),
		game.WithCollaborator(game.VariantCardCounting, game.NewHiLoCounter(randutil.New(randutil.Derive(seed, 2)), game.CountPositive)),
	}
	if s.config.Options != nil {
		extra, err := s.config.Options(w)
		if err != nil {
			return nil, err
		}
		opts = append(opts, extra...)
	}
	// per-round settlement logs would swamp the output
	logger := s.logger.With("worker", w)
	if logger.GetLevel() < log.WarnLevel {
		logger.SetLevel(log.WarnLevel)
	}
	opts = append(opts,
		game.WithPacing(game.Instant),
		game.WithLogger(logger),
	)
	return game.NewSession(bankroll, opts...), nil
}

// work plays rounds on its own session and seed stream
func (s *Simulator) work(ctx context.Context, w, rounds int, bar *pb.ProgressBar) (*tally, error) {
	c := s.config
	t := &tally{outcomes: make(map[string]int)}

	p, err := newPlayer(c.Variant)
	if err != nil {
		return nil, err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	seed = randutil.Derive(seed, w)

	var session *game.Session
	defer func() {
		if session != nil {
			_ = session.Close()
		}
	}()

	for i := range rounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if session == nil || session.Balance() < c.Bet {
			if session != nil {
				_ = session.Close()
			}
			if session, err = s.openSession(w, randutil.Derive(seed, i)); err != nil {
				return nil, err
			}
			if err := session.SelectVariant(c.Variant); err != nil {
				return nil, err
			}
		} else if err := session.PlayAgain(); err != nil {
			return nil, err
		}

		if err := session.PlaceBet(c.Bet); err != nil {
			return nil, err
		}
		before := session.Balance()
		if err := session.StartGame(); err != nil {
			return nil, err
		}
		if err := p.play(ctx, session); err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}

		snap := session.Snapshot()
		if snap.State != game.StateResult || snap.Last == nil {
			return nil, fmt.Errorf("round %d: ended in %s without an outcome", i, snap.State)
		}
		t.add(c.Bet, snap.Balance-before, snap.Last.Result, snap.Last.Label)
		bar.Increment()
	}
	return t, nil
}

func (s *Simulator) report(t *tally, elapsed time.Duration) *Report {
	c := s.config
	n := float64(t.rounds)

	mean := t.sum / n
	variance := 0.0
	if t.rounds > 1 {
		variance = math.Max(0, (t.sumSq-n*mean*mean)/(n-1))
	}
	sd := math.Sqrt(variance)
	lo, hi := meanCI(mean, sd, t.rounds, c.Confidence)
	wlo, whi := proportionCI(t.wins, t.rounds, c.Confidence)

	return &Report{
		Game:       c.Variant.String(),
		Title:      c.Variant.Title(),
		Rounds:     t.rounds,
		Workers:    c.Workers,
		Bet:        c.Bet,
		Seed:       c.Seed,
		Confidence: c.Confidence,
		Wins:       t.wins,
		Losses:     t.rounds - t.wins,
		Wagered:    t.wagered,
		Net:        t.net,
		RTP:        Interval{Estimate: mean, Low: lo, High: hi},
		WinRate:    Interval{Estimate: float64(t.wins) / n, Low: wlo, High: whi},
		StdDev:     sd,
		Outcomes:   maps.Clone(t.outcomes),
		Elapsed:    elapsed.Round(time.Millisecond).String(),
	}
}

// RunSimulation is a convenience function for a single-worker run
func RunSimulation(ctx context.Context, v game.Variant, rounds int, seed int64, logger *log.Logger) (*Report, error) {
	return New(Config{
		Variant: v,
		Rounds:  rounds,
		Seed:    seed,
		Logger:  logger,
	}).Run(ctx)
}
