package game

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GhostOf0days/casino/internal/randutil"
)

const (
	MinBet     = 10
	MaxBet     = 1000
	BetStep    = 10
	DefaultBet = 50

	// DefaultBalance is the balance a fresh casino visit starts with.
	DefaultBalance = 1000

	insanityThreshold = 1000
	insanityChance    = 0.2
)

const insufficientBalanceMessage = "You don't have enough balance for this bet!"

// Session is one open casino visit: the balance, the state machine and the
// variant currently on the table. All methods are safe for concurrent use.
type Session struct {
	id uuid.UUID

	mu            sync.Mutex
	clock         quartz.Clock
	src           randutil.Source
	logger        *log.Logger
	pacing        Pacing
	opponent      Opponent
	defaultBet    int
	collaborators map[Variant]Collaborator
	bus           *SimpleEventBus

	ledger    *Ledger
	state     State
	variant   Variant
	bet       int
	activeBet int
	last      *Outcome
	notice    *Notice
	insanity  bool
	busy      bool
	closed    bool

	// epoch is bumped on Reset and Close; pending steps from an older
	// epoch are dropped.
	epoch   uint64
	timerID uint64
	timers  map[uint64]*quartz.Timer

	hilo      *higherLowerRound
	coin      *coinFlipRound
	slots     *slotsRound
	board     *memoryBoard
	poker     *pokerRound
	delegated string

	// events queued while s.mu is held, published after unlock
	queued []Event
}

// Option configures a Session
type Option func(*Session)

// WithClock sets the clock used for pacing delays
func WithClock(clock quartz.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

// WithRand sets the random source used by every resolver
func WithRand(src randutil.Source) Option {
	return func(s *Session) { s.src = src }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithPacing sets the artificial delays
func WithPacing(p Pacing) Option {
	return func(s *Session) { s.pacing = p }
}

// WithCollaborator registers the external game for a delegated variant
func WithCollaborator(v Variant, c Collaborator) Option {
	return func(s *Session) { s.collaborators[v] = c }
}

// WithDefaultBet sets the bet proposed when a variant is selected
func WithDefaultBet(bet int) Option {
	return func(s *Session) { s.defaultBet = bet }
}

// WithOpponent replaces the House
func WithOpponent(o Opponent) Option {
	return func(s *Session) { s.opponent = o }
}

// NewSession opens a casino visit with the given balance.
func NewSession(initialBalance int, opts ...Option) *Session {
	s := &Session{
		id:            uuid.New(),
		clock:         quartz.NewReal(),
		logger:        log.NewWithOptions(io.Discard, log.Options{}),
		pacing:        DefaultPacing,
		opponent:      House,
		defaultBet:    DefaultBet,
		collaborators: make(map[Variant]Collaborator),
		bus:           NewEventBus(),
		timers:        make(map[uint64]*quartz.Timer),
		state:         StateSelecting,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		s.src = randutil.NewFromSeed(0)
	}
	s.logger = s.logger.WithPrefix("session").With("session", s.id.String()[:8])
	s.ledger = NewLedger(max(0, initialBalance), s.opponent.Modifier)
	s.bet = s.defaultBet

	s.logger.Debug("Session opened", "balance", s.ledger.Balance(), "opponent", s.opponent.Name)
	return s
}

// ID returns the session identifier
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Subscribe registers a subscriber for session events and returns a
// function that removes it. Subscribers run on the goroutine that caused
// the event, after the session lock is released.
func (s *Session) Subscribe(sub EventSubscriber) func() {
	return s.bus.Subscribe(sub)
}

// Snapshot returns a copy of the current session
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Balance returns the current balance
func (s *Session) Balance() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Balance()
}

// do runs fn under the session lock and publishes the events it queued.
func (s *Session) do(action string, fn func() error) error {
	s.mu.Lock()
	var err error
	if s.closed {
		err = fmt.Errorf("%s: %w", action, ErrSessionClosed)
	} else {
		err = fn()
	}
	events := s.queued
	s.queued = nil
	s.mu.Unlock()

	if err != nil {
		s.logger.Debug("Action rejected", "action", action, "error", err)
	}
	for _, e := range events {
		s.bus.Publish(e)
	}
	return err
}

func (s *Session) base() baseEvent {
	return baseEvent{snapshot: s.snapshot(), timestamp: s.clock.Now()}
}

func (s *Session) emitUpdate() {
	s.queued = append(s.queued, UpdatedEvent{baseEvent: s.base()})
}

func (s *Session) emitNotice(sev Severity, msg string) {
	n := Notice{Severity: sev, Message: msg}
	s.notice = &n
	s.queued = append(s.queued, NoticeEvent{baseEvent: s.base(), Notice: n})
}

// transition consults the table and moves the state machine.
func (s *Session) transition(t Trigger) error {
	to, ok := Next(s.state, t)
	if !ok {
		return fmt.Errorf("%s from %s: %w", t, s.state, ErrInvalidTransition)
	}
	from := s.state
	s.state = to
	s.logger.Debug("State changed", "from", from, "to", to, "trigger", t)
	s.queued = append(s.queued, StateChangedEvent{baseEvent: s.base(), From: from, To: to, Trigger: t})
	return nil
}

// after runs step once d has elapsed on the session clock. The session is
// busy until then. Non-positive delays run step immediately.
func (s *Session) after(d time.Duration, step func()) {
	if d <= 0 {
		step()
		return
	}

	s.busy = true
	epoch := s.epoch
	s.timerID++
	id := s.timerID
	s.timers[id] = s.clock.AfterFunc(d, func() {
		_ = s.do("pace", func() error {
			delete(s.timers, id)
			if s.epoch != epoch {
				return nil
			}
			s.busy = false
			step()
			return nil
		})
	}, "session", "pace")
}

// cancelPending stops every scheduled step and invalidates any that are
// already running.
func (s *Session) cancelPending() {
	s.epoch++
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.busy = false
}

func (s *Session) clearRound() {
	s.hilo = nil
	s.coin = nil
	s.slots = nil
	s.board = nil
	s.poker = nil
	s.delegated = ""
	s.activeBet = 0
	s.last = nil
	s.notice = nil
}

// playing checks that v is on the table and no step is pending.
func (s *Session) playing(v Variant) error {
	if s.state != StatePlaying || s.variant != v {
		return fmt.Errorf("%s in %s: %w", v, s.state, ErrInvalidTransition)
	}
	if s.busy {
		return fmt.Errorf("%s busy: %w", v, ErrInvalidTransition)
	}
	return nil
}

// SelectVariant picks a game and moves to Betting with the default bet.
func (s *Session) SelectVariant(v Variant) error {
	return s.do("select", func() error {
		if _, ok := variantTitles[v]; !ok {
			return fmt.Errorf("variant %d: %w", v, ErrInvalidInput)
		}
		if _, ok := Next(s.state, TriggerSelect); !ok {
			return fmt.Errorf("select from %s: %w", s.state, ErrInvalidTransition)
		}
		s.clearRound()
		s.variant = v
		s.bet = s.defaultBet
		return s.transition(TriggerSelect)
	})
}

// PlaceBet proposes a bet. It must be a multiple of BetStep within
// [MinBet, MaxBet] and no more than the balance.
func (s *Session) PlaceBet(amount int) error {
	return s.do("bet", func() error {
		if s.state != StateBetting {
			return fmt.Errorf("bet in %s: %w", s.state, ErrInvalidTransition)
		}
		if amount < MinBet || amount > MaxBet || amount%BetStep != 0 {
			s.emitNotice(SeverityWarning, fmt.Sprintf("Bets must be between %d and %d tokens in steps of %d.", MinBet, MaxBet, BetStep))
			return fmt.Errorf("bet %d: %w", amount, ErrBetOutOfRange)
		}
		if amount > s.ledger.Balance() {
			s.emitNotice(SeverityError, insufficientBalanceMessage)
			return fmt.Errorf("bet %d with balance %d: %w", amount, s.ledger.Balance(), ErrInsufficientBalance)
		}
		s.bet = amount
		s.notice = nil
		s.emitUpdate()
		return nil
	})
}

// StartGame locks in the bet and deals the variant's table.
func (s *Session) StartGame() error {
	return s.do("start", func() error {
		if _, ok := Next(s.state, TriggerStart); !ok {
			return fmt.Errorf("start from %s: %w", s.state, ErrInvalidTransition)
		}
		if s.bet > s.ledger.Balance() {
			s.emitNotice(SeverityError, insufficientBalanceMessage)
			return fmt.Errorf("bet %d with balance %d: %w", s.bet, s.ledger.Balance(), ErrInsufficientBalance)
		}
		if s.bet < MinBet || s.bet > MaxBet {
			return fmt.Errorf("bet %d: %w", s.bet, ErrBetOutOfRange)
		}

		s.clearRound()
		s.activeBet = s.bet
		switch s.variant {
		case VariantHigherLower:
			s.hilo = &higherLowerRound{player: dealPlayerCard(s.src)}
		case VariantMemoryMatch:
			s.board = newMemoryBoard(s.src)
		case VariantCoinFlip:
			s.coin = &coinFlipRound{}
		case VariantSlots:
			s.slots = &slotsRound{}
		case VariantPoker:
			s.poker = dealPokerRound(s.src)
		}
		s.logger.Debug("Game started", "variant", s.variant, "bet", s.activeBet)
		return s.transition(TriggerStart)
	})
}

// Predict calls Higher or Lower against the House card.
func (s *Session) Predict(p Prediction) error {
	return s.do("predict", func() error {
		if err := s.playing(VariantHigherLower); err != nil {
			return err
		}
		if p != Higher && p != Lower {
			return fmt.Errorf("prediction %d: %w", p, ErrInvalidInput)
		}
		r := s.hilo
		if r.prediction != PredictNone {
			return fmt.Errorf("already predicted: %w", ErrInvalidTransition)
		}
		r.prediction = p
		result, opp := resolveHigherLower(s.src, s.opponent.WinChance, r.player, p)
		s.emitUpdate()

		s.after(s.pacing.Reveal, func() {
			r.opponent = opp
			r.resolved = true
			s.finish(result, decimal.NewFromInt(1), fmt.Sprintf("%s vs %s", r.player, opp))
		})
		return nil
	})
}

// Choose calls a side of the coin.
func (s *Session) Choose(side Side) error {
	return s.do("choose", func() error {
		if err := s.playing(VariantCoinFlip); err != nil {
			return err
		}
		if side != Heads && side != Tails {
			return fmt.Errorf("side %d: %w", side, ErrInvalidInput)
		}
		c := s.coin
		if c.choice != SideNone {
			return fmt.Errorf("already chosen: %w", ErrInvalidTransition)
		}
		c.choice = side
		result, landed := resolveCoinFlip(s.src, side)
		s.emitUpdate()

		s.after(s.pacing.Flip, func() {
			c.landed = landed
			c.resolved = true
			s.finish(result, decimal.NewFromInt(1), "landed "+landed.String())
		})
		return nil
	})
}

// Spin pulls the slot lever.
func (s *Session) Spin() error {
	return s.do("spin", func() error {
		if err := s.playing(VariantSlots); err != nil {
			return err
		}
		r := s.slots
		if r.resolved {
			return fmt.Errorf("already spun: %w", ErrInvalidTransition)
		}
		out := resolveSlots(s.src)
		d := randutil.Between(s.src, s.pacing.SpinMin, s.pacing.SpinMax)

		s.after(d, func() {
			r.reels = out.reels
			r.label = out.label
			r.resolved = true
			s.finish(out.result, out.multiplier, out.label)
		})
		if s.busy {
			s.emitUpdate()
		}
		return nil
	})
}

// Reveal turns over the Memory Match card at position i.
func (s *Session) Reveal(i int) error {
	return s.do("reveal", func() error {
		if err := s.playing(VariantMemoryMatch); err != nil {
			return err
		}
		if i < 0 || i >= boardSize {
			return fmt.Errorf("position %d: %w", i, ErrInvalidInput)
		}
		b := s.board
		if b.revealed[i] {
			return fmt.Errorf("position %d already revealed: %w", i, ErrInvalidTransition)
		}

		b.revealed[i] = true
		if b.first == noPosition {
			b.first = i
			s.emitUpdate()
			return nil
		}

		a := b.first
		b.first = noPosition
		s.emitUpdate()

		if b.cards[a] == b.cards[i] {
			if b.complete() {
				s.after(s.pacing.Reveal, func() {
					s.finish(Win, decimal.NewFromInt(1), "board cleared")
				})
			}
			return nil
		}

		s.after(s.pacing.Reveal, func() {
			b.hide(a, i)
			s.emitUpdate()
			s.opponentTurn(b)
		})
		return nil
	})
}

// opponentTurn lets the House try to uncover a pair after a miss.
func (s *Session) opponentTurn(b *memoryBoard) {
	pair, found := b.opponentTurn(s.src, opponentMatchChance)
	if !found {
		s.queued = append(s.queued, OpponentMoveEvent{baseEvent: s.base()})
		return
	}
	s.after(s.pacing.Reveal, func() {
		b.revealed[pair[0]] = true
		b.revealed[pair[1]] = true
		s.logger.Debug("House found a pair", "positions", pair)
		s.queued = append(s.queued, OpponentMoveEvent{baseEvent: s.base(), Found: true, Positions: pair})
		if b.complete() {
			s.finish(Lose, decimal.Zero, "the House cleared the board")
		}
	})
}

// ToggleHold marks or unmarks the poker card at position i.
func (s *Session) ToggleHold(i int) error {
	return s.do("hold", func() error {
		if err := s.playing(VariantPoker); err != nil {
			return err
		}
		if i < 0 || i >= handSize {
			return fmt.Errorf("card %d: %w", i, ErrInvalidInput)
		}
		if s.poker.stage != PokerInitial {
			return fmt.Errorf("hold after draw: %w", ErrInvalidTransition)
		}
		s.poker.toggle(i)
		s.emitUpdate()
		return nil
	})
}

// Draw replaces the unheld cards and settles the final hand.
func (s *Session) Draw() error {
	return s.do("draw", func() error {
		if err := s.playing(VariantPoker); err != nil {
			return err
		}
		if s.poker.stage != PokerInitial {
			return fmt.Errorf("already drawn: %w", ErrInvalidTransition)
		}
		cat := s.poker.draw()
		result := Lose
		if cat.Wins() {
			result = Win
		}
		s.finish(result, cat.Multiplier(), cat.String())
		return nil
	})
}

// Delegate hands the round to the collaborator registered for the active
// variant and settles its report. The session lock is not held while the
// collaborator plays.
func (s *Session) Delegate(ctx context.Context) error {
	var (
		c     Collaborator
		stake Stake
		epoch uint64
	)
	err := s.do("delegate", func() error {
		if s.state != StatePlaying || !s.variant.Delegated() {
			return fmt.Errorf("delegate %s in %s: %w", s.variant, s.state, ErrInvalidTransition)
		}
		if s.busy {
			return fmt.Errorf("delegate busy: %w", ErrInvalidTransition)
		}
		var ok bool
		if c, ok = s.collaborators[s.variant]; !ok {
			return fmt.Errorf("delegate %s: %w", s.variant, ErrNoCollaborator)
		}
		stake = Stake{Balance: s.ledger.Balance(), Bet: s.activeBet}
		epoch = s.epoch
		s.busy = true
		return nil
	})
	if err != nil {
		return err
	}

	rep, playErr := c.Play(ctx, stake)

	return s.do("delegate", func() error {
		if s.epoch != epoch {
			return fmt.Errorf("session reset during delegated play: %w", ErrInvalidTransition)
		}
		s.busy = false
		if playErr != nil {
			s.emitUpdate()
			return fmt.Errorf("delegate %s: %w", s.variant, playErr)
		}
		s.settleReport(rep.Win, rep.Multiplier, rep.Detail)
		return nil
	})
}

// Report settles a delegated round played by the host itself.
func (s *Session) Report(win bool, multiplier decimal.Decimal) error {
	return s.do("report", func() error {
		if s.state != StatePlaying || !s.variant.Delegated() {
			return fmt.Errorf("report %s in %s: %w", s.variant, s.state, ErrInvalidTransition)
		}
		if s.busy {
			return fmt.Errorf("report busy: %w", ErrInvalidTransition)
		}
		s.settleReport(win, multiplier, "")
		return nil
	})
}

func (s *Session) settleReport(win bool, multiplier decimal.Decimal, detail string) {
	s.delegated = detail
	if !win {
		s.finish(Lose, decimal.Zero, detail)
		return
	}
	if !multiplier.IsPositive() {
		multiplier = decimal.NewFromInt(1)
	}
	s.finish(Win, multiplier, detail)
}

// finish settles the round and moves to Result. Callers hold s.mu.
func (s *Session) finish(result Result, multiplier decimal.Decimal, label string) {
	o := NewOutcome(s.variant, s.activeBet, result, multiplier, label)
	st, err := s.ledger.Settle(o)
	if err != nil {
		s.logger.Warn("Outcome not settled", "outcome", o.ID, "error", err)
		return
	}
	s.last = &o
	s.logger.Info("Round settled",
		"variant", o.Variant,
		"result", o.Result,
		"multiplier", o.Multiplier.String(),
		"delta", st.Delta,
		"balance", st.After)

	if st.Before > insanityThreshold && randutil.Chance(s.src, insanityChance) {
		s.insanity = true
	}

	s.queued = append(s.queued, SettledEvent{baseEvent: s.base(), Outcome: o, Settlement: st})
	s.emitNotice(st.Notice.Severity, st.Notice.Message)
	if err := s.transition(TriggerResolve); err != nil {
		panic("game: " + err.Error())
	}
}

// PlayAgain returns to Betting on the same variant.
func (s *Session) PlayAgain() error {
	return s.do("again", func() error {
		if _, ok := Next(s.state, TriggerPlayAgain); !ok {
			return fmt.Errorf("play again from %s: %w", s.state, ErrInvalidTransition)
		}
		s.clearRound()
		return s.transition(TriggerPlayAgain)
	})
}

// ChangeGame returns to the game menu.
func (s *Session) ChangeGame() error {
	return s.do("change", func() error {
		if _, ok := Next(s.state, TriggerChangeGame); !ok {
			return fmt.Errorf("change game from %s: %w", s.state, ErrInvalidTransition)
		}
		s.clearRound()
		s.variant = VariantNone
		s.bet = s.defaultBet
		return s.transition(TriggerChangeGame)
	})
}

// Reset abandons whatever is on the table and returns to the menu. The
// balance is kept and pending steps never fire.
func (s *Session) Reset() error {
	return s.do("reset", func() error {
		s.reset()
		return nil
	})
}

func (s *Session) reset() {
	s.cancelPending()
	s.clearRound()
	s.variant = VariantNone
	s.bet = s.defaultBet
	_ = s.transition(TriggerReset)
}

// Close resets the session and rejects every later action with
// ErrSessionClosed.
func (s *Session) Close() error {
	return s.do("close", func() error {
		s.reset()
		s.closed = true
		s.logger.Debug("Session closed", "balance", s.ledger.Balance())
		return nil
	})
}
