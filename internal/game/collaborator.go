package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/GhostOf0days/casino/internal/randutil"
	"github.com/GhostOf0days/casino/poker"
)

// Stake is everything an external game is told about the player.
type Stake struct {
	Balance int
	Bet     int
}

// Report is what an external game hands back.
type Report struct {
	Win        bool
	Multiplier decimal.Decimal
	Detail     string
}

// Collaborator plays a delegated variant (Card Counting, Roulette) and
// reports the verdict. The engine does not look inside.
type Collaborator interface {
	Play(ctx context.Context, stake Stake) (Report, error)
}

// CollaboratorFunc adapts a function to the Collaborator interface
type CollaboratorFunc func(ctx context.Context, stake Stake) (Report, error)

// Play calls f(ctx, stake)
func (f CollaboratorFunc) Play(ctx context.Context, stake Stake) (Report, error) {
	return f(ctx, stake)
}

// Colour is a roulette pocket colour.
type Colour uint8

const (
	Red Colour = iota
	Black
	Green
)

// String returns the string representation of the colour
func (c Colour) String() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	case Green:
		return "green"
	default:
		return "unknown"
	}
}

// ParseColour parses a roulette colour name.
func ParseColour(s string) (Colour, error) {
	switch s {
	case "red":
		return Red, nil
	case "black":
		return Black, nil
	case "green":
		return Green, nil
	}
	return Red, fmt.Errorf("invalid colour %q", s)
}

const (
	greenShare      = 0.068
	colourMultiplier = 2
	greenMultiplier = 14
)

// RouletteWheel is a simplified colour wheel: red and black split what
// green leaves over.
type RouletteWheel struct {
	Pick Colour

	mu  sync.Mutex
	src randutil.Source
}

// NewRouletteWheel creates a wheel that always bets on pick
func NewRouletteWheel(src randutil.Source, pick Colour) *RouletteWheel {
	return &RouletteWheel{Pick: pick, src: src}
}

// Play spins the wheel once
func (w *RouletteWheel) Play(ctx context.Context, stake Stake) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	w.mu.Lock()
	r := w.src.Float64()
	w.mu.Unlock()

	landed := Black
	switch {
	case r < greenShare:
		landed = Green
	case r < greenShare+(1-greenShare)/2:
		landed = Red
	}

	rep := Report{Detail: fmt.Sprintf("ball landed on %s", landed)}
	if landed == w.Pick {
		rep.Win = true
		rep.Multiplier = decimal.NewFromInt(colourMultiplier)
		if landed == Green {
			rep.Multiplier = decimal.NewFromInt(greenMultiplier)
		}
	}
	return rep, nil
}

// CountSign is a guess about the Hi-Lo running count.
type CountSign int

const (
	CountNegative CountSign = -1
	CountZero     CountSign = 0
	CountPositive CountSign = 1
)

// String returns the string representation of the sign
func (s CountSign) String() string {
	switch {
	case s < 0:
		return "negative"
	case s > 0:
		return "positive"
	default:
		return "zero"
	}
}

// ParseCountSign parses "positive", "negative" or "zero" (or +, -, 0).
func ParseCountSign(s string) (CountSign, error) {
	switch s {
	case "positive", "+":
		return CountPositive, nil
	case "negative", "-":
		return CountNegative, nil
	case "zero", "0":
		return CountZero, nil
	}
	return CountZero, fmt.Errorf("invalid count sign %q", s)
}

// DefaultCountingCards is how many cards HiLoCounter deals per round.
const DefaultCountingCards = 10

// HiLoCounter deals a run of cards and pays when the guess matches the
// sign of the Hi-Lo running count.
type HiLoCounter struct {
	Guess CountSign
	Cards int

	mu  sync.Mutex
	src randutil.Source
}

// NewHiLoCounter creates a counter that always makes the same guess
func NewHiLoCounter(src randutil.Source, guess CountSign) *HiLoCounter {
	return &HiLoCounter{Guess: guess, Cards: DefaultCountingCards, src: src}
}

// HiLoValue is the Hi-Lo tag of a card: low cards +1, tens and aces -1.
func HiLoValue(c poker.Card) int {
	switch {
	case c.Rank <= poker.Six:
		return 1
	case c.Rank >= poker.Ten:
		return -1
	default:
		return 0
	}
}

// RunningCount sums the Hi-Lo tags of cards
func RunningCount(cards []poker.Card) int {
	count := 0
	for _, c := range cards {
		count += HiLoValue(c)
	}
	return count
}

// Play deals the run and scores the guess
func (h *HiLoCounter) Play(ctx context.Context, stake Stake) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	n := h.Cards
	if n <= 0 || n > 52 {
		n = DefaultCountingCards
	}

	h.mu.Lock()
	cards := poker.NewShuffledDeck(h.src).Deal(n)
	h.mu.Unlock()

	count := RunningCount(cards)
	sign := CountZero
	if count > 0 {
		sign = CountPositive
	} else if count < 0 {
		sign = CountNegative
	}

	rep := Report{Detail: fmt.Sprintf("%s: running count %+d", poker.FormatCards(cards), count)}
	if sign == h.Guess {
		rep.Win = true
		rep.Multiplier = decimal.NewFromInt(1)
		if sign == CountZero {
			rep.Multiplier = decimal.NewFromInt(3)
		}
	}
	return rep, nil
}
