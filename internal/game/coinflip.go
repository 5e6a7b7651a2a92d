package game

import (
	"fmt"

	"github.com/GhostOf0days/casino/internal/randutil"
)

// Side is a face of the coin.
type Side uint8

const (
	SideNone Side = iota
	Heads
	Tails
)

// String returns the string representation of the side
func (s Side) String() string {
	switch s {
	case Heads:
		return "heads"
	case Tails:
		return "tails"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Opposite returns the other face
func (s Side) Opposite() Side {
	if s == Heads {
		return Tails
	}
	return Heads
}

// ParseSide parses "heads"/"h" or "tails"/"t".
func ParseSide(s string) (Side, error) {
	switch s {
	case "heads", "h":
		return Heads, nil
	case "tails", "t":
		return Tails, nil
	}
	return SideNone, fmt.Errorf("invalid coin side %q", s)
}

const coinWinChance = 0.25

type coinFlipRound struct {
	choice   Side
	landed   Side
	resolved bool
}

// resolveCoinFlip samples the result, then shows the face that realises it.
func resolveCoinFlip(src randutil.Source, choice Side) (Result, Side) {
	if randutil.Chance(src, coinWinChance) {
		return Win, choice
	}
	return Lose, choice.Opposite()
}
