package game

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Result is the win/lose verdict of a resolved round.
type Result uint8

const (
	ResultNone Result = iota
	Win
	Lose
)

// String returns the string representation of the result
func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Outcome is a resolved round waiting to be settled. The ID makes
// settlement idempotent.
type Outcome struct {
	ID         uuid.UUID       `json:"id"`
	Variant    Variant         `json:"variant"`
	Bet        int             `json:"bet"`
	Result     Result          `json:"result"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Label      string          `json:"label,omitempty"`
}

// NewOutcome creates an outcome with a fresh ID
func NewOutcome(v Variant, bet int, result Result, multiplier decimal.Decimal, label string) Outcome {
	return Outcome{
		ID:         uuid.New(),
		Variant:    v,
		Bet:        bet,
		Result:     result,
		Multiplier: multiplier,
		Label:      label,
	}
}

// Pays reports whether the outcome credits the player. A win with a zero
// multiplier is settled as a loss.
func (o Outcome) Pays() bool {
	return o.Result == Win && o.Multiplier.IsPositive()
}

// Opponent describes who the player is up against. Only the House is
// defined; its modifier scales every payout.
type Opponent struct {
	Name        string
	Difficulty  string
	Description string
	WinChance   float64
	Modifier    decimal.Decimal
}

// House is the single opponent.
var House = Opponent{
	Name:        "House",
	Difficulty:  "Hard",
	Description: "The house always wins. Play at your own risk.",
	WinChance:   0.25,
	Modifier:    decimal.New(7, -1),
}
