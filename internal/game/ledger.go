package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Severity classifies a notice for display
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notice is a user-facing message.
type Notice struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Settlement records how an outcome changed the balance.
type Settlement struct {
	OutcomeID uuid.UUID `json:"outcomeId"`
	Delta     int       `json:"delta"`
	Before    int       `json:"before"`
	After     int       `json:"after"`
	Notice    Notice    `json:"notice"`
}

// Ledger owns the balance. Every outcome is applied at most once.
type Ledger struct {
	balance  int
	modifier decimal.Decimal
	settled  map[uuid.UUID]Settlement
}

// NewLedger creates a ledger with a starting balance and the opponent's
// payout modifier.
func NewLedger(balance int, modifier decimal.Decimal) *Ledger {
	return &Ledger{
		balance:  balance,
		modifier: modifier,
		settled:  make(map[uuid.UUID]Settlement),
	}
}

// Balance returns the current balance
func (l *Ledger) Balance() int {
	return l.balance
}

// Payout returns floor(bet * multiplier * modifier).
func Payout(bet int, multiplier, modifier decimal.Decimal) int {
	return int(decimal.NewFromInt(int64(bet)).Mul(multiplier).Mul(modifier).Floor().IntPart())
}

// Settle applies the outcome to the balance. Replaying an outcome returns
// the original settlement with ErrAlreadySettled and changes nothing.
func (l *Ledger) Settle(o Outcome) (Settlement, error) {
	if prev, ok := l.settled[o.ID]; ok {
		return prev, fmt.Errorf("settle %s: %w", o.ID, ErrAlreadySettled)
	}

	st := Settlement{OutcomeID: o.ID, Before: l.balance}
	if o.Pays() {
		st.Delta = Payout(o.Bet, o.Multiplier, l.modifier)
		suffix := ""
		if o.Multiplier.GreaterThan(decimal.NewFromInt(1)) {
			suffix = fmt.Sprintf(" (%sx multiplier!)", o.Multiplier.String())
		}
		st.Notice = Notice{
			Severity: SeveritySuccess,
			Message:  fmt.Sprintf("Congratulations! You won %d tokens%s!", st.Delta, suffix),
		}
	} else {
		st.Delta = -o.Bet
		st.Notice = Notice{
			Severity: SeverityError,
			Message:  fmt.Sprintf("You lost %d tokens!", o.Bet),
		}
	}

	l.balance += st.Delta
	st.After = l.balance
	l.settled[o.ID] = st
	return st, nil
}
