package game

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		bet        int
		multiplier decimal.Decimal
		want       int
	}{
		{"royal flush", 100, decimal.NewFromInt(100), 7000},
		{"even money", 50, decimal.NewFromInt(1), 35},
		{"floored half", 50, decimal.New(5, -1), 17},
		{"gem", 50, decimal.NewFromInt(5), 175},
		{"smallest bet", 10, decimal.New(5, -1), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Payout(tt.bet, tt.multiplier, House.Modifier))
		})
	}
}

func TestLedgerSettleIsIdempotent(t *testing.T) {
	t.Parallel()

	l := NewLedger(1000, House.Modifier)
	o := NewOutcome(VariantPoker, 100, Win, decimal.NewFromInt(100), "Royal Flush")

	st, err := l.Settle(o)
	require.NoError(t, err)
	assert.Equal(t, 7000, st.Delta)
	assert.Equal(t, 8000, l.Balance())
	assert.Equal(t, "Congratulations! You won 7000 tokens (100x multiplier!)!", st.Notice.Message)
	assert.Equal(t, SeveritySuccess, st.Notice.Severity)

	again, err := l.Settle(o)
	require.ErrorIs(t, err, ErrAlreadySettled)
	assert.Equal(t, st, again)
	assert.Equal(t, 8000, l.Balance())
}

func TestLedgerSettleLoss(t *testing.T) {
	t.Parallel()

	l := NewLedger(500, House.Modifier)
	st, err := l.Settle(NewOutcome(VariantCoinFlip, 50, Lose, decimal.Zero, ""))
	require.NoError(t, err)
	assert.Equal(t, -50, st.Delta)
	assert.Equal(t, 450, l.Balance())
	assert.Equal(t, "You lost 50 tokens!", st.Notice.Message)
	assert.Equal(t, SeverityError, st.Notice.Severity)
}

func TestLedgerZeroMultiplierWinIsLoss(t *testing.T) {
	t.Parallel()

	l := NewLedger(500, House.Modifier)
	st, err := l.Settle(NewOutcome(VariantPoker, 20, Win, decimal.Zero, "High Card"))
	require.NoError(t, err)
	assert.Equal(t, -20, st.Delta)
}

func TestLedgerEvenMoneyMessageHasNoSuffix(t *testing.T) {
	t.Parallel()

	l := NewLedger(500, House.Modifier)
	st, err := l.Settle(NewOutcome(VariantHigherLower, 100, Win, decimal.NewFromInt(1), ""))
	require.NoError(t, err)
	assert.Equal(t, "Congratulations! You won 70 tokens!", st.Notice.Message)
}
