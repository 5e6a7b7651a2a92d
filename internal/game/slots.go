package game

import (
	"github.com/shopspring/decimal"

	"github.com/GhostOf0days/casino/internal/randutil"
)

// Symbol is a slot reel symbol
type Symbol string

const (
	Cherry Symbol = "🍒"
	Lemon  Symbol = "🍋"
	Seven  Symbol = "7️⃣"
	Orange Symbol = "🍊"
	Gem    Symbol = "💎"
)

// Symbols lists every reel symbol.
var Symbols = []Symbol{Cherry, Lemon, Seven, Orange, Gem}

// plain symbols pay the standard triple; sevens and gems have their own tiers
var plainSymbols = []Symbol{Cherry, Lemon, Orange}

const (
	slotWinChance = 0.15
	gemShare      = 0.03 // of wins
	sevenShare    = 0.10 // of wins
	nearMissRate  = 0.4  // of losses
)

// Reels is the visible result of a spin
type Reels [3]Symbol

type slotsRound struct {
	reels    Reels
	label    string
	resolved bool
}

type spin struct {
	result     Result
	reels      Reels
	multiplier decimal.Decimal
	label      string
}

// resolveSlots partitions a single uniform draw: the lowest slice of the
// win band is the gem jackpot, the next the triple seven, the rest a plain
// triple. Losses show non-matching reels, sometimes as a near miss.
func resolveSlots(src randutil.Source) spin {
	r := src.Float64()
	switch {
	case r < slotWinChance*gemShare:
		return spin{Win, Reels{Gem, Gem, Gem}, decimal.NewFromInt(5), "Diamond jackpot"}
	case r < slotWinChance*(gemShare+sevenShare):
		return spin{Win, Reels{Seven, Seven, Seven}, decimal.NewFromInt(3), "Triple seven"}
	case r < slotWinChance:
		s := randutil.Pick(src, plainSymbols)
		return spin{Win, Reels{s, s, s}, decimal.NewFromInt(2), "Three of a kind"}
	}
	return spin{Lose, losingReels(src), decimal.Zero, ""}
}

func losingReels(src randutil.Source) Reels {
	a := randutil.Pick(src, Symbols)
	b := randutil.Pick(src, without(Symbols, a))
	if randutil.Chance(src, nearMissRate) {
		return Reels{a, b, a}
	}
	return Reels{a, b, randutil.Pick(src, without(Symbols, a, b))}
}

func without(symbols []Symbol, drop ...Symbol) []Symbol {
	out := make([]Symbol, 0, len(symbols))
	for _, s := range symbols {
		keep := true
		for _, d := range drop {
			if s == d {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, s)
		}
	}
	return out
}

// IsWin reports whether all three reels match
func (r Reels) IsWin() bool {
	return r[0] == r[1] && r[1] == r[2]
}

// IsNearMiss reports whether exactly two reels match
func (r Reels) IsNearMiss() bool {
	return !r.IsWin() && (r[0] == r[1] || r[1] == r[2] || r[0] == r[2])
}
