package poker

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Category is the payout class of a five-card hand, ordered from weakest
// to strongest. Exactly one category applies to any five cards.
type Category uint8

const (
	HighCard Category = iota
	HighCardJacks
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// Categories lists every category from strongest to weakest, the order in
// which Classify tests them.
var Categories = [...]Category{
	RoyalFlush,
	StraightFlush,
	FourOfAKind,
	FullHouse,
	Flush,
	Straight,
	ThreeOfAKind,
	TwoPair,
	Pair,
	HighCardJacks,
	HighCard,
}

var categoryNames = [...]string{
	HighCard:      "High Card",
	HighCardJacks: "High Card (J or better)",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

var payouts = [...]decimal.Decimal{
	HighCard:      decimal.Zero,
	HighCardJacks: decimal.New(5, -1),
	Pair:          decimal.NewFromInt(1),
	TwoPair:       decimal.NewFromInt(2),
	ThreeOfAKind:  decimal.NewFromInt(3),
	Straight:      decimal.NewFromInt(5),
	Flush:         decimal.NewFromInt(7),
	FullHouse:     decimal.NewFromInt(10),
	FourOfAKind:   decimal.NewFromInt(20),
	StraightFlush: decimal.NewFromInt(50),
	RoyalFlush:    decimal.NewFromInt(100),
}

// String returns a human-readable category name
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "Unknown"
}

// Multiplier returns the bet multiplier paid for the category. High Card
// pays zero and is settled as a loss.
func (c Category) Multiplier() decimal.Decimal {
	if int(c) < len(payouts) {
		return payouts[c]
	}
	return decimal.Zero
}

// Wins reports whether the category pays anything.
func (c Category) Wins() bool {
	return c.Multiplier().IsPositive()
}

// Classify returns the category of five distinct cards.
func Classify(hand [5]Card) Category {
	var counts [Ace + 1]uint8
	flush := true
	for i, c := range hand {
		counts[c.Rank]++
		if i > 0 && c.Suit != hand[0].Suit {
			flush = false
		}
	}

	// rank multiplicities, largest first
	freq := make([]int, 0, 5)
	for _, r := range Ranks {
		if counts[r] > 0 {
			freq = append(freq, int(counts[r]))
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(freq)))

	high, straight := straightHigh(counts)

	switch {
	case flush && straight && high == Ace:
		return RoyalFlush
	case flush && straight:
		return StraightFlush
	case freq[0] == 4:
		return FourOfAKind
	case freq[0] == 3 && freq[1] == 2:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case freq[0] == 3:
		return ThreeOfAKind
	case freq[0] == 2 && freq[1] == 2:
		return TwoPair
	case freq[0] == 2:
		return Pair
	}

	if highestRank(counts) >= Jack {
		return HighCardJacks
	}
	return HighCard
}

// straightHigh reports whether the ranks form five consecutive values and
// the top card of the run. The wheel (A-2-3-4-5) is a five-high straight.
func straightHigh(counts [Ace + 1]uint8) (Rank, bool) {
	for _, r := range Ranks {
		if counts[r] > 1 {
			return 0, false
		}
	}
	for top := Ace; top >= Six; top-- {
		run := true
		for r := top - 4; r <= top; r++ {
			if counts[r] == 0 {
				run = false
				break
			}
		}
		if run {
			return top, true
		}
	}
	if counts[Ace] == 1 && counts[Two] == 1 && counts[Three] == 1 && counts[Four] == 1 && counts[Five] == 1 {
		return Five, true
	}
	return 0, false
}

func highestRank(counts [Ace + 1]uint8) Rank {
	for r := Ace; r >= Two; r-- {
		if counts[r] > 0 {
			return r
		}
	}
	return 0
}
