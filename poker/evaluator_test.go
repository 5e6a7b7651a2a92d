package poker

import (
	"testing"

	ph "github.com/paulhankin/poker"
	"github.com/shopspring/decimal"

	"github.com/GhostOf0days/casino/internal/randutil"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hand string
		want Category
		mult string
	}{
		{"10♠ J♠ Q♠ K♠ A♠", RoyalFlush, "100"},
		{"9h Th Jh Qh Kh", StraightFlush, "50"},
		{"Ad 2d 3d 4d 5d", StraightFlush, "50"},
		{"7s 7h 7d 7c Ks", FourOfAKind, "20"},
		{"Qs Qh Qd 9c 9s", FullHouse, "10"},
		{"2c 7c 9c Jc Kc", Flush, "7"},
		{"5s 6h 7d 8c 9s", Straight, "5"},
		{"As 2h 3d 4c 5s", Straight, "5"},
		{"Ts Jh Qd Kc As", Straight, "5"},
		{"4s 4h 4d Kc 2s", ThreeOfAKind, "3"},
		{"4s 4h 9d 9c 2s", TwoPair, "2"},
		{"2s 2h 9d Jc 5s", Pair, "1"},
		{"2s 5h 9d Jc 7s", HighCardJacks, "0.5"},
		{"2s 5h 9d Tc 7s", HighCard, "0"},
		{"Qs Ks As 2h 3d", HighCardJacks, "0.5"},
	}

	for _, tc := range tests {
		t.Run(tc.hand, func(t *testing.T) {
			t.Parallel()
			got := Classify(MustParseHand(tc.hand))
			if got != tc.want {
				t.Fatalf("Classify(%s) = %s, want %s", tc.hand, got, tc.want)
			}
			if !got.Multiplier().Equal(decimal.RequireFromString(tc.mult)) {
				t.Errorf("multiplier for %s = %s, want %s", got, got.Multiplier(), tc.mult)
			}
		})
	}
}

func TestHighCardIsNotAWin(t *testing.T) {
	t.Parallel()
	if HighCard.Wins() {
		t.Fatal("High Card must settle as a loss")
	}
	if !HighCardJacks.Wins() {
		t.Fatal("High Card (J or better) should pay")
	}
}

func TestCategoriesOrderedByPayout(t *testing.T) {
	t.Parallel()
	for i := 1; i < len(Categories); i++ {
		stronger, weaker := Categories[i-1], Categories[i]
		if stronger <= weaker {
			t.Fatalf("%s should rank above %s", stronger, weaker)
		}
		if !stronger.Multiplier().GreaterThan(weaker.Multiplier()) {
			t.Fatalf("%s should pay more than %s", stronger, weaker)
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	t.Parallel()
	rng := randutil.New(11)
	for i := 0; i < 2000; i++ {
		var hand [5]Card
		copy(hand[:], NewShuffledDeck(rng).Deal(5))
		a, b := Classify(hand), Classify(hand)
		if a != b {
			t.Fatalf("classification of %v not stable: %s vs %s", hand, a, b)
		}
		// permutation must not matter
		hand[0], hand[4] = hand[4], hand[0]
		if c := Classify(hand); c != a {
			t.Fatalf("order changed classification of %v: %s vs %s", hand, a, c)
		}
	}
}

func toOracle(t *testing.T, hand [5]Card) [5]ph.Card {
	t.Helper()
	var out [5]ph.Card
	for i, c := range hand {
		suit := [...]ph.Suit{Spades: ph.Spade, Hearts: ph.Heart, Diamonds: ph.Diamond, Clubs: ph.Club}[c.Suit]
		rank := ph.Rank(c.Rank)
		if c.Rank == Ace {
			rank = 1
		}
		pc, err := ph.MakeCard(suit, rank)
		if err != nil {
			t.Fatalf("oracle card for %s: %v", c, err)
		}
		out[i] = pc
	}
	return out
}

// A stronger category must always beat a weaker one under an independent
// hand evaluator.
func TestClassifyAgreesWithOracleOrdering(t *testing.T) {
	t.Parallel()
	rng := randutil.New(2024)
	const n = 400
	hands := make([][5]Card, 0, n+3)
	for i := 0; i < n; i++ {
		var hand [5]Card
		copy(hand[:], NewShuffledDeck(rng).Deal(5))
		hands = append(hands, hand)
	}
	hands = append(hands,
		MustParseHand("Ts Js Qs Ks As"),
		MustParseHand("Ah 2h 3h 4h 5h"),
		MustParseHand("As 2d 3c 4h 5s"),
	)

	scores := make([]int16, len(hands))
	cats := make([]Category, len(hands))
	for i, h := range hands {
		oh := toOracle(t, h)
		scores[i] = ph.Eval5(&oh)
		cats[i] = Classify(h)
	}
	for i := range hands {
		for j := range hands {
			if cats[i] > cats[j] && scores[i] <= scores[j] {
				t.Fatalf("%v (%s) should outrank %v (%s)", hands[i], cats[i], hands[j], cats[j])
			}
		}
	}
}

func TestSuggestHolds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hand string
		want [5]bool
	}{
		{"5s 6h 7d 8c 9s", [5]bool{true, true, true, true, true}},
		{"2h 7h 9h Jh Kc", [5]bool{true, true, true, true, false}},
		{"Qs Qh 3d 8c 5s", [5]bool{true, true, false, false, false}},
		{"4s 4h 9d 9c 2s", [5]bool{true, true, true, true, false}},
		{"2s 5h 9d Jc Qs", [5]bool{false, false, false, true, true}},
		{"2s 5h 9d 3c 7s", [5]bool{}},
	}
	for _, tc := range tests {
		t.Run(tc.hand, func(t *testing.T) {
			t.Parallel()
			if got := SuggestHolds(MustParseHand(tc.hand)); got != tc.want {
				t.Errorf("SuggestHolds(%s) = %v, want %v", tc.hand, got, tc.want)
			}
		})
	}
	if HoldCount([5]bool{true, false, true, false, false}) != 2 {
		t.Fatal("HoldCount miscounted")
	}
}
