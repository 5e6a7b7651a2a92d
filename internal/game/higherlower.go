package game

import (
	"fmt"

	"github.com/GhostOf0days/casino/internal/randutil"
	"github.com/GhostOf0days/casino/poker"
)

// Prediction is the player's call in Higher or Lower.
type Prediction uint8

const (
	PredictNone Prediction = iota
	Higher
	Lower
)

// String returns the string representation of the prediction
func (p Prediction) String() string {
	switch p {
	case Higher:
		return "higher"
	case Lower:
		return "lower"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler
func (p Prediction) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ParsePrediction parses "higher"/"h" or "lower"/"l".
func ParsePrediction(s string) (Prediction, error) {
	switch s {
	case "higher", "h", "hi":
		return Higher, nil
	case "lower", "l", "lo":
		return Lower, nil
	}
	return PredictNone, fmt.Errorf("invalid prediction %q", s)
}

const (
	minCardValue = int(poker.Two)
	maxCardValue = int(poker.Ace)
)

// higherLowerRound is the variant state while Higher or Lower is in play.
type higherLowerRound struct {
	player     poker.Card
	opponent   poker.Card
	prediction Prediction
	resolved   bool
}

func dealPlayerCard(src randutil.Source) poker.Card {
	return poker.NewCard(randutil.Pick(src, poker.Ranks[:]), randutil.Pick(src, poker.Suits[:]))
}

// wins reports whether the opponent value satisfies the prediction. Ties lose.
func wins(p Prediction, playerValue, opponentValue int) bool {
	if p == Higher {
		return opponentValue > playerValue
	}
	return opponentValue < playerValue
}

// resolveHigherLower samples the result first, then projects an opponent
// card consistent with it.
func resolveHigherLower(src randutil.Source, winChance float64, player poker.Card, p Prediction) (Result, poker.Card) {
	result := Lose
	if randutil.Chance(src, winChance) {
		result = Win
	}
	value, result := projectOpponentValue(src, result, p, player.Value())

	suits := poker.Suits[:]
	if value == player.Value() {
		// never show the player's own card back to them
		suits = make([]poker.Suit, 0, 3)
		for _, s := range poker.Suits {
			if s != player.Suit {
				suits = append(suits, s)
			}
		}
	}
	return result, poker.NewCard(poker.Rank(value), randutil.Pick(src, suits))
}

// projectOpponentValue picks a card value consistent with (result,
// prediction). When no value can realise the sampled result it flips the
// result and steps 1-3 values to the other side, clamped to the deck.
func projectOpponentValue(src randutil.Source, result Result, p Prediction, playerValue int) (int, Result) {
	candidates := make([]int, 0, len(poker.Ranks))
	for _, r := range poker.Ranks {
		v := int(r)
		if wins(p, playerValue, v) == (result == Win) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) > 0 {
		return randutil.Pick(src, candidates), result
	}

	step := 1 + src.IntN(3)
	// moving against the prediction loses, moving with it wins
	against := playerValue - step
	with := playerValue + step
	if p == Lower {
		against, with = with, against
	}
	if result == Win {
		return clampValue(against), Lose
	}
	return clampValue(with), Win
}

func clampValue(v int) int {
	return max(minCardValue, min(maxCardValue, v))
}
