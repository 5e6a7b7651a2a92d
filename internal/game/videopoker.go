package game

import (
	"github.com/GhostOf0days/casino/internal/randutil"
	"github.com/GhostOf0days/casino/poker"
)

// PokerStage is the progress of a draw poker round.
type PokerStage uint8

const (
	PokerInitial PokerStage = iota
	PokerDrawn
)

// String returns the string representation of the stage
func (s PokerStage) String() string {
	if s == PokerDrawn {
		return "drawn"
	}
	return "initial"
}

// MarshalText implements encoding.TextMarshaler
func (s PokerStage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

const handSize = 5

// pokerRound is a single five-card draw hand.
type pokerRound struct {
	deck     *poker.Deck
	hand     [handSize]poker.Card
	held     [handSize]bool
	stage    PokerStage
	category poker.Category
}

func dealPokerRound(src randutil.Source) *pokerRound {
	r := &pokerRound{deck: poker.NewShuffledDeck(src)}
	copy(r.hand[:], r.deck.Deal(handSize))
	return r
}

// toggle flips the hold flag of one card
func (r *pokerRound) toggle(i int) {
	r.held[i] = !r.held[i]
}

// draw replaces every unheld card from the rest of the deck and classifies
// the final hand.
func (r *pokerRound) draw() poker.Category {
	for i := range r.hand {
		if r.held[i] {
			continue
		}
		c, ok := r.deck.DealOne()
		if !ok {
			panic("game: poker deck exhausted")
		}
		r.hand[i] = c
	}
	r.stage = PokerDrawn
	r.category = poker.Classify(r.hand)
	return r.category
}
