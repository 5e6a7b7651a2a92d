package game

import (
	"github.com/GhostOf0days/casino/internal/randutil"
	"github.com/GhostOf0days/casino/poker"
)

const (
	boardPairs          = 4
	boardSize           = boardPairs * 2
	opponentMatchChance = 0.7
	noPosition          = -1
)

// memoryBoard is the Memory Match table: four cards, each placed twice.
type memoryBoard struct {
	cards    [boardSize]poker.Card
	revealed [boardSize]bool
	first    int // position of the unmatched card turned this round
	pending  bool
}

func newMemoryBoard(src randutil.Source) *memoryBoard {
	picked := poker.NewShuffledDeck(src).Deal(boardPairs)

	b := &memoryBoard{first: noPosition}
	for i, c := range picked {
		b.cards[i] = c
		b.cards[i+boardPairs] = c
	}
	for i := boardSize - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		b.cards[i], b.cards[j] = b.cards[j], b.cards[i]
	}
	return b
}

// complete reports whether every position is face up.
func (b *memoryBoard) complete() bool {
	for _, r := range b.revealed {
		if !r {
			return false
		}
	}
	return true
}

// hiddenPairs returns the position pairs whose cards are both face down.
func (b *memoryBoard) hiddenPairs() [][2]int {
	var pairs [][2]int
	for i := 0; i < boardSize; i++ {
		if b.revealed[i] {
			continue
		}
		for j := i + 1; j < boardSize; j++ {
			if !b.revealed[j] && b.cards[i] == b.cards[j] {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// hide turns the given positions face down again
func (b *memoryBoard) hide(positions ...int) {
	for _, p := range positions {
		b.revealed[p] = false
	}
}

// opponentTurn decides whether the House finds a pair this round and which.
func (b *memoryBoard) opponentTurn(src randutil.Source, chance float64) ([2]int, bool) {
	if !randutil.Chance(src, chance) {
		return [2]int{}, false
	}
	pairs := b.hiddenPairs()
	if len(pairs) == 0 {
		return [2]int{}, false
	}
	return randutil.Pick(src, pairs), true
}
