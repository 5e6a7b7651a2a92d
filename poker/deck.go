package poker

// RNG is the randomness a Deck needs. *rand.Rand from math/rand/v2 satisfies it.
type RNG interface {
	IntN(n int) int
}

// Deck represents a standard 52-card deck. Cards are dealt from the front.
type Deck struct {
	cards []Card
	rng   RNG
}

// NewDeck creates an ordered 52-card deck (spades first, two to ace).
// Call Shuffle before dealing.
func NewDeck(rng RNG) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.fill()
	return d
}

// NewShuffledDeck creates a full deck and shuffles it.
func NewShuffledDeck(rng RNG) *Deck {
	d := NewDeck(rng)
	d.Shuffle()
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
}

// Shuffle shuffles the remaining cards using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns n cards. It returns nil if fewer than n remain.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || n > len(d.cards) {
		return nil
	}
	out := make([]Card, n)
	copy(out, d.cards[:n])
	d.cards = d.cards[n:]
	return out
}

// DealOne removes and returns the top card.
func (d *Deck) DealOne() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// Remove takes the given cards out of the deck, wherever they are.
// Cards not present are ignored.
func (d *Deck) Remove(cards ...Card) {
	if len(cards) == 0 {
		return
	}
	kept := d.cards[:0]
	for _, c := range d.cards {
		drop := false
		for _, r := range cards {
			if c == r {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, c)
		}
	}
	d.cards = kept
}

// Contains reports whether the card is still in the deck.
func (d *Deck) Contains(c Card) bool {
	for _, dc := range d.cards {
		if dc == c {
			return true
		}
	}
	return false
}

// Reset restores all 52 cards and shuffles them
func (d *Deck) Reset() {
	d.fill()
	d.Shuffle()
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}
