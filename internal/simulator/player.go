package simulator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/GhostOf0days/casino/internal/game"
	"github.com/GhostOf0days/casino/poker"
)

// maxReveals bounds a Memory Match round; a board takes at most 16.
const maxReveals = 64

// player drives one round of a variant to its Result. The session is
// already in Playing.
type player interface {
	play(ctx context.Context, s *game.Session) error
}

func newPlayer(v game.Variant) (player, error) {
	switch v {
	case game.VariantHigherLower:
		return higherLowerPlayer{}, nil
	case game.VariantCoinFlip:
		return coinFlipPlayer{}, nil
	case game.VariantSlots:
		return slotsPlayer{}, nil
	case game.VariantPoker:
		return pokerPlayer{}, nil
	case game.VariantMemoryMatch:
		return &memoryPlayer{}, nil
	case game.VariantCardCounting, game.VariantRoulette:
		return delegatePlayer{}, nil
	}
	return nil, fmt.Errorf("no autoplayer for %s", v)
}

// higherLowerPlayer calls away from the middle of the deck
type higherLowerPlayer struct{}

func (higherLowerPlayer) play(_ context.Context, s *game.Session) error {
	view := s.Snapshot().HigherLower
	if view == nil {
		return errors.New("higher/lower: no card dealt")
	}
	card := poker.MustParseCard(view.PlayerCard)
	if card.Rank <= poker.Eight {
		return s.Predict(game.Higher)
	}
	return s.Predict(game.Lower)
}

type coinFlipPlayer struct{}

func (coinFlipPlayer) play(_ context.Context, s *game.Session) error {
	return s.Choose(game.Heads)
}

type slotsPlayer struct{}

func (slotsPlayer) play(_ context.Context, s *game.Session) error {
	return s.Spin()
}

// pokerPlayer holds what poker.SuggestHolds keeps and draws
type pokerPlayer struct{}

func (pokerPlayer) play(_ context.Context, s *game.Session) error {
	view := s.Snapshot().Poker
	if view == nil {
		return errors.New("poker: no hand dealt")
	}
	var hand [5]poker.Card
	copy(hand[:], game.Cards(view.Hand))

	for i, hold := range poker.SuggestHolds(hand) {
		if hold {
			if err := s.ToggleHold(i); err != nil {
				return err
			}
		}
	}
	return s.Draw()
}

type delegatePlayer struct{}

func (delegatePlayer) play(ctx context.Context, s *game.Session) error {
	return s.Delegate(ctx)
}

// memoryPlayer never forgets a card it has seen, including the ones the
// House turns over.
type memoryPlayer struct {
	mu    sync.Mutex
	known map[int]string
}

func (p *memoryPlayer) observe(e game.Event) {
	view := e.Snapshot().Memory
	if view == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, c := range view.Cards {
		if c != "" {
			p.known[i] = c
		}
	}
}

func (p *memoryPlayer) play(_ context.Context, s *game.Session) error {
	p.mu.Lock()
	p.known = make(map[int]string)
	p.mu.Unlock()

	unsubscribe := s.Subscribe(game.SubscriberFunc(p.observe))
	defer unsubscribe()

	for n := 0; n < maxReveals; n++ {
		snap := s.Snapshot()
		if snap.State != game.StatePlaying {
			return nil
		}
		pos, ok := p.next(snap.Memory)
		if !ok {
			return errors.New("memory: no hidden card to reveal")
		}
		if err := s.Reveal(pos); err != nil {
			return err
		}
	}
	return fmt.Errorf("memory: round not finished after %d reveals", maxReveals)
}

// next picks the position to reveal: the partner of a face-up first card,
// then a known hidden pair, then an unseen card.
func (p *memoryPlayer) next(view *game.MemoryView) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	hidden := func(i int) bool { return !view.Revealed[i] }

	if first := view.Selected; first >= 0 {
		want := p.known[first]
		for i := range view.Revealed {
			if i != first && hidden(i) && p.known[i] == want {
				return i, true
			}
		}
		for i := range view.Revealed {
			if hidden(i) && p.known[i] == "" {
				return i, true
			}
		}
		for i := range view.Revealed {
			if hidden(i) {
				return i, true
			}
		}
		return 0, false
	}

	seen := make(map[string]int)
	for i := range view.Revealed {
		c, ok := p.known[i]
		if !ok || !hidden(i) {
			continue
		}
		if _, dup := seen[c]; dup {
			return seen[c], true
		}
		seen[c] = i
	}
	for i := range view.Revealed {
		if _, ok := p.known[i]; !ok && hidden(i) {
			return i, true
		}
	}
	for i := range view.Revealed {
		if hidden(i) {
			return i, true
		}
	}
	return 0, false
}
