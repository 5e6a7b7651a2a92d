package poker

import (
	"testing"

	"github.com/GhostOf0days/casino/internal/randutil"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	t.Parallel()
	d := NewShuffledDeck(randutil.New(1))
	if d.CardsRemaining() != 52 {
		t.Fatalf("expected 52 cards, got %d", d.CardsRemaining())
	}
	seen := make(map[Card]bool)
	for _, c := range d.Deal(52) {
		if seen[c] {
			t.Fatalf("duplicate card %s", c)
		}
		seen[c] = true
	}
	if d.CardsRemaining() != 0 {
		t.Fatalf("deck should be empty")
	}
	if _, ok := d.DealOne(); ok {
		t.Fatal("DealOne on empty deck should fail")
	}
}

func TestDealWithoutReplacement(t *testing.T) {
	t.Parallel()
	d := NewShuffledDeck(randutil.New(2))
	hand := d.Deal(5)
	if len(hand) != 5 {
		t.Fatalf("expected 5 cards, got %d", len(hand))
	}
	if d.CardsRemaining() != 47 {
		t.Fatalf("expected 47 remaining, got %d", d.CardsRemaining())
	}
	for _, c := range hand {
		if d.Contains(c) {
			t.Fatalf("dealt card %s still in deck", c)
		}
	}
	if d.Deal(48) != nil {
		t.Fatal("over-dealing should return nil")
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(3))
	as := MustParseCard("As")
	kd := MustParseCard("Kd")
	d.Remove(as, kd, as)
	if d.CardsRemaining() != 50 {
		t.Fatalf("expected 50 remaining, got %d", d.CardsRemaining())
	}
	if d.Contains(as) || d.Contains(kd) {
		t.Fatal("removed cards still present")
	}
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()
	a := NewShuffledDeck(randutil.New(99)).Deal(52)
	b := NewShuffledDeck(randutil.New(99)).Deal(52)
	c := NewShuffledDeck(randutil.New(100)).Deal(52)
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different order at %d", i)
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical order")
	}
}

func TestShuffleIsRoughlyUniform(t *testing.T) {
	t.Parallel()
	rng := randutil.New(5)
	const trials = 26000
	var top [52]int
	for i := 0; i < trials; i++ {
		d := NewShuffledDeck(rng)
		c, _ := d.DealOne()
		top[int(c.Suit)*13+int(c.Rank-Two)]++
	}
	// expected 500 per card; allow a generous band
	for i, n := range top {
		if n < 350 || n > 650 {
			t.Errorf("card %d appeared on top %d times", i, n)
		}
	}
}

func TestResetRestoresFullDeck(t *testing.T) {
	t.Parallel()
	d := NewShuffledDeck(randutil.New(4))
	d.Deal(20)
	d.Reset()
	if d.CardsRemaining() != 52 {
		t.Fatalf("expected 52 after reset, got %d", d.CardsRemaining())
	}
}
