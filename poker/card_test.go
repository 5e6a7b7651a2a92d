package poker

import "testing"

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    Card
		wantErr bool
	}{
		{name: "ace of spades letter", input: "As", want: NewCard(Ace, Spades)},
		{name: "ten with T", input: "Th", want: NewCard(Ten, Hearts)},
		{name: "ten with 10", input: "10h", want: NewCard(Ten, Hearts)},
		{name: "suit symbol", input: "Q♣", want: NewCard(Queen, Clubs)},
		{name: "lower case", input: "kd", want: NewCard(King, Diamonds)},
		{name: "two of diamonds symbol", input: "2♦", want: NewCard(Two, Diamonds)},
		{name: "invalid rank", input: "Xs", wantErr: true},
		{name: "invalid suit", input: "Ax", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "too long", input: "10hh", wantErr: true},
		{name: "rank one", input: "1s", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCard(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseCard(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("ParseCard(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestAll52CardsRoundTrip(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for _, s := range Suits {
		for _, r := range Ranks {
			c := NewCard(r, s)
			str := c.String()
			if seen[str] {
				t.Errorf("duplicate card string %s", str)
			}
			seen[str] = true

			parsed, err := ParseCard(str)
			if err != nil {
				t.Fatalf("failed to parse %s: %v", str, err)
			}
			if parsed != c {
				t.Errorf("round trip failed for %s", str)
			}
		}
	}
	if len(seen) != 52 {
		t.Errorf("expected 52 unique cards, got %d", len(seen))
	}
}

func TestRankOrder(t *testing.T) {
	t.Parallel()
	for i := 1; i < len(Ranks); i++ {
		if Ranks[i-1] >= Ranks[i] {
			t.Fatalf("ranks out of order at %d: %v >= %v", i, Ranks[i-1], Ranks[i])
		}
	}
	if NewCard(Ace, Clubs).Value() != 14 || NewCard(Two, Clubs).Value() != 2 {
		t.Fatalf("unexpected card values")
	}
}

func TestParseHandRejectsDuplicates(t *testing.T) {
	t.Parallel()
	if _, err := ParseHand("As As Kd Qc Jh"); err == nil {
		t.Fatal("expected duplicate card error")
	}
	if _, err := ParseHand("As Kd Qc"); err == nil {
		t.Fatal("expected short hand error")
	}
	h, err := ParseHand("10♠, J♠, Q♠, K♠, A♠")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h[0] != NewCard(Ten, Spades) || h[4] != NewCard(Ace, Spades) {
		t.Fatalf("unexpected hand %v", h)
	}
}

func TestMustParseCardPanicsWithLabel(t *testing.T) {
	t.Parallel()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		msg, ok := r.(string)
		if !ok || len(msg) < 6 || msg[:6] != "poker:" {
			t.Fatalf("panic should carry a poker: label, got %v", r)
		}
	}()
	MustParseCard("invalid")
}
