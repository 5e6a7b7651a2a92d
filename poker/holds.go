package poker

// SuggestHolds returns a simple hold pattern for a dealt hand, used by the
// simulator's autoplayer and the TUI "hint" command.
// Rules, first match wins: keep any made hand of Straight or better; keep
// four cards to a flush; keep every card that is part of a pair, trips or
// quads; otherwise keep the Jack-or-better cards.
func SuggestHolds(hand [5]Card) [5]bool {
	var holds [5]bool

	if Classify(hand) >= Straight {
		return [5]bool{true, true, true, true, true}
	}

	var suitCount [4]int
	for _, c := range hand {
		suitCount[c.Suit]++
	}
	for s, n := range suitCount {
		if n == 4 {
			for i, c := range hand {
				holds[i] = c.Suit == Suit(s)
			}
			return holds
		}
	}

	var counts [Ace + 1]int
	for _, c := range hand {
		counts[c.Rank]++
	}
	paired := false
	for i, c := range hand {
		if counts[c.Rank] >= 2 {
			holds[i] = true
			paired = true
		}
	}
	if paired {
		return holds
	}

	for i, c := range hand {
		holds[i] = c.Rank >= Jack
	}
	return holds
}

// HoldCount returns how many cards a hold pattern keeps.
func HoldCount(holds [5]bool) int {
	n := 0
	for _, h := range holds {
		if h {
			n++
		}
	}
	return n
}
