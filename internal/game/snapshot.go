package game

import "github.com/GhostOf0days/casino/poker"

// Snapshot is a copy of the session for display. Cards are rendered as
// strings and face-down cards are empty.
type Snapshot struct {
	ID        string   `json:"id"`
	State     State    `json:"state"`
	Variant   Variant  `json:"variant"`
	Balance   int      `json:"balance"`
	Bet       int      `json:"bet"`
	ActiveBet int      `json:"activeBet,omitempty"`
	MinBet    int      `json:"minBet"`
	MaxBet    int      `json:"maxBet"`
	Busy      bool     `json:"busy"`
	Insanity  bool     `json:"insanity,omitempty"`
	Opponent  string   `json:"opponent"`
	Last      *Outcome `json:"last,omitempty"`
	Notice    *Notice  `json:"notice,omitempty"`

	HigherLower *HigherLowerView `json:"higherLower,omitempty"`
	Memory      *MemoryView      `json:"memory,omitempty"`
	CoinFlip    *CoinFlipView    `json:"coinFlip,omitempty"`
	Slots       *SlotsView       `json:"slots,omitempty"`
	Poker       *PokerView       `json:"poker,omitempty"`
	Delegated   *DelegatedView   `json:"delegated,omitempty"`
}

// HigherLowerView shows the player's card and, once revealed, the House card.
type HigherLowerView struct {
	PlayerCard   string     `json:"playerCard"`
	OpponentCard string     `json:"opponentCard,omitempty"`
	Prediction   Prediction `json:"prediction"`
}

// MemoryView shows the board. Hidden cards are empty strings.
type MemoryView struct {
	Cards    []string `json:"cards"`
	Revealed []bool   `json:"revealed"`
	Selected int      `json:"selected"`
}

type CoinFlipView struct {
	Choice Side `json:"choice"`
	Landed Side `json:"landed"`
}

type SlotsView struct {
	Reels    []string `json:"reels"`
	Spinning bool     `json:"spinning"`
	Label    string   `json:"label,omitempty"`
}

type PokerView struct {
	Hand  []string   `json:"hand"`
	Held  []bool     `json:"held"`
	Stage PokerStage `json:"stage"`
	Label string     `json:"label,omitempty"`
}

type DelegatedView struct {
	Detail string `json:"detail,omitempty"`
}

// maxBetFor returns the largest legal bet for a balance.
func maxBetFor(balance int) int {
	m := min(MaxBet, balance)
	return m - m%BetStep
}

// snapshot builds the view. Callers hold s.mu.
func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		ID:        s.id.String(),
		State:     s.state,
		Variant:   s.variant,
		Balance:   s.ledger.Balance(),
		Bet:       s.bet,
		ActiveBet: s.activeBet,
		MinBet:    MinBet,
		MaxBet:    maxBetFor(s.ledger.Balance()),
		Busy:      s.busy,
		Insanity:  s.insanity,
		Opponent:  s.opponent.Name,
	}
	if s.last != nil {
		o := *s.last
		snap.Last = &o
	}
	if s.notice != nil {
		n := *s.notice
		snap.Notice = &n
	}

	if r := s.hilo; r != nil {
		v := &HigherLowerView{PlayerCard: r.player.String(), Prediction: r.prediction}
		if r.resolved {
			v.OpponentCard = r.opponent.String()
		}
		snap.HigherLower = v
	}
	if b := s.board; b != nil {
		v := &MemoryView{
			Cards:    make([]string, boardSize),
			Revealed: make([]bool, boardSize),
			Selected: b.first,
		}
		for i, c := range b.cards {
			v.Revealed[i] = b.revealed[i]
			if b.revealed[i] {
				v.Cards[i] = c.String()
			}
		}
		snap.Memory = v
	}
	if c := s.coin; c != nil {
		v := &CoinFlipView{Choice: c.choice}
		if c.resolved {
			v.Landed = c.landed
		}
		snap.CoinFlip = v
	}
	if r := s.slots; r != nil {
		v := &SlotsView{Reels: make([]string, len(r.reels)), Spinning: s.busy && !r.resolved}
		if r.resolved {
			for i, sym := range r.reels {
				v.Reels[i] = string(sym)
			}
			v.Label = r.label
		}
		snap.Slots = v
	}
	if p := s.poker; p != nil {
		v := &PokerView{
			Hand:  make([]string, handSize),
			Held:  make([]bool, handSize),
			Stage: p.stage,
		}
		for i := range p.hand {
			v.Hand[i] = p.hand[i].String()
			v.Held[i] = p.held[i]
		}
		if p.stage == PokerDrawn {
			v.Label = p.category.String()
		}
		snap.Poker = v
	}
	if s.variant.Delegated() && s.state != StateSelecting && s.state != StateBetting {
		snap.Delegated = &DelegatedView{Detail: s.delegated}
	}
	return snap
}

// Cards parses the rendered cards of a view back into poker cards. Hidden
// positions come back as the zero Card.
func Cards(rendered []string) []poker.Card {
	out := make([]poker.Card, len(rendered))
	for i, r := range rendered {
		if r == "" {
			continue
		}
		out[i] = poker.MustParseCard(r)
	}
	return out
}
