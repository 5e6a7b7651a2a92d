package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhostOf0days/casino/internal/randutil"
	"github.com/GhostOf0days/casino/poker"
)

func TestProjectOpponentValueIsConsistent(t *testing.T) {
	t.Parallel()

	src := randutil.New(7)
	for _, rank := range poker.Ranks {
		pv := int(rank)
		for _, p := range []Prediction{Higher, Lower} {
			for _, sampled := range []Result{Win, Lose} {
				for i := 0; i < 20; i++ {
					v, result := projectOpponentValue(src, sampled, p, pv)
					require.GreaterOrEqual(t, v, minCardValue)
					require.LessOrEqual(t, v, maxCardValue)
					require.Equal(t, result == Win, wins(p, pv, v),
						"player %d predicted %s, sampled %s, got %d/%s", pv, p, sampled, v, result)

					extreme := (p == Higher && rank == poker.Ace) || (p == Lower && rank == poker.Two)
					if sampled == Win && extreme {
						assert.Equal(t, Lose, result)
						assert.InDelta(t, pv, v, 3)
					} else {
						assert.Equal(t, sampled, result)
					}
				}
			}
		}
	}
}

func TestResolveHigherLowerNeverRepeatsPlayerCard(t *testing.T) {
	t.Parallel()

	src := randutil.New(11)
	for i := 0; i < 2000; i++ {
		player := dealPlayerCard(src)
		p := Higher
		if i%2 == 1 {
			p = Lower
		}
		result, opp := resolveHigherLower(src, House.WinChance, player, p)
		require.NotEqual(t, player, opp)
		require.True(t, opp.Valid())
		require.Equal(t, result == Win, wins(p, player.Value(), opp.Value()))
	}
}

func TestResolveCoinFlip(t *testing.T) {
	t.Parallel()

	result, landed := resolveCoinFlip(script(0.1), Heads)
	assert.Equal(t, Win, result)
	assert.Equal(t, Heads, landed)

	result, landed = resolveCoinFlip(script(0.9), Heads)
	assert.Equal(t, Lose, result)
	assert.Equal(t, Tails, landed)
}

func TestResolveSlots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		draw   float64
		result Result
		mult   int64
	}{
		{"gem jackpot", 0.001, Win, 5},
		{"just above the gem band", 0.005, Win, 3},
		{"triple seven", 0.01, Win, 3},
		{"plain triple", 0.1, Win, 2},
		{"loss", 0.5, Lose, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := resolveSlots(script(tt.draw))
			assert.Equal(t, tt.result, out.result)
			assert.Equal(t, tt.mult, out.multiplier.IntPart())
			assert.Equal(t, tt.result == Win, out.reels.IsWin())
		})
	}

	out := resolveSlots(script(0.001))
	assert.Equal(t, Reels{Gem, Gem, Gem}, out.reels)
}

func TestResolveSlotsLossesNeverMatch(t *testing.T) {
	t.Parallel()

	src := randutil.New(3)
	nearMisses, losses := 0, 0
	for i := 0; i < 5000; i++ {
		out := resolveSlots(src)
		if out.result == Win {
			require.True(t, out.reels.IsWin())
			continue
		}
		losses++
		require.False(t, out.reels.IsWin(), "losing reels %v", out.reels)
		if out.reels.IsNearMiss() {
			nearMisses++
			require.Equal(t, out.reels[0], out.reels[2])
		}
	}
	rate := float64(nearMisses) / float64(losses)
	assert.InDelta(t, nearMissRate, rate, 0.05)
}

func TestMemoryBoardHoldsFourPairs(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 50; seed++ {
		b := newMemoryBoard(randutil.New(seed))
		counts := map[poker.Card]int{}
		for _, c := range b.cards {
			require.True(t, c.Valid())
			counts[c]++
		}
		require.Len(t, counts, boardPairs)
		for c, n := range counts {
			require.Equal(t, 2, n, "card %s", c)
		}
		require.Len(t, b.hiddenPairs(), boardPairs)
		require.False(t, b.complete())
	}
}

func TestMemoryOpponentOnlyPicksHiddenPairs(t *testing.T) {
	t.Parallel()

	b := newMemoryBoard(randutil.New(9))
	first := b.hiddenPairs()[0]
	b.revealed[first[0]] = true
	b.revealed[first[1]] = true

	src := randutil.New(10)
	for i := 0; i < 200; i++ {
		pair, ok := b.opponentTurn(src, 1)
		require.True(t, ok)
		assert.False(t, b.revealed[pair[0]])
		assert.False(t, b.revealed[pair[1]])
		assert.Equal(t, b.cards[pair[0]], b.cards[pair[1]])
	}

	_, ok := b.opponentTurn(src, 0)
	assert.False(t, ok)
}

func TestPokerRoundDrawKeepsHeldCards(t *testing.T) {
	t.Parallel()

	r := dealPokerRound(randutil.New(5))
	require.Equal(t, 47, r.deck.CardsRemaining())
	before := r.hand
	r.toggle(0)
	r.toggle(3)

	r.draw()
	assert.Equal(t, PokerDrawn, r.stage)
	assert.Equal(t, before[0], r.hand[0])
	assert.Equal(t, before[3], r.hand[3])
	assert.Equal(t, 44, r.deck.CardsRemaining())
	require.NoError(t, poker.ValidateHand(r.hand))
	for _, i := range []int{1, 2, 4} {
		for _, c := range before {
			assert.NotEqual(t, c, r.hand[i], "drew a card that was already dealt")
		}
	}
	assert.Equal(t, poker.Classify(r.hand), r.category)
}
