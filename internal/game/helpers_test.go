package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/GhostOf0days/casino/internal/randutil"
)

// scriptedSource replays fixed draws, then falls back to a seeded source.
type scriptedSource struct {
	floats   []float64
	ints     []int
	fallback randutil.Source
}

func script(floats ...float64) *scriptedSource {
	return &scriptedSource{floats: floats, fallback: randutil.New(1)}
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return s.fallback.Float64()
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return s.fallback.IntN(n)
	}
	i := s.ints[0]
	s.ints = s.ints[1:]
	return i % n
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// newTestSession returns an instant, seeded session.
func newTestSession(t *testing.T, balance int, opts ...Option) *Session {
	t.Helper()
	base := []Option{
		WithRand(randutil.New(42)),
		WithPacing(Instant),
		WithLogger(quietLogger()),
	}
	s := NewSession(balance, append(base, opts...)...)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// startVariant selects v and starts it with the given bet.
func startVariant(t *testing.T, s *Session, v Variant, bet int) {
	t.Helper()
	require.NoError(t, s.SelectVariant(v))
	require.NoError(t, s.PlaceBet(bet))
	require.NoError(t, s.StartGame())
	require.Equal(t, StatePlaying, s.Snapshot().State)
}
