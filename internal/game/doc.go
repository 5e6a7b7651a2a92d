// Package game implements the token casino engine: a player's balance, bet
// placement, the per-variant outcome resolvers and the settlement ledger.
//
// The main type is Session, which is created when a host UI opens the casino
// and discarded when it closes. A Session moves through four states:
//
//	Selecting -> Betting -> Playing -> Result -> (Betting | Selecting)
//
// # Basic Usage
//
//	s := game.NewSession(1000)
//	_ = s.SelectVariant(game.VariantPoker)
//	_ = s.PlaceBet(100)
//	if err := s.StartGame(); errors.Is(err, game.ErrInsufficientBalance) {
//	    // show a notice, the session stays in Betting
//	}
//	_ = s.ToggleHold(0)
//	_ = s.Draw()
//	snap := s.Snapshot() // snap.State == game.StateResult
//
// # Pacing
//
// Card reveals, coin flips and slot spins are resolved after a short delay so
// hosts can animate them. Delays are scheduled on a quartz.Clock and are
// cancelled when the session is reset or closed. WithPacing(game.Instant)
// resolves everything synchronously.
//
// # Deterministic Testing
//
// Inject both the clock and the random source:
//
//	clock := quartz.NewMock(t)
//	s := game.NewSession(1000, game.WithClock(clock), game.WithRand(randutil.New(42)))
//
// # Architecture
//
// Session delegates responsibilities to specialized components:
//   - Next: the pure state transition table
//   - resolvers (higherlower.go, coinflip.go, slots.go, memory.go, videopoker.go)
//   - Ledger: applies outcomes to the balance exactly once
//   - Collaborator: external Card Counting and Roulette games
//   - EventBus: publishes snapshots to host UIs
package game
