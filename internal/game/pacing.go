package game

import "time"

// Pacing holds the artificial delays hosts use to stage animations.
type Pacing struct {
	Reveal  time.Duration // card reveals and memory turns
	Flip    time.Duration // coin flip
	SpinMin time.Duration // slot spin, lower bound
	SpinMax time.Duration // slot spin, upper bound
}

// DefaultPacing matches the timings of the interactive game.
var DefaultPacing = Pacing{
	Reveal:  time.Second,
	Flip:    1500 * time.Millisecond,
	SpinMin: 2 * time.Second,
	SpinMax: 3 * time.Second,
}

// Instant resolves every step synchronously.
var Instant = Pacing{}
