package game

import (
	"fmt"
	"strings"
)

// Variant identifies one of the playable games.
type Variant uint8

const (
	VariantNone Variant = iota
	VariantHigherLower
	VariantMemoryMatch
	VariantCoinFlip
	VariantSlots
	VariantPoker
	VariantCardCounting
	VariantRoulette
)

// Variants lists the playable games in menu order.
var Variants = []Variant{
	VariantHigherLower,
	VariantMemoryMatch,
	VariantCoinFlip,
	VariantSlots,
	VariantPoker,
	VariantCardCounting,
	VariantRoulette,
}

var variantKeys = map[Variant]string{
	VariantNone:         "none",
	VariantHigherLower:  "higher_lower",
	VariantMemoryMatch:  "matching",
	VariantCoinFlip:     "coin_flip",
	VariantSlots:        "slots",
	VariantPoker:        "poker",
	VariantCardCounting: "card_counting",
	VariantRoulette:     "roulette",
}

var variantTitles = map[Variant]string{
	VariantHigherLower:  "Higher or Lower",
	VariantMemoryMatch:  "Memory Match",
	VariantCoinFlip:     "Coin Flip",
	VariantSlots:        "Slots",
	VariantPoker:        "Poker",
	VariantCardCounting: "Card Counting",
	VariantRoulette:     "Roulette",
}

// String returns the wire key of the variant, e.g. "higher_lower".
func (v Variant) String() string {
	if k, ok := variantKeys[v]; ok {
		return k
	}
	return "unknown"
}

// Title returns the display name of the variant.
func (v Variant) Title() string {
	return variantTitles[v]
}

// Delegated reports whether the variant is played by an external collaborator.
func (v Variant) Delegated() bool {
	return v == VariantCardCounting || v == VariantRoulette
}

// MarshalText implements encoding.TextMarshaler
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVariant accepts the wire key or a few short aliases.
func ParseVariant(s string) (Variant, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "hilo", "higher", "higherlower":
		return VariantHigherLower, nil
	case "memory", "match":
		return VariantMemoryMatch, nil
	case "coin", "coinflip":
		return VariantCoinFlip, nil
	case "slot":
		return VariantSlots, nil
	case "counting", "cardcounting":
		return VariantCardCounting, nil
	}
	for v, k := range variantKeys {
		if k == key && v != VariantNone {
			return v, nil
		}
	}
	return VariantNone, fmt.Errorf("unknown game %q", s)
}
