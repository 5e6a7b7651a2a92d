package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/GhostOf0days/casino/internal/game"
	"github.com/GhostOf0days/casino/poker"
)

var (
	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	payStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	holdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// EvaluateCmd classifies a hand the way the Poker game pays it
type EvaluateCmd struct {
	Cards []string `arg:"" help:"Five cards, e.g. 'Ts Js Qs Ks As'"`
	Bet   int      `short:"b" default:"50" help:"Bet used to show the payout"`
	Hint  bool     `help:"Show the cards the autoplayer would hold"`
}

func (c *EvaluateCmd) Run() error {
	return c.evaluate(os.Stdout)
}

func (c *EvaluateCmd) evaluate(w io.Writer) error {
	hand, err := poker.ParseHand(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	if c.Bet < game.MinBet || c.Bet > game.MaxBet {
		return fmt.Errorf("bet %d: %w", c.Bet, game.ErrBetOutOfRange)
	}

	cat := poker.Classify(hand)
	fmt.Fprintf(w, "%s  %s\n", poker.FormatCards(hand[:]), categoryStyle.Render(cat.String()))
	if cat.Wins() {
		payout := game.Payout(c.Bet, cat.Multiplier(), game.House.Modifier)
		fmt.Fprintf(w, "pays %s× : %s on a %d bet\n",
			cat.Multiplier().String(), payStyle.Render(fmt.Sprintf("+%d", payout)), c.Bet)
	} else {
		fmt.Fprintf(w, "no payout: lose %d\n", c.Bet)
	}

	if c.Hint {
		holds := poker.SuggestHolds(hand)
		var kept []poker.Card
		for i, h := range holds {
			if h {
				kept = append(kept, hand[i])
			}
		}
		switch len(kept) {
		case 0:
			fmt.Fprintln(w, holdStyle.Render("hold: nothing, draw five"))
		default:
			fmt.Fprintln(w, holdStyle.Render("hold: "+poker.FormatCards(kept)))
		}
	}
	return nil
}
