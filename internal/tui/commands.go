package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GhostOf0days/casino/internal/game"
)

// errQuit is returned by execute when the player asks to leave.
var errQuit = errors.New("quit")

// Command is a parsed line of player input
type Command struct {
	Action string
	Args   []string
}

// ParseCommand splits input into an action and its arguments. A bare
// number is shorthand for the positional action of the current game.
func ParseCommand(input string, snap game.Snapshot) Command {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(parts) == 0 {
		return Command{}
	}
	if _, err := strconv.Atoi(parts[0]); err == nil && snap.State == game.StatePlaying {
		switch snap.Variant {
		case game.VariantMemoryMatch:
			return Command{Action: "reveal", Args: parts}
		case game.VariantPoker:
			return Command{Action: "hold", Args: parts}
		}
	}
	return Command{Action: parts[0], Args: parts[1:]}
}

// execute runs a command against the session.
func execute(ctx context.Context, s *game.Session, snap game.Snapshot, cmd Command) error {
	switch cmd.Action {
	case "":
		// Enter on the result screen deals again
		if snap.State == game.StateResult {
			return s.PlayAgain()
		}
		return nil
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		return nil

	case "play", "select", "game":
		if len(cmd.Args) != 1 {
			return fmt.Errorf("usage: play <game>")
		}
		v, err := game.ParseVariant(cmd.Args[0])
		if err != nil {
			return err
		}
		return s.SelectVariant(v)

	case "bet":
		if len(cmd.Args) != 1 {
			return fmt.Errorf("usage: bet <amount>")
		}
		amount, err := strconv.Atoi(cmd.Args[0])
		if err != nil {
			return fmt.Errorf("invalid amount %q", cmd.Args[0])
		}
		return s.PlaceBet(amount)

	case "start", "deal":
		return s.StartGame()

	case "higher", "lower", "h", "l", "hi", "lo":
		p, err := game.ParsePrediction(cmd.Action)
		if err != nil {
			return err
		}
		return s.Predict(p)

	case "heads", "tails", "t":
		side, err := game.ParseSide(cmd.Action)
		if err != nil {
			return err
		}
		return s.Choose(side)

	case "reveal", "flip":
		if len(cmd.Args) != 1 {
			return fmt.Errorf("usage: reveal <1-8>")
		}
		i, err := position(cmd.Args[0])
		if err != nil {
			return err
		}
		return s.Reveal(i)

	case "spin":
		return s.Spin()

	case "hold":
		if len(cmd.Args) == 0 {
			return fmt.Errorf("usage: hold <1-5>...")
		}
		for _, a := range cmd.Args {
			i, err := position(a)
			if err != nil {
				return err
			}
			if err := s.ToggleHold(i); err != nil {
				return err
			}
		}
		return nil

	case "draw":
		return s.Draw()

	case "go", "delegate":
		return s.Delegate(ctx)

	case "win", "lose":
		// host-side report for delegated games played elsewhere
		m := decimal.NewFromInt(1)
		if len(cmd.Args) == 1 {
			parsed, err := decimal.NewFromString(cmd.Args[0])
			if err != nil {
				return fmt.Errorf("invalid multiplier %q", cmd.Args[0])
			}
			m = parsed
		}
		return s.Report(cmd.Action == "win", m)

	case "again":
		return s.PlayAgain()
	case "change", "menu":
		return s.ChangeGame()
	case "reset":
		return s.Reset()
	}
	return fmt.Errorf("unknown command %q, type help", cmd.Action)
}

// position converts a 1-based user position to an index
func position(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q", s)
	}
	return n - 1, nil
}

// helpText lists the commands that make sense right now
func helpText(snap game.Snapshot) string {
	switch snap.State {
	case game.StateSelecting:
		names := make([]string, len(game.Variants))
		for i, v := range game.Variants {
			names[i] = v.String()
		}
		return "play <" + strings.Join(names, "|") + ">"
	case game.StateBetting:
		return fmt.Sprintf("bet <%d-%d> • start • change", snap.MinBet, snap.MaxBet)
	case game.StateResult:
		return "Enter or again • change • reset"
	}
	switch snap.Variant {
	case game.VariantHigherLower:
		return "higher • lower"
	case game.VariantCoinFlip:
		return "heads • tails"
	case game.VariantSlots:
		return "spin"
	case game.VariantMemoryMatch:
		return "reveal <1-8> (or just the number)"
	case game.VariantPoker:
		return "hold <1-5>... • draw"
	case game.VariantCardCounting, game.VariantRoulette:
		return "go • win [multiplier] • lose"
	}
	return ""
}
