package tui

import (
	"fmt"
	"strings"

	"github.com/GhostOf0days/casino/internal/game"
	"github.com/GhostOf0days/casino/poker"
)

// renderCard renders a card face with colour, or a back when hidden
func renderCard(face string) string {
	if face == "" {
		return HiddenCardStyle.Render("[??]")
	}
	c, err := poker.ParseCard(face)
	if err != nil {
		return face
	}
	if c.Suit.IsRed() {
		return RedCardStyle.Render("[" + face + "]")
	}
	return BlackCardStyle.Render("[" + face + "]")
}

// renderTable draws the current game from a snapshot
func renderTable(snap game.Snapshot) string {
	var b strings.Builder

	switch snap.State {
	case game.StateSelecting:
		b.WriteString(HeaderStyle.Render(" Choose a game "))
		b.WriteString("\n\n")
		for _, v := range game.Variants {
			fmt.Fprintf(&b, "  %-14s %s\n", v.String(), v.Title())
		}
		return b.String()
	case game.StateBetting:
		b.WriteString(HeaderStyle.Render(" " + snap.Variant.Title() + " "))
		fmt.Fprintf(&b, "\n\nBet: %s\n", BalanceStyle.Render(fmt.Sprintf("%d tokens", snap.Bet)))
		fmt.Fprintf(&b, "Opponent: %s\n", snap.Opponent)
		return b.String()
	}

	b.WriteString(HeaderStyle.Render(" " + snap.Variant.Title() + " "))
	fmt.Fprintf(&b, "  bet %d\n\n", snap.ActiveBet)

	switch {
	case snap.HigherLower != nil:
		v := snap.HigherLower
		fmt.Fprintf(&b, "You: %s   House: %s\n", renderCard(v.PlayerCard), renderCard(v.OpponentCard))
		if v.Prediction != game.PredictNone {
			fmt.Fprintf(&b, "You called %s\n", v.Prediction)
		}
	case snap.CoinFlip != nil:
		v := snap.CoinFlip
		switch {
		case v.Landed != game.SideNone:
			fmt.Fprintf(&b, "You called %s, the coin landed %s\n", v.Choice, v.Landed)
		case v.Choice != game.SideNone:
			fmt.Fprintf(&b, "You called %s, flipping...\n", v.Choice)
		default:
			b.WriteString("Call it: heads or tails\n")
		}
	case snap.Slots != nil:
		v := snap.Slots
		switch {
		case v.Spinning:
			b.WriteString("| ? | ? | ? |  spinning...\n")
		case v.Reels[0] != "":
			fmt.Fprintf(&b, "| %s | %s | %s |", v.Reels[0], v.Reels[1], v.Reels[2])
			if v.Label != "" {
				b.WriteString("  " + v.Label)
			}
			b.WriteString("\n")
		default:
			b.WriteString("| - | - | - |\n")
		}
	case snap.Memory != nil:
		v := snap.Memory
		for i, face := range v.Cards {
			fmt.Fprintf(&b, "%d:%s ", i+1, renderCard(face))
			if i == len(v.Cards)/2-1 {
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	case snap.Poker != nil:
		v := snap.Poker
		for i, face := range v.Hand {
			card := renderCard(face)
			if v.Held[i] {
				card = HeldStyle.Render(card)
			}
			fmt.Fprintf(&b, "%d:%s ", i+1, card)
		}
		b.WriteString("\n")
		if v.Label != "" {
			b.WriteString(v.Label + "\n")
		}
	case snap.Delegated != nil:
		if snap.Delegated.Detail != "" {
			b.WriteString(snap.Delegated.Detail + "\n")
		} else {
			b.WriteString("Type go to play against the built-in table\n")
		}
	}

	if snap.Last != nil {
		label := "LOSE"
		style := ErrorStyle
		if snap.Last.Result == game.Win && snap.Last.Pays() {
			label = "WIN"
			style = SuccessStyle
		}
		b.WriteString("\n" + style.Render(label))
		if snap.Insanity && snap.Last.Result == game.Lose {
			b.WriteString("  " + InsanityStyle.Render(" INSANITY MODE: double your next bet? "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderSidebar shows the balance and session info
func renderSidebar(snap game.Snapshot) string {
	var b strings.Builder
	b.WriteString(BalanceStyle.Render(fmt.Sprintf("Balance: %d", snap.Balance)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "State: %s\n", snap.State)
	if snap.Variant != game.VariantNone {
		fmt.Fprintf(&b, "Game: %s\n", snap.Variant.Title())
	}
	fmt.Fprintf(&b, "Bets: %d-%d\n", snap.MinBet, snap.MaxBet)
	if snap.Busy {
		b.WriteString(WarningStyle.Render("..."))
		b.WriteString("\n")
	}
	return b.String()
}

// describeEvent turns a session event into a log line, or "" to skip it
func describeEvent(e game.Event) string {
	switch ev := e.(type) {
	case game.NoticeEvent:
		return noticeStyle(ev.Notice.Severity).Render(ev.Notice.Message)
	case game.OpponentMoveEvent:
		if ev.Found {
			return WarningStyle.Render(fmt.Sprintf("The House found a pair at %d and %d", ev.Positions[0]+1, ev.Positions[1]+1))
		}
		return InfoStyle.Render("The House missed")
	case game.StateChangedEvent:
		switch ev.To {
		case game.StateBetting:
			return InfoStyle.Render(fmt.Sprintf("%s: place your bet", ev.Snapshot().Variant.Title()))
		case game.StatePlaying:
			return InfoStyle.Render(fmt.Sprintf("Playing %s for %d tokens", ev.Snapshot().Variant.Title(), ev.Snapshot().ActiveBet))
		}
	}
	return ""
}
