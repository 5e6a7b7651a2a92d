package game

import "errors"

var (
	// ErrInsufficientBalance is a user notice: the bet exceeds the balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrBetOutOfRange is a user notice: bets are multiples of BetStep in [MinBet, MaxBet].
	ErrBetOutOfRange = errors.New("bet out of range")

	// ErrInvalidTransition marks an action that is not valid in the current
	// state. Hosts ignore it.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInvalidInput is a programming error in the caller, such as a card
	// index outside the board.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadySettled is returned when an outcome is applied twice.
	ErrAlreadySettled = errors.New("outcome already settled")

	// ErrNoCollaborator is returned by Delegate when no external game is registered.
	ErrNoCollaborator = errors.New("no collaborator registered")

	// ErrSessionClosed is returned by every action after Close.
	ErrSessionClosed = errors.New("session closed")
)

// IsNotice reports whether err should be shown to the player.
func IsNotice(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) || errors.Is(err, ErrBetOutOfRange)
}
