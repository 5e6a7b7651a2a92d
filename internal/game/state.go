package game

// State is the lifecycle stage of a Session.
type State uint8

const (
	StateSelecting State = iota
	StateBetting
	StatePlaying
	StateResult
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateBetting:
		return "betting"
	case StatePlaying:
		return "playing"
	case StateResult:
		return "result"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Trigger is an event that may move a Session between states.
type Trigger uint8

const (
	TriggerSelect Trigger = iota
	TriggerStart
	TriggerResolve
	TriggerPlayAgain
	TriggerChangeGame
	TriggerReset
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	switch t {
	case TriggerSelect:
		return "select"
	case TriggerStart:
		return "start"
	case TriggerResolve:
		return "resolve"
	case TriggerPlayAgain:
		return "play_again"
	case TriggerChangeGame:
		return "change_game"
	case TriggerReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Next is the transition table. It reports the state reached from s on
// trigger t, and false when the trigger is not valid in s.
func Next(s State, t Trigger) (State, bool) {
	switch t {
	case TriggerReset:
		return StateSelecting, true
	case TriggerSelect:
		if s == StateSelecting {
			return StateBetting, true
		}
	case TriggerStart:
		if s == StateBetting {
			return StatePlaying, true
		}
	case TriggerResolve:
		if s == StatePlaying {
			return StateResult, true
		}
	case TriggerPlayAgain:
		if s == StateResult {
			return StateBetting, true
		}
	case TriggerChangeGame:
		if s == StateResult || s == StateBetting {
			return StateSelecting, true
		}
	}
	return s, false
}
