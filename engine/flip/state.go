package flip

// State is the interaction state of a page flip.
type State int

const (
	// StateBegin follows a press, before the gesture has a direction.
	StateBegin State = iota
	StateForward
	StateBackward
	StateRestore
	// StateEndIdle is the initial state and the state after a gesture
	// that never moved far enough.
	StateEndIdle
	StateEndAfterForward
	StateEndAfterBackward
	StateEndAfterRestore
)

func (s State) String() string {
	switch s {
	case StateBegin:
		return "begin"
	case StateForward:
		return "forward"
	case StateBackward:
		return "backward"
	case StateRestore:
		return "restore"
	case StateEndIdle:
		return "end-idle"
	case StateEndAfterForward:
		return "end-after-forward"
	case StateEndAfterBackward:
		return "end-after-backward"
	case StateEndAfterRestore:
		return "end-after-restore"
	}
	return "unknown"
}

// IsFlipping reports a state that produces fold geometry.
func (s State) IsFlipping() bool {
	return s == StateForward || s == StateBackward || s == StateRestore
}

func (s State) IsEnded() bool {
	return s == StateEndIdle || s == StateEndAfterForward ||
		s == StateEndAfterBackward || s == StateEndAfterRestore
}

// ended maps a flipping state onto the state it stops in.
func (s State) ended() State {
	switch s {
	case StateForward:
		return StateEndAfterForward
	case StateBackward:
		return StateEndAfterBackward
	case StateRestore:
		return StateEndAfterRestore
	}
	return s
}
