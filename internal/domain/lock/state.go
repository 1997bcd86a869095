package lock

// State is the lock controller state. Exactly one state is active at a time.
type State int

const (
	// StateLocked waits for a code to be typed on the keypad.
	StateLocked State = iota
	// StateOpen keeps the latch released until the door-open window expires.
	StateOpen
	// StateError shows the denial message and blinks the red indicator.
	StateError
)

// String returns a lower-case state name for logs and UI.
func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateOpen:
		return "open"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// AcceptsInput reports whether keypad input is collected in this state.
func (s State) AcceptsInput() bool {
	return s == StateLocked
}

// Position is the latch actuator command.
type Position int

const (
	// PositionClosed keeps the door latched.
	PositionClosed Position = iota
	// PositionOpen releases the latch.
	PositionOpen
)

const (
	// AngleClosed is the servo angle in degrees for PositionClosed.
	AngleClosed = 0
	// AngleOpen is the servo angle in degrees for PositionOpen.
	AngleOpen = 90
)

// Angle returns the servo angle in degrees for the position.
func (p Position) Angle() int {
	if p == PositionOpen {
		return AngleOpen
	}

	return AngleClosed
}

// String returns a lower-case position name.
func (p Position) String() string {
	if p == PositionOpen {
		return "open"
	}

	return "closed"
}
