package lock

// Display texts shown on the two-line screen.
const (
	LockedTitle   = "SYSTEM LOCKED"
	LockedPrompt  = "Pass: "
	GrantedTitle  = "ACCESS GRANTED"
	GrantedDetail = "OPEN"
	DeniedTitle   = "ACCESS DENIED"
	DeniedDetail  = "WRONG PASS"
)

// Outputs is the complete set of values the hardware shows for a state.
type Outputs struct {
	// Position is the latch actuator command.
	Position Position
	// Green is the green indicator value.
	Green bool
	// Red is the red indicator value.
	Red bool
	// Line1 is the upper display row.
	Line1 string
	// Line2 is the lower display row.
	Line2 string
}

// OutputsFor returns the outputs for state s. blink is only used in the error
// state, where it drives the red indicator.
func OutputsFor(s State, blink bool) Outputs {
	switch s {
	case StateOpen:
		return Outputs{
			Position: PositionOpen,
			Green:    true,
			Line1:    GrantedTitle,
			Line2:    GrantedDetail,
		}
	case StateError:
		return Outputs{
			Position: PositionClosed,
			Red:      blink,
			Line1:    DeniedTitle,
			Line2:    DeniedDetail,
		}
	default:
		return Outputs{
			Position: PositionClosed,
			Line1:    LockedTitle,
			Line2:    LockedPrompt,
		}
	}
}

// PlaceholderColumn returns the display column of the placeholder glyph for
// the n-th typed character (1-based). Glyphs follow the locked prompt.
func PlaceholderColumn(n int) int {
	return len(LockedPrompt) + n - 1
}
