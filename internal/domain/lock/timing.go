package lock

import "time"

// Millis is a monotonic millisecond tick counter. It wraps around after
// roughly 49.7 days, so values must only be compared through Elapsed.
type Millis uint32

const (
	// DoorOpenDuration is how long the latch stays open after a valid code.
	DoorOpenDuration Millis = 3000
	// ErrorDisplayDuration is how long the denial message stays on screen.
	ErrorDisplayDuration Millis = 2000
	// BlinkInterval is the red indicator toggle period in the error state.
	BlinkInterval Millis = 200
)

// Elapsed returns the milliseconds passed from since to now.
// Unsigned subtraction keeps the result correct across counter overflow.
func Elapsed(now, since Millis) Millis {
	return now - since
}

// Expired reports whether at least threshold milliseconds passed since start.
func Expired(now, start, threshold Millis) bool {
	return Elapsed(now, start) >= threshold
}

// Duration converts the tick count to a time.Duration.
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}
