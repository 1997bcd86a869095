package lock

import (
	"time"

	domain "github.com/oshokin/keypad-lock/internal/domain/lock"
)

// Clock returns the current tick counter. Reads never block.
type Clock interface {
	Now() domain.Millis
}

// SystemClock counts milliseconds since it was created using the
// monotonic reading of time.Now.
type SystemClock struct {
	boot time.Time
}

// NewSystemClock starts a clock at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{boot: time.Now()}
}

// Now returns milliseconds since boot, truncated to the wrapping counter width.
func (c *SystemClock) Now() domain.Millis {
	return domain.Millis(uint64(time.Since(c.boot).Milliseconds())) //nolint:gosec // Truncation is the wraparound.
}
