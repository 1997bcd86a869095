package lock

import domain "github.com/oshokin/keypad-lock/internal/domain/lock"

// BufferStatus tells whether the buffer still collects keys or holds a full code.
type BufferStatus int

const (
	// Collecting means fewer than PassLen keys were accepted.
	Collecting BufferStatus = iota
	// Complete means the buffer holds a full code that must be consumed and reset.
	Complete
)

// InputBuffer accumulates keys until a code of PassLen characters is formed.
// It is a plain value type; deciding when keys may be accepted is up to the caller.
type InputBuffer struct {
	keys [domain.PassLen]domain.Key
	n    int
}

// Accept appends k and returns Complete together with the code once the
// buffer is full. A full buffer ignores further keys until Reset.
func (b *InputBuffer) Accept(k domain.Key) (BufferStatus, string) {
	if b.n < len(b.keys) {
		b.keys[b.n] = k
		b.n++
	}

	if b.n < len(b.keys) {
		return Collecting, ""
	}

	return Complete, b.code()
}

// Reset empties the buffer.
func (b *InputBuffer) Reset() {
	b.keys = [domain.PassLen]domain.Key{}
	b.n = 0
}

// Len returns the number of buffered keys.
func (b *InputBuffer) Len() int {
	return b.n
}

func (b *InputBuffer) code() string {
	buf := make([]byte, b.n)
	for i := 0; i < b.n; i++ {
		buf[i] = byte(b.keys[i])
	}

	return string(buf)
}
