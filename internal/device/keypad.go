package device

import domain "github.com/oshokin/keypad-lock/internal/domain/lock"

// DefaultKeypadQueue is the number of presses the keypad holds before
// dropping new ones.
const DefaultKeypadQueue = 16

// Keypad is the 4x4 matrix keypad. Presses are queued and handed out one per
// Poll without blocking.
type Keypad struct {
	presses chan domain.Key
}

// NewKeypad creates a keypad holding up to size pending presses.
func NewKeypad(size int) *Keypad {
	if size <= 0 {
		size = DefaultKeypadQueue
	}

	return &Keypad{presses: make(chan domain.Key, size)}
}

// Press queues k. It returns false for keys outside the alphabet or when the
// queue is full.
func (k *Keypad) Press(key domain.Key) bool {
	if !key.Valid() {
		return false
	}

	select {
	case k.presses <- key:
		return true
	default:
		return false
	}
}

// PressAt queues the key at row and column of the matrix.
func (k *Keypad) PressAt(row, col int) bool {
	if row < 0 || row >= len(domain.Layout) || col < 0 || col >= len(domain.Layout[row]) {
		return false
	}

	return k.Press(domain.Layout[row][col])
}

// Poll returns the oldest pending press, if any.
func (k *Keypad) Poll() (domain.Key, bool) {
	select {
	case key := <-k.presses:
		return key, true
	default:
		return domain.NoKey, false
	}
}

// Pending returns the number of queued presses.
func (k *Keypad) Pending() int {
	return len(k.presses)
}
