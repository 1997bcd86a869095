package device

import "sync"

// LED is a single indicator lamp.
type LED struct {
	mu     sync.RWMutex
	name   string
	on     bool
	writes int
}

// NewLED returns a switched-off LED.
func NewLED(name string) *LED {
	return &LED{name: name}
}

// Set switches the LED.
func (l *LED) Set(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.on = on
	l.writes++
}

// On reports whether the LED is lit.
func (l *LED) On() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.on
}

// Writes returns the number of Set calls.
func (l *LED) Writes() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.writes
}

// Name returns the LED label.
func (l *LED) Name() string {
	return l.name
}
