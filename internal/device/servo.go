package device

import (
	"sync"
	"time"

	domain "github.com/oshokin/keypad-lock/internal/domain/lock"
)

const (
	// ServoFrequency is the PWM frequency of the latch servo in hertz.
	ServoFrequency = 50
	// ServoMinPulse is the pulse width at 0 degrees.
	ServoMinPulse = 500 * time.Microsecond
	// ServoMaxPulse is the pulse width at 180 degrees.
	ServoMaxPulse = 2400 * time.Microsecond
	// servoRange is the mechanical range in degrees.
	servoRange = 180
)

// Servo is the latch actuator.
type Servo struct {
	mu       sync.RWMutex
	position domain.Position
	moves    int
}

// NewServo returns a servo in the closed position.
func NewServo() *Servo {
	return &Servo{position: domain.PositionClosed}
}

// SetPosition commands the latch.
func (s *Servo) SetPosition(p domain.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.position = p
	s.moves++
}

// Position returns the last commanded position.
func (s *Servo) Position() domain.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.position
}

// Moves returns how many commands the servo received.
func (s *Servo) Moves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.moves
}

// Angle returns the commanded angle in degrees.
func (s *Servo) Angle() int {
	return s.Position().Angle()
}

// PulseWidth returns the PWM pulse width for the commanded angle.
func (s *Servo) PulseWidth() time.Duration {
	return PulseWidth(s.Angle())
}

// PulseWidth maps an angle in degrees to a pulse width, clamping to the servo range.
func PulseWidth(angle int) time.Duration {
	angle = max(0, min(angle, servoRange))

	return ServoMinPulse + time.Duration(angle)*(ServoMaxPulse-ServoMinPulse)/servoRange
}
