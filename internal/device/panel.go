package device

import domain "github.com/oshokin/keypad-lock/internal/domain/lock"

// Panel is the complete front panel of the lock.
type Panel struct {
	Servo  *Servo
	Green  *LED
	Red    *LED
	LCD    *LCD
	Keypad *Keypad
}

// NewPanel builds a panel with fresh devices.
func NewPanel() *Panel {
	return &Panel{
		Servo:  NewServo(),
		Green:  NewLED("green"),
		Red:    NewLED("red"),
		LCD:    NewLCD(),
		Keypad: NewKeypad(DefaultKeypadQueue),
	}
}

// Snapshot is a consistent-enough copy of the panel outputs for rendering.
type Snapshot struct {
	Position domain.Position
	Angle    int
	Green    bool
	Red      bool
	Rows     [LCDRows]string
}

// Snapshot reads every output device.
func (p *Panel) Snapshot() Snapshot {
	pos := p.Servo.Position()

	return Snapshot{
		Position: pos,
		Angle:    pos.Angle(),
		Green:    p.Green.On(),
		Red:      p.Red.On(),
		Rows:     [LCDRows]string{p.LCD.Row(0), p.LCD.Row(1)},
	}
}
