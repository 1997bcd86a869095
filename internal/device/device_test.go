package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/keypad-lock/internal/domain/lock"
)

// TestServo verifies positions map to angles and pulse widths.
func TestServo(t *testing.T) {
	t.Parallel()

	s := NewServo()
	require.Equal(t, domain.PositionClosed, s.Position())
	require.Equal(t, 500*time.Microsecond, s.PulseWidth())

	s.SetPosition(domain.PositionOpen)
	require.Equal(t, 90, s.Angle())
	require.Equal(t, 1450*time.Microsecond, s.PulseWidth())
	require.Equal(t, 1, s.Moves())

	require.Equal(t, ServoMaxPulse, PulseWidth(180))
	require.Equal(t, ServoMaxPulse, PulseWidth(270))
	require.Equal(t, ServoMinPulse, PulseWidth(-10))
}

// TestLED verifies switching and write counting.
func TestLED(t *testing.T) {
	t.Parallel()

	l := NewLED("red")
	require.False(t, l.On())
	require.Equal(t, "red", l.Name())

	l.Set(true)
	require.True(t, l.On())

	l.Set(true)
	require.Equal(t, 2, l.Writes())
}

// TestLCD_ShowReplacesContent checks clear-then-write semantics and clipping.
func TestLCD_ShowReplacesContent(t *testing.T) {
	t.Parallel()

	d := NewLCD()
	d.Show("SYSTEM LOCKED", "Pass: ")
	require.Equal(t, [LCDRows]string{"SYSTEM LOCKED", "Pass:"}, d.Lines())

	d.Show("ACCESS GRANTED", "OPEN")
	require.Equal(t, [LCDRows]string{"ACCESS GRANTED", "OPEN"}, d.Lines())

	d.Show("THIS LINE IS WAY TOO LONG", "")
	require.Equal(t, "THIS LINE IS WAY", d.Lines()[0])
	require.Empty(t, d.Lines()[1])
	require.Len(t, d.Row(1), LCDColumns)
	require.Empty(t, d.Row(5))
}

// TestLCD_Put writes glyphs at a position and ignores out-of-range ones.
func TestLCD_Put(t *testing.T) {
	t.Parallel()

	d := NewLCD()
	d.Show("SYSTEM LOCKED", "Pass: ")
	d.Put(6, 1, '*')
	d.Put(7, 1, '*')
	d.Put(LCDColumns, 1, '*')
	d.Put(0, 2, '*')
	d.Put(-1, 0, '*')

	require.Equal(t, "Pass: **", d.Lines()[1])
	require.Equal(t, "SYSTEM LOCKED", d.Lines()[0])
}

// TestLCD_OnChange ensures the hook receives the updated screen.
func TestLCD_OnChange(t *testing.T) {
	t.Parallel()

	var got [LCDRows]string

	d := NewLCD()
	d.OnChange(func(lines [LCDRows]string) { got = lines })
	d.Show("ACCESS DENIED", "WRONG PASS")

	require.Equal(t, [LCDRows]string{"ACCESS DENIED", "WRONG PASS"}, got)
}

// TestKeypad verifies queueing, matrix lookup and the non-blocking poll.
func TestKeypad(t *testing.T) {
	t.Parallel()

	k := NewKeypad(2)

	_, ok := k.Poll()
	require.False(t, ok)

	require.True(t, k.Press('1'))
	require.True(t, k.PressAt(3, 2))
	require.False(t, k.Press('2'), "queue is full")
	require.Equal(t, 2, k.Pending())

	key, ok := k.Poll()
	require.True(t, ok)
	require.Equal(t, domain.Key('1'), key)

	key, ok = k.Poll()
	require.True(t, ok)
	require.Equal(t, domain.Key('#'), key)

	require.False(t, k.Press('x'))
	require.False(t, k.PressAt(4, 0))
	require.False(t, k.PressAt(0, -1))
	require.Equal(t, DefaultKeypadQueue, cap(NewKeypad(0).presses))
}

// TestPanelSnapshot reads every output of a panel.
func TestPanelSnapshot(t *testing.T) {
	t.Parallel()

	p := NewPanel()
	p.Servo.SetPosition(domain.PositionOpen)
	p.Green.Set(true)
	p.LCD.Show("ACCESS GRANTED", "OPEN")

	s := p.Snapshot()
	require.Equal(t, domain.PositionOpen, s.Position)
	require.Equal(t, 90, s.Angle)
	require.True(t, s.Green)
	require.False(t, s.Red)
	require.Equal(t, "ACCESS GRANTED  ", s.Rows[0])
}
