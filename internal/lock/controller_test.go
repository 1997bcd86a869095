package lock

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/keypad-lock/internal/domain/lock"
)

// requireOutputs asserts the sinks show the fixed outputs of the state.
func requireOutputs(t *testing.T, r *rig, want domain.Outputs) {
	t.Helper()

	require.Equal(t, want.Position, r.actuator.position)
	require.Equal(t, want.Green, r.green.on)
	require.Equal(t, want.Red, r.red.on)
	require.Equal(t, want.Line1, r.display.line1)
	require.Equal(t, want.Line2, r.display.line2)
}

// TestController_StartIsLockedAndIdempotent checks the initial state and repeated entry.
func TestController_StartIsLockedAndIdempotent(t *testing.T) {
	t.Parallel()

	r := newRig("1234")
	r.ctrl.Start(context.Background(), 0)

	require.Equal(t, domain.StateLocked, r.ctrl.State())
	require.True(t, r.ctrl.AcceptsInput())
	requireOutputs(t, r, domain.OutputsFor(domain.StateLocked, false))

	r.ctrl.Start(context.Background(), 10)
	requireOutputs(t, r, domain.OutputsFor(domain.StateLocked, false))
	require.Equal(t, 2, r.display.shows)
}

// TestController_CorrectCodeOpens covers the granted scenario.
func TestController_CorrectCodeOpens(t *testing.T) {
	t.Parallel()

	r := newRig("1234")
	r.ctrl.Start(context.Background(), 0)
	r.typeCode(100, "1234")

	require.Equal(t, domain.StateOpen, r.ctrl.State())
	require.Equal(t, domain.PositionOpen, r.actuator.position)
	require.True(t, r.green.on)
	require.False(t, r.red.on)
	require.Equal(t, "ACCESS GRANTED", r.display.line1)
	require.Equal(t, "OPEN", r.display.line2)
	require.Zero(t, r.ctrl.BufferLen())
	require.Equal(t, domain.Millis(100), r.ctrl.Context().EnteredAt)
}

// TestController_WrongCodeDenies covers the denied scenario and its expiry.
func TestController_WrongCodeDenies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := newRig("1234")
	r.ctrl.Start(ctx, 0)
	r.typeCode(500, "9999")

	require.Equal(t, domain.StateError, r.ctrl.State())
	require.Equal(t, "ACCESS DENIED", r.display.line1)
	require.Equal(t, "WRONG PASS", r.display.line2)
	require.Equal(t, domain.PositionClosed, r.actuator.position)
	require.False(t, r.green.on)
	require.Zero(t, r.ctrl.BufferLen())

	r.ctrl.Update(ctx, 500+1999)
	require.Equal(t, domain.StateError, r.ctrl.State())

	r.ctrl.Update(ctx, 500+2000)
	require.Equal(t, domain.StateLocked, r.ctrl.State())
	requireOutputs(t, r, domain.OutputsFor(domain.StateLocked, false))
}

// TestController_AnyDifferentPositionDenies ensures a single mismatching character is enough to deny.
func TestController_AnyDifferentPositionDenies(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"0234", "1034", "1204", "1230", "4321"} {
		r := newRig("1234")
		r.ctrl.Start(context.Background(), 0)
		r.typeCode(1, code)
		require.Equal(t, domain.StateError, r.ctrl.State(), code)
	}
}

// TestController_OpenExpiresExactly verifies the door stays open for DoorOpenDuration, not a tick less.
func TestController_OpenExpiresExactly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := newRig("1234")
	r.ctrl.Start(ctx, 0)
	r.typeCode(1000, "1234")

	for now := domain.Millis(1000); now < 1000+domain.DoorOpenDuration; now += 250 {
		r.ctrl.Update(ctx, now)
		require.Equal(t, domain.StateOpen, r.ctrl.State(), "at %d", now)
	}

	r.ctrl.Update(ctx, 1000+domain.DoorOpenDuration-1)
	require.Equal(t, domain.StateOpen, r.ctrl.State())

	r.ctrl.Update(ctx, 1000+domain.DoorOpenDuration)
	require.Equal(t, domain.StateLocked, r.ctrl.State())
	requireOutputs(t, r, domain.OutputsFor(domain.StateLocked, false))
}

// TestController_ErrorBlinks verifies the red indicator toggles every BlinkInterval and
// the state expires regardless of the blink phase.
func TestController_ErrorBlinks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := newRig("1234")
	r.ctrl.Start(ctx, 0)
	r.typeCode(0, "0000")
	require.False(t, r.red.on)

	r.ctrl.Update(ctx, 199)
	require.False(t, r.red.on)

	r.ctrl.Update(ctx, 200)
	require.True(t, r.red.on)
	require.True(t, r.ctrl.Context().BlinkOn)

	r.ctrl.Update(ctx, 399)
	require.True(t, r.red.on)

	r.ctrl.Update(ctx, 400)
	require.False(t, r.red.on)

	// A late tick toggles once and restarts the blink period from that tick.
	r.ctrl.Update(ctx, 650)
	require.True(t, r.red.on)
	require.Equal(t, domain.Millis(650), r.ctrl.Context().BlinkAt)

	r.ctrl.Update(ctx, 849)
	require.True(t, r.red.on)

	r.ctrl.Update(ctx, 1900)
	require.False(t, r.red.on)
	require.Equal(t, domain.StateError, r.ctrl.State())

	r.ctrl.Update(ctx, 2000)
	require.Equal(t, domain.StateLocked, r.ctrl.State())
	require.False(t, r.red.on)
}

// TestController_ErrorEntryResetsBlinkPhase ensures a second error starts from the off phase.
func TestController_ErrorEntryResetsBlinkPhase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := newRig("1234")
	r.ctrl.Start(ctx, 0)

	r.typeCode(0, "0000")
	r.ctrl.Update(ctx, 200)
	require.True(t, r.ctrl.Context().BlinkOn)

	r.ctrl.Update(ctx, 2000)
	require.Equal(t, domain.StateLocked, r.ctrl.State())

	r.typeCode(2100, "0000")
	require.Equal(t, domain.StateError, r.ctrl.State())
	require.False(t, r.ctrl.Context().BlinkOn)
	require.False(t, r.red.on)
	require.Equal(t, domain.Millis(2100), r.ctrl.Context().BlinkAt)
}

// TestController_TimeoutsSurviveWraparound checks expiry across counter overflow.
func TestController_TimeoutsSurviveWraparound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	start := domain.Millis(math.MaxUint32 - 1000)

	r := newRig("1234")
	r.ctrl.Start(ctx, start)
	r.typeCode(start, "1234")

	r.ctrl.Update(ctx, start+domain.DoorOpenDuration-1)
	require.Equal(t, domain.StateOpen, r.ctrl.State())

	r.ctrl.Update(ctx, start+domain.DoorOpenDuration)
	require.Equal(t, domain.StateLocked, r.ctrl.State())
}

// TestController_IgnoresKeysUnlessLocked ensures no input is collected while open or in error.
func TestController_IgnoresKeysUnlessLocked(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := newRig("1234")
	r.ctrl.Start(ctx, 0)
	r.typeCode(0, "1234")

	require.False(t, r.ctrl.AcceptsInput())
	require.False(t, r.ctrl.HandleKey(ctx, 10, '5'))
	require.Zero(t, r.ctrl.BufferLen())

	r.ctrl.Update(ctx, domain.DoorOpenDuration)
	r.typeCode(domain.DoorOpenDuration, "0000")
	require.False(t, r.ctrl.HandleKey(ctx, domain.DoorOpenDuration+1, '1'))
	require.Equal(t, domain.StateError, r.ctrl.State())
}

// TestController_RejectsInvalidKeys ensures characters outside the alphabet never reach the buffer.
func TestController_RejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	r := newRig("1234")
	r.ctrl.Start(context.Background(), 0)

	require.False(t, r.ctrl.HandleKey(context.Background(), 0, domain.NoKey))
	require.False(t, r.ctrl.HandleKey(context.Background(), 0, 'x'))
	require.Zero(t, r.ctrl.BufferLen())
}

// TestController_PlaceholdersHideTheCode verifies each key draws one placeholder glyph on row 1.
func TestController_PlaceholdersHideTheCode(t *testing.T) {
	t.Parallel()

	r := newRig("1234")
	r.ctrl.Start(context.Background(), 0)
	r.typeCode(0, "987")

	require.Equal(t, 3, r.ctrl.BufferLen())
	require.Equal(t, []placedGlyph{
		{col: 6, row: 1, glyph: '*'},
		{col: 7, row: 1, glyph: '*'},
		{col: 8, row: 1, glyph: '*'},
	}, r.display.glyphs)
	require.Equal(t, domain.StateLocked, r.ctrl.State())
}

// TestController_LockedEntryClearsPartialInput ensures a partial code does not survive re-locking.
func TestController_LockedEntryClearsPartialInput(t *testing.T) {
	t.Parallel()

	r := newRig("1234")
	r.ctrl.Start(context.Background(), 0)
	r.typeCode(0, "12")
	require.Equal(t, 2, r.ctrl.BufferLen())

	r.ctrl.Start(context.Background(), 5)
	require.Zero(t, r.ctrl.BufferLen())
}

// TestController_WithMatcher ensures the comparison can be replaced.
func TestController_WithMatcher(t *testing.T) {
	t.Parallel()

	var calls int

	r := newRig("1234", WithMatcher(func(code, credential string) bool {
		calls++

		return MatchConstantTime(code, credential)
	}))
	r.ctrl.Start(context.Background(), 0)
	r.typeCode(0, "1234")

	require.Equal(t, 1, calls)
	require.Equal(t, domain.StateOpen, r.ctrl.State())
}
