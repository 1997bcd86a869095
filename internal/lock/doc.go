// Package lock implements the keypad lock controller.
//
// A Controller owns the state machine, the input buffer and the blink timer.
// A Loop drives it: every tick reads at most one key while the lock is
// locked, then evaluates the time-based transitions of the current state.
// Nothing in a tick blocks; all timeouts are elapsed-time comparisons against
// a wrapping millisecond Clock.
package lock
