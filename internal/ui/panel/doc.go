// Package panel renders the simulated front panel of the lock in the
// terminal and turns key presses into keypad input.
package panel
