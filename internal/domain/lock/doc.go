// Package lock contains the core domain types of the keypad door lock.
//
// It defines the lock State, the keypad Key alphabet, the latch Position,
// the millisecond tick counter with wraparound-safe elapsed arithmetic and
// the fixed timing constants. OutputsFor maps every state to the outputs the
// hardware must show, so actuator and indicator values never depend on how a
// state was reached.
package lock
