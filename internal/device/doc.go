// Package device models the lock hardware: the latch servo, the two
// indicator LEDs, the 16x2 character LCD and the 4x4 matrix keypad.
//
// Every device is safe for concurrent use so a front panel can render it
// while the poll loop drives it.
package device
