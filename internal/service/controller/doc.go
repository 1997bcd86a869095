// Package controller runs the keypad lock: it loads settings, opens
// credential storage, builds the simulated front panel and drives the poll
// loop until the context is canceled or the user closes the panel.
package controller
