// Package admin implements the administrative credential update used by the
// passwd command.
package admin
