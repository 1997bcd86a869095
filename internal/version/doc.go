// Package version exposes build metadata of keypad-lock.
//
// Version, Commit and BuildTime are injected with -ldflags at build time.
// Short and Full render them for the version command and startup logs.
package version
