package version

import "fmt"

// Name is the program name shown in version output.
const Name = "keypad-lock"

var (
	// Version is the lock firmware release, set with -ldflags "-X ...version.Version=...".
	Version = "0.1.0"
	// Commit is the short git SHA of the build, "none" for local builds.
	Commit = "none"
	// BuildTime is the UTC build timestamp, "unknown" for local builds.
	BuildTime = "unknown"
)

// Short returns the release alone, as logged when the lock starts.
func Short() string {
	return Version
}

// Full returns the line printed by the version command.
func Full() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", Name, Version, Commit, BuildTime)
}
