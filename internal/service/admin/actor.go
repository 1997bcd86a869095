package admin

import (
	"fmt"
	"os"
	"os/user"
)

// Actor identifies who changed the credential.
type Actor struct {
	// Hostname is the machine the command ran on.
	Hostname string
	// Username is the system user who ran it.
	Username string
}

// DetectActor gathers host and user information for the audit log.
func DetectActor() (*Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &Actor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}
