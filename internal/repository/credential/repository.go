package credential

import (
	"context"
	"errors"
)

// Key is the logical key the credential is stored under inside a namespace.
const Key = "credential"

var (
	// ErrNotFound is returned when no credential was stored yet.
	ErrNotFound = errors.New("credential not found")
	// ErrMalformed is returned when stored data cannot be decoded.
	ErrMalformed = errors.New("stored credential is malformed")
)

// Repository defines persistence operations for the credential.
type Repository interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, value string) error
}
