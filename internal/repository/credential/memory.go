package credential

import (
	"context"
	"sync"
)

// MemoryRepository keeps the credential in process memory only.
type MemoryRepository struct {
	mu    sync.Mutex
	value string
	set   bool
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return new(MemoryRepository)
}

// Load returns the saved credential or ErrNotFound.
func (r *MemoryRepository) Load(context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.set {
		return "", ErrNotFound
	}

	return r.value, nil
}

// Save replaces the credential.
func (r *MemoryRepository) Save(_ context.Context, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.value, r.set = value, true

	return nil
}
