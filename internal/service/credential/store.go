package credential

import (
	"context"
	"errors"
	"fmt"
	"sync"

	domain "github.com/oshokin/keypad-lock/internal/domain/lock"
	"github.com/oshokin/keypad-lock/internal/logger"
	repo "github.com/oshokin/keypad-lock/internal/repository/credential"
)

// DefaultQueueSize is the persistence queue capacity used when none is given.
const DefaultQueueSize = 4

// Option configures a Store.
type Option func(*Store)

// WithFactoryDefault overrides the credential used when nothing is stored.
func WithFactoryDefault(value string) Option {
	return func(s *Store) {
		s.factoryDefault = value
	}
}

// WithQueueSize sets the persistence queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Store) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// Store owns the active credential. Credential, Save and Refresh belong to
// the loop goroutine; Reload may run anywhere.
type Store struct {
	// repo persists the credential; nil means no persistence at all.
	repo repo.Repository
	// factoryDefault is used when nothing usable is stored.
	factoryDefault string
	// queueSize bounds pending writes.
	queueSize int
	// current is the active credential.
	current string
	// degraded is set when the session runs without working persistence.
	degraded bool

	// writes carries credentials to the writer goroutine.
	writes chan string
	// reloads hands reloaded credentials to the loop goroutine.
	reloads chan string
	// done is closed when the writer goroutine exits.
	done chan struct{}

	// errMu protects writeErr.
	errMu sync.Mutex
	// writeErr collects failed writes until Close.
	writeErr error
}

// NewStore creates a store over repository r. r may be nil.
func NewStore(r repo.Repository, opts ...Option) *Store {
	s := &Store{
		repo:           r,
		factoryDefault: domain.DefaultCredential,
		queueSize:      DefaultQueueSize,
		reloads:        make(chan string, 1),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.current = s.factoryDefault

	return s
}

// Load makes the persisted credential active and returns it. When nothing
// usable is stored the factory default is persisted and returned; when the
// repository fails the factory default is used for the session.
func (s *Store) Load(ctx context.Context) string {
	if s.repo == nil {
		s.degrade(ctx, nil)

		return s.current
	}

	value, err := s.repo.Load(ctx)

	switch {
	case err == nil && domain.WellFormedCredential(value):
		s.current = value

		logger.Debug(ctx, "Credential loaded")

		return s.current
	case err == nil:
		logger.WarnKV(ctx, "Stored credential is malformed, restoring factory default", "length", len(value))
	case errors.Is(err, repo.ErrNotFound):
		logger.Info(ctx, "No stored credential, initialising factory default")
	case errors.Is(err, repo.ErrMalformed):
		logger.WarnKV(ctx, "Stored credential is malformed, restoring factory default", "error", err)
	default:
		s.degrade(ctx, err)

		return s.current
	}

	s.current = s.factoryDefault

	if err = s.repo.Save(ctx, s.current); err != nil {
		s.degrade(ctx, err)
	}

	return s.current
}

// Credential returns the active credential.
func (s *Store) Credential() string {
	return s.current
}

// Degraded reports whether the session runs on the in-memory default.
func (s *Store) Degraded() bool {
	return s.degraded
}

// Start launches the writer goroutine. Writes use a context detached from
// ctx's cancellation so queued credentials still reach storage on shutdown.
func (s *Store) Start(ctx context.Context) {
	if s.writes != nil {
		return
	}

	s.writes = make(chan string, s.queueSize)
	s.done = make(chan struct{})

	go s.writer(context.WithoutCancel(ctx))
}

// Save makes value the active credential and queues it for persistence. It
// never blocks: when the queue is full the oldest pending write is replaced.
// Save does not validate value.
func (s *Store) Save(ctx context.Context, value string) {
	s.current = value

	if s.repo == nil || s.writes == nil {
		logger.Warn(ctx, "Credential changed in memory only")

		return
	}

	for {
		select {
		case s.writes <- value:
			return
		default:
		}

		select {
		case <-s.writes:
			logger.Warn(ctx, "Credential write superseded before it was persisted")
		default:
		}
	}
}

// Close waits for queued writes and stops the writer goroutine. It returns
// the errors of every failed write. Later Saves only change memory.
func (s *Store) Close() error {
	if s.writes == nil {
		return nil
	}

	close(s.writes)
	<-s.done
	s.writes = nil

	s.errMu.Lock()
	defer s.errMu.Unlock()

	return s.writeErr
}

// Reload reads the repository and hands a usable credential to the loop. It
// may run on any goroutine and blocks only on the repository.
func (s *Store) Reload(ctx context.Context) {
	if s.repo == nil {
		return
	}

	value, err := s.repo.Load(ctx)
	if err != nil || !domain.WellFormedCredential(value) {
		logger.WarnKV(ctx, "Credential reload ignored", "error", err)

		return
	}

	// Keep only the newest value in the mailbox.
	for {
		select {
		case s.reloads <- value:
			return
		default:
		}

		select {
		case <-s.reloads:
		default:
		}
	}
}

// Refresh applies a pending reload. It never blocks.
func (s *Store) Refresh(ctx context.Context) {
	select {
	case value := <-s.reloads:
		if value != s.current {
			s.current = value
			s.degraded = false

			logger.Info(ctx, "Credential reloaded")
		}
	default:
	}
}

func (s *Store) writer(ctx context.Context) {
	defer close(s.done)

	for value := range s.writes {
		if err := s.repo.Save(ctx, value); err != nil {
			logger.ErrorKV(ctx, "Failed to persist credential", "error", err)

			s.errMu.Lock()
			s.writeErr = errors.Join(s.writeErr, fmt.Errorf("persist credential: %w", err))
			s.errMu.Unlock()

			continue
		}

		logger.Debug(ctx, "Credential persisted")
	}
}

func (s *Store) degrade(ctx context.Context, err error) {
	s.current = s.factoryDefault
	s.degraded = true

	logger.WarnKV(ctx, "Credential storage unavailable, using factory default for this session", "error", err)
}
