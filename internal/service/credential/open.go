package credential

import (
	"context"
	"fmt"

	"github.com/oshokin/keypad-lock/internal/config"
	"github.com/oshokin/keypad-lock/internal/db"
	repo "github.com/oshokin/keypad-lock/internal/repository/credential"
)

// CloseFunc releases the resources held by a repository.
type CloseFunc func() error

// OpenRepository builds the repository selected by storage. The returned
// CloseFunc is never nil.
func OpenRepository(ctx context.Context, storage config.Storage) (repo.Repository, CloseFunc, error) {
	noop := func() error { return nil }

	switch storage.Driver {
	case config.DriverFile, "":
		return repo.NewFileRepository(storage.Path, storage.Namespace), noop, nil
	case config.DriverMemory:
		return repo.NewMemoryRepository(), noop, nil
	case config.DriverSQLite:
		conn, err := db.Open(ctx, storage.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("open credential database: %w", err)
		}

		worker := db.NewWorker(conn)

		closeFn := func() error {
			worker.Close()

			if err := conn.Close(); err != nil {
				return fmt.Errorf("close credential database: %w", err)
			}

			return nil
		}

		return repo.NewSQLiteRepository(conn, worker, storage.Namespace), closeFn, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", config.ErrUnknownDriver, storage.Driver)
	}
}

