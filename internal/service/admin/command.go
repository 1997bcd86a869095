package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/keypad-lock/internal/config"
	domain "github.com/oshokin/keypad-lock/internal/domain/lock"
	"github.com/oshokin/keypad-lock/internal/logger"
	"github.com/oshokin/keypad-lock/internal/service/credential"
)

// Options controls the passwd command.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// Code is the new credential.
	Code string
}

// ErrMemoryStorage is returned when the configured storage cannot keep a
// credential beyond the current process.
var ErrMemoryStorage = errors.New("memory storage does not persist credentials")

// Run validates the new code and persists it through the configured storage.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "passwd")

	if err := domain.ValidateCode(opts.Code); err != nil {
		return fmt.Errorf("invalid code: %w", err)
	}

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if settings.Storage.Driver == config.DriverMemory {
		return ErrMemoryStorage
	}

	repository, closeRepository, err := credential.OpenRepository(ctx, settings.Storage)
	if err != nil {
		return fmt.Errorf("open credential storage: %w", err)
	}

	defer func() {
		if closeErr := closeRepository(); closeErr != nil {
			logger.ErrorKV(ctx, "Failed to close credential storage", "error", closeErr)
		}
	}()

	store := credential.NewStore(repository)
	store.Start(ctx)
	store.Save(ctx, opts.Code)

	if err = store.Close(); err != nil {
		return err
	}

	kvs := []any{
		"driver", settings.Storage.Driver,
		"namespace", settings.Storage.Namespace,
	}

	// The audit entry is best effort; the credential is already stored.
	if actor, actorErr := DetectActor(); actorErr == nil {
		kvs = append(kvs, "hostname", actor.Hostname, "username", actor.Username)
	}

	logger.InfoKV(ctx, "Credential updated", kvs...)

	return nil
}
