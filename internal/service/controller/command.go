package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/oshokin/keypad-lock/internal/config"
	"github.com/oshokin/keypad-lock/internal/device"
	domain "github.com/oshokin/keypad-lock/internal/domain/lock"
	"github.com/oshokin/keypad-lock/internal/lock"
	"github.com/oshokin/keypad-lock/internal/logger"
	repo "github.com/oshokin/keypad-lock/internal/repository/credential"
	"github.com/oshokin/keypad-lock/internal/service/credential"
	"github.com/oshokin/keypad-lock/internal/ui/panel"
	"github.com/oshokin/keypad-lock/internal/version"
)

// DefaultPanelLogFilename receives logs while the front panel owns the terminal.
const DefaultPanelLogFilename = "keypad-lock.log"

// Options controls the keypad-lock process.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// Headless reads keys from Input and logs the display instead of drawing the panel.
	Headless bool
	// Input is the headless key source. Nil means standard input.
	Input io.Reader
	// Panel overrides the simulated hardware.
	Panel *device.Panel
	// Clock overrides the tick counter.
	Clock lock.Clock
}

// watcher is implemented by repositories that can report external changes.
type watcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// Run starts the lock and blocks until ctx is canceled or the panel is closed.
func Run(ctx context.Context, opts *Options) error {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	level, ok := logger.ParseLogLevel(settings.LogLevel)
	logger.SetLevel(level)

	// The panel draws over stdout, so logs need somewhere else to go.
	logFile := settings.LogFile
	if logFile == "" && !opts.Headless {
		logFile = DefaultPanelLogFilename
	}

	if logFile != "" {
		l, closer, openErr := logger.OpenFile(logFile)
		if openErr != nil {
			return openErr
		}

		defer func() { _ = closer.Close() }()

		ctx = logger.ToContext(ctx, l)
	}

	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "keypad-lock")

	if !ok {
		logger.WarnKV(ctx, "Unknown log level, using info", "log_level", settings.LogLevel)
	}

	repository, closeRepository, err := credential.OpenRepository(ctx, settings.Storage)
	if err != nil {
		logger.WarnKV(ctx, "Credential storage unavailable", "driver", settings.Storage.Driver, "error", err)
	}

	defer func() {
		if closeErr := closeRepository(); closeErr != nil {
			logger.ErrorKV(ctx, "Failed to close credential storage", "error", closeErr)
		}
	}()

	store := credential.NewStore(repository, credential.WithQueueSize(settings.Storage.QueueSize))
	store.Load(ctx)
	store.Start(ctx)

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.ErrorKV(ctx, "Credential writes failed", "error", closeErr)
		}
	}()

	if settings.WatchCredential {
		watchCredential(ctx, repository, store)
	}

	hw := opts.Panel
	if hw == nil {
		hw = device.NewPanel()
	}

	clock := opts.Clock
	if clock == nil {
		clock = lock.NewSystemClock()
	}

	match := lock.MatchExact
	if settings.ConstantTimeMatch {
		match = lock.MatchConstantTime
	}

	controller := lock.NewController(lock.Outputs{
		Actuator: hw.Servo,
		Green:    hw.Green,
		Red:      hw.Red,
		Display:  hw.LCD,
	}, store, lock.WithMatcher(match))

	loop := lock.NewLoop(controller, hw.Keypad, clock, lock.WithRefresher(store))

	logger.InfoKV(ctx, "Keypad lock starting",
		"version", version.Short(),
		"driver", settings.Storage.Driver,
		"degraded", store.Degraded(),
		"headless", opts.Headless,
	)

	// The hook goes in before the loop draws the first prompt.
	if opts.Headless {
		hw.LCD.OnChange(func(lines [device.LCDRows]string) {
			logger.InfoKV(ctx, "Display", "line1", lines[0], "line2", lines[1])
		})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return loop.Run(gctx, settings.TickInterval)
	})

	if opts.Headless {
		input := opts.Input
		if input == nil {
			input = os.Stdin
		}

		// Reads block without a way to cancel them, so the feeder stays out of the group.
		go feedKeys(ctx, input, hw.Keypad)
	} else {
		g.Go(func() error {
			defer cancel()

			return panel.Run(gctx, hw)
		})
	}

	if err = g.Wait(); err != nil {
		return err
	}

	logger.Info(ctx, "Keypad lock stopped")

	return nil
}

func watchCredential(ctx context.Context, repository repo.Repository, store *credential.Store) {
	w, ok := repository.(watcher)
	if !ok {
		logger.Warn(ctx, "Credential watching is only supported by the file driver")

		return
	}

	if err := w.Watch(ctx, func() { store.Reload(ctx) }); err != nil {
		logger.WarnKV(ctx, "Failed to watch credential", "error", err)

		return
	}

	logger.Info(ctx, "Watching credential for changes")
}

// feedKeys presses every keypad character read from r until r is exhausted
// or ctx is canceled. Other characters are skipped.
func feedKeys(ctx context.Context, r io.Reader, keypad *device.Keypad) {
	reader := bufio.NewReader(r)

	for ctx.Err() == nil {
		ch, _, err := reader.ReadRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.WarnKV(ctx, "Key input failed", "error", err)
			}

			logger.Debug(ctx, "Key input closed")

			return
		}

		k, ok := domain.ParseKey(ch)
		if !ok {
			continue
		}

		if !keypad.Press(k) {
			logger.Warn(ctx, "Keypad queue full, key dropped")

			continue
		}

		logger.Debug(ctx, "Key queued")
	}
}
