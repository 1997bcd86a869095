package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/keypad-lock/internal/config"
	"github.com/oshokin/keypad-lock/internal/device"
	domain "github.com/oshokin/keypad-lock/internal/domain/lock"
	"github.com/oshokin/keypad-lock/internal/lock"
	"github.com/oshokin/keypad-lock/internal/service/credential"
)

// manualClock is a tick counter advanced by the test.
type manualClock struct {
	now domain.Millis
}

func (c *manualClock) Now() domain.Millis {
	return c.now
}

// station is a lock assembled from real components on a manual clock.
type station struct {
	t     *testing.T
	ctx   context.Context
	clock *manualClock
	panel *device.Panel
	store *credential.Store
	ctrl  *lock.Controller
	loop  *lock.Loop
}

// newStation opens storage, loads the credential and starts the loop at tick start.
func newStation(t *testing.T, storage config.Storage, start domain.Millis) *station {
	t.Helper()

	ctx := context.Background()

	r, closeRepository, err := credential.OpenRepository(ctx, storage)
	require.NoError(t, err)

	store := credential.NewStore(r, credential.WithQueueSize(storage.QueueSize))
	store.Load(ctx)
	store.Start(ctx)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
		require.NoError(t, closeRepository())
	})

	s := &station{
		t:     t,
		ctx:   ctx,
		clock: &manualClock{now: start},
		panel: device.NewPanel(),
		store: store,
	}

	s.ctrl = lock.NewController(lock.Outputs{
		Actuator: s.panel.Servo,
		Green:    s.panel.Green,
		Red:      s.panel.Red,
		Display:  s.panel.LCD,
	}, store)
	s.loop = lock.NewLoop(s.ctrl, s.panel.Keypad, s.clock, lock.WithRefresher(store))
	s.loop.Start(ctx)

	return s
}

// fileStorage returns file driver settings inside a temporary directory.
func fileStorage(t *testing.T) config.Storage {
	t.Helper()

	return config.Storage{
		Driver:    config.DriverFile,
		Path:      filepath.Join(t.TempDir(), config.DefaultCredentialFilename),
		Namespace: config.DefaultNamespace,
		QueueSize: config.DefaultQueueSize,
	}
}

// sqliteStorage returns sqlite driver settings inside a temporary directory.
func sqliteStorage(t *testing.T) config.Storage {
	t.Helper()

	return config.Storage{
		Driver:    config.DriverSQLite,
		Path:      filepath.Join(t.TempDir(), config.DefaultDatabaseFilename),
		Namespace: config.DefaultNamespace,
		QueueSize: config.DefaultQueueSize,
	}
}

// tick advances the clock by ms and runs one loop iteration.
func (s *station) tick(ms domain.Millis) {
	s.clock.now += ms
	s.loop.Tick(s.ctx)
}

// enter presses every key of code and runs one tick per key.
func (s *station) enter(code string) {
	s.t.Helper()

	for _, r := range code {
		require.True(s.t, s.panel.Keypad.Press(domain.Key(r)))
		s.tick(1)
	}
}

// requireState checks the controller state together with its observable outputs.
func (s *station) requireState(want domain.State) {
	s.t.Helper()

	require.Equal(s.t, want, s.ctrl.State())

	snap := s.panel.Snapshot()
	expected := domain.OutputsFor(want, s.ctrl.Context().BlinkOn)

	require.Equal(s.t, expected.Position, snap.Position)
	require.Equal(s.t, expected.Green, snap.Green)
	require.Equal(s.t, expected.Red, snap.Red)
	require.Equal(s.t, expected.Line1, s.panel.LCD.Lines()[0])
}
