package lock

import (
	"context"
	"time"

	domain "github.com/oshokin/keypad-lock/internal/domain/lock"
	"github.com/oshokin/keypad-lock/internal/logger"
)

// maxDiscard bounds the keys dropped per tick so a flooding source cannot
// stall the loop.
const maxDiscard = 64

// KeySource returns at most one pending key per call without blocking.
type KeySource interface {
	Poll() (domain.Key, bool)
}

// Refresher applies work handed over from other goroutines. It runs on the
// loop goroutine at the start of every tick and must not block.
type Refresher interface {
	Refresh(ctx context.Context)
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithRefresher adds r to the work done at the start of every tick.
func WithRefresher(r Refresher) LoopOption {
	return func(l *Loop) {
		if r != nil {
			l.refreshers = append(l.refreshers, r)
		}
	}
}

// Loop is the poll loop driving a Controller.
type Loop struct {
	// controller is the state machine being driven.
	controller *Controller
	// keys is the keypad.
	keys KeySource
	// clock supplies the tick counter.
	clock Clock
	// refreshers run before input is read.
	refreshers []Refresher
}

// NewLoop creates a poll loop.
func NewLoop(controller *Controller, keys KeySource, clock Clock, opts ...LoopOption) *Loop {
	l := &Loop{
		controller: controller,
		keys:       keys,
		clock:      clock,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Start puts the controller into its initial state.
func (l *Loop) Start(ctx context.Context) {
	l.controller.Start(ctx, l.clock.Now())
}

// Tick runs one iteration: keypad input while locked, then the time-based
// checks of whatever state is active. Keys pressed while the lock is open or
// showing a denial are discarded.
func (l *Loop) Tick(ctx context.Context) {
	for _, r := range l.refreshers {
		r.Refresh(ctx)
	}

	now := l.clock.Now()

	if l.controller.AcceptsInput() {
		if k, ok := l.keys.Poll(); ok {
			l.controller.HandleKey(ctx, now, k)
		}
	} else {
		l.discardKeys(ctx)
	}

	l.controller.Update(ctx, now)
}

// Run starts the controller and ticks every interval until ctx is canceled.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	ctx = logger.WithName(ctx, "loop")

	l.Start(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.InfoKV(ctx, "Poll loop started", "interval", interval.String())

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Poll loop stopped")

			return nil
		case <-ticker.C:
			l.Tick(ctx)
		}
	}
}

// discardKeys drops every key pending right now. Keys pressed meanwhile are
// left for the next tick.
func (l *Loop) discardKeys(ctx context.Context) {
	dropped := 0

	for i := 0; i < maxDiscard; i++ {
		if _, ok := l.keys.Poll(); !ok {
			break
		}

		dropped++
	}

	if dropped > 0 {
		logger.DebugKV(ctx, "Keys ignored while busy", "count", dropped)
	}
}
