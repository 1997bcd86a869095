package lock

import (
	"context"

	domain "github.com/oshokin/keypad-lock/internal/domain/lock"
	"github.com/oshokin/keypad-lock/internal/logger"
)

// Actuator moves the door latch. It has no feedback path.
type Actuator interface {
	SetPosition(p domain.Position)
}

// Indicator is a single on/off lamp.
type Indicator interface {
	Set(on bool)
}

// Display is a two-line character screen.
type Display interface {
	// Show clears the screen and writes both lines.
	Show(line1, line2 string)
	// Put writes a single glyph at column col of row row.
	Put(col, row int, glyph rune)
}

// CredentialSource returns the active credential.
type CredentialSource interface {
	Credential() string
}

// Outputs groups the sinks driven by the controller.
type Outputs struct {
	// Actuator is the door latch.
	Actuator Actuator
	// Green is lit while the door is open.
	Green Indicator
	// Red blinks while the denial message is shown.
	Red Indicator
	// Display shows prompts, results and typed placeholders.
	Display Display
}

// StateContext is the timing state of the controller.
type StateContext struct {
	// State is the active state.
	State domain.State
	// EnteredAt is the tick at which State was entered.
	EnteredAt domain.Millis
	// BlinkAt is the tick of the last red indicator toggle.
	BlinkAt domain.Millis
	// BlinkOn is the current red indicator phase in the error state.
	BlinkOn bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithMatcher replaces the code comparison.
func WithMatcher(match MatchFunc) Option {
	return func(c *Controller) {
		if match != nil {
			c.match = match
		}
	}
}

// Controller is the lock state machine. It is not safe for concurrent use;
// a single loop goroutine owns it.
type Controller struct {
	// outputs are the hardware sinks.
	outputs Outputs
	// credential supplies the password codes are checked against.
	credential CredentialSource
	// match compares a code with the credential.
	match MatchFunc
	// buffer collects typed keys while locked.
	buffer InputBuffer
	// sc holds the active state and its timers.
	sc StateContext
}

// NewController creates a controller. Call Start before the first tick.
func NewController(outputs Outputs, credential CredentialSource, opts ...Option) *Controller {
	c := &Controller{
		outputs:    outputs,
		credential: credential,
		match:      MatchExact,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start enters the initial locked state.
func (c *Controller) Start(ctx context.Context, now domain.Millis) {
	c.enterLocked(ctx, now)
}

// State returns the active state.
func (c *Controller) State() domain.State {
	return c.sc.State
}

// Context returns a copy of the timing state.
func (c *Controller) Context() StateContext {
	return c.sc
}

// BufferLen returns the number of keys typed so far.
func (c *Controller) BufferLen() int {
	return c.buffer.Len()
}

// AcceptsInput reports whether keypad input is collected right now.
func (c *Controller) AcceptsInput() bool {
	return c.sc.State.AcceptsInput()
}

// HandleKey feeds one key to the input buffer. It returns false when the key
// was ignored because the lock is not accepting input. A completed code is
// checked immediately and the buffer is reset.
func (c *Controller) HandleKey(ctx context.Context, now domain.Millis, k domain.Key) bool {
	if !c.AcceptsInput() || !k.Valid() {
		return false
	}

	status, code := c.buffer.Accept(k)
	c.outputs.Display.Put(domain.PlaceholderColumn(c.buffer.Len()), 1, domain.Placeholder)

	logger.DebugKV(ctx, "Key accepted", "length", c.buffer.Len())

	if status == Complete {
		c.submit(ctx, now, code)
		c.buffer.Reset()
	}

	return true
}

// Update runs the time-based checks of the active state: the door-open
// timeout, the error timeout and the red indicator blink.
func (c *Controller) Update(ctx context.Context, now domain.Millis) {
	switch c.sc.State {
	case domain.StateOpen:
		if domain.Expired(now, c.sc.EnteredAt, domain.DoorOpenDuration) {
			c.enterLocked(ctx, now)
		}
	case domain.StateError:
		if domain.Expired(now, c.sc.EnteredAt, domain.ErrorDisplayDuration) {
			c.enterLocked(ctx, now)

			return
		}

		if domain.Expired(now, c.sc.BlinkAt, domain.BlinkInterval) {
			c.sc.BlinkAt = now
			c.sc.BlinkOn = !c.sc.BlinkOn
			c.outputs.Red.Set(c.sc.BlinkOn)
		}
	case domain.StateLocked:
		// Nothing expires while locked.
	}
}

func (c *Controller) submit(ctx context.Context, now domain.Millis, code string) {
	if c.match(code, c.credential.Credential()) {
		logger.Info(ctx, "Access granted")
		c.enterOpen(ctx, now)

		return
	}

	logger.Info(ctx, "Access denied")
	c.enterError(ctx, now)
}

func (c *Controller) enterLocked(ctx context.Context, now domain.Millis) {
	c.transition(ctx, StateContext{
		State:     domain.StateLocked,
		EnteredAt: now,
	})
	c.buffer.Reset()
}

func (c *Controller) enterOpen(ctx context.Context, now domain.Millis) {
	c.transition(ctx, StateContext{
		State:     domain.StateOpen,
		EnteredAt: now,
	})
}

func (c *Controller) enterError(ctx context.Context, now domain.Millis) {
	c.transition(ctx, StateContext{
		State:     domain.StateError,
		EnteredAt: now,
		BlinkAt:   now,
	})
}

// transition replaces the whole state context and applies the state's outputs.
func (c *Controller) transition(ctx context.Context, next StateContext) {
	prev := c.sc.State
	c.sc = next

	out := domain.OutputsFor(next.State, next.BlinkOn)
	c.outputs.Actuator.SetPosition(out.Position)
	c.outputs.Green.Set(out.Green)
	c.outputs.Red.Set(out.Red)
	c.outputs.Display.Show(out.Line1, out.Line2)

	logger.DebugKV(ctx, "Lock state changed", "from", prev, "to", next.State, "at", next.EnteredAt)
}
