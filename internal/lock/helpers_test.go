package lock

import (
	"context"

	domain "github.com/oshokin/keypad-lock/internal/domain/lock"
)

// fakeActuator remembers the last commanded position.
type fakeActuator struct {
	position domain.Position
	calls    int
}

func (a *fakeActuator) SetPosition(p domain.Position) {
	a.position = p
	a.calls++
}

// fakeIndicator remembers every value written.
type fakeIndicator struct {
	on      bool
	history []bool
}

func (i *fakeIndicator) Set(on bool) {
	i.on = on
	i.history = append(i.history, on)
}

// placedGlyph is a glyph written through Display.Put.
type placedGlyph struct {
	col, row int
	glyph    rune
}

// fakeDisplay keeps the last two lines and the glyphs drawn since.
type fakeDisplay struct {
	line1, line2 string
	glyphs       []placedGlyph
	shows        int
}

func (d *fakeDisplay) Show(line1, line2 string) {
	d.line1, d.line2 = line1, line2
	d.glyphs = nil
	d.shows++
}

func (d *fakeDisplay) Put(col, row int, glyph rune) {
	d.glyphs = append(d.glyphs, placedGlyph{col: col, row: row, glyph: glyph})
}

// staticCredential is a fixed credential.
type staticCredential string

func (s staticCredential) Credential() string {
	return string(s)
}

// fakeClock is a manually advanced tick counter.
type fakeClock struct {
	now domain.Millis
}

func (c *fakeClock) Now() domain.Millis {
	return c.now
}

func (c *fakeClock) Advance(ms domain.Millis) {
	c.now += ms
}

// fakeKeys is a queue of pending keys.
type fakeKeys struct {
	pending []domain.Key
	polls   int
}

func (k *fakeKeys) Poll() (domain.Key, bool) {
	k.polls++

	if len(k.pending) == 0 {
		return domain.NoKey, false
	}

	key := k.pending[0]
	k.pending = k.pending[1:]

	return key, true
}

func (k *fakeKeys) Type(code string) {
	for i := 0; i < len(code); i++ {
		k.pending = append(k.pending, domain.Key(code[i]))
	}
}

// countingRefresher counts how often it ran.
type countingRefresher struct {
	calls int
}

func (r *countingRefresher) Refresh(context.Context) {
	r.calls++
}

// rig bundles a controller with its fake sinks.
type rig struct {
	actuator *fakeActuator
	green    *fakeIndicator
	red      *fakeIndicator
	display  *fakeDisplay
	ctrl     *Controller
}

func newRig(credential string, opts ...Option) *rig {
	r := &rig{
		actuator: new(fakeActuator),
		green:    new(fakeIndicator),
		red:      new(fakeIndicator),
		display:  new(fakeDisplay),
	}

	r.ctrl = NewController(Outputs{
		Actuator: r.actuator,
		Green:    r.green,
		Red:      r.red,
		Display:  r.display,
	}, staticCredential(credential), opts...)

	return r
}

// typeCode feeds every character of code at tick now.
func (r *rig) typeCode(now domain.Millis, code string) {
	for i := 0; i < len(code); i++ {
		r.ctrl.HandleKey(context.Background(), now, domain.Key(code[i]))
	}
}
