package clockface

import (
	stderrors "errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-drift/clockface/pkg/animation"
	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/rendering"
	"github.com/sirupsen/logrus"
)

// ErrNotAttached is returned when drawing before Attach.
var ErrNotAttached = stderrors.New("clock face is not attached to a surface")

// State is the renderer lifecycle state.
type State int

const (
	// StateUninitialized means no surface is attached yet.
	StateUninitialized State = iota
	// StateRunning means frames can be drawn.
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMeasurer sets the text measurer used to center numerals and brand text.
// It defaults to the shared rendering.FontManager.
func WithMeasurer(m rendering.TextMeasurer) Option {
	return func(r *Renderer) {
		if m != nil {
			r.measurer = m
		}
	}
}

// WithClock sets the clock read by Attach and Tick.
func WithClock(c animation.Clock) Option {
	return func(r *Renderer) {
		if c != nil {
			r.clock = c
		}
	}
}

// Renderer draws an analog clock face onto a rendering.Surface.
//
// All methods are safe for concurrent use. Listeners run on the goroutine
// that drew the frame, after the renderer lock is released, so they may call
// back into the renderer.
type Renderer struct {
	mu sync.Mutex

	cfg    Config
	motion animation.Func
	state  State

	surface rendering.Surface
	size    float64
	radius  float64

	measurer rendering.TextMeasurer
	clock    animation.Clock

	recorder rendering.PictureRecorder
	dial     *rendering.DisplayList

	lastSecond time.Time
	alarmCount int
	alarmDay   int

	secondListeners listeners[EverySecondEvent]
	alarmListeners  listeners[AlarmEvent]
}

// New creates a renderer for cfg. The configuration is validated up front.
func New(cfg Config, opts ...Option) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	motion, _ := cfg.secondMotion()
	r := &Renderer{
		cfg:    cfg.Clone(),
		motion: motion,
		clock:  animation.DefaultClock(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.measurer == nil {
		if fm := rendering.DefaultFontManager(); fm != nil {
			r.measurer = fm
		} else {
			r.measurer = rendering.MeasureFunc(func(string, rendering.Font) float64 { return 0 })
		}
	}
	return r, nil
}

// State returns the lifecycle state.
func (r *Renderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Config returns a copy of the active configuration.
func (r *Renderer) Config() Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg.Clone()
}

// Radius is half the surface size once attached, 0 before.
func (r *Renderer) Radius() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.radius
}

// Attach binds the renderer to surface, sizes it, centers the origin and
// draws the first frame. Attaching again rebinds to the new surface.
func (r *Renderer) Attach(surface rendering.Surface) error {
	if surface == nil {
		return &errors.ClockError{
			Op:   "clockface.Attach",
			Kind: errors.KindConfig,
			Err:  stderrors.New("surface is nil"),
		}
	}
	r.mu.Lock()
	r.surface = surface
	r.resizeLocked()
	r.state = StateRunning
	size := r.size
	now := r.clock.Now()
	r.mu.Unlock()

	logrus.WithField("size", size).Debug("clock face attached")
	return r.Frame(now)
}

// resizeLocked sizes the surface to the configured size and moves the
// origin to its center.
func (r *Renderer) resizeLocked() {
	r.size = r.cfg.Size
	r.radius = r.size / 2
	r.surface.Resize(rendering.SquareSize(r.size))
	r.surface.Canvas().Translate(r.radius, r.radius)
	r.dial = nil
}

// SetConfig replaces the configuration. A running renderer resizes its
// surface when the size changed; the next frame uses the new values.
// Changing the alarm time re-arms the alarm.
func (r *Renderer) SetConfig(cfg Config) error {
	return r.update(func(c *Config) error {
		*c = cfg.Clone()
		return nil
	})
}

// update applies fn to a copy of the configuration and installs the result,
// all under the renderer lock, so concurrent updates never overwrite each
// other. fn must not call back into r.
func (r *Renderer) update(fn func(*Config) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg := r.cfg.Clone()
	if err := fn(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	motion, _ := cfg.secondMotion()

	if !sameAlarm(r.cfg.Alarm, cfg.Alarm) {
		r.alarmCount = 0
	}
	r.cfg = cfg
	r.motion = motion
	r.dial = nil
	if r.state == StateRunning && r.size != r.cfg.Size {
		r.resizeLocked()
	}
	return nil
}

func sameAlarm(a, b *AlarmTime) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Update applies fn to a copy of the configuration and installs the result.
// fn runs under the renderer lock and must not call back into r.
func (r *Renderer) Update(fn func(*Config)) error {
	return r.update(func(c *Config) error {
		fn(c)
		return nil
	})
}

// SetAttribute applies a single string attribute.
func (r *Renderer) SetAttribute(name, value string) error {
	return r.update(func(c *Config) error {
		return c.SetAttribute(name, value)
	})
}

// SetAttributes applies several attributes in name order as one update.
// Nothing changes when any of them is rejected.
func (r *Renderer) SetAttributes(attrs map[string]string) error {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return r.update(func(c *Config) error {
		for _, name := range names {
			if err := c.SetAttribute(name, attrs[name]); err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveAttribute restores a single attribute to its default.
func (r *Renderer) RemoveAttribute(name string) error {
	return r.update(func(c *Config) error {
		return c.RemoveAttribute(name)
	})
}

// ResetAlarm re-arms the alarm so it fires again the next time the
// displayed time is at or past it.
func (r *Renderer) ResetAlarm() {
	r.mu.Lock()
	r.alarmCount = 0
	r.mu.Unlock()
}

// AddEverySecondListener registers fn for second boundaries. The returned
// function unregisters it.
func (r *Renderer) AddEverySecondListener(fn func(EverySecondEvent)) func() {
	r.mu.Lock()
	id := r.secondListeners.add(fn)
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		r.secondListeners.remove(id)
		r.mu.Unlock()
	}
}

// AddAlarmListener registers fn for the alarm. The returned function
// unregisters it.
func (r *Renderer) AddAlarmListener(fn func(AlarmEvent)) func() {
	r.mu.Lock()
	id := r.alarmListeners.add(fn)
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		r.alarmListeners.remove(id)
		r.mu.Unlock()
	}
}

// View calls fn with the attached surface while holding the renderer lock,
// so fn never observes a half-drawn frame or a resize in progress. It
// returns ErrNotAttached before Attach. fn must not call back into r.
func (r *Renderer) View(fn func(rendering.Surface)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRunning {
		return ErrNotAttached
	}
	fn(r.surface)
	return nil
}

// Tick draws a frame at the renderer clock's current time.
func (r *Renderer) Tick() error {
	return r.Frame(r.clock.Now())
}

// Frame draws the clock for wall-clock time now and dispatches any events
// the frame produced. A panic while drawing propagates to the caller with
// the renderer lock released, so the next frame can run.
func (r *Renderer) Frame(now time.Time) error {
	second, alarm, secondFns, alarmFns, err := r.frame(now)
	if err != nil {
		return err
	}
	for _, fn := range secondFns {
		fn(*second)
	}
	for _, fn := range alarmFns {
		fn(*alarm)
	}
	return nil
}

// frame draws under the lock and collects the listeners to notify.
func (r *Renderer) frame(now time.Time) (second *EverySecondEvent, alarm *AlarmEvent, secondFns []func(EverySecondEvent), alarmFns []func(AlarmEvent), err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRunning {
		return nil, nil, nil, nil, &errors.ClockError{Op: "clockface.Frame", Kind: errors.KindRender, Err: ErrNotAttached}
	}
	display := r.cfg.Offset.Apply(now)
	r.drawLocked(display)

	if s := display.Truncate(time.Second); !s.Equal(r.lastSecond) {
		r.lastSecond = s
		second = &EverySecondEvent{Date: display, Seconds: display.Second()}
		secondFns = r.secondListeners.snapshot()
	}
	if alarm = r.checkAlarmLocked(display); alarm != nil {
		alarmFns = r.alarmListeners.snapshot()
	}
	return second, alarm, secondFns, alarmFns, nil
}

// checkAlarmLocked advances the saturating alarm counter. The alarm fires
// only on the frame where the counter becomes 1.
func (r *Renderer) checkAlarmLocked(display time.Time) *AlarmEvent {
	a := r.cfg.Alarm
	if a == nil {
		return nil
	}
	if r.cfg.AlarmRearmDaily {
		day := display.Year()*1000 + display.YearDay()
		if day != r.alarmDay {
			r.alarmDay = day
			r.alarmCount = 0
		}
	}
	if secondsOfDay(display) < a.SecondsOfDay() {
		return nil
	}
	if r.alarmCount < 2 {
		r.alarmCount++
	}
	if r.alarmCount != 1 {
		return nil
	}
	logrus.WithField("alarm", a.String()).Info("alarm reached")
	return &AlarmEvent{Date: display}
}

func (r *Renderer) drawLocked(display time.Time) {
	canvas := r.surface.Canvas()
	canvas.Clear(rendering.ColorTransparent)

	if r.dial == nil {
		dial, complete := r.recordDial()
		dial.Paint(canvas)
		if complete {
			r.dial = dial
		}
	} else {
		r.dial.Paint(canvas)
	}

	if a := r.cfg.Alarm; a != nil {
		errors.Guard("clockface.alarmHand", func() {
			r.paintAlarmHand(canvas, a.Positions())
		})
	}
	r.paintHands(canvas, anglesFor(PositionsAt(display), r.cfg.TickingMinutes, r.cfg.SweepingSeconds, r.motion))
}
