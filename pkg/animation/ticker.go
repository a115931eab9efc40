// Package animation provides the timing primitives for animating clock
// hands.
//
// # Hand motion
//
// A [Func] maps a raw time value to the value a hand displays. [Sweep],
// [HardTick] and [SoftTick] cover continuous, discrete and eased motion;
// [PauseAtEnd] compresses a cycle so the hand can rest at the top.
//
//	pause, err := animation.PauseAtEnd(60, 2)
//	if err != nil {
//	    return err
//	}
//	seconds := animation.Compose(pause, animation.SoftTick)
//	angle := seconds(float64(now.Second())+float64(now.Nanosecond())/1e9) * 6
//
// # Frame loop
//
// [Ticker] is a self-rescheduling frame callback. Each frame runs to
// completion before the next one is scheduled, so callbacks never overlap.
package animation

import (
	"context"
	"sync"
	"time"
)

// FrameInterval is the default spacing between frames (60 frames per second).
const FrameInterval = time.Second / 60

// Ticker calls a callback once per frame while running.
//
// The callback receives the clock's current time. Tickers run until the
// context passed to Run is cancelled; there is no other stop signal.
type Ticker struct {
	callback func(now time.Time)
	clock    Clock
	interval time.Duration

	mu       sync.Mutex
	isActive bool
	start    time.Time
	frames   uint64
}

// NewTicker creates a new ticker with the given callback, the default clock
// and FrameInterval spacing.
func NewTicker(callback func(now time.Time)) *Ticker {
	return &Ticker{
		callback: callback,
		clock:    DefaultClock(),
		interval: FrameInterval,
	}
}

// WithClock sets the time source. It must be called before Run.
func (t *Ticker) WithClock(c Clock) *Ticker {
	if c != nil {
		t.clock = c
	}
	return t
}

// WithInterval sets the spacing between frames. Non-positive values keep
// the current interval. It must be called before Run.
func (t *Ticker) WithInterval(d time.Duration) *Ticker {
	if d > 0 {
		t.interval = d
	}
	return t
}

// Interval returns the spacing between frames.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Run issues the first frame immediately and then one frame per interval
// until ctx is done. Cancellation is the normal teardown path and returns
// nil.
func (t *Ticker) Run(ctx context.Context) error {
	t.mu.Lock()
	if t.isActive {
		t.mu.Unlock()
		return nil
	}
	t.isActive = true
	t.start = t.clock.Now()
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.isActive = false
		t.mu.Unlock()
	}()

	t.step(t.clock.Now())

	ticker := t.clock.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			// Read the clock rather than the tick value so a slow frame does
			// not draw a stale instant.
			t.step(t.clock.Now())
		}
	}
}

func (t *Ticker) step(now time.Time) {
	t.mu.Lock()
	t.frames++
	t.mu.Unlock()
	if t.callback != nil {
		t.callback(now)
	}
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isActive
}

// Elapsed returns the time since Run started.
func (t *Ticker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.isActive {
		return 0
	}
	return t.clock.Since(t.start)
}

// Frames returns the number of frames issued so far.
func (t *Ticker) Frames() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frames
}
