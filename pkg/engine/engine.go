// Package engine owns the frame loop that drives a clock face renderer.
package engine

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/go-drift/clockface/pkg/animation"
	"github.com/go-drift/clockface/pkg/clockface"
	"github.com/go-drift/clockface/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrNotRunning is returned by Run when the renderer has no surface.
var ErrNotRunning = stderrors.New("renderer is not attached to a surface")

// Options configures an Engine. Zero values select defaults.
type Options struct {
	// Clock drives frame timing. Defaults to animation.DefaultClock().
	Clock animation.Clock
	// Interval between frames. Defaults to animation.FrameInterval.
	Interval time.Duration
	// Stats receives frame metrics. Defaults to a fresh, unregistered Stats.
	Stats *Stats
	// TraceSamples is the frame trace capacity. Defaults to 240.
	TraceSamples int
	// AfterFrame runs after every frame that completed without panicking.
	// The CLI uses it to flush the raster surface to disk.
	AfterFrame func(now time.Time)
}

// Engine runs frames on a clockface.Renderer until its context ends.
type Engine struct {
	renderer   *clockface.Renderer
	clock      animation.Clock
	interval   time.Duration
	stats      *Stats
	trace      *FrameTraceBuffer
	afterFrame func(time.Time)

	// per-frame event flags, written by listeners during Frame
	mu          sync.Mutex
	sawSecond   bool
	sawAlarm    bool
	unsubscribe []func()
}

// New wires an engine to renderer and subscribes to its events for metrics.
func New(renderer *clockface.Renderer, opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = animation.DefaultClock()
	}
	if opts.Interval <= 0 {
		opts.Interval = animation.FrameInterval
	}
	if opts.Stats == nil {
		opts.Stats = NewStats()
	}
	e := &Engine{
		renderer:   renderer,
		clock:      opts.Clock,
		interval:   opts.Interval,
		stats:      opts.Stats,
		trace:      NewFrameTraceBuffer(opts.TraceSamples, opts.Interval),
		afterFrame: opts.AfterFrame,
	}
	e.unsubscribe = append(e.unsubscribe,
		renderer.AddEverySecondListener(func(clockface.EverySecondEvent) {
			e.stats.Events.WithLabelValues(EventEverySecond).Inc()
			e.mu.Lock()
			e.sawSecond = true
			e.mu.Unlock()
		}),
		renderer.AddAlarmListener(func(clockface.AlarmEvent) {
			e.stats.Events.WithLabelValues(EventAlarm).Inc()
			e.mu.Lock()
			e.sawAlarm = true
			e.mu.Unlock()
		}),
	)
	return e
}

// Stats returns the metrics the engine records into.
func (e *Engine) Stats() *Stats { return e.stats }

// Trace returns the recent frame samples.
func (e *Engine) Trace() *FrameTraceBuffer { return e.trace }

// Renderer returns the renderer being driven.
func (e *Engine) Renderer() *clockface.Renderer { return e.renderer }

// Close unsubscribes the engine's event listeners.
func (e *Engine) Close() {
	for _, fn := range e.unsubscribe {
		fn()
	}
	e.unsubscribe = nil
}

// Run draws frames until ctx is cancelled. It returns ErrNotRunning if the
// renderer was never attached and nil on cancellation.
func (e *Engine) Run(ctx context.Context) error {
	if e.renderer.State() != clockface.StateRunning {
		return ErrNotRunning
	}
	ticker := animation.NewTicker(e.Frame).WithClock(e.clock).WithInterval(e.interval)
	log.WithField("interval", e.interval).Debug("frame loop started")
	err := ticker.Run(ctx)
	log.WithField("frames", ticker.Frames()).Debug("frame loop stopped")
	return err
}

// Frame draws one frame at now. Errors and panics are reported and counted;
// they never stop the loop.
func (e *Engine) Frame(now time.Time) {
	start := time.Now()
	sample := FrameSample{Timestamp: now.UnixMilli()}
	defer func() {
		d := time.Since(start)
		sample.FrameMs = durationToMillis(d)
		e.mu.Lock()
		sample.Second, sample.Alarm = e.sawSecond, e.sawAlarm
		e.sawSecond, e.sawAlarm = false, false
		e.mu.Unlock()
		e.stats.Frames.Inc()
		e.stats.FrameDuration.Observe(d.Seconds())
		e.trace.Add(sample, d)
	}()
	defer e.recoverFromFramePanic(&sample)()

	if err := e.renderer.Frame(now); err != nil {
		e.stats.FrameErrors.Inc()
		sample.Error = err.Error()
		var ce *errors.ClockError
		if !stderrors.As(err, &ce) {
			ce = errors.New("engine.Frame", errors.KindRender, err)
		}
		errors.Report(ce)
		return
	}
	if e.afterFrame != nil {
		e.afterFrame(now)
	}
}

// recoverFromFramePanic returns a deferred function that reports a panic
// raised while drawing or dispatching events, so the next frame still runs.
func (e *Engine) recoverFromFramePanic(sample *FrameSample) func() {
	return func() {
		if r := recover(); r != nil {
			e.stats.FramePanics.Inc()
			err := &errors.PanicError{
				Op:         "engine.Frame",
				Value:      r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			}
			sample.Error = err.Error()
			errors.ReportPanic(err)
		}
	}
}
