package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Event label values for Stats.Events.
const (
	EventEverySecond = "everySecond"
	EventAlarm       = "alarm"
)

// Stats holds the prometheus metrics recorded by the frame loop.
type Stats struct {
	Frames        prometheus.Counter
	FrameErrors   prometheus.Counter
	FramePanics   prometheus.Counter
	FrameDuration prometheus.Histogram
	Events        *prometheus.CounterVec
}

// NewStats creates unregistered metrics.
func NewStats() *Stats {
	return &Stats{
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clockface",
			Name:      "frames_total",
			Help:      "Number of frames drawn.",
		}),
		FrameErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clockface",
			Name:      "frame_errors_total",
			Help:      "Number of frames the renderer rejected.",
		}),
		FramePanics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clockface",
			Name:      "frame_panics_total",
			Help:      "Number of frames that panicked and were recovered.",
		}),
		FrameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clockface",
			Name:      "frame_duration_seconds",
			Help:      "Time spent drawing a frame.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clockface",
			Name:      "events_total",
			Help:      "Number of events emitted, by kind.",
		}, []string{"kind"}),
	}
}

// Register registers the frame metrics with reg.
func (s *Stats) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{s.Frames, s.FrameErrors, s.FramePanics, s.FrameDuration, s.Events} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding s plus the Go runtime and process
// collectors.
func NewRegistry(s *Stats) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}
	if err := s.Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
