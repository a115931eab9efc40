package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-drift/clockface/pkg/animation"
	"github.com/go-drift/clockface/pkg/clockface"
	"github.com/go-drift/clockface/pkg/engine"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	runOutFlag         string
	runFPSFlag         int
	runMetricsAddrFlag string
)

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runOutFlag, "out", "o", "clockface.png", "output file, rewritten once per second")
	runCmd.Flags().IntVar(&runFPSFlag, "fps", 30, "frames drawn per second")
	runCmd.Flags().StringVar(&runMetricsAddrFlag, "metrics-addr", "", "serve /metrics and the debug endpoints on this address. Ex: :9102")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run the clock, rewriting the output file every second",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		cfg, err := loadConfig(rootConfigFlag, rootSetFlag)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runClock(ctx, cfg, runOptions{
			Out:         runOutFlag,
			FPS:         runFPSFlag,
			MetricsAddr: runMetricsAddrFlag,
		})
	},
}

type runOptions struct {
	Out         string
	FPS         int
	MetricsAddr string
	// Clock defaults to the system clock.
	Clock animation.Clock
	// Ready, when set, receives the bound debug server address (or "")
	// once the loop is about to start.
	Ready func(addr string)
}

// runClock drives the clock until ctx is done. The output file is
// rewritten on the first frame of every second.
func runClock(ctx context.Context, cfg clockface.Config, opts runOptions) error {
	if opts.Clock == nil {
		opts.Clock = animation.DefaultClock()
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	face, err := newRasterFace(cfg, opts.Out, opts.Clock)
	if err != nil {
		return err
	}
	r := face.renderer

	defer r.AddAlarmListener(func(e clockface.AlarmEvent) {
		log.WithField("at", e.Date.Format("15:04:05")).Info("alarm")
	})()
	defer r.AddEverySecondListener(func(e clockface.EverySecondEvent) {
		log.WithField("seconds", e.Seconds).Debug("second")
	})()

	stats := engine.NewStats()
	reg, err := engine.NewRegistry(stats)
	if err != nil {
		return err
	}

	var lastWrite time.Time
	e := engine.New(r, engine.Options{
		Clock:    opts.Clock,
		Interval: time.Second / time.Duration(opts.FPS),
		Stats:    stats,
		AfterFrame: func(now time.Time) {
			second := now.Truncate(time.Second)
			if second.Equal(lastWrite) {
				return
			}
			lastWrite = second
			if err := face.write(); err != nil {
				log.WithError(err).Warn("failed to write frame")
			}
		},
	})
	defer e.Close()

	addr := ""
	if opts.MetricsAddr != "" {
		srv := engine.NewDebugServer(e, reg)
		addr, err = srv.Start(opts.MetricsAddr)
		if err != nil {
			return err
		}
		defer srv.Stop()
		log.WithField("addr", addr).Info("debug server listening")
	}
	if opts.Ready != nil {
		opts.Ready(addr)
	}

	log.WithFields(log.Fields{"out": opts.Out, "fps": opts.FPS}).Info("clock running")
	return e.Run(ctx)
}
