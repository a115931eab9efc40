package cmd

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-drift/clockface/pkg/animation"
	"github.com/go-drift/clockface/pkg/clockface"
	"github.com/go-drift/clockface/pkg/rendering"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	renderOutFlag string
	renderAtFlag  string
)

func init() {
	RootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutFlag, "out", "o", "clockface.png", "output file. Format is picked from the extension: .png, .bmp, .tif")
	renderCmd.Flags().StringVar(&renderAtFlag, "at", "", "time of day to draw, 15:04:05 or 15:04. Empty means now")
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "render a single frame to an image file",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig(rootConfigFlag, rootSetFlag)
		if err != nil {
			return err
		}
		at, err := parseAt(renderAtFlag, time.Now())
		if err != nil {
			return err
		}
		return renderFrame(cfg, at, renderOutFlag)
	},
}

// parseAt resolves a time of day on now's date. An empty string is now.
func parseAt(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), t.Second(), 0, now.Location()), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --at %q, want 15:04:05", s)
}

// rasterFace is a renderer attached to an in-memory image.
type rasterFace struct {
	renderer *clockface.Renderer
	surface  *rendering.ImageSurface
	format   rendering.ImageFormat
	out      string
}

// newRasterFace attaches a renderer for cfg to a raster surface and draws
// the first frame at clk.Now().
func newRasterFace(cfg clockface.Config, out string, clk animation.Clock) (*rasterFace, error) {
	format, err := rendering.FormatFromPath(out)
	if err != nil {
		return nil, err
	}
	fonts, err := rendering.DefaultFontManagerErr()
	if err != nil {
		return nil, err
	}
	r, err := clockface.New(cfg, clockface.WithMeasurer(fonts), clockface.WithClock(clk))
	if err != nil {
		return nil, err
	}
	surface := rendering.NewImageSurface(rendering.SquareSize(cfg.Size), fonts)
	if err := r.Attach(surface); err != nil {
		return nil, err
	}
	return &rasterFace{renderer: r, surface: surface, format: format, out: out}, nil
}

// write encodes the last completed frame to the output file.
func (f *rasterFace) write() error {
	var img *image.RGBA
	if err := f.renderer.View(func(rendering.Surface) { img = f.surface.Snapshot() }); err != nil {
		return err
	}
	return writeImage(f.out, img, f.format)
}

func renderFrame(cfg clockface.Config, at time.Time, out string) error {
	face, err := newRasterFace(cfg, out, clockwork.NewFakeClockAt(at))
	if err != nil {
		return err
	}
	if err := face.write(); err != nil {
		return err
	}
	log.WithFields(log.Fields{"out": out, "at": at.Format("15:04:05")}).Info("frame rendered")
	return nil
}

// writeImage replaces path atomically so viewers polling the file never
// read a partial image.
func writeImage(path string, img image.Image, format rendering.ImageFormat) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".clockface-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := rendering.Encode(tmp, img, format); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
