package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-drift/clockface/pkg/clockface"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func decodeFile(t *testing.T, path string, decode func(*os.File) (image.Image, error)) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := decode(f)
	require.NoError(t, err)
	return img
}

func TestParseAt(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 20, 30, 5, time.UTC)

	got, err := parseAt("", now)
	require.NoError(t, err)
	require.Equal(t, now, got)

	got, err = parseAt("15:04:05", now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC), got)

	got, err = parseAt(" 07:30 ", now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 6, 1, 7, 30, 0, 0, time.UTC), got)

	_, err = parseAt("noon", now)
	require.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "face.yaml")
	require.NoError(t, os.WriteFile(path, []byte("size: 300\nbrand-text: DRIFT\n"), 0o644))

	cfg, err := loadConfig(path, []string{"size=120", "alarm-time=07:30"})
	require.NoError(t, err)
	require.Equal(t, 120.0, cfg.Size)
	require.Equal(t, "DRIFT", cfg.BrandText)
	require.Equal(t, &clockface.AlarmTime{Hour: 7, Minute: 30}, cfg.Alarm)

	_, err = loadConfig(filepath.Join(dir, "missing.yaml"), nil)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = loadConfig(path, []string{"size=-4"})
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("version: v99.0.0\n"), 0o644))
	_, err = loadConfig(path, nil)
	require.ErrorContains(t, err, "requires clockface v99.0.0")
}

func TestRenderFramePNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "face.png")
	cfg := clockface.DefaultConfig()
	require.NoError(t, renderFrame(cfg, time.Date(2024, 6, 1, 10, 10, 0, 0, time.UTC), out))

	img := decodeFile(t, out, func(f *os.File) (image.Image, error) { return png.Decode(f) })
	require.Equal(t, image.Rect(0, 0, 250, 250), img.Bounds())
	_, _, _, a := img.At(0, 0).RGBA()
	require.Zero(t, a, "corner outside the dial is transparent")
	_, _, _, a = img.At(125, 20).RGBA()
	require.NotZero(t, a, "dial is painted")

	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must not be left behind")
}

func TestRenderFrameBMP(t *testing.T) {
	out := filepath.Join(t.TempDir(), "face.bmp")
	cfg := clockface.DefaultConfig()
	cfg.Size = 100
	require.NoError(t, renderFrame(cfg, time.Now(), out))

	img := decodeFile(t, out, func(f *os.File) (image.Image, error) { return bmp.Decode(f) })
	require.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
}

func TestRenderFrameRejectsUnknownFormat(t *testing.T) {
	err := renderFrame(clockface.DefaultConfig(), time.Now(), filepath.Join(t.TempDir(), "face.gif"))
	require.ErrorContains(t, err, "unsupported image extension")
}

func TestRunClock(t *testing.T) {
	out := filepath.Join(t.TempDir(), "face.png")
	clk := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- runClock(ctx, clockface.DefaultConfig(), runOptions{
			Out:         out,
			FPS:         10,
			MetricsAddr: "localhost:0",
			Clock:       clk,
			Ready:       func(addr string) { ready <- addr },
		})
	}()

	var addr string
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("runClock returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("runClock never became ready")
	}

	require.Eventually(t, func() bool {
		_, err := os.Stat(out)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond, "first frame written")

	resp, err := http.Get(fmt.Sprintf("http://%s/metrics", addr))
	require.NoError(t, err)
	body := new(bytes.Buffer)
	_, err = body.ReadFrom(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Contains(t, body.String(), "clockface_frames_total")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runClock did not stop after cancel")
	}
}

func TestVersionCommand(t *testing.T) {
	out := new(bytes.Buffer)
	RootCmd.SetOut(out)
	RootCmd.SetArgs([]string{"version"})
	defer RootCmd.SetArgs(nil)
	defer RootCmd.SetOut(nil)

	require.NoError(t, RootCmd.Execute())
	require.Equal(t, fmt.Sprintf("clockface %s (built %s)\n", displayVersion(Version), BuildTime), out.String())
	require.Equal(t, "v1.2.0", displayVersion("1.2"))
	require.Equal(t, "devel", displayVersion("devel"))
}
