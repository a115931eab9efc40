package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/clockface/pkg/rendering"
)

func drawFrame(s *Surface, color rendering.Color) {
	c := s.Canvas()
	c.Clear(rendering.ColorTransparent)
	c.DrawCircle(rendering.Offset{}, 40, rendering.FillPaint(color))
	c.Save()
	c.Rotate(1)
	c.DrawLine(rendering.Offset{}, rendering.Offset{Y: -30}, rendering.StrokePaint(rendering.ColorBlack, 2, rendering.CapRound))
	c.Restore()
}

func TestCaptureFrame(t *testing.T) {
	s := NewSurface()
	s.Resize(rendering.SquareSize(100))
	drawFrame(s, rendering.ColorWhite)
	drawFrame(s, rendering.ColorWhite)

	snap := CaptureFrame(s)
	if snap.Size != [2]float64{100, 100} {
		t.Errorf("Size = %v, want [100 100]", snap.Size)
	}
	if len(snap.DisplayOps) != 6 || snap.DisplayOps[0].Op != "clear" {
		t.Errorf("DisplayOps = %v, want the last frame only", snap.DisplayOps)
	}
}

func TestCaptureDisplayList(t *testing.T) {
	recorder := &rendering.PictureRecorder{}
	canvas := recorder.BeginRecording(rendering.SquareSize(50))
	canvas.DrawCircle(rendering.Offset{}, 10, rendering.FillPaint(rendering.ColorBlack))
	snap := CaptureDisplayList(recorder.EndRecording())
	if snap.Size != [2]float64{50, 50} || len(snap.DisplayOps) != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestSnapshot_Diff(t *testing.T) {
	a, b := NewSurface(), NewSurface()
	drawFrame(a, rendering.ColorWhite)
	drawFrame(b, rendering.ColorWhite)
	if diff := CaptureFrame(a).Diff(CaptureFrame(b)); diff != "" {
		t.Errorf("expected no diff for identical frames, got:\n%s", diff)
	}

	drawFrame(b, rendering.ColorBlack)
	if diff := CaptureFrame(a).Diff(CaptureFrame(b)); diff == "" {
		t.Error("expected diff for different frames")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	s := NewSurface()
	s.Resize(rendering.SquareSize(80))
	drawFrame(s, rendering.ColorWhite)
	snap := CaptureFrame(s)

	path := filepath.Join(t.TempDir(), "testdata", "face.snapshot.json")
	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	// A loaded snapshot must compare equal to the one it was written from.
	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	s := NewSurface()
	drawFrame(s, rendering.ColorWhite)

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	CaptureFrame(s).MatchesFile(sub, filepath.Join(t.TempDir(), "missing.json"))

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	s := NewSurface()
	drawFrame(s, rendering.ColorWhite)
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := CaptureFrame(s).UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	drawFrame(s, rendering.ColorBlack)
	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	CaptureFrame(s).MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	s := NewSurface()
	drawFrame(s, rendering.ColorWhite)
	path := filepath.Join(t.TempDir(), "update.snapshot.json")

	t.Setenv(UpdateSnapshotsEnv, "1")
	CaptureFrame(s).MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
