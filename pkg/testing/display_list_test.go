package testing

import (
	"testing"

	"github.com/go-drift/clockface/pkg/rendering"
	"github.com/google/go-cmp/cmp"
)

func TestSerializeDisplayList(t *testing.T) {
	recorder := &rendering.PictureRecorder{}
	canvas := recorder.BeginRecording(rendering.SquareSize(100))
	canvas.Save()
	canvas.Rotate(0)
	canvas.DrawLine(rendering.Offset{}, rendering.Offset{Y: -40}, rendering.StrokePaint(rendering.ColorBlack, 2, rendering.CapRound))
	canvas.Restore()
	dl := recorder.EndRecording()

	if dl.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", dl.Len())
	}
	got := Names(SerializeDisplayList(dl))
	want := []string{"save", "rotate", "drawLine", "restore"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestEndRecordingWithoutBegin(t *testing.T) {
	recorder := &rendering.PictureRecorder{}
	if dl := recorder.EndRecording(); dl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", dl.Len())
	}
}

func TestSurfaceLastFrame(t *testing.T) {
	s := NewSurface()
	s.Resize(rendering.SquareSize(10))
	c := s.Canvas()
	c.Clear(rendering.ColorTransparent)
	c.DrawCircle(rendering.Offset{}, 4, rendering.FillPaint(rendering.ColorWhite))
	c.Clear(rendering.ColorTransparent)
	c.DrawText(&rendering.TextLayout{Text: "3", Width: 5}, rendering.Offset{X: 1, Y: 2})

	frame := s.LastFrame()
	if diff := cmp.Diff([]string{"clear", "drawText"}, Names(frame)); diff != "" {
		t.Errorf("LastFrame mismatch (-want +got):\n%s", diff)
	}
	if got := frame[1].Text("text"); got != "3" {
		t.Errorf("text = %q, want %q", got, "3")
	}
	if got := frame[1].Float("width"); got != 5 {
		t.Errorf("width = %v, want 5", got)
	}
	if got := len(s.Resizes()); got != 1 {
		t.Errorf("Resizes() has %d entries, want 1", got)
	}
	if got := frame[0].String(); got != "clear{color=#00000000}" {
		t.Errorf("String() = %q", got)
	}

	s.Reset()
	if len(s.Ops()) != 0 {
		t.Error("Reset should drop recorded ops")
	}
}

func TestFixedWidthMeasurer(t *testing.T) {
	got := FixedWidthMeasurer.MeasureText("XII", rendering.Font{Size: 10})
	if got != 15 {
		t.Errorf("MeasureText = %v, want 15", got)
	}
}
