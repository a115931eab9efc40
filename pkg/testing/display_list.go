package testing

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-drift/clockface/pkg/rendering"
)

// DisplayOp represents a serialized canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// Float returns a numeric parameter, or 0 when missing.
func (d DisplayOp) Float(key string) float64 {
	v, _ := d.Params[key].(float64)
	return v
}

// Text returns a string parameter, or "" when missing.
func (d DisplayOp) Text(key string) string {
	v, _ := d.Params[key].(string)
	return v
}

// String formats the op with its parameters in key order.
func (d DisplayOp) String() string {
	var sb strings.Builder
	sb.WriteString(d.Op)
	sb.WriteString("{")
	for i, k := range sortedKeys(d.Params) {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s=%v", k, d.Params[k])
	}
	sb.WriteString("}")
	return sb.String()
}

// serializingCanvas implements rendering.Canvas and records ops as DisplayOp.
type serializingCanvas struct {
	ops  []DisplayOp
	size rendering.Size
}

func (c *serializingCanvas) Save() {
	c.ops = append(c.ops, DisplayOp{Op: "save"})
}

func (c *serializingCanvas) Restore() {
	c.ops = append(c.ops, DisplayOp{Op: "restore"})
}

func (c *serializingCanvas) Translate(dx, dy float64) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "translate",
		Params: sortedMap("dx", round2(dx), "dy", round2(dy)),
	})
}

func (c *serializingCanvas) Rotate(radians float64) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "rotate",
		Params: sortedMap("radians", radians, "degrees", round2(radians*180/math.Pi)),
	})
}

func (c *serializingCanvas) Clear(color rendering.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clear",
		Params: sortedMap("color", color.String()),
	})
}

func (c *serializingCanvas) DrawCircle(center rendering.Offset, radius float64, paint rendering.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawCircle",
		Params: sortedMap(
			"cx", round2(center.X),
			"cy", round2(center.Y),
			"radius", round2(radius),
			"color", paint.Color.String(),
			"style", paint.Style.String(),
		),
	})
}

func (c *serializingCanvas) DrawLine(start, end rendering.Offset, paint rendering.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawLine",
		Params: sortedMap(
			"x1", round2(start.X), "y1", round2(start.Y),
			"x2", round2(end.X), "y2", round2(end.Y),
			"color", paint.Color.String(),
			"width", round2(paint.StrokeWidth),
			"cap", paint.StrokeCap.String(),
		),
	})
}

func (c *serializingCanvas) DrawText(layout *rendering.TextLayout, position rendering.Offset) {
	params := sortedMap("x", round2(position.X), "y", round2(position.Y))
	if layout != nil {
		params["text"] = layout.Text
		params["font"] = layout.Style.Font.String()
		params["color"] = layout.Style.Color.String()
		params["baseline"] = layout.Style.Baseline.String()
		params["width"] = round2(layout.Width)
	}
	c.ops = append(c.ops, DisplayOp{Op: "drawText", Params: params})
}

func (c *serializingCanvas) Size() rendering.Size {
	return c.size
}

// Surface is a rendering.Surface that records every canvas call.
type Surface struct {
	canvas  *serializingCanvas
	resizes []rendering.Size
}

// NewSurface returns an empty recording surface.
func NewSurface() *Surface {
	return &Surface{canvas: &serializingCanvas{}}
}

// Resize records the new size and appends a "resize" op; like a real
// surface it implicitly resets the transform.
func (s *Surface) Resize(size rendering.Size) {
	s.resizes = append(s.resizes, size)
	s.canvas.size = size
	s.canvas.ops = append(s.canvas.ops, DisplayOp{
		Op:     "resize",
		Params: sortedMap("width", round2(size.Width), "height", round2(size.Height)),
	})
}

// Canvas returns the serializing canvas.
func (s *Surface) Canvas() rendering.Canvas {
	return s.canvas
}

// Resizes returns every size passed to Resize, in order.
func (s *Surface) Resizes() []rendering.Size {
	return s.resizes
}

// Ops returns every recorded operation.
func (s *Surface) Ops() []DisplayOp {
	return s.canvas.ops
}

// LastFrame returns the operations from the most recent "clear" onwards.
func (s *Surface) LastFrame() []DisplayOp {
	ops := s.canvas.ops
	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].Op == "clear" {
			return ops[i:]
		}
	}
	return ops
}

// Reset discards recorded operations.
func (s *Surface) Reset() {
	s.canvas.ops = nil
}

// SerializeDisplayList replays a DisplayList through the serializing canvas.
func SerializeDisplayList(dl *rendering.DisplayList) []DisplayOp {
	canvas := &serializingCanvas{size: dl.Size()}
	dl.Paint(canvas)
	return canvas.ops
}

// Filter returns the ops with the given name.
func Filter(ops []DisplayOp, name string) []DisplayOp {
	var out []DisplayOp
	for _, op := range ops {
		if op.Op == name {
			out = append(out, op)
		}
	}
	return out
}

// Names returns the op names in order, useful for comparing frame structure.
func Names(ops []DisplayOp) []string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Op
	}
	return names
}

// FixedWidthMeasurer measures every rune as half the font size wide. It
// makes text centering deterministic without loading fonts.
var FixedWidthMeasurer = rendering.MeasureFunc(func(text string, font rendering.Font) float64 {
	return float64(utf8.RuneCountInString(text)) * font.Size / 2
})

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}

// sortedKeys returns the keys of a map in sorted order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
