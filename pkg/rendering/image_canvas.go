package rendering

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// circleSegments is the number of polygon edges used to approximate a full
// circle. Round caps use half as many.
const circleSegments = 96

// ImageSurface is a raster Surface backed by an *image.RGBA.
type ImageSurface struct {
	img    *image.RGBA
	canvas *imageCanvas
	fonts  *FontManager
}

// NewImageSurface returns a raster surface of the given size. Text is drawn
// with fonts from manager, or the default font manager when nil.
func NewImageSurface(size Size, manager *FontManager) *ImageSurface {
	if manager == nil {
		manager = DefaultFontManager()
	}
	s := &ImageSurface{fonts: manager}
	s.Resize(size)
	return s
}

// Resize reallocates the pixel buffer and resets the canvas transform.
func (s *ImageSurface) Resize(size Size) {
	w := int(math.Ceil(size.Width))
	h := int(math.Ceil(size.Height))
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	s.canvas = &imageCanvas{
		img:       s.img,
		fonts:     s.fonts,
		transform: IdentityTransform(),
	}
}

// Canvas returns the canvas drawing into the current pixel buffer.
func (s *ImageSurface) Canvas() Canvas {
	return s.canvas
}

// Image returns the current pixel buffer. The returned image is replaced,
// not mutated, by Resize.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Snapshot returns a copy of the current pixel buffer.
func (s *ImageSurface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

type imageCanvas struct {
	img       *image.RGBA
	fonts     *FontManager
	transform Transform
	stack     []Transform
}

func (c *imageCanvas) Save() {
	c.stack = append(c.stack, c.transform)
}

func (c *imageCanvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.transform = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *imageCanvas) Translate(dx, dy float64) {
	c.transform = c.transform.Translate(dx, dy)
}

func (c *imageCanvas) Rotate(radians float64) {
	c.transform = c.transform.Rotate(radians)
}

func (c *imageCanvas) Clear(color Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.NRGBA()), image.Point{}, draw.Src)
}

func (c *imageCanvas) DrawCircle(center Offset, radius float64, paint Paint) {
	if radius <= 0 {
		return
	}
	z := c.rasterizer()
	switch paint.Style {
	case PaintStyleStroke:
		half := paint.StrokeWidth / 2
		c.addArc(z, center, radius+half, 0, 2*math.Pi, false)
		if inner := radius - half; inner > 0 {
			c.addArc(z, center, inner, 0, 2*math.Pi, true)
		}
	default:
		c.addArc(z, center, radius, 0, 2*math.Pi, false)
	}
	c.fill(z, paint.Color)
}

func (c *imageCanvas) DrawLine(start, end Offset, paint Paint) {
	width := paint.StrokeWidth
	if width <= 0 {
		width = 1
	}
	half := width / 2
	dir := end.Sub(start)
	length := dir.Distance()
	if length == 0 {
		if paint.StrokeCap == CapRound {
			c.DrawCircle(start, half, FillPaint(paint.Color))
		}
		return
	}
	unit := dir.Scale(1 / length)
	if paint.StrokeCap == CapSquare {
		start = start.Sub(unit.Scale(half))
		end = end.Add(unit.Scale(half))
	}
	normal := Offset{X: -unit.Y, Y: unit.X}.Scale(half)

	z := c.rasterizer()
	c.moveTo(z, start.Add(normal))
	c.lineTo(z, end.Add(normal))
	c.lineTo(z, end.Sub(normal))
	c.lineTo(z, start.Sub(normal))
	z.ClosePath()
	c.fill(z, paint.Color)

	if paint.StrokeCap == CapRound {
		caps := c.rasterizer()
		c.addArc(caps, start, half, 0, 2*math.Pi, false)
		c.fill(caps, paint.Color)
		caps = c.rasterizer()
		c.addArc(caps, end, half, 0, 2*math.Pi, false)
		c.fill(caps, paint.Color)
	}
}

func (c *imageCanvas) DrawText(layout *TextLayout, position Offset) {
	if layout == nil || layout.Text == "" || c.fonts == nil {
		return
	}
	face, err := c.fonts.Face(layout.Style.Font)
	if err != nil {
		return
	}
	origin := c.transform.Apply(position)
	if layout.Style.Baseline == BaselineMiddle {
		metrics := face.Metrics()
		origin.Y += (fixedToFloat(metrics.Ascent) - fixedToFloat(metrics.Descent)) / 2
	}
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(layout.Style.Color.NRGBA()),
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(origin.X), Y: floatToFixed(origin.Y)},
	}
	d.DrawString(layout.Text)
}

func (c *imageCanvas) Size() Size {
	b := c.img.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func (c *imageCanvas) rasterizer() *vector.Rasterizer {
	b := c.img.Bounds()
	return vector.NewRasterizer(b.Dx(), b.Dy())
}

func (c *imageCanvas) fill(z *vector.Rasterizer, color Color) {
	if color.NRGBA().A == 0 {
		return
	}
	z.Draw(c.img, c.img.Bounds(), image.NewUniform(color.NRGBA()), image.Point{})
}

func (c *imageCanvas) moveTo(z *vector.Rasterizer, p Offset) {
	d := c.transform.Apply(p)
	z.MoveTo(float32(d.X), float32(d.Y))
}

func (c *imageCanvas) lineTo(z *vector.Rasterizer, p Offset) {
	d := c.transform.Apply(p)
	z.LineTo(float32(d.X), float32(d.Y))
}

// addArc appends a closed polygon approximating a circle of radius around
// center. Reversed arcs wind the other way to punch holes in a fill.
func (c *imageCanvas) addArc(z *vector.Rasterizer, center Offset, radius, from, to float64, reverse bool) {
	n := circleSegments
	step := (to - from) / float64(n)
	for i := 0; i <= n; i++ {
		a := from + step*float64(i)
		if reverse {
			a = to - step*float64(i)
		}
		p := Offset{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
		if i == 0 {
			c.moveTo(z, p)
		} else {
			c.lineTo(z, p)
		}
	}
	z.ClosePath()
}
