package clockface

import (
	"math"
	"strconv"

	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/rendering"
)

// Dial proportions relative to the configured size.
const (
	dialInsetRatio       = 1.0 / 50
	backgroundInsetRatio = 1.0 / 400
	hourTickWidthRatio   = 1.0 / 50
	minuteTickWidthRatio = 1.0 / 100
	hourTickLength       = 1.0 / 9
	minuteTickLength     = 1.0 / 20
	numeralInset         = 1 / 4.2
	numeralFontRatio     = 1.0 / 13
	brandFontRatio       = 1.0 / 28
	brandOffsetRatio     = 1.0 / 6
	brand2FontRatio      = 1.0 / 44
	brand2OffsetRatio    = 1.0 / 5
)

// recordDial records the static part of the face. complete is false when an
// optional element failed, in which case the list should not be cached.
func (r *Renderer) recordDial() (dl *rendering.DisplayList, complete bool) {
	canvas := r.recorder.BeginRecording(rendering.SquareSize(r.size))
	complete = r.paintDial(canvas)
	return r.recorder.EndRecording(), complete
}

// paintDial draws the background disc, 60 tick marks, the numerals and the
// brand text, centered on the origin.
func (r *Renderer) paintDial(canvas rendering.Canvas) bool {
	cfg := r.cfg
	size := cfg.Size
	dialRadius := size/2 - size*dialInsetRatio

	canvas.DrawCircle(rendering.Offset{}, size/2-size*backgroundInsetRatio, rendering.FillPaint(cfg.DialBackgroundColor))

	complete := true
	showNumerals := !cfg.HideNumerals && len(cfg.Numerals) > 0
	for i := 1; i <= 60; i++ {
		sin, cos := math.Sincos(math.Pi / 30 * float64(i))
		width, length := size*minuteTickWidthRatio, dialRadius*minuteTickLength
		if i%5 == 0 {
			width, length = size*hourTickWidthRatio, dialRadius*hourTickLength
			if showNumerals {
				if label, ok := cfg.Numerals.Label(i / 5); ok {
					nr := dialRadius - dialRadius*numeralInset
					at := rendering.Offset{X: nr * sin, Y: -nr * cos}
					complete = errors.Guard("clockface.numeral."+strconv.Itoa(i/5), func() {
						r.paintCenteredText(canvas, label, cfg.NumeralFont, size*numeralFontRatio, cfg.DialColor, at)
					}) && complete
				}
			}
		}
		inner := dialRadius - length
		canvas.DrawLine(
			rendering.Offset{X: inner * sin, Y: -inner * cos},
			rendering.Offset{X: dialRadius * sin, Y: -dialRadius * cos},
			rendering.StrokePaint(cfg.DialColor, width, rendering.CapRound),
		)
	}

	if cfg.BrandText != "" {
		complete = errors.Guard("clockface.brandText", func() {
			r.paintCenteredText(canvas, cfg.BrandText, cfg.BrandFont, size*brandFontRatio, cfg.DialColor,
				rendering.Offset{Y: size * brandOffsetRatio})
		}) && complete
	}
	if cfg.BrandText2 != "" {
		complete = errors.Guard("clockface.brandText2", func() {
			r.paintCenteredText(canvas, cfg.BrandText2, cfg.BrandFont, size*brand2FontRatio, cfg.DialColor,
				rendering.Offset{Y: size * brand2OffsetRatio})
		}) && complete
	}
	return complete
}

// paintCenteredText draws text horizontally centered on at, vertically
// centered by the middle baseline. It panics on layout failure so the
// surrounding Guard skips the element.
func (r *Renderer) paintCenteredText(canvas rendering.Canvas, text, family string, px float64, color rendering.Color, at rendering.Offset) {
	layout, err := rendering.LayoutText(text, rendering.TextStyle{
		Color:    color,
		Font:     rendering.Font{Family: family, Size: px, Weight: rendering.FontWeightThin},
		Baseline: rendering.BaselineMiddle,
	}, r.measurer)
	if err != nil {
		panic(err)
	}
	canvas.DrawText(layout, rendering.Offset{X: at.X - layout.Width/2, Y: at.Y})
}
