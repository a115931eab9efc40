package clockface

import (
	"math"

	"github.com/go-drift/clockface/pkg/rendering"
)

// Hand proportions. Lengths are relative to the radius, widths to the size.
const (
	hourHandLength   = 0.5
	minuteHandLength = 0.75
	secondHandLength = 0.85
	alarmHandLength  = 0.6
	// alarmBodyRatio is the share of the alarm hand drawn in the body color.
	alarmBodyRatio = 0.9

	hourHandWidth   = 1.0 / 40
	minuteHandWidth = 1.0 / 60
	secondHandWidth = 1.0 / 150
	alarmHandWidth  = 1.0 / 80
	centerCapRatio  = 1.0 / 60
)

// paintHand draws a hand from the origin toward 12 o'clock after rotating
// the canvas by angle degrees.
func paintHand(canvas rendering.Canvas, angle, length float64, paint rendering.Paint) {
	canvas.Save()
	canvas.Rotate(rendering.DegreesToRadians(angle))
	canvas.DrawLine(rendering.Offset{}, rendering.Offset{Y: -length}, paint)
	canvas.Restore()
}

func (r *Renderer) paintHands(canvas rendering.Canvas, a Angles) {
	cfg := r.cfg
	size, radius := cfg.Size, r.radius

	paintHand(canvas, a.Hour, radius*hourHandLength,
		rendering.StrokePaint(cfg.HourHandColor, size*hourHandWidth, rendering.CapRound))
	paintHand(canvas, a.Minute, radius*minuteHandLength,
		rendering.StrokePaint(cfg.MinuteHandColor, size*minuteHandWidth, rendering.CapRound))
	paintHand(canvas, a.Second, radius*secondHandLength,
		rendering.StrokePaint(cfg.SecondHandColor, math.Max(1, size*secondHandWidth), rendering.CapRound))

	canvas.DrawCircle(rendering.Offset{}, size*centerCapRatio, rendering.FillPaint(cfg.SecondHandColor))
}

// paintAlarmHand draws the two-tone alarm hand at the alarm's hour angle.
func (r *Renderer) paintAlarmHand(canvas rendering.Canvas, p HandPositions) {
	cfg := r.cfg
	length := r.radius * alarmHandLength
	width := cfg.Size * alarmHandWidth
	body := length * alarmBodyRatio

	canvas.Save()
	canvas.Rotate(rendering.DegreesToRadians(p.Hours * 30))
	canvas.DrawLine(rendering.Offset{}, rendering.Offset{Y: -body},
		rendering.StrokePaint(cfg.AlarmHandColor, width, rendering.CapButt))
	canvas.DrawLine(rendering.Offset{Y: -body}, rendering.Offset{Y: -length},
		rendering.StrokePaint(cfg.AlarmHandTipColor, width, rendering.CapRound))
	canvas.Restore()
}
