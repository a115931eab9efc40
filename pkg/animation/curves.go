package animation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-drift/clockface/pkg/errors"
)

// Easing curves shape how a ticking hand travels from one mark to the next.
//
// Each curve takes progress t in [0, 1] and returns the eased progress.
// [Stepped] turns a curve into a hand [Func] that eases through every unit.
// Use [CubicBezier] for custom curves matching CSS cubic-bezier().

// Ease is the general-purpose curve. Equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates into the next mark.
// Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut leaves the mark quickly and decelerates.
// Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut starts and ends slowly with acceleration in the middle.
// Equivalent to CSS ease-in-out.
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

// Stepped applies curve to the fractional part of x, so the hand eases
// from each whole unit to the next and rests exactly on integers.
func Stepped(curve Func) Func {
	return func(x float64) float64 {
		n := math.Floor(x)
		return n + curve(x-n)
	}
}

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
// The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Func {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most values.
		for range 8 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Fall back to bisection for a stable solution in [0,1].
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 12 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

// parseCubicBezier reads "cubic-bezier(x1, y1, x2, y2)". Both x values must
// lie in [0, 1], as in CSS.
func parseCubicBezier(s string) (Func, error) {
	inner, ok := strings.CutPrefix(s, "cubic-bezier(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return nil, fmt.Errorf("not a cubic-bezier: %q", s)
	}
	fields := strings.Split(strings.TrimSuffix(inner, ")"), ",")
	if len(fields) != 4 {
		return nil, fmt.Errorf("cubic-bezier needs 4 values, got %d", len(fields))
	}
	var p [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &errors.ParseError{DataType: "number", Got: strings.TrimSpace(f)}
		}
		p[i] = v
	}
	if p[0] < 0 || p[0] > 1 || p[2] < 0 || p[2] > 1 {
		return nil, fmt.Errorf("cubic-bezier x values must be in [0, 1], got %v and %v", p[0], p[2])
	}
	return CubicBezier(p[0], p[1], p[2], p[3]), nil
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
