package animation

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-drift/clockface/pkg/errors"
)

// Func maps a raw time value, typically in 0..12 or 0..60, to the value a
// hand should display. All functions in this file are pure.
//
// Plot of the shapes: https://www.desmos.com/calculator/ic7qjzw3mf
type Func func(x float64) float64

// Sweep is the identity. The hand moves smoothly and always points at the
// exact current time.
func Sweep(x float64) float64 {
	return x
}

// HardTick rounds down to the integer. The hand jumps to each whole unit
// from one frame to the next.
func HardTick(x float64) float64 {
	return math.Floor(x)
}

// SoftTick slows down around whole numbers and speeds up in between, so the
// hand settles onto each tick instead of jumping.
func SoftTick(x float64) float64 {
	n := math.Floor(x + .5)
	d := x - n
	return n + 4*d*d*d
}

// PauseAtEnd returns a function that runs through [0, upper) faster than real
// time and then holds at upper for the last pause units of each cycle, like
// the second hand of a railway station clock.
//
// Use 12 as upper for hours, 60 for minutes or seconds. A non-positive pause
// yields the identity. A pause covering the whole cycle holds at upper.
func PauseAtEnd(upper, pause float64) (Func, error) {
	if pause <= 0 {
		return Sweep, nil
	}
	if upper <= 0 {
		return nil, &errors.ClockError{
			Op:   "animation.PauseAtEnd",
			Kind: errors.KindConfig,
			Err:  fmt.Errorf("max value must be greater than 0 (was %v)", upper),
		}
	}
	ratio := 1 - math.Min(upper, pause)/upper
	return func(x float64) float64 {
		if ratio <= 0 {
			return upper
		}
		return math.Min(upper, x/ratio)
	}, nil
}

// Compose applies fs from left to right. Nil entries are skipped.
func Compose(fs ...Func) Func {
	return func(x float64) float64 {
		for _, f := range fs {
			if f != nil {
				x = f(x)
			}
		}
		return x
	}
}

// ParseMotion resolves a motion name: "sweep", "hard-tick", "soft-tick",
// one of the stepped easings "ease", "ease-in", "ease-out", "ease-in-out",
// or a stepped "cubic-bezier(x1, y1, x2, y2)".
func ParseMotion(name string) (Func, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "sweep":
		return Sweep, nil
	case "hard-tick", "hardtick":
		return HardTick, nil
	case "soft-tick", "softtick":
		return SoftTick, nil
	case "ease":
		return Stepped(Ease), nil
	case "ease-in":
		return Stepped(EaseIn), nil
	case "ease-out":
		return Stepped(EaseOut), nil
	case "ease-in-out":
		return Stepped(EaseInOut), nil
	}
	if strings.HasPrefix(key, "cubic-bezier(") {
		curve, err := parseCubicBezier(key)
		if err != nil {
			return nil, &errors.ClockError{
				Op:   "animation.ParseMotion",
				Kind: errors.KindParsing,
				Err:  err,
			}
		}
		return Stepped(curve), nil
	}
	return nil, &errors.ClockError{
		Op:   "animation.ParseMotion",
		Kind: errors.KindParsing,
		Err:  &errors.ParseError{DataType: "motion", Got: name},
	}
}
