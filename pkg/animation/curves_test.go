package animation

import (
	"math"
	"testing"
)

func TestCubicBezierEndpoints(t *testing.T) {
	for name, curve := range map[string]Func{"ease": Ease, "ease-in": EaseIn, "ease-out": EaseOut, "ease-in-out": EaseInOut} {
		if got := curve(0); got != 0 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := curve(1); got != 1 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
		prev := 0.0
		for i := 1; i <= 100; i++ {
			got := curve(float64(i) / 100)
			if got < prev-1e-9 {
				t.Errorf("%s not monotonic at %v: %v < %v", name, float64(i)/100, got, prev)
			}
			prev = got
		}
	}
}

func TestCubicBezierLinear(t *testing.T) {
	linear := CubicBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
	for _, x := range []float64{0.1, 0.25, 0.5, 0.9} {
		if got := linear(x); math.Abs(got-x) > 1e-6 {
			t.Errorf("linear bezier(%v) = %v", x, got)
		}
	}
}

func TestSteppedRestsOnIntegers(t *testing.T) {
	f := Stepped(EaseInOut)
	for i := 0; i < 60; i++ {
		x := float64(i)
		if got := f(x); got != x {
			t.Errorf("Stepped(EaseInOut)(%v) = %v, want %v", x, got, x)
		}
		mid := f(x + 0.5)
		if mid <= x || mid >= x+1 {
			t.Errorf("Stepped(EaseInOut)(%v) = %v, want within (%v, %v)", x+0.5, mid, x, x+1)
		}
	}
	if got := Stepped(EaseIn)(10.1); got >= 10.1 {
		t.Errorf("ease-in should lag early in the step, got %v", got)
	}
}

func TestParseMotionCurves(t *testing.T) {
	for _, name := range []string{"ease", "Ease-In", "ease-out", "ease-in-out", "cubic-bezier(0.4, 0, 0.2, 1)"} {
		f, err := ParseMotion(name)
		if err != nil {
			t.Errorf("ParseMotion(%q) error: %v", name, err)
			continue
		}
		if got := f(30); got != 30 {
			t.Errorf("%s(30) = %v, want 30", name, got)
		}
	}
	for _, name := range []string{"cubic-bezier(1, 2)", "cubic-bezier(2, 0, 0.5, 1)", "cubic-bezier(a, 0, 0.5, 1)", "cubic-bezier(0, 0, 1, 1"} {
		if _, err := ParseMotion(name); err == nil {
			t.Errorf("ParseMotion(%q) expected error", name)
		}
	}
}
