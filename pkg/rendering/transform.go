package rendering

import "math"

// Transform is a 2D affine matrix mapping (x, y) to
// (A*x + C*y + E, B*x + D*y + F).
type Transform struct {
	A, B, C, D, E, F float64
}

// IdentityTransform returns the transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{A: 1, D: 1}
}

// Translate returns t followed by a translation in local coordinates.
func (t Transform) Translate(dx, dy float64) Transform {
	t.E += t.A*dx + t.C*dy
	t.F += t.B*dx + t.D*dy
	return t
}

// Rotate returns t followed by a clockwise rotation in local coordinates.
func (t Transform) Rotate(radians float64) Transform {
	sin, cos := math.Sincos(radians)
	return Transform{
		A: t.A*cos + t.C*sin,
		B: t.B*cos + t.D*sin,
		C: -t.A*sin + t.C*cos,
		D: -t.B*sin + t.D*cos,
		E: t.E,
		F: t.F,
	}
}

// Apply maps a local point to device coordinates.
func (t Transform) Apply(p Offset) Offset {
	return Offset{
		X: t.A*p.X + t.C*p.Y + t.E,
		Y: t.B*p.X + t.D*p.Y + t.F,
	}
}

// ScaleFactor returns the uniform scale applied by t, used to size strokes.
func (t Transform) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(t.A*t.D - t.B*t.C))
}

// IsIdentity reports whether t leaves points unchanged.
func (t Transform) IsIdentity() bool {
	return floatEqual(t.A, 1) && floatEqual(t.B, 0) && floatEqual(t.C, 0) &&
		floatEqual(t.D, 1) && floatEqual(t.E, 0) && floatEqual(t.F, 0)
}
