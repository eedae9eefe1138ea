package core

import (
	"errors"
	"math"
)

// ErrSingularTransform is returned when a transform has no inverse.
var ErrSingularTransform = errors.New("core: transform is not invertible")

// Transform is a 2D affine map from grid-local space to world space:
//
//	world.X = A*x + B*y + TX
//	world.Y = C*x + D*y + TY
type Transform struct {
	A, B, C, D float64
	TX, TY     float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// NewTransform builds a transform that scales the grid frame by (sx, sy),
// rotates it counter-clockwise by deg degrees and places its origin at origin.
func NewTransform(origin Vec2, deg, sx, sy float64) Transform {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Transform{
		A: cos * sx, B: -sin * sy,
		C: sin * sx, D: cos * sy,
		TX: origin.X, TY: origin.Y,
	}
}

// Apply maps a grid-local point into world space.
func (t Transform) Apply(p Vec2) Vec2 {
	return Vec2{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// Det returns the determinant of the linear part.
func (t Transform) Det() float64 {
	return t.A*t.D - t.B*t.C
}

// Inverse returns the transform mapping world space back into grid-local space.
func (t Transform) Inverse() (Transform, error) {
	det := t.Det()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Transform{}, ErrSingularTransform
	}
	inv := Transform{
		A: t.D / det, B: -t.B / det,
		C: -t.C / det, D: t.A / det,
	}
	inv.TX = -(inv.A*t.TX + inv.B*t.TY)
	inv.TY = -(inv.C*t.TX + inv.D*t.TY)
	return inv, nil
}
