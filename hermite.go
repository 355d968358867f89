package phantom

import (
	"math"

	"github.com/golang/geo/r3"
)

// Poly3 holds the coefficients [a, b, c, d] of the cubic
// f(u) = a + b·u + c·u² + d·u³.
type Poly3 [4]float64

// Eval evaluates the polynomial at u using Horner's scheme.
func (p Poly3) Eval(u float64) float64 {
	return p[0] + u*(p[1]+u*(p[2]+u*p[3]))
}

// Deriv evaluates f'(u) = b + 2c·u + 3d·u².
func (p Poly3) Deriv(u float64) float64 {
	return p[1] + u*(2*p[2]+u*3*p[3])
}

// Deriv2 evaluates f''(u) = 2c + 6d·u.
func (p Poly3) Deriv2(u float64) float64 {
	return 2*p[2] + 6*p[3]*u
}

// hermitePoly returns the cubic on u ∈ [0, 1] with f(0) = p0, f(1) = p1,
// f'(0) = h·d0 and f'(1) = h·d1, where h is the width of the segment in the
// fiber's parameter. This is the closed-form solution of the 4×4 Hermite
// constraint system.
func hermitePoly(p0, p1, d0, d1, h float64) Poly3 {
	return Poly3{
		p0,
		h * d0,
		3*p1 - h*d1 - 2*h*d0 - 3*p0,
		h*d1 - 2*p1 + h*d0 + 2*p0,
	}
}

// HermiteSegment is the piece of a fiber between two consecutive control
// points, one cubic per axis in the local parameter u ∈ [0, 1].
type HermiteSegment struct {
	// T0 and T1 are the fiber parameters at the segment's end points.
	T0, T1  float64
	X, Y, Z Poly3
}

func newHermiteSegment(p0, p1 Point, d0, d1 r3.Vector, t0, t1 float64) HermiteSegment {
	h := t1 - t0
	return HermiteSegment{
		T0: t0,
		T1: t1,
		X:  hermitePoly(p0.X, p1.X, d0.X, d1.X, h),
		Y:  hermitePoly(p0.Y, p1.Y, d0.Y, d1.Y, h),
		Z:  hermitePoly(p0.Z, p1.Z, d0.Z, d1.Z, h),
	}
}

// Local maps a fiber parameter to the segment's local parameter.
func (s HermiteSegment) Local(t float64) float64 {
	return (t - s.T0) / (s.T1 - s.T0)
}

// Eval returns the position at local parameter u.
func (s HermiteSegment) Eval(u float64) Point {
	return Point{
		X: s.X.Eval(u),
		Y: s.Y.Eval(u),
		Z: s.Z.Eval(u),
	}
}

// Deriv returns the first derivative with respect to u.
func (s HermiteSegment) Deriv(u float64) r3.Vector {
	return r3.Vector{
		X: s.X.Deriv(u),
		Y: s.Y.Deriv(u),
		Z: s.Z.Deriv(u),
	}
}

// Deriv2 returns the second derivative with respect to u.
func (s HermiteSegment) Deriv2(u float64) r3.Vector {
	return r3.Vector{
		X: s.X.Deriv2(u),
		Y: s.Y.Deriv2(u),
		Z: s.Z.Deriv2(u),
	}
}

// Curvature returns |f' × f''| / |f'|³ at local parameter u, and false if the
// derivative vanishes there.
//
// Curvature does not depend on the parametrization, so evaluating it in u
// gives the same value as in the fiber parameter.
func (s HermiteSegment) Curvature(u float64) (float64, bool) {
	d1 := s.Deriv(u)
	n := d1.Norm()
	if n == 0 || math.IsNaN(n) {
		return 0, false
	}
	d2 := s.Deriv2(u)
	return d1.Cross(d2).Norm() / (n * n * n), true
}

// Start returns the segment's start point.
func (s HermiteSegment) Start() Point {
	return s.Eval(0)
}

// End returns the segment's end point.
func (s HermiteSegment) End() Point {
	return s.Eval(1)
}
