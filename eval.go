package phantom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Evaluator describes 3D curves parametrized over [0, 1], as consumed by tube
// and skeleton builders.
type Evaluator interface {
	// At returns the position at parameter t.
	At(t float64) (Point, error)
	// TangentAt returns the unit tangent at parameter t.
	TangentAt(t float64) (r3.Vector, error)
	// CurvatureAt returns the curvature at parameter t.
	CurvatureAt(t float64) (float64, error)
}

var _ Evaluator = (*Fiber)(nil)

// locate finds the segment containing parameter t and the local parameter
// within it. At an interior control point the later segment is chosen, so
// that evaluating at Params()[i] yields the i-th control point exactly.
//
// The scan is linear; fibers have tens of control points, not thousands.
func (f *Fiber) locate(t float64) (HermiteSegment, float64, error) {
	first, last := f.params[0], f.params[len(f.params)-1]
	if math.IsNaN(t) || t < first || t > last {
		return HermiteSegment{}, 0, ErrOutOfRange
	}
	j := 0
	for j+1 < len(f.segments) && f.params[j+1] <= t {
		j++
	}
	seg := f.segments[j]
	return seg, seg.Local(t), nil
}

// evalBatch applies fn to every value in ts, skipping and recording values
// that fail.
func evalBatch[T any](f *Fiber, ts []float64, fn func(seg HermiteSegment, u float64) (T, error)) ([]T, error) {
	out := make([]T, 0, len(ts))
	var failed []ParamError
	for i, t := range ts {
		seg, u, err := f.locate(t)
		if err == nil {
			var v T
			v, err = fn(seg, u)
			if err == nil {
				out = append(out, v)
				continue
			}
		}
		failed = append(failed, ParamError{Index: i, Value: t, Err: err})
	}
	if len(failed) > 0 {
		return out, &EvalError{
			Min:    f.params[0],
			Max:    f.params[len(f.params)-1],
			Failed: failed,
		}
	}
	return out, nil
}

func evalPoint(seg HermiteSegment, u float64) (Point, error) {
	return seg.Eval(u), nil
}

func evalTangent(seg HermiteSegment, u float64) (r3.Vector, error) {
	d := seg.Deriv(u)
	if d.Norm2() == 0 {
		return r3.Vector{}, ErrDegenerateTangent
	}
	return d.Normalize(), nil
}

func evalCurvature(seg HermiteSegment, u float64) (float64, error) {
	k, ok := seg.Curvature(u)
	if !ok {
		return 0, ErrDegenerateTangent
	}
	return k, nil
}

// Interpolate returns the positions on the fiber at the given parameters.
//
// Parameters outside [0, 1] are skipped: the returned slice holds the
// positions of the valid parameters in input order, and the error is an
// [*EvalError] identifying the skipped ones.
func (f *Fiber) Interpolate(ts ...float64) ([]Point, error) {
	return evalBatch(f, ts, evalPoint)
}

// Tangent returns the unit tangent vectors at the given parameters. Failed
// parameters are reported as with [Fiber.Interpolate].
func (f *Fiber) Tangent(ts ...float64) ([]r3.Vector, error) {
	return evalBatch(f, ts, evalTangent)
}

// Curvature returns the curvature at the given parameters, computed as
// |f' × f''| / |f'|³. The result is never negative. Failed parameters are
// reported as with [Fiber.Interpolate].
func (f *Fiber) Curvature(ts ...float64) ([]float64, error) {
	return evalBatch(f, ts, evalCurvature)
}

// At returns the position at parameter t.
func (f *Fiber) At(t float64) (Point, error) {
	seg, u, err := f.locate(t)
	if err != nil {
		return Point{}, fmt.Errorf("%g: %w", t, err)
	}
	return seg.Eval(u), nil
}

// TangentAt returns the unit tangent at parameter t.
func (f *Fiber) TangentAt(t float64) (r3.Vector, error) {
	seg, u, err := f.locate(t)
	if err == nil {
		var v r3.Vector
		if v, err = evalTangent(seg, u); err == nil {
			return v, nil
		}
	}
	return r3.Vector{}, fmt.Errorf("%g: %w", t, err)
}

// CurvatureAt returns the curvature at parameter t.
func (f *Fiber) CurvatureAt(t float64) (float64, error) {
	seg, u, err := f.locate(t)
	if err == nil {
		var k float64
		if k, err = evalCurvature(seg, u); err == nil {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%g: %w", t, err)
}

// Linspace returns n evenly spaced parameters from 0 to 1, inclusive.
func Linspace(n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{0}
	}
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = float64(i) / float64(n-1)
	}
	return ts
}

// Trajectory samples the fiber at n evenly spaced parameters, from its start
// point to its end point.
func (f *Fiber) Trajectory(n int) ([]Point, error) {
	if n < 2 {
		return nil, fmt.Errorf("trajectory of %d samples: %w", n, ErrTooFewPoints)
	}
	return f.Interpolate(Linspace(n)...)
}
