package phantom

import (
	"fmt"
	"math"
	"slices"
)

// Fiber is a continuous model of a fiber bundle: a piecewise-cubic Hermite
// spline through its control points, parametrized by normalized chord
// length.
//
// A Fiber is always valid. Construction and every edit either produce a
// fully recomputed curve or fail and leave the previous curve in place.
// Observers are notified after each successful change.
//
// A Fiber is not safe for concurrent use.
type Fiber struct {
	subject

	pts    []Point
	mode   TangentMode
	radius float64
	color  Color

	params   []float64
	length   float64
	segments []HermiteSegment

	edit *FiberEdit
}

// curveState is everything derived from the control points and tangent mode.
type curveState struct {
	params   []float64
	length   float64
	segments []HermiteSegment
}

func derive(pts []Point, mode TangentMode) (curveState, error) {
	if !mode.valid() {
		return curveState{}, fmt.Errorf("%v: %w", mode, ErrInvalidTangentMode)
	}
	ts, length, err := chordParams(pts)
	if err != nil {
		return curveState{}, err
	}
	ds, err := estimateTangents(pts, mode, length)
	if err != nil {
		return curveState{}, err
	}
	segs := make([]HermiteSegment, len(pts)-1)
	for i := range segs {
		segs[i] = newHermiteSegment(pts[i], pts[i+1], ds[i], ds[i+1], ts[i], ts[i+1])
	}
	return curveState{params: ts, length: length, segments: segs}, nil
}

func validRadius(r float64) bool {
	return r > 0 && !math.IsInf(r, 0)
}

// NewFiber returns a fiber through pts. The points are copied.
//
// It fails if there are fewer than two points, if consecutive points
// coincide, if a coordinate is not finite, if mode is unknown or if radius is
// not positive.
func NewFiber(pts []Point, mode TangentMode, radius float64) (*Fiber, error) {
	if !validRadius(radius) {
		return nil, fmt.Errorf("%g: %w", radius, ErrInvalidRadius)
	}
	f := &Fiber{
		pts:    slices.Clone(pts),
		mode:   mode,
		radius: radius,
	}
	st, err := derive(f.pts, mode)
	if err != nil {
		return nil, err
	}
	f.setState(st)
	return f, nil
}

func (f *Fiber) setState(st curveState) {
	f.params = st.params
	f.length = st.length
	f.segments = st.segments
}

// Len returns the number of control points.
func (f *Fiber) Len() int {
	return len(f.pts)
}

// ControlPoints returns a copy of the control points.
func (f *Fiber) ControlPoints() []Point {
	return slices.Clone(f.pts)
}

// ControlPoint returns the i-th control point.
func (f *Fiber) ControlPoint(i int) (Point, error) {
	if i < 0 || i >= len(f.pts) {
		return Point{}, fmt.Errorf("control point %d of %d: %w", i, len(f.pts), ErrIndexOutOfRange)
	}
	return f.pts[i], nil
}

// Params returns a copy of the parameter value of each control point. The
// values increase strictly from 0 to 1.
func (f *Fiber) Params() []float64 {
	return slices.Clone(f.params)
}

// Length returns the length of the control polygon.
func (f *Fiber) Length() float64 {
	return f.length
}

// Segments returns a copy of the fiber's Hermite segments.
func (f *Fiber) Segments() []HermiteSegment {
	return slices.Clone(f.segments)
}

// TangentMode returns the rule used for interior tangents.
func (f *Fiber) TangentMode() TangentMode {
	return f.mode
}

// Radius returns the fiber's radius.
func (f *Fiber) Radius() float64 {
	return f.radius
}

// Color returns the fiber's display color.
func (f *Fiber) Color() Color {
	return f.color
}

// replace swaps in a new set of control points and tangent mode after
// deriving the curve for them. On failure nothing changes and no observer is
// notified.
func (f *Fiber) replace(pts []Point, mode TangentMode) error {
	st, err := derive(pts, mode)
	if err != nil {
		return err
	}
	f.pts = pts
	f.mode = mode
	f.setState(st)
	f.Notify()
	return nil
}

func (f *Fiber) checkIdle() error {
	if f.edit != nil {
		return ErrEditInProgress
	}
	return nil
}

// SetTangentMode changes the interior tangent rule and recomputes the curve.
// The start and end of the fiber do not move.
func (f *Fiber) SetTangentMode(mode TangentMode) error {
	if err := f.checkIdle(); err != nil {
		return err
	}
	return f.replace(f.pts, mode)
}

// SetRadius changes the fiber's radius. The curve is unaffected, but
// observers are notified.
func (f *Fiber) SetRadius(r float64) error {
	if err := f.checkIdle(); err != nil {
		return err
	}
	if !validRadius(r) {
		return fmt.Errorf("%g: %w", r, ErrInvalidRadius)
	}
	f.radius = r
	f.Notify()
	return nil
}

// SetColor changes the fiber's display color and notifies observers.
func (f *Fiber) SetColor(c Color) {
	f.color = c
	f.Notify()
}

func (f *Fiber) String() string {
	return fmt.Sprintf("Fiber{%d points, %v, radius %g}", len(f.pts), f.mode, f.radius)
}
