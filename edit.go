package phantom

import (
	"fmt"
	"math"
	"slices"
)

func (f *Fiber) checkIndex(i int) error {
	if i < 0 || i >= len(f.pts) {
		return fmt.Errorf("control point %d of %d: %w", i, len(f.pts), ErrIndexOutOfRange)
	}
	return nil
}

func checkCoord(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%g: %w", v, ErrNonFinite)
	}
	return nil
}

// InsertAfter inserts a control point between control points k and k+1.
// The new point is taken from the current curve at the parameter halfway
// between the two, so it lies on the fiber rather than on the straight chord.
//
// Parameters are recomputed from the new control polygon, so afterwards the
// new point sits at its own parameter, not at the old halfway value.
func (f *Fiber) InsertAfter(k int) error {
	return f.insertAfter(k, nil)
}

// insertAfter is InsertAfter with an optional rounding of the new point's
// coordinates.
func (f *Fiber) insertAfter(k int, round func(float64) float64) error {
	if err := f.checkIdle(); err != nil {
		return err
	}
	if k < 0 || k >= len(f.pts)-1 {
		return fmt.Errorf("insert after control point %d of %d: %w", k, len(f.pts), ErrIndexOutOfRange)
	}
	pt, err := f.At((f.params[k] + f.params[k+1]) / 2)
	if err != nil {
		return err
	}
	if round != nil {
		pt = pt.Map(round)
	}
	return f.replace(slices.Insert(slices.Clone(f.pts), k+1, pt), f.mode)
}

// Remove deletes control point k. At least two control points remain, so
// the fiber must have three or more.
//
// Removing an end point changes the boundary condition of the new end point,
// which reshapes the fiber near it. Inserting a point afterwards restores the
// number of control points but not the previous shape.
func (f *Fiber) Remove(k int) error {
	if err := f.checkIdle(); err != nil {
		return err
	}
	if err := f.checkIndex(k); err != nil {
		return err
	}
	if len(f.pts) < 3 {
		return fmt.Errorf("remove from %d control points: %w", len(f.pts), ErrTooFewPoints)
	}
	return f.replace(slices.Delete(slices.Clone(f.pts), k, k+1), f.mode)
}

// SetControlPoint sets one coordinate of control point i, recomputes the
// curve and notifies observers. To move several coordinates with a single
// recomputation, use [Fiber.Begin].
func (f *Fiber) SetControlPoint(i int, axis Axis, v float64) error {
	if err := f.checkIdle(); err != nil {
		return err
	}
	if err := f.checkIndex(i); err != nil {
		return err
	}
	if !axis.valid() {
		return fmt.Errorf("%v: %w", axis, ErrInvalidAxis)
	}
	if err := checkCoord(v); err != nil {
		return err
	}
	pts := slices.Clone(f.pts)
	pts[i] = pts[i].WithCoord(axis, v)
	return f.replace(pts, f.mode)
}

// SetPoint moves control point i to pt.
func (f *Fiber) SetPoint(i int, pt Point) error {
	if err := f.checkIdle(); err != nil {
		return err
	}
	if err := f.checkIndex(i); err != nil {
		return err
	}
	pts := slices.Clone(f.pts)
	pts[i] = pt
	return f.replace(pts, f.mode)
}

// FiberEdit is an open batch of control point changes on a [Fiber]. Changes
// accumulate in the edit without touching the fiber; [FiberEdit.Commit]
// applies them with one recomputation and one notification.
//
// While an edit is open the fiber keeps serving its last committed curve, and
// the fiber's own mutators fail with [ErrEditInProgress].
type FiberEdit struct {
	f      *Fiber
	pts    []Point
	mode   TangentMode
	closed bool
}

// Begin opens a batch edit. Only one edit can be open at a time.
func (f *Fiber) Begin() (*FiberEdit, error) {
	if err := f.checkIdle(); err != nil {
		return nil, err
	}
	e := &FiberEdit{
		f:    f,
		pts:  slices.Clone(f.pts),
		mode: f.mode,
	}
	f.edit = e
	return e, nil
}

// Edit runs fn inside a batch edit. The edit is committed if fn returns nil
// and aborted otherwise, including when fn panics.
func (f *Fiber) Edit(fn func(e *FiberEdit) error) error {
	e, err := f.Begin()
	if err != nil {
		return err
	}
	defer e.Abort()
	if err := fn(e); err != nil {
		return err
	}
	return e.Commit()
}

func (e *FiberEdit) check(i int) error {
	if e.closed {
		return ErrEditClosed
	}
	if i < 0 || i >= len(e.pts) {
		return fmt.Errorf("control point %d of %d: %w", i, len(e.pts), ErrIndexOutOfRange)
	}
	return nil
}

// ControlPoints returns a copy of the pending control points.
func (e *FiberEdit) ControlPoints() []Point {
	return slices.Clone(e.pts)
}

// SetControlPoint sets one coordinate of pending control point i.
func (e *FiberEdit) SetControlPoint(i int, axis Axis, v float64) error {
	if err := e.check(i); err != nil {
		return err
	}
	if !axis.valid() {
		return fmt.Errorf("%v: %w", axis, ErrInvalidAxis)
	}
	if err := checkCoord(v); err != nil {
		return err
	}
	e.pts[i] = e.pts[i].WithCoord(axis, v)
	return nil
}

// SetPoint moves pending control point i to pt.
func (e *FiberEdit) SetPoint(i int, pt Point) error {
	if err := e.check(i); err != nil {
		return err
	}
	e.pts[i] = pt
	return nil
}

// SetTangentMode changes the pending tangent mode.
func (e *FiberEdit) SetTangentMode(mode TangentMode) error {
	if e.closed {
		return ErrEditClosed
	}
	if !mode.valid() {
		return fmt.Errorf("%v: %w", mode, ErrInvalidTangentMode)
	}
	e.mode = mode
	return nil
}

// Commit applies the pending changes, recomputes the curve once and notifies
// observers once. If the pending control points do not form a valid fiber,
// the fiber is left as it was before [Fiber.Begin] and the error is returned.
// The edit is closed either way.
func (e *FiberEdit) Commit() error {
	if e.closed {
		return ErrEditClosed
	}
	e.closed = true
	e.f.edit = nil
	return e.f.replace(e.pts, e.mode)
}

// Abort discards the pending changes and closes the edit. Aborting a closed
// edit does nothing.
func (e *FiberEdit) Abort() {
	if e.closed {
		return
	}
	e.closed = true
	e.f.edit = nil
}
