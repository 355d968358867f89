package phantom

import (
	"fmt"
	"math"
)

// Sphere is a ball given by its center and radius.
type Sphere struct {
	Center Point
	Radius float64
}

// Contains reports whether pt lies inside the sphere or on its surface.
func (s Sphere) Contains(pt Point) bool {
	return s.Center.DistanceSquared(pt) <= s.Radius*s.Radius
}

// Volume returns the sphere's volume.
func (s Sphere) Volume() float64 {
	r := math.Abs(s.Radius)
	return 4.0 / 3.0 * math.Pi * r * r * r
}

// Extent returns the distance from the origin to the farthest point of the
// sphere.
func (s Sphere) Extent() float64 {
	return s.Center.Vec().Norm() + math.Abs(s.Radius)
}

// Region is an isotropic region: a sphere of uniform, non-fibrous diffusion
// signal. It has no derived state; every change notifies its observers.
//
// A Region is not safe for concurrent use.
type Region struct {
	subject

	center Point
	radius float64
	color  Color

	edit *RegionEdit
}

// NewRegion returns an isotropic region centred at center.
func NewRegion(center Point, radius float64) (*Region, error) {
	if !center.isFinite() {
		return nil, fmt.Errorf("center %v: %w", center, ErrNonFinite)
	}
	if !validRadius(radius) {
		return nil, fmt.Errorf("%g: %w", radius, ErrInvalidRadius)
	}
	return &Region{center: center, radius: radius}, nil
}

// Center returns the region's center.
func (r *Region) Center() Point {
	return r.center
}

// Radius returns the region's radius.
func (r *Region) Radius() float64 {
	return r.radius
}

// Color returns the region's display color.
func (r *Region) Color() Color {
	return r.color
}

// Sphere returns the region's shape.
func (r *Region) Sphere() Sphere {
	return Sphere{Center: r.center, Radius: r.radius}
}

// Contains reports whether pt lies inside the region.
func (r *Region) Contains(pt Point) bool {
	return r.Sphere().Contains(pt)
}

// SetCenter sets one coordinate of the center and notifies observers.
func (r *Region) SetCenter(axis Axis, v float64) error {
	if r.edit != nil {
		return ErrEditInProgress
	}
	c, err := withCenterCoord(r.center, axis, v)
	if err != nil {
		return err
	}
	r.center = c
	r.Notify()
	return nil
}

// SetRadius changes the radius and notifies observers.
func (r *Region) SetRadius(radius float64) error {
	if r.edit != nil {
		return ErrEditInProgress
	}
	if !validRadius(radius) {
		return fmt.Errorf("%g: %w", radius, ErrInvalidRadius)
	}
	r.radius = radius
	r.Notify()
	return nil
}

// SetColor changes the region's display color and notifies observers.
func (r *Region) SetColor(c Color) {
	r.color = c
	r.Notify()
}

func withCenterCoord(c Point, axis Axis, v float64) (Point, error) {
	if !axis.valid() {
		return c, fmt.Errorf("%v: %w", axis, ErrInvalidAxis)
	}
	if err := checkCoord(v); err != nil {
		return c, err
	}
	return c.WithCoord(axis, v), nil
}

// RegionEdit batches center changes of a [Region] into one notification.
type RegionEdit struct {
	r      *Region
	center Point
	closed bool
}

// Begin opens a batch edit of the region's center.
func (r *Region) Begin() (*RegionEdit, error) {
	if r.edit != nil {
		return nil, ErrEditInProgress
	}
	e := &RegionEdit{r: r, center: r.center}
	r.edit = e
	return e, nil
}

// Edit runs fn inside a batch edit, committing if fn returns nil and
// aborting otherwise, including when fn panics.
func (r *Region) Edit(fn func(e *RegionEdit) error) error {
	e, err := r.Begin()
	if err != nil {
		return err
	}
	defer e.Abort()
	if err := fn(e); err != nil {
		return err
	}
	return e.Commit()
}

// Center returns the pending center.
func (e *RegionEdit) Center() Point {
	return e.center
}

// SetCenter sets one coordinate of the pending center.
func (e *RegionEdit) SetCenter(axis Axis, v float64) error {
	if e.closed {
		return ErrEditClosed
	}
	c, err := withCenterCoord(e.center, axis, v)
	if err != nil {
		return err
	}
	e.center = c
	return nil
}

// Commit applies the pending center and notifies observers once.
func (e *RegionEdit) Commit() error {
	if e.closed {
		return ErrEditClosed
	}
	e.closed = true
	e.r.edit = nil
	e.r.center = e.center
	e.r.Notify()
	return nil
}

// Abort discards the pending center.
func (e *RegionEdit) Abort() {
	if e.closed {
		return
	}
	e.closed = true
	e.r.edit = nil
}

func (r *Region) String() string {
	return fmt.Sprintf("Region{center %v, radius %g}", r.center, r.radius)
}
