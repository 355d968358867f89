package phantom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Point is a location in 3D space. It shares its layout with [r3.Vector], and
// converting between the two is free.
type Point struct {
	X float64
	Y float64
	Z float64
}

// Pt returns the point (x, y, z).
func Pt(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// PtFromSlice returns the point stored in the first three elements of s.
func PtFromSlice(s []float64) Point {
	return Point{X: s[0], Y: s[1], Z: s[2]}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", pt.X, pt.Y, pt.Z)
}

// Vec returns the position vector of pt, that is pt − origin.
func (pt Point) Vec() r3.Vector {
	return r3.Vector(pt)
}

// Sub computes p−o.
func (pt Point) Sub(o Point) r3.Vector {
	return r3.Vector{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
		Z: pt.Z - o.Z,
	}
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	return pt.Sub(o).Norm()
}

// DistanceSquared returns the squared euclidean distance between two points.
func (pt Point) DistanceSquared(o Point) float64 {
	return pt.Sub(o).Norm2()
}

// Coord returns the coordinate of pt along axis.
func (pt Point) Coord(axis Axis) float64 {
	switch axis {
	case X:
		return pt.X
	case Y:
		return pt.Y
	case Z:
		return pt.Z
	default:
		panic(fmt.Sprintf("invalid axis %d", axis))
	}
}

// WithCoord returns a copy of pt with the coordinate along axis set to v.
func (pt Point) WithCoord(axis Axis, v float64) Point {
	switch axis {
	case X:
		pt.X = v
	case Y:
		pt.Y = v
	case Z:
		pt.Z = v
	default:
		panic(fmt.Sprintf("invalid axis %d", axis))
	}
	return pt
}

// Map returns a new point with fn applied to each coordinate.
func (pt Point) Map(fn func(float64) float64) Point {
	return Point{
		X: fn(pt.X),
		Y: fn(pt.Y),
		Z: fn(pt.Z),
	}
}

// IsInf reports whether at least one of x, y and z is infinite.
func (pt Point) IsInf() bool {
	return math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) || math.IsInf(pt.Z, 0)
}

// IsNaN reports whether at least one of x, y and z is NaN.
func (pt Point) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsNaN(pt.Z)
}

func (pt Point) isFinite() bool {
	return !pt.IsInf() && !pt.IsNaN()
}

// Axis names one of the three coordinate axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// Axes lists the coordinate axes in order.
var Axes = [3]Axis{X, Y, Z}

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

func (a Axis) valid() bool {
	return a >= X && a <= Z
}

// ParseAxis parses the axis labels "x", "y" and "z".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x":
		return X, nil
	case "y":
		return Y, nil
	case "z":
		return Z, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidAxis)
	}
}
