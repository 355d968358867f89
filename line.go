package phantom

import "github.com/golang/geo/r3"

// Chord is the straight segment between two consecutive control points.
type Chord struct {
	// The chord's start point.
	P0 Point
	// The chord's end point.
	P1 Point
}

// Length returns the length of the chord.
func (c Chord) Length() float64 {
	return c.P1.Sub(c.P0).Norm()
}

// Direction returns the vector from P0 to P1.
func (c Chord) Direction() r3.Vector {
	return c.P1.Sub(c.P0)
}

// IsDegenerate reports whether the chord has zero length.
func (c Chord) IsDegenerate() bool {
	return c.P0 == c.P1
}

// IsInf reports whether either end point has an infinite coordinate.
func (c Chord) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf()
}

// IsNaN reports whether either end point has a NaN coordinate.
func (c Chord) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN()
}

// chords returns the chords joining consecutive points.
func chords(pts []Point) []Chord {
	if len(pts) < 2 {
		return nil
	}
	out := make([]Chord, len(pts)-1)
	for i := range out {
		out[i] = Chord{pts[i], pts[i+1]}
	}
	return out
}
