package phantom

import (
	"fmt"
	"math"
)

// chordParams computes the chord-length parameterization of pts: one value
// per point, proportional to the cumulative distance along the control
// polygon and normalized to [0, 1]. It also returns the total polygon length.
//
// Spacing by distance rather than by index keeps traversal speed roughly
// uniform across short and long segments.
func chordParams(pts []Point) ([]float64, float64, error) {
	if len(pts) < 2 {
		return nil, 0, fmt.Errorf("got %d: %w", len(pts), ErrTooFewPoints)
	}
	cs := chords(pts)
	for i, c := range cs {
		if c.IsNaN() || c.IsInf() {
			return nil, 0, fmt.Errorf("control points %d and %d: %w", i, i+1, ErrNonFinite)
		}
	}

	ts := make([]float64, len(pts))
	for i, c := range cs {
		if c.IsDegenerate() {
			return nil, 0, fmt.Errorf("control points %d and %d: %w", i, i+1, ErrDegenerateSegment)
		}
		ts[i+1] = ts[i] + c.Length()
	}

	length := ts[len(ts)-1]
	if math.IsInf(length, 0) {
		return nil, 0, fmt.Errorf("fiber length overflows: %w", ErrNonFinite)
	}
	for i := range ts {
		ts[i] /= length
	}
	return ts, length, nil
}
