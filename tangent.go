package phantom

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// TangentMode selects how the direction of a fiber is estimated at its
// interior control points.
type TangentMode int

const (
	// Symmetric uses the central difference p[i+1] − p[i−1].
	Symmetric TangentMode = iota
	// Incoming uses the backward difference p[i] − p[i−1].
	Incoming
	// Outgoing uses the forward difference p[i+1] − p[i].
	Outgoing
)

func (m TangentMode) String() string {
	switch m {
	case Symmetric:
		return "symmetric"
	case Incoming:
		return "incoming"
	case Outgoing:
		return "outgoing"
	default:
		return fmt.Sprintf("TangentMode(%d)", int(m))
	}
}

func (m TangentMode) valid() bool {
	return m == Symmetric || m == Incoming || m == Outgoing
}

// ParseTangentMode parses the names used in phantom files: "incoming",
// "outgoing" and "symmetric".
func ParseTangentMode(s string) (TangentMode, error) {
	switch s {
	case "symmetric":
		return Symmetric, nil
	case "incoming":
		return Incoming, nil
	case "outgoing":
		return Outgoing, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidTangentMode)
	}
}

// estimateTangents returns the derivative at every control point, each of
// magnitude length.
//
// The end points use their position vectors: −p[0] at the start and p[N−1] at
// the end. Fibers are modelled as leaving and entering an implicit cortical
// sphere centred at the origin, so they meet it along the radial direction.
// Existing phantom files depend on this exact rule.
//
// A raw derivative of zero (an end point at the origin, or a symmetric
// difference across a hairpin) falls back to the direction of the adjacent
// chord. Chords are non-degenerate by the time this runs.
func estimateTangents(pts []Point, mode TangentMode, length float64) ([]r3.Vector, error) {
	if !mode.valid() {
		return nil, fmt.Errorf("%v: %w", mode, ErrInvalidTangentMode)
	}
	n := len(pts)
	cs := chords(pts)
	out := make([]r3.Vector, n)

	out[0] = pts[0].Vec().Mul(-1)
	if out[0].Norm2() == 0 {
		out[0] = cs[0].Direction()
	}
	out[n-1] = pts[n-1].Vec()
	if out[n-1].Norm2() == 0 {
		out[n-1] = cs[n-2].Direction()
	}

	for i := 1; i < n-1; i++ {
		var d r3.Vector
		switch mode {
		case Incoming:
			d = cs[i-1].Direction()
		case Outgoing:
			d = cs[i].Direction()
		case Symmetric:
			d = pts[i+1].Sub(pts[i-1])
		}
		if d.Norm2() == 0 {
			d = cs[i].Direction()
		}
		out[i] = d
	}

	for i, d := range out {
		out[i] = d.Normalize().Mul(length)
	}
	return out, nil
}
