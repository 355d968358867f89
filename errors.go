package phantom

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTooFewPoints is returned when a fiber has fewer than two control points.
	ErrTooFewPoints = errors.New("phantom: fiber needs at least two control points")

	// ErrInvalidTangentMode is returned for tangent modes other than incoming,
	// outgoing and symmetric.
	ErrInvalidTangentMode = errors.New("phantom: invalid tangent mode")

	// ErrInvalidAxis is returned for axis labels other than x, y and z.
	ErrInvalidAxis = errors.New("phantom: invalid axis")

	// ErrInvalidRadius is returned when a radius is not a positive finite number.
	ErrInvalidRadius = errors.New("phantom: radius must be positive and finite")

	// ErrNonFinite is returned when a coordinate is NaN or infinite.
	ErrNonFinite = errors.New("phantom: coordinate is NaN or infinite")

	// ErrDegenerateSegment is returned when two consecutive control points
	// coincide, leaving a segment of zero length.
	ErrDegenerateSegment = errors.New("phantom: consecutive control points coincide")

	// ErrOutOfRange is reported for evaluation parameters outside the fiber's
	// parameter range.
	ErrOutOfRange = errors.New("phantom: parameter out of range")

	// ErrDegenerateTangent is reported when the curve's derivative vanishes at
	// an evaluation parameter, so no direction exists there.
	ErrDegenerateTangent = errors.New("phantom: derivative is zero")

	// ErrIndexOutOfRange is returned when an edit addresses a control point,
	// fiber or region that does not exist.
	ErrIndexOutOfRange = errors.New("phantom: index out of range")

	// ErrEditInProgress is returned when a fiber or region is used while a
	// batch edit on it is open.
	ErrEditInProgress = errors.New("phantom: batch edit in progress")

	// ErrEditClosed is returned when a committed or aborted batch edit is used.
	ErrEditClosed = errors.New("phantom: batch edit already closed")

	// ErrBadRecord is returned for persistence records that cannot describe a
	// fiber or region.
	ErrBadRecord = errors.New("phantom: malformed record")

	// ErrInvalidConfig is returned by [Config.Validate].
	ErrInvalidConfig = errors.New("phantom: invalid config")
)

// ParamError describes one failed value of an evaluation batch.
type ParamError struct {
	// Index is the position of the value in the batch.
	Index int
	Value float64
	Err   error
}

func (e ParamError) Error() string {
	return fmt.Sprintf("value %d (%g): %s", e.Index, e.Value, e.Err)
}

func (e ParamError) Unwrap() error { return e.Err }

// EvalError is returned by the batch evaluation methods of [Fiber] when some
// of the requested parameters could not be evaluated. Results for the other
// parameters are still returned.
type EvalError struct {
	// Min and Max are the bounds of the fiber's parameter range.
	Min, Max float64
	Failed   []ParamError
}

func (e *EvalError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "phantom: %d of the requested parameters failed (range [%g, %g])", len(e.Failed), e.Min, e.Max)
	for _, f := range e.Failed {
		b.WriteString("; ")
		b.WriteString(f.Error())
	}
	return b.String()
}

// Unwrap returns the distinct causes, so that errors.Is matches
// [ErrOutOfRange] and [ErrDegenerateTangent].
func (e *EvalError) Unwrap() []error {
	var out []error
	for _, f := range e.Failed {
		seen := false
		for _, err := range out {
			if err == f.Err {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, f.Err)
		}
	}
	return out
}

// Indices returns the batch positions of the failed values.
func (e *EvalError) Indices() []int {
	out := make([]int, len(e.Failed))
	for i, f := range e.Failed {
		out[i] = f.Index
	}
	return out
}
