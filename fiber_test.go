package phantom

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNewFiberErrors(t *testing.T) {
	tests := []struct {
		name   string
		pts    []Point
		mode   TangentMode
		radius float64
		want   error
	}{
		{"no points", nil, Symmetric, 1, ErrTooFewPoints},
		{"one point", []Point{Pt(1, 2, 3)}, Symmetric, 1, ErrTooFewPoints},
		{"duplicate points", []Point{Pt(0, 0, 0), Pt(1, 0, 0), Pt(1, 0, 0)}, Symmetric, 1, ErrDegenerateSegment},
		{"NaN", []Point{Pt(0, 0, 0), Pt(math.NaN(), 0, 0)}, Symmetric, 1, ErrNonFinite},
		{"infinity", []Point{Pt(math.Inf(1), 0, 0), Pt(1, 0, 0)}, Symmetric, 1, ErrNonFinite},
		{"overflow", []Point{Pt(-math.MaxFloat64, 0, 0), Pt(math.MaxFloat64, 0, 0)}, Symmetric, 1, ErrNonFinite},
		{"unknown mode", []Point{Pt(0, 0, 0), Pt(1, 0, 0)}, TangentMode(7), 1, ErrInvalidTangentMode},
		{"zero radius", []Point{Pt(0, 0, 0), Pt(1, 0, 0)}, Symmetric, 0, ErrInvalidRadius},
		{"negative radius", []Point{Pt(0, 0, 0), Pt(1, 0, 0)}, Symmetric, -2, ErrInvalidRadius},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFiber(tt.pts, tt.mode, tt.radius)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if f != nil {
				t.Errorf("got fiber %v, want nil", f)
			}
		})
	}
}

func TestNewFiberCopiesPoints(t *testing.T) {
	pts := []Point{Pt(0, 0, 0), Pt(1, 0, 0)}
	f := mustFiber(t, Symmetric, pts...)
	pts[1] = Pt(5, 5, 5)
	diff(t, []Point{Pt(0, 0, 0), Pt(1, 0, 0)}, f.ControlPoints())
}

func TestFiberParams(t *testing.T) {
	f := mustFiber(t, Symmetric, Pt(0, 0, 0), Pt(3, 4, 0), Pt(3, 4, 5))
	diff(t, []float64{0, 0.5, 1}, f.Params())
	if l := f.Length(); l != 10 {
		t.Errorf("got length %v, want 10", l)
	}

	// Uneven chords give uneven spacing.
	f = mustFiber(t, Symmetric, Pt(0, 0, 0), Pt(1, 0, 0), Pt(4, 0, 0))
	diff(t, []float64{0, 0.25, 1}, f.Params())
}

func TestFiberParamsIncrease(t *testing.T) {
	f := mustFiber(t, Outgoing, Pt(-3, 1, 0), Pt(-1, 2, 1), Pt(0.5, 0.1, 2), Pt(2, -1, 1), Pt(3, 0, 0))
	ts := f.Params()
	if ts[0] != 0 || ts[len(ts)-1] != 1 {
		t.Errorf("got range [%v, %v], want [0, 1]", ts[0], ts[len(ts)-1])
	}
	for i := 1; i < len(ts); i++ {
		if ts[i] <= ts[i-1] {
			t.Errorf("params not strictly increasing at %d: %v", i, ts)
		}
	}
	if n := len(f.Segments()); n != 4 {
		t.Errorf("got %d segments, want 4", n)
	}
}

func TestEstimateTangents(t *testing.T) {
	pts := []Point{Pt(1, 0, 0), Pt(2, 1, 0), Pt(4, 1, 0)}
	const length = 2.0
	s2 := math.Sqrt2

	tests := []struct {
		mode TangentMode
		mid  r3.Vector
	}{
		{Symmetric, r3.Vector{X: 3, Y: 1}.Normalize().Mul(length)},
		{Incoming, r3.Vector{X: s2, Y: s2}},
		{Outgoing, r3.Vector{X: 2}},
	}
	for _, tt := range tests {
		ds, err := estimateTangents(pts, tt.mode, length)
		if err != nil {
			t.Fatal(err)
		}
		want := []r3.Vector{{X: -2}, tt.mid, r3.Vector{X: 4, Y: 1}.Normalize().Mul(length)}
		diff(t, want, ds, vectorComparer)
	}
}

func TestEstimateTangentsFallback(t *testing.T) {
	// Both end points are at the origin and the symmetric difference at the
	// hairpin is zero, so every tangent falls back to an adjacent chord.
	pts := []Point{Pt(0, 0, 0), Pt(1, 0, 0), Pt(0, 0, 0)}
	ds, err := estimateTangents(pts, Symmetric, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []r3.Vector{{X: 1}, {X: -1}, {X: -1}}
	diff(t, want, ds, vectorComparer)
}

func TestFiberStraightLine(t *testing.T) {
	f, err := NewFiber([]Point{Pt(0, 0, 0), Pt(10, 0, 0)}, Symmetric, 1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []float64{0, 1}, f.Params())
	if l := f.Length(); l != 10 {
		t.Errorf("got length %v, want 10", l)
	}
	got, err := f.Interpolate(0.5)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{Pt(5, 0, 0)}, got, pointComparer)

	ks, err := f.Curvature(0, 0.3, 1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []float64{0, 0, 0}, ks, cmpopts.EquateApprox(0, 1e-12))
}

func TestFiberPassesThroughControlPoints(t *testing.T) {
	pts := []Point{Pt(-4, 1, 0), Pt(-1, 3, 2), Pt(2, 2, -1), Pt(3, -2, 0), Pt(6, 0, 1)}
	for _, mode := range []TangentMode{Symmetric, Incoming, Outgoing} {
		f := mustFiber(t, mode, pts...)
		got, err := f.Interpolate(f.Params()...)
		if err != nil {
			t.Fatal(err)
		}
		diff(t, pts, got, pointComparer)

		// Interior control points are reproduced exactly.
		for i := 1; i < len(pts)-1; i++ {
			if p, _ := f.At(f.Params()[i]); p != pts[i] {
				t.Errorf("%v: got %v at control point %d, want %v", mode, p, i, pts[i])
			}
		}
	}
}

func TestFiberThreePoints(t *testing.T) {
	f := mustFiber(t, Symmetric, Pt(0, 0, 0), Pt(5, 5, 0), Pt(10, 0, 0))
	t1 := f.Params()[1]
	got, err := f.Interpolate(t1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{Pt(5, 5, 0)}, got)

	k, err := f.CurvatureAt(t1)
	if err != nil {
		t.Fatal(err)
	}
	if !(k > 0) || math.IsInf(k, 0) {
		t.Errorf("got curvature %v, want finite and positive", k)
	}
}

func TestFiberTangentsAreUnit(t *testing.T) {
	f := mustFiber(t, Symmetric, Pt(-4, 1, 0), Pt(-1, 3, 2), Pt(2, 2, -1), Pt(6, 0, 1))
	ts := Linspace(50)
	vs, err := f.Tangent(ts...)
	if err != nil {
		t.Fatal(err)
	}
	if len(vs) != len(ts) {
		t.Fatalf("got %d tangents, want %d", len(vs), len(ts))
	}
	for i, v := range vs {
		if n := v.Norm(); math.Abs(n-1) > 1e-9 {
			t.Errorf("tangent %d: got norm %v, want 1", i, n)
		}
	}

	ks, err := f.Curvature(ts...)
	if err != nil {
		t.Fatal(err)
	}
	for i, k := range ks {
		if k < 0 || math.IsNaN(k) {
			t.Errorf("curvature %d: got %v, want non-negative", i, k)
		}
	}
}

func TestFiberEndTangents(t *testing.T) {
	// Ends follow the radial direction: inward at the start, outward at the
	// end.
	f := mustFiber(t, Symmetric, Pt(0, 0, 5), Pt(1, 1, 0), Pt(5, 0, 0))
	start, err := f.TangentAt(0)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, r3.Vector{Z: -1}, start, vectorComparer)
	end, err := f.TangentAt(1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, r3.Vector{X: 1}, end, vectorComparer)
}

func TestFiberTangentModeKeepsEnds(t *testing.T) {
	pts := []Point{Pt(-4, 1, 0), Pt(-1, 3, 2), Pt(2, 2, -1), Pt(6, 0, 1)}
	f := mustFiber(t, Symmetric, pts...)
	before, err := f.Interpolate(0, 0.5, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetTangentMode(Incoming); err != nil {
		t.Fatal(err)
	}
	after, err := f.Interpolate(0, 0.5, 1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, before[0], after[0], pointComparer)
	diff(t, before[2], after[2], pointComparer)
	if before[1] == after[1] {
		t.Errorf("interior of the fiber did not change with tangent mode")
	}
	if f.TangentMode() != Incoming {
		t.Errorf("got mode %v, want %v", f.TangentMode(), Incoming)
	}
}

func TestInterpolateOutOfRange(t *testing.T) {
	f := mustFiber(t, Symmetric, Pt(0, 0, 0), Pt(10, 0, 0))
	got, err := f.Interpolate(1.5)
	if len(got) != 0 {
		t.Errorf("got %v, want no results", got)
	}
	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("got %T, want *EvalError", err)
	}
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("got %v, want %v", err, ErrOutOfRange)
	}
	diff(t, []int{0}, evalErr.Indices())
	if evalErr.Min != 0 || evalErr.Max != 1 {
		t.Errorf("got range [%v, %v], want [0, 1]", evalErr.Min, evalErr.Max)
	}
}

func TestInterpolateMixedBatch(t *testing.T) {
	f := mustFiber(t, Symmetric, Pt(0, 0, 0), Pt(10, 0, 0))
	got, err := f.Interpolate(0, -0.1, 0.5, math.NaN(), 1)
	diff(t, []Point{Pt(0, 0, 0), Pt(5, 0, 0), Pt(10, 0, 0)}, got, pointComparer)

	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("got %T, want *EvalError", err)
	}
	diff(t, []int{1, 3}, evalErr.Indices())
	if evalErr.Failed[0].Value != -0.1 {
		t.Errorf("got failed value %v, want -0.1", evalErr.Failed[0].Value)
	}

	if _, err := f.Tangent(2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("got %v, want %v", err, ErrOutOfRange)
	}
	if _, err := f.Curvature(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("got %v, want %v", err, ErrOutOfRange)
	}
	if _, err := f.At(1.01); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("got %v, want %v", err, ErrOutOfRange)
	}
}

func TestInterpolateEmptyBatch(t *testing.T) {
	f := mustFiber(t, Symmetric, Pt(0, 0, 0), Pt(10, 0, 0))
	got, err := f.Interpolate()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want no results", got)
	}
}

func TestDegenerateTangent(t *testing.T) {
	var seg HermiteSegment
	if _, err := evalTangent(seg, 0.5); !errors.Is(err, ErrDegenerateTangent) {
		t.Errorf("got %v, want %v", err, ErrDegenerateTangent)
	}
	if _, err := evalCurvature(seg, 0.5); !errors.Is(err, ErrDegenerateTangent) {
		t.Errorf("got %v, want %v", err, ErrDegenerateTangent)
	}
}

func TestLinspace(t *testing.T) {
	diff(t, []float64{0, 0.25, 0.5, 0.75, 1}, Linspace(5))
	diff(t, []float64{0}, Linspace(1))
	if ts := Linspace(0); ts != nil {
		t.Errorf("got %v, want nil", ts)
	}
}

func TestTrajectory(t *testing.T) {
	f := mustFiber(t, Symmetric, Pt(0, 0, 0), Pt(10, 0, 0))
	got, err := f.Trajectory(5)
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{Pt(0, 0, 0), Pt(2.5, 0, 0), Pt(5, 0, 0), Pt(7.5, 0, 0), Pt(10, 0, 0)}
	diff(t, want, got, pointComparer)

	if _, err := f.Trajectory(1); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("got %v, want %v", err, ErrTooFewPoints)
	}
}

func TestParseTangentMode(t *testing.T) {
	for _, mode := range []TangentMode{Symmetric, Incoming, Outgoing} {
		got, err := ParseTangentMode(mode.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != mode {
			t.Errorf("got %v, want %v", got, mode)
		}
	}
	if _, err := ParseTangentMode("central"); !errors.Is(err, ErrInvalidTangentMode) {
		t.Errorf("got %v, want %v", err, ErrInvalidTangentMode)
	}
}
