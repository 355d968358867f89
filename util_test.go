package phantom

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var pointComparer = cmp.Comparer(func(p1, p2 Point) bool {
	return p1.Distance(p2) <= 1e-9
})

var vectorComparer = cmp.Comparer(func(v1, v2 r3.Vector) bool {
	return v1.Sub(v2).Norm() <= 1e-9
})

func mustFiber(t *testing.T, mode TangentMode, pts ...Point) *Fiber {
	t.Helper()
	f, err := NewFiber(pts, mode, 1)
	if err != nil {
		t.Fatalf("NewFiber(%v): %v", pts, err)
	}
	return f
}

// counter is a Refresher that counts its refreshes.
type counter struct{ n int }

func (c *counter) Refresh() { c.n++ }
