package engine

import (
	"bytes"
	"testing"
)

func TestSimplifyShortInputUnchanged(t *testing.T) {
	for _, pts := range [][]Point{
		nil,
		{{X: 1, Y: 1}},
		{{X: 1, Y: 1}, {X: 2, Y: 2}},
	} {
		got := Simplify(pts, 10)
		if len(got) != len(pts) {
			t.Errorf("len(Simplify(%v)) = %d, want %d", pts, len(got), len(pts))
		}
	}
}

func TestSimplifyCollapsesSmallJog(t *testing.T) {
	// Near-straight line with a 1px perpendicular jog in the middle.
	pts := []Point{
		{X: 0, Y: 0},
		{X: 5, Y: 1},
		{X: 10, Y: 0},
	}

	got := Simplify(pts, 2)
	if len(got) != 2 {
		t.Fatalf("jog below tolerance kept, len = %d, want 2", len(got))
	}
	if got[0] != pts[0] || got[1] != pts[2] {
		t.Errorf("endpoints not preserved: %v", got)
	}

	// The same jog above tolerance keeps its apex.
	got = Simplify(pts, 0.5)
	if len(got) != 3 {
		t.Fatalf("jog above tolerance dropped, len = %d", len(got))
	}
	if got[1] != pts[1] {
		t.Errorf("apex point not preserved: %v", got)
	}
}

func TestSimplifyEndpointsAndLength(t *testing.T) {
	pts := []Point{
		{X: 0, Y: 0}, {X: 1, Y: 3}, {X: 2, Y: -1}, {X: 3, Y: 4},
		{X: 4, Y: 0}, {X: 5, Y: 2}, {X: 6, Y: 0},
	}
	for _, tol := range []float64{0.1, 1, 2, 5, 100} {
		got := Simplify(pts, tol)
		if len(got) > len(pts) {
			t.Errorf("tol %v: output longer than input", tol)
		}
		if got[0] != pts[0] || got[len(got)-1] != pts[len(pts)-1] {
			t.Errorf("tol %v: endpoints changed: %v", tol, got)
		}
	}
}

func TestSimplifyMonotonicInTolerance(t *testing.T) {
	pts := []Point{
		{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 4, Y: 3},
		{X: 6, Y: 3}, {X: 8, Y: 2}, {X: 10, Y: 0},
	}
	prev := len(pts) + 1
	for _, tol := range []float64{0, 0.5, 1, 2, 4, 100} {
		n := len(Simplify(pts, tol))
		if n > prev {
			t.Errorf("tol %v: output grew from %d to %d", tol, prev, n)
		}
		prev = n
	}
}

func TestPerpendicularDistanceDegenerateSegment(t *testing.T) {
	a := Point{X: 3, Y: 4}
	if got := perpendicularDistance(Point{X: 0, Y: 0}, a, a); got != 5 {
		t.Errorf("degenerate segment distance = %v, want 5", got)
	}
}

func TestSimplifyJSON(t *testing.T) {
	out := SimplifyJSON([]byte(`[{"x":0,"y":0},{"x":5,"y":1},{"x":10,"y":0}]`), 2)
	want := []byte(`[{"x":0,"y":0},{"x":10,"y":0}]`)
	if !bytes.Equal(out, want) {
		t.Errorf("SimplifyJSON = %s, want %s", out, want)
	}

	if out := SimplifyJSON([]byte(`not json`), 2); !bytes.Equal(out, []byte(`[]`)) {
		t.Errorf("malformed payload = %s, want []", out)
	}

	if out := SimplifyJSON([]byte(`null`), 2); !bytes.Equal(out, []byte(`[]`)) {
		t.Errorf("null payload = %s, want []", out)
	}

	// Fewer than 3 points pass through unchanged.
	short := []byte(`[{"x":1,"y":2}]`)
	if out := SimplifyJSON(short, 2); !bytes.Equal(out, short) {
		t.Errorf("short payload = %s, want %s", out, short)
	}
}
