package engine

import "testing"

func loadStrokes(t *testing.T, e *Engine, payload string) {
	t.Helper()
	before := len(e.Strokes())
	e.SetStrokes([]byte(payload))
	if len(e.Strokes()) == before && payload != "[]" {
		t.Fatalf("test payload did not decode")
	}
}

func TestHitTestFreehandSample(t *testing.T) {
	e := New(100, 100)
	loadStrokes(t, e, `[{"id":"a","points":[{"x":10,"y":10},{"x":30,"y":30}],`+
		`"color":"#000","thickness":4,"opacity":100,"tool":"pen"}]`)

	// Exactly on a sample, radius 0.
	if got := e.HitTest(10, 10, 0); got != 0 {
		t.Errorf("HitTest on sample = %d, want 0", got)
	}
	// Within thickness/2 of a sample.
	if got := e.HitTest(12, 10, 0); got != 0 {
		t.Errorf("HitTest within half thickness = %d, want 0", got)
	}
	// Mid-segment gap is not inside: (20,20) is ~14 from both samples.
	if got := e.HitTest(20, 20, 2); got != HitTestMiss {
		t.Errorf("HitTest in sample gap = %d, want miss", got)
	}
}

func TestHitTestShapeBoundingBox(t *testing.T) {
	e := New(100, 100)
	loadStrokes(t, e, `[{"id":"c","points":[{"x":40,"y":10},{"x":10,"y":40}],`+
		`"color":"#000","thickness":1,"opacity":100,"tool":"shape-circle"}]`)

	// A circle's bbox corner hits even though the silhouette does not
	// cover it. Carried-over behavior, not a bug.
	if got := e.HitTest(11, 11, 0); got != 0 {
		t.Errorf("bbox corner = %d, want 0", got)
	}
	// Inflated by radius.
	if got := e.HitTest(43, 25, 4); got != 0 {
		t.Errorf("bbox edge within radius = %d, want 0", got)
	}
	if got := e.HitTest(50, 50, 5); got != HitTestMiss {
		t.Errorf("outside bbox = %d, want miss", got)
	}
}

func TestHitTestTextBox(t *testing.T) {
	e := New(100, 100)
	// thickness 5 -> font 20; "hi" -> width 2*20*0.6 = 24.
	loadStrokes(t, e, `[{"id":"t","points":[{"x":10,"y":50}],`+
		`"color":"#000","thickness":5,"opacity":100,"tool":"text:hi"}]`)

	if got := e.HitTest(30, 40, 0); got != 0 {
		t.Errorf("inside text box = %d, want 0", got)
	}
	// Above the ascent extent.
	if got := e.HitTest(30, 25, 0); got != HitTestMiss {
		t.Errorf("above text box = %d, want miss", got)
	}
	// Beyond the approximate width plus radius.
	if got := e.HitTest(40, 45, 2); got != HitTestMiss {
		t.Errorf("past text box = %d, want miss", got)
	}
}

func TestHitTestTopmostWins(t *testing.T) {
	e := New(100, 100)
	loadStrokes(t, e, `[
		{"id":"below","points":[{"x":0,"y":0},{"x":40,"y":40}],"color":"#000","thickness":1,"opacity":100,"tool":"shape-rectangle"},
		{"id":"above","points":[{"x":20,"y":20},{"x":60,"y":60}],"color":"#000","thickness":1,"opacity":100,"tool":"shape-rectangle"}
	]`)

	if got := e.HitTest(30, 30, 0); got != 1 {
		t.Errorf("overlap = %d, want the later-drawn index 1", got)
	}
	if got := e.HitTest(5, 5, 0); got != 0 {
		t.Errorf("non-overlapping region = %d, want 0", got)
	}
}

func TestHitTestEmptyAndUnknown(t *testing.T) {
	e := New(100, 100)
	if got := e.HitTest(10, 10, 100); got != HitTestMiss {
		t.Errorf("empty document = %d, want miss", got)
	}

	// Unknown tool tags render as freehand but are not hit-testable.
	loadStrokes(t, e, `[{"id":"u","points":[{"x":10,"y":10},{"x":20,"y":20}],`+
		`"color":"#000","thickness":10,"opacity":100,"tool":"airbrush"}]`)
	if got := e.HitTest(10, 10, 5); got != HitTestMiss {
		t.Errorf("unknown tool hit = %d, want miss", got)
	}
}
