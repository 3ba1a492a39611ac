package engine

import (
	"testing"
	"unicode/utf8"
)

// surfaceOp is one recorded drawing call.
type surfaceOp struct {
	name string
	args []float64
	text string
}

// recordSurface implements Surface by recording the ordered call
// sequence, so tests can assert on what a render pass painted.
type recordSurface struct {
	ops      []surfaceOp
	fontSize float64
}

func (r *recordSurface) record(name string, args ...float64) {
	r.ops = append(r.ops, surfaceOp{name: name, args: args})
}

func (r *recordSurface) SetFillColor(spec string) {
	r.ops = append(r.ops, surfaceOp{name: "fillColor", text: spec})
}
func (r *recordSurface) SetStrokeColor(spec string) {
	r.ops = append(r.ops, surfaceOp{name: "strokeColor", text: spec})
}
func (r *recordSurface) SetGlobalAlpha(a float64)     { r.record("alpha", a) }
func (r *recordSurface) SetLineWidth(w float64)       { r.record("lineWidth", w) }
func (r *recordSurface) SetLineCap(c LineCap)         { r.record("lineCap", float64(c)) }
func (r *recordSurface) SetLineJoin(j LineJoin)       { r.record("lineJoin", float64(j)) }
func (r *recordSurface) SetLineDash(seg []float64)    { r.record("lineDash", seg...) }
func (r *recordSurface) BeginPath()                   { r.record("beginPath") }
func (r *recordSurface) MoveTo(x, y float64)          { r.record("moveTo", x, y) }
func (r *recordSurface) LineTo(x, y float64)          { r.record("lineTo", x, y) }
func (r *recordSurface) ClosePath()                   { r.record("closePath") }
func (r *recordSurface) Fill()                        { r.record("fill") }
func (r *recordSurface) Stroke()                      { r.record("stroke") }
func (r *recordSurface) FillRect(x, y, w, h float64)  { r.record("fillRect", x, y, w, h) }
func (r *recordSurface) StrokeRect(x, y, w, h float64) {
	r.record("strokeRect", x, y, w, h)
}
func (r *recordSurface) QuadraticCurveTo(cx, cy, x, y float64) {
	r.record("quadraticCurveTo", cx, cy, x, y)
}
func (r *recordSurface) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.record("bezierCurveTo", c1x, c1y, c2x, c2y, x, y)
}
func (r *recordSurface) Ellipse(cx, cy, rx, ry float64) { r.record("ellipse", cx, cy, rx, ry) }
func (r *recordSurface) SetFontSize(px float64) {
	r.fontSize = px
	r.record("fontSize", px)
}
func (r *recordSurface) FillText(text string, x, y float64) {
	r.ops = append(r.ops, surfaceOp{name: "fillText", args: []float64{x, y}, text: text})
}
func (r *recordSurface) MeasureText(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * r.fontSize * 0.6
}

func (r *recordSurface) count(name string) int {
	n := 0
	for _, op := range r.ops {
		if op.name == name {
			n++
		}
	}
	return n
}

func (r *recordSurface) find(name string, args ...float64) bool {
	for _, op := range r.ops {
		if op.name != name || len(op.args) != len(args) {
			continue
		}
		match := true
		for i := range args {
			if op.args[i] != args[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}


func TestRenderBackgroundAndGrid(t *testing.T) {
	e := New(100, 60)
	s := &recordSurface{}
	e.Render(s, false)

	if !s.find("fillRect", 0, 0, 100, 60) {
		t.Errorf("background fill missing")
	}
	// Grid: verticals at x=0..100 step 20, horizontals at y=0..60.
	wantMoves := 6 + 4
	if got := s.count("moveTo"); got != wantMoves {
		t.Errorf("grid moveTo count = %d, want %d", got, wantMoves)
	}
	if !s.find("strokeRect", 0, 0, 100, 60) {
		t.Errorf("border missing")
	}
}

func TestRenderSkipsBackgroundWhenPresent(t *testing.T) {
	e := New(100, 60)
	s := &recordSurface{}
	e.Render(s, true)

	if s.count("fillRect") != 0 {
		t.Errorf("background fill painted over page raster")
	}
	if s.count("moveTo") != 0 {
		t.Errorf("grid painted over page raster")
	}
	if !s.find("strokeRect", 0, 0, 100, 60) {
		t.Errorf("border must always be painted")
	}
}

func TestRenderFilledRectangle(t *testing.T) {
	e := New(200, 200)
	e.SetStrokes([]byte(`[{"id":"r1","points":[{"x":10,"y":10},{"x":50,"y":30}],` +
		`"color":"#000000","thickness":2,"opacity":100,"tool":"shape-rectangle","fill_color":"#ff0000"}]`))

	s := &recordSurface{}
	e.Render(s, true)

	if !s.find("fillRect", 10, 10, 40, 20) {
		t.Errorf("filled rect not painted at bbox")
	}
	if !s.find("strokeRect", 10, 10, 40, 20) {
		t.Errorf("rect outline not painted at bbox")
	}
}

func TestRenderSelectedRectangleDecoration(t *testing.T) {
	e := New(200, 200)
	e.SetStrokes([]byte(`[{"id":"r1","points":[{"x":10,"y":10},{"x":50,"y":30}],` +
		`"color":"#000000","thickness":2,"opacity":100,"tool":"shape-rectangle"}]`))
	e.SetSelection("r1")

	s := &recordSurface{}
	e.Render(s, true)

	// Decoration box: bbox inflated by 5 on all sides.
	if !s.find("fillRect", 5, 5, 50, 30) {
		t.Errorf("selection tint missing")
	}
	if !s.find("strokeRect", 5, 5, 50, 30) {
		t.Errorf("selection border missing")
	}
	// Four 8x8 handles centered on the inflated corners.
	for _, c := range [][2]float64{{1, 1}, {51, 1}, {1, 31}, {51, 31}} {
		if !s.find("fillRect", c[0], c[1], 8, 8) {
			t.Errorf("handle at (%v, %v) missing", c[0], c[1])
		}
	}
}

func TestRenderStaleSelectionIsIgnored(t *testing.T) {
	e := New(200, 200)
	e.SetStrokes([]byte(`[{"id":"r1","points":[{"x":10,"y":10},{"x":50,"y":30}],` +
		`"color":"#000000","thickness":2,"opacity":100,"tool":"shape-rectangle"}]`))
	e.SetSelection("gone")

	s := &recordSurface{}
	e.Render(s, true)

	if s.find("fillRect", 5, 5, 50, 30) {
		t.Errorf("decoration painted for a selection id absent from the stroke list")
	}
}

func TestRenderPenStrokeSmoothing(t *testing.T) {
	e := New(200, 200)
	e.SetStrokes([]byte(`[{"id":"p1","points":[{"x":0,"y":0},{"x":10,"y":0},{"x":20,"y":10}],` +
		`"color":"#000000","thickness":3,"opacity":100,"tool":"pen"}]`))

	s := &recordSurface{}
	e.Render(s, true)

	if got := s.count("quadraticCurveTo"); got != 2 {
		t.Errorf("quadraticCurveTo count = %d, want 2", got)
	}
	// First curve: control = first point of the pair, end = midpoint.
	if !s.find("quadraticCurveTo", 0, 0, 5, 0) {
		t.Errorf("first smoothing curve wrong")
	}
	// The path must terminate exactly at the last raw sample.
	if !s.find("lineTo", 20, 10) {
		t.Errorf("stroke does not end at the last input sample")
	}
}

func TestRenderSinglePointPenStrokeIsSkipped(t *testing.T) {
	e := New(200, 200)
	e.SetStrokes([]byte(`[{"id":"p1","points":[{"x":5,"y":5}],` +
		`"color":"#000000","thickness":3,"opacity":100,"tool":"pen"}]`))

	s := &recordSurface{}
	e.Render(s, true)

	if s.count("moveTo") != 0 {
		t.Errorf("degenerate pen stroke should render nothing")
	}
}

func TestRenderCurrentStroke(t *testing.T) {
	e := New(200, 200)
	e.SetCurrentStroke(
		[]byte(`[{"x":0,"y":0},{"x":10,"y":10}]`),
		[]byte(`{"color":"#112233","thickness":4,"opacity":50}`),
	)

	s := &recordSurface{}
	e.Render(s, true)

	if s.count("quadraticCurveTo") != 1 {
		t.Errorf("in-progress stroke not painted")
	}
	if !s.find("alpha", 0.5) {
		t.Errorf("opacity not applied to in-progress stroke")
	}

	// Clearing the style suppresses the live stroke without touching
	// its points.
	e.SetCurrentStroke([]byte(`[{"x":0,"y":0},{"x":10,"y":10}]`), nil)
	s = &recordSurface{}
	e.Render(s, true)
	if s.count("quadraticCurveTo") != 0 {
		t.Errorf("in-progress stroke painted without a style")
	}
}

func TestRenderShapePreviewNeverDecorated(t *testing.T) {
	e := New(200, 200)
	e.SetSelection("x")
	e.SetShapePreview([]byte(`{"shape_type":"circle","start":{"x":0,"y":0},` +
		`"end":{"x":20,"y":20},"color":"#000000","thickness":1,"opacity":100}`))

	s := &recordSurface{}
	e.Render(s, true)

	if s.count("ellipse") != 1 {
		t.Errorf("shape preview not painted")
	}
	if s.count("fillRect") != 0 {
		t.Errorf("preview must never carry selection decoration")
	}
}

func TestRenderSymbolPreview(t *testing.T) {
	e := New(200, 200)
	e.SetSymbolPreview([]byte(`{"symbol":"★","start":{"x":40,"y":40},` +
		`"end":{"x":70,"y":40},"color":"#000000","opacity":100}`))

	s := &recordSurface{}
	e.Render(s, true)

	// size = max(20, |dx|, |dy|) = 30; glyph baseline offset 0.8*size.
	found := false
	for _, op := range s.ops {
		if op.name == "fillText" && op.text == "★" && op.args[0] == 40 && op.args[1] == 64 {
			found = true
		}
	}
	if !found {
		t.Errorf("symbol glyph not painted at offset baseline")
	}
	if !s.find("lineDash", 4, 4) {
		t.Errorf("dashed bounding box missing")
	}
	if !s.find("strokeRect", 36, 36, 38, 38) {
		t.Errorf("dashed box geometry wrong")
	}
}

func TestRenderTextEntity(t *testing.T) {
	e := New(200, 200)
	e.SetStrokes([]byte(`[{"id":"t1","points":[{"x":30,"y":40}],` +
		`"color":"#000000","thickness":5,"opacity":100,"tool":"text:hello"}]`))

	s := &recordSurface{}
	e.Render(s, true)

	// Font size = max(14, 5*4) = 20, baseline at the anchor point.
	if !s.find("fontSize", 20) {
		t.Errorf("text font size wrong")
	}
	found := false
	for _, op := range s.ops {
		if op.name == "fillText" && op.text == "hello" && op.args[0] == 30 && op.args[1] == 40 {
			found = true
		}
	}
	if !found {
		t.Errorf("text literal not painted at anchor")
	}
}
