// Package engine is the drawing and rendering core of MarkBoard: it
// owns the committed stroke list and the ephemeral interaction state
// (in-progress stroke, previews, selection), repaints them against a
// Surface every frame, answers hit-test queries and compresses freehand
// input.
//
// The engine is single-threaded by design: the host's frame loop is the
// sole driver and all setters are expected to run on the same logical
// thread as Render. Structured data crosses the boundary as serialized
// JSON payloads; a payload that fails to decode is ignored and the
// prior state is kept, so a bad frame can never crash an interactive
// session.
package engine

import "encoding/json"

// Engine holds all board state for one canvas session.
type Engine struct {
	width  uint32
	height uint32

	strokes       []Stroke
	currentStroke []Point
	currentStyle  *CurrentStrokeStyle
	shapePreview  *ShapePreview
	symbolPreview *SymbolPreview

	selectedID  string
	selectedIDs []string

	timer FrameTimer
}

// New creates an engine for a surface of the given dimensions.
func New(width, height uint32) *Engine {
	return &Engine{width: width, height: height}
}

// Resize updates the surface dimensions used for the background fill
// and border extents. Existing geometry is not rescaled.
func (e *Engine) Resize(width, height uint32) {
	e.width = width
	e.height = height
}

// SetStrokes replaces the persisted stroke list wholesale. A malformed
// payload is a no-op that keeps the previous list.
func (e *Engine) SetStrokes(data []byte) {
	if strokes, ok := decodeStrokes(data); ok {
		e.strokes = strokes
	}
}

// SetCurrentStroke replaces the in-progress freehand path and its
// style. The two payloads are independent: a malformed points payload
// keeps the previous points, and an empty style payload clears the
// style without touching the points.
func (e *Engine) SetCurrentStroke(points, style []byte) {
	var pts []Point
	if err := json.Unmarshal(points, &pts); err != nil {
		logger().Debug("rejected current-stroke points", "err", err)
	} else if pts == nil {
		// A JSON null decodes without error but is not a point list.
		logger().Debug("rejected current-stroke points", "err", "null is not a list")
	} else {
		e.currentStroke = pts
	}

	if len(style) == 0 {
		e.currentStyle = nil
		return
	}
	var s CurrentStrokeStyle
	if err := json.Unmarshal(style, &s); err == nil {
		e.currentStyle = &s
	} else {
		logger().Debug("rejected current-stroke style", "err", err)
	}
}

// SetShapePreview replaces the shape rubber-band preview, or clears it
// when the payload is empty.
func (e *Engine) SetShapePreview(data []byte) {
	if len(data) == 0 {
		e.shapePreview = nil
		return
	}
	var p ShapePreview
	if err := json.Unmarshal(data, &p); err == nil {
		e.shapePreview = &p
	} else {
		logger().Debug("rejected shape preview", "err", err)
	}
}

// SetSymbolPreview replaces the symbol placement preview, or clears it
// when the payload is empty.
func (e *Engine) SetSymbolPreview(data []byte) {
	if len(data) == 0 {
		e.symbolPreview = nil
		return
	}
	var p SymbolPreview
	if err := json.Unmarshal(data, &p); err == nil {
		e.symbolPreview = &p
	} else {
		logger().Debug("rejected symbol preview", "err", err)
	}
}

// SetSelection sets a single-element selection, or clears the selection
// entirely when id is empty.
func (e *Engine) SetSelection(id string) {
	if id == "" {
		e.selectedID = ""
		e.selectedIDs = nil
		return
	}
	e.selectedID = id
	e.selectedIDs = []string{id}
}

// SetSelectionIDs sets a multi-element selection from a serialized id
// list. The primary selection becomes the first element, or none when
// the list is empty.
func (e *Engine) SetSelectionIDs(data []byte) {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		logger().Debug("rejected selection ids", "err", err)
		return
	}
	if ids == nil {
		logger().Debug("rejected selection ids", "err", "null is not a list")
		return
	}
	e.selectedIDs = ids
	if len(ids) > 0 {
		e.selectedID = ids[0]
	} else {
		e.selectedID = ""
	}
}

// PrimarySelection returns the primary selected stroke id, or "" when
// nothing is selected.
func (e *Engine) PrimarySelection() string { return e.selectedID }

// SelectedIDs returns a copy of the current selection, in order.
func (e *Engine) SelectedIDs() []string {
	if len(e.selectedIDs) == 0 {
		return nil
	}
	out := make([]string, len(e.selectedIDs))
	copy(out, e.selectedIDs)
	return out
}

// Strokes returns a copy of the committed stroke list in paint order.
func (e *Engine) Strokes() []Stroke {
	out := make([]Stroke, len(e.strokes))
	copy(out, e.strokes)
	return out
}

// RecordFrame feeds the frame timer with a monotonic millisecond
// timestamp; call it once per frame.
func (e *Engine) RecordFrame(timestamp float64) {
	e.timer.Record(timestamp)
}

// FPS reports the smoothed frame rate, or 0 with insufficient samples.
func (e *Engine) FPS() float64 {
	return e.timer.FPS()
}

func (e *Engine) isSelected(id string) bool {
	for _, sel := range e.selectedIDs {
		if sel == id {
			return true
		}
	}
	return false
}
