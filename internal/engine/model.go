package engine

import (
	"encoding/json"
	"math"
	"strings"
)

// Point is a 2D coordinate in surface-pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	d := p.Sub(q)
	return math.Hypot(d.X, d.Y)
}

// ToolKind identifies which variant of the tool tag a stroke carries.
type ToolKind int

const (
	// ToolPen and ToolHighlighter are the freehand tools.
	ToolPen ToolKind = iota
	ToolHighlighter
	// ToolShape covers the "shape-<kind>" tags.
	ToolShape
	// ToolText covers "text:<literal>" tags; the literal rides along.
	ToolText
	// ToolUnknown is any tag we do not recognise. It still renders as a
	// freehand path but is never hit-testable.
	ToolUnknown
)

// Tool is the parsed form of the string-tagged tool field. The tag is
// parsed once when a payload is decoded, not on every dispatch.
type Tool struct {
	Kind  ToolKind
	Shape string // shape kind, e.g. "rectangle", when Kind == ToolShape
	Text  string // literal text when Kind == ToolText
}

// ParseTool splits a wire-format tool tag into its variant.
func ParseTool(tag string) Tool {
	switch {
	case tag == "pen":
		return Tool{Kind: ToolPen}
	case tag == "highlighter":
		return Tool{Kind: ToolHighlighter}
	case strings.HasPrefix(tag, "shape-"):
		return Tool{Kind: ToolShape, Shape: strings.TrimPrefix(tag, "shape-")}
	case strings.HasPrefix(tag, "text:"):
		return Tool{Kind: ToolText, Text: strings.TrimPrefix(tag, "text:")}
	default:
		return Tool{Kind: ToolUnknown}
	}
}

// Stroke is one persisted board entity: a freehand path, a shape or a
// text label, depending on the tool tag.
type Stroke struct {
	ID        string  `json:"id"`
	Points    []Point `json:"points"`
	Color     string  `json:"color"`
	Thickness float64 `json:"thickness"`
	Opacity   float64 `json:"opacity"`
	ToolTag   string  `json:"tool"`
	FillColor *string `json:"fill_color,omitempty"`

	tool Tool
}

// Tool returns the parsed tool variant for this stroke.
func (s *Stroke) Tool() Tool { return s.tool }

func (s *Stroke) hasFill() bool {
	return s.FillColor != nil && *s.FillColor != ""
}

// CurrentStrokeStyle is the style of the single in-progress freehand
// stroke, before it is committed to the stroke list.
type CurrentStrokeStyle struct {
	Color     string  `json:"color"`
	Thickness float64 `json:"thickness"`
	Opacity   float64 `json:"opacity"`
}

// ShapePreview is the rubber-band preview of a shape being dragged out.
type ShapePreview struct {
	ShapeType string  `json:"shape_type"`
	Start     Point   `json:"start"`
	End       Point   `json:"end"`
	Color     string  `json:"color"`
	Thickness float64 `json:"thickness"`
	Opacity   float64 `json:"opacity"`
	FillColor *string `json:"fill_color,omitempty"`
}

// SymbolPreview is the placement preview of a stamped symbol.
type SymbolPreview struct {
	Symbol  string  `json:"symbol"`
	Start   Point   `json:"start"`
	End     Point   `json:"end"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// decodeStrokes parses a serialized stroke list and resolves every tool
// tag. Returns false if the payload does not match the schema. A JSON
// null is not a list and is rejected like any other malformed payload;
// only a literal [] clears the strokes.
func decodeStrokes(data []byte) ([]Stroke, bool) {
	var strokes []Stroke
	if err := json.Unmarshal(data, &strokes); err != nil {
		logger().Debug("rejected stroke payload", "err", err)
		return nil, false
	}
	if strokes == nil {
		logger().Debug("rejected stroke payload", "err", "null is not a list")
		return nil, false
	}
	for i := range strokes {
		strokes[i].tool = ParseTool(strokes[i].ToolTag)
	}
	return strokes, true
}
