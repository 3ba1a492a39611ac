package engine

// LineCap is the shape of stroked line endpoints.
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin is the shape of stroked line joins.
type LineJoin int

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// Surface is the capability set the renderer needs from a drawing
// backend. The engine issues ordered drawing calls against it during a
// single Render pass and holds no reference to it afterwards.
//
// Colors cross the boundary as CSS-style specs ("#rrggbb",
// "rgba(r, g, b, a)", ...). A backend should treat specs it cannot
// parse, and fonts or dash patterns it cannot honor, as best-effort:
// losing one decorative element must not abort the frame.
type Surface interface {
	// Paint state.
	SetFillColor(spec string)
	SetStrokeColor(spec string)
	SetGlobalAlpha(alpha float64)
	SetLineWidth(width float64)
	SetLineCap(cap LineCap)
	SetLineJoin(join LineJoin)
	// SetLineDash sets the on/off dash pattern; an empty pattern
	// restores solid lines.
	SetLineDash(segments []float64)

	// Path construction.
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cx, cy, x, y float64)
	BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64)
	// Ellipse appends a full axis-aligned ellipse centered at (cx, cy).
	Ellipse(cx, cy, rx, ry float64)
	ClosePath()

	// Painting. Fill and Stroke consume the constructed path but must
	// leave it intact so a fill-then-stroke sequence works.
	Fill()
	Stroke()
	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)

	// Text.
	SetFontSize(px float64)
	FillText(text string, x, y float64)
	// MeasureText returns the advance width of text at the current
	// font size.
	MeasureText(text string) float64
}
