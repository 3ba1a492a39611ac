package engine

import "math"

// Palette and layout constants shared by the render pass.
const (
	backgroundColor = "#ffffff"
	gridColor       = "#e4e4e7"
	gridPitch       = 20.0
	borderColor     = "#d4d4d8"

	accentColor = "#8b5cf6"
	accentTint  = "rgba(139, 92, 246, 0.08)"

	selectionPadding = 5.0
	handleSize       = 8.0

	minFontSize = 14.0
)

// Render paints one full frame onto s. When hasBackground is true the
// caller has already painted a page raster underneath, so the flat fill
// and grid are skipped and only the border and entities are drawn.
//
// Render is synchronous and never blocks; it always runs to completion
// and the worst outcome of a bad entity is that this entity is skipped.
func (e *Engine) Render(s Surface, hasBackground bool) {
	w := float64(e.width)
	h := float64(e.height)

	if !hasBackground {
		s.SetFillColor(backgroundColor)
		s.FillRect(0, 0, w, h)
		e.drawGrid(s)
	}

	s.SetStrokeColor(borderColor)
	s.SetLineWidth(1)
	s.StrokeRect(0, 0, w, h)

	for i := range e.strokes {
		stroke := &e.strokes[i]
		e.drawStroke(s, stroke, e.isSelected(stroke.ID))
	}

	if len(e.currentStroke) > 0 && e.currentStyle != nil {
		drawPenStroke(s, e.currentStroke, e.currentStyle.Color,
			e.currentStyle.Thickness, e.currentStyle.Opacity)
	}

	if e.shapePreview != nil {
		drawShapePreview(s, e.shapePreview)
	}

	if e.symbolPreview != nil {
		drawSymbolPreview(s, e.symbolPreview)
	}
}

func (e *Engine) drawGrid(s Surface) {
	w := float64(e.width)
	h := float64(e.height)

	s.SetStrokeColor(gridColor)
	s.SetLineWidth(0.5)
	s.BeginPath()
	for x := 0.0; x <= w; x += gridPitch {
		s.MoveTo(x, 0)
		s.LineTo(x, h)
	}
	for y := 0.0; y <= h; y += gridPitch {
		s.MoveTo(0, y)
		s.LineTo(w, y)
	}
	s.Stroke()
}

func (e *Engine) drawStroke(s Surface, stroke *Stroke, selected bool) {
	switch stroke.tool.Kind {
	case ToolShape:
		drawShape(s, stroke, selected)
	case ToolText:
		drawText(s, stroke, selected)
	default:
		drawPenStroke(s, stroke.Points, stroke.Color, stroke.Thickness, stroke.Opacity)
	}
}

// drawPenStroke paints a freehand path. Interior corners are smoothed by
// drawing quadratic curves through segment midpoints with the previous
// sample as control point; the final segment is a straight line so the
// stroke terminates exactly at the last raw input sample.
func drawPenStroke(s Surface, points []Point, color string, thickness, opacity float64) {
	if len(points) < 2 {
		return
	}

	s.SetGlobalAlpha(opacity / 100)
	s.SetStrokeColor(color)
	s.SetLineWidth(thickness)
	s.SetLineCap(LineCapRound)
	s.SetLineJoin(LineJoinRound)

	s.BeginPath()
	s.MoveTo(points[0].X, points[0].Y)
	for i := 1; i < len(points); i++ {
		midX := (points[i-1].X + points[i].X) / 2
		midY := (points[i-1].Y + points[i].Y) / 2
		s.QuadraticCurveTo(points[i-1].X, points[i-1].Y, midX, midY)
	}
	last := points[len(points)-1]
	s.LineTo(last.X, last.Y)
	s.Stroke()
	s.SetGlobalAlpha(1)
}

func drawShape(s Surface, stroke *Stroke, selected bool) {
	if len(stroke.Points) < 2 {
		return
	}

	start, end := stroke.Points[0], stroke.Points[1]

	s.SetGlobalAlpha(stroke.Opacity / 100)
	s.SetStrokeColor(stroke.Color)
	s.SetLineWidth(stroke.Thickness)
	s.SetLineCap(LineCapRound)
	s.SetLineJoin(LineJoinRound)

	centerX := (start.X + end.X) / 2
	centerY := (start.Y + end.Y) / 2
	width := math.Abs(end.X - start.X)
	height := math.Abs(end.Y - start.Y)
	minX := math.Min(start.X, end.X)
	minY := math.Min(start.Y, end.Y)

	filled := stroke.hasFill()
	if filled {
		s.SetFillColor(*stroke.FillColor)
	}

	s.BeginPath()

	switch stroke.tool.Shape {
	case "rectangle":
		if filled {
			s.FillRect(minX, minY, width, height)
		}
		s.StrokeRect(minX, minY, width, height)

	case "circle":
		s.Ellipse(centerX, centerY, width/2, height/2)
		if filled {
			s.Fill()
		}
		s.Stroke()

	case "line":
		s.MoveTo(start.X, start.Y)
		s.LineTo(end.X, end.Y)
		s.Stroke()

	case "arrow":
		s.MoveTo(start.X, start.Y)
		s.LineTo(end.X, end.Y)
		s.Stroke()

		angle := math.Atan2(end.Y-start.Y, end.X-start.X)
		length := 12 + stroke.Thickness
		spread := math.Pi / 7

		s.BeginPath()
		s.MoveTo(end.X, end.Y)
		s.LineTo(end.X-length*math.Cos(angle-spread), end.Y-length*math.Sin(angle-spread))
		s.MoveTo(end.X, end.Y)
		s.LineTo(end.X-length*math.Cos(angle+spread), end.Y-length*math.Sin(angle+spread))
		s.Stroke()

	case "triangle":
		s.MoveTo(centerX, minY)
		s.LineTo(minX+width, minY+height)
		s.LineTo(minX, minY+height)
		s.ClosePath()
		if filled {
			s.Fill()
		}
		s.Stroke()

	case "diamond":
		s.MoveTo(centerX, minY)
		s.LineTo(minX+width, centerY)
		s.LineTo(centerX, minY+height)
		s.LineTo(minX, centerY)
		s.ClosePath()
		if filled {
			s.Fill()
		}
		s.Stroke()

	case "star":
		outer := math.Min(width, height) / 2
		inner := outer * 0.4
		const spikes = 5
		rot := -math.Pi / 2

		s.MoveTo(centerX+outer*math.Cos(rot), centerY+outer*math.Sin(rot))
		for i := 0; i < spikes; i++ {
			rot += math.Pi / spikes
			s.LineTo(centerX+inner*math.Cos(rot), centerY+inner*math.Sin(rot))
			rot += math.Pi / spikes
			s.LineTo(centerX+outer*math.Cos(rot), centerY+outer*math.Sin(rot))
		}
		s.ClosePath()
		if filled {
			s.Fill()
		}
		s.Stroke()

	case "heart":
		// Two symmetric lobes meeting at a bottom cusp, top dip at 15%
		// of the bbox height.
		s.MoveTo(centerX, minY+height*0.15)
		s.BezierCurveTo(centerX, minY, minX, minY, minX, minY+height*0.3)
		s.BezierCurveTo(minX, minY+height*0.8, centerX, minY+height, centerX, minY+height)
		s.BezierCurveTo(centerX, minY+height, minX+width, minY+height*0.8, minX+width, minY+height*0.3)
		s.BezierCurveTo(minX+width, minY, centerX, minY, centerX, minY+height*0.15)
		if filled {
			s.Fill()
		}
		s.Stroke()
	}

	s.SetGlobalAlpha(1)

	if selected {
		drawSelectionBox(s, minX, minY, width, height)
	}
}

func drawText(s Surface, stroke *Stroke, selected bool) {
	if len(stroke.Points) == 0 {
		return
	}

	text := stroke.tool.Text
	fontSize := textFontSize(stroke.Thickness)
	anchor := stroke.Points[0]

	s.SetGlobalAlpha(stroke.Opacity / 100)
	s.SetFillColor(stroke.Color)
	s.SetFontSize(fontSize)
	s.FillText(text, anchor.X, anchor.Y)
	s.SetGlobalAlpha(1)

	if selected {
		textWidth := s.MeasureText(text)
		drawSelectionBox(s, anchor.X-5, anchor.Y-fontSize, textWidth+10, fontSize*1.2)
	}
}

// drawSelectionBox decorates a bounding region: a low-alpha tinted box
// inflated by a fixed padding, a solid accent border, and four white
// handle squares centered on the inflated corners.
func drawSelectionBox(s Surface, x, y, w, h float64) {
	boxX := x - selectionPadding
	boxY := y - selectionPadding
	boxW := w + selectionPadding*2
	boxH := h + selectionPadding*2

	s.SetFillColor(accentTint)
	s.FillRect(boxX, boxY, boxW, boxH)
	s.SetStrokeColor(accentColor)
	s.SetLineWidth(1.5)
	s.SetLineDash(nil)
	s.StrokeRect(boxX, boxY, boxW, boxH)

	s.SetFillColor("#ffffff")
	s.SetStrokeColor(accentColor)
	s.SetLineWidth(2)

	corners := [4][2]float64{
		{boxX - handleSize/2, boxY - handleSize/2},
		{boxX + boxW - handleSize/2, boxY - handleSize/2},
		{boxX - handleSize/2, boxY + boxH - handleSize/2},
		{boxX + boxW - handleSize/2, boxY + boxH - handleSize/2},
	}
	for _, c := range corners {
		s.FillRect(c[0], c[1], handleSize, handleSize)
		s.StrokeRect(c[0], c[1], handleSize, handleSize)
	}
}

// drawShapePreview paints the rubber-band preview as if it were a
// committed two-point shape stroke, never selected.
func drawShapePreview(s Surface, p *ShapePreview) {
	stroke := Stroke{
		Points:    []Point{p.Start, p.End},
		Color:     p.Color,
		Thickness: p.Thickness,
		Opacity:   p.Opacity,
		ToolTag:   "shape-" + p.ShapeType,
		FillColor: p.FillColor,
		tool:      Tool{Kind: ToolShape, Shape: p.ShapeType},
	}
	drawShape(s, &stroke, false)
}

func drawSymbolPreview(s Surface, p *SymbolPreview) {
	size := math.Max(20, math.Max(math.Abs(p.End.X-p.Start.X), math.Abs(p.End.Y-p.Start.Y)))
	fontSize := math.Max(size, minFontSize)

	s.SetGlobalAlpha(p.Opacity / 100)
	s.SetFillColor(p.Color)
	s.SetFontSize(fontSize)
	// Offset down by 0.8 of the font size so the glyph optically
	// centers inside the dashed box.
	s.FillText(p.Symbol, p.Start.X, p.Start.Y+fontSize*0.8)
	s.SetGlobalAlpha(1)

	s.SetStrokeColor(accentColor)
	s.SetLineWidth(1)
	s.SetLineDash([]float64{4, 4})
	s.StrokeRect(p.Start.X-4, p.Start.Y-4, size+8, size+8)
	s.SetLineDash(nil)
}

func textFontSize(thickness float64) float64 {
	return math.Max(minFontSize, thickness*4)
}
