package engine

import "unicode/utf8"

// HitTestMiss is returned when no entity matches a hit-test query.
const HitTestMiss = -1

// HitTest returns the index of the topmost stroke under (x, y), with
// radius as the tolerance in pixels, or HitTestMiss when nothing
// matches. The stroke list is scanned in reverse so that when entities
// overlap the last-drawn one wins.
//
// The tests are deliberately approximate and match the rendered
// behavior users rely on: freehand strokes are tested per sample point
// (gaps between widely spaced samples do not hit), shapes by their
// axis-aligned bounding box regardless of silhouette, and text by a
// character-count width heuristic rather than real text metrics.
func (e *Engine) HitTest(x, y, radius float64) int {
	query := Point{X: x, Y: y}

	for i := len(e.strokes) - 1; i >= 0; i-- {
		stroke := &e.strokes[i]
		switch stroke.tool.Kind {
		case ToolPen, ToolHighlighter:
			reach := radius + stroke.Thickness/2
			for _, p := range stroke.Points {
				if query.Distance(p) <= reach {
					return i
				}
			}

		case ToolShape:
			if len(stroke.Points) < 2 {
				continue
			}
			a, b := stroke.Points[0], stroke.Points[1]
			minX := min(a.X, b.X)
			minY := min(a.Y, b.Y)
			maxX := max(a.X, b.X)
			maxY := max(a.Y, b.Y)
			if x >= minX-radius && x <= maxX+radius && y >= minY-radius && y <= maxY+radius {
				return i
			}

		case ToolText:
			if len(stroke.Points) == 0 {
				continue
			}
			anchor := stroke.Points[0]
			fontSize := textFontSize(stroke.Thickness)
			textWidth := float64(utf8.RuneCountInString(stroke.tool.Text)) * fontSize * 0.6
			if x >= anchor.X-radius && x <= anchor.X+textWidth+radius &&
				y >= anchor.Y-fontSize-radius && y <= anchor.Y+radius {
				return i
			}
		}
	}
	return HitTestMiss
}
