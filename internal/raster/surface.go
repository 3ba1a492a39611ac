// Package raster adapts a gg software-rendering context to the engine's
// Surface capability set. It is the only place in MarkBoard that knows
// about a concrete graphics backend; the engine itself stays polymorphic
// over Surface.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"unicode/utf8"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"MarkBoard/internal/engine"
)

// Surface renders engine drawing calls into an in-memory RGBA image.
type Surface struct {
	ctx *gg.Context

	fill      color.NRGBA
	stroke    color.NRGBA
	alpha     float64
	lineWidth float64
	fontSize  float64

	font *text.FontSource
	face text.Face
}

var _ engine.Surface = (*Surface)(nil)

// New creates a surface of the given pixel dimensions.
func New(width, height int) *Surface {
	return &Surface{
		ctx:       gg.NewContext(width, height),
		fill:      color.NRGBA{A: 255},
		stroke:    color.NRGBA{A: 255},
		alpha:     1,
		lineWidth: 1,
	}
}

// LoadFont loads a TTF/OTF font used for text entities. Without a font
// the surface still renders everything except text, which degrades to a
// no-op (best-effort, matching the engine's error policy).
func (s *Surface) LoadFont(path string) error {
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return fmt.Errorf("load font %s: %w", path, err)
	}
	s.font = src
	if s.fontSize > 0 {
		s.face = src.Face(s.fontSize)
		s.ctx.SetFont(s.face)
	}
	return nil
}

// Image exposes the rendered frame for display or export. The returned
// image shares the surface's backing store.
func (s *Surface) Image() image.Image { return s.ctx.Image() }

// EncodePNG writes the current frame as PNG.
func (s *Surface) EncodePNG(w io.Writer) error { return s.ctx.EncodePNG(w) }

// Resize reallocates the backing store for new dimensions.
func (s *Surface) Resize(width, height int) error {
	return s.ctx.Resize(width, height)
}

// DrawImage paints an image (a rasterized page, typically) at (x, y).
// Callers use this to put a background underneath a Render pass invoked
// with hasBackground = true.
func (s *Surface) DrawImage(img image.Image, x, y float64) {
	s.ctx.DrawImage(gg.ImageBufFromImage(img), x, y)
}

// SetFillColor parses a CSS-style color spec for subsequent fills.
func (s *Surface) SetFillColor(spec string) { s.fill = parseColor(spec) }

// SetStrokeColor parses a CSS-style color spec for subsequent strokes.
func (s *Surface) SetStrokeColor(spec string) { s.stroke = parseColor(spec) }

// SetGlobalAlpha scales the alpha of every subsequent paint operation.
func (s *Surface) SetGlobalAlpha(alpha float64) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	s.alpha = alpha
}

func (s *Surface) SetLineWidth(width float64) { s.lineWidth = width }

func (s *Surface) SetLineCap(c engine.LineCap) {
	switch c {
	case engine.LineCapRound:
		s.ctx.SetLineCap(gg.LineCapRound)
	case engine.LineCapSquare:
		s.ctx.SetLineCap(gg.LineCapSquare)
	default:
		s.ctx.SetLineCap(gg.LineCapButt)
	}
}

func (s *Surface) SetLineJoin(j engine.LineJoin) {
	switch j {
	case engine.LineJoinRound:
		s.ctx.SetLineJoin(gg.LineJoinRound)
	case engine.LineJoinBevel:
		s.ctx.SetLineJoin(gg.LineJoinBevel)
	default:
		s.ctx.SetLineJoin(gg.LineJoinMiter)
	}
}

func (s *Surface) SetLineDash(segments []float64) {
	if len(segments) == 0 {
		s.ctx.ClearDash()
		return
	}
	s.ctx.SetDash(segments...)
}

func (s *Surface) BeginPath() { s.ctx.ClearPath() }

func (s *Surface) MoveTo(x, y float64) { s.ctx.MoveTo(x, y) }

func (s *Surface) LineTo(x, y float64) { s.ctx.LineTo(x, y) }

func (s *Surface) QuadraticCurveTo(cx, cy, x, y float64) { s.ctx.QuadraticTo(cx, cy, x, y) }

func (s *Surface) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.ctx.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (s *Surface) Ellipse(cx, cy, rx, ry float64) { s.ctx.DrawEllipse(cx, cy, rx, ry) }

func (s *Surface) ClosePath() { s.ctx.ClosePath() }

// Fill paints the constructed path with the fill color, preserving the
// path so a following Stroke reuses it.
func (s *Surface) Fill() {
	s.ctx.SetColor(s.effective(s.fill))
	_ = s.ctx.FillPreserve()
}

// Stroke outlines the constructed path, preserving it.
func (s *Surface) Stroke() {
	s.ctx.SetColor(s.effective(s.stroke))
	s.ctx.SetLineWidth(s.lineWidth)
	_ = s.ctx.StrokePreserve()
}

func (s *Surface) FillRect(x, y, w, h float64) {
	s.ctx.ClearPath()
	s.ctx.DrawRectangle(x, y, w, h)
	s.ctx.SetColor(s.effective(s.fill))
	_ = s.ctx.Fill()
}

func (s *Surface) StrokeRect(x, y, w, h float64) {
	s.ctx.ClearPath()
	s.ctx.DrawRectangle(x, y, w, h)
	s.ctx.SetColor(s.effective(s.stroke))
	s.ctx.SetLineWidth(s.lineWidth)
	_ = s.ctx.Stroke()
}

func (s *Surface) SetFontSize(px float64) {
	s.fontSize = px
	if s.font != nil && px > 0 {
		s.face = s.font.Face(px)
		s.ctx.SetFont(s.face)
	}
}

func (s *Surface) FillText(t string, x, y float64) {
	if s.face == nil {
		return
	}
	s.ctx.SetColor(s.effective(s.fill))
	s.ctx.DrawString(t, x, y)
}

// MeasureText returns the advance width of t at the current font size.
// Without a loaded font it falls back to the same character-count
// heuristic the hit-tester uses.
func (s *Surface) MeasureText(t string) float64 {
	if s.face == nil {
		return float64(utf8.RuneCountInString(t)) * s.fontSize * 0.6
	}
	w, _ := s.ctx.MeasureString(t)
	return w
}

// effective folds the global alpha into a color, Canvas-style.
func (s *Surface) effective(c color.NRGBA) color.NRGBA {
	if s.alpha >= 1 {
		return c
	}
	c.A = uint8(float64(c.A)*s.alpha + 0.5)
	return c
}
