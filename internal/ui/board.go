package ui

import (
	"encoding/json"
	"image"
	"log"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"MarkBoard/internal/engine"
	"MarkBoard/internal/raster"
)

const (
	boardWidth  = 1200
	boardHeight = 800

	frameInterval     = 16 * time.Millisecond
	simplifyTolerance = 1.5
	hitRadius         = 6.0
)

// Candidate font files for text entities; the first one that loads wins.
// Text rendering degrades to a no-op when none is available.
var fontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/Library/Fonts/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

// BoardWidget is the interactive canvas. It owns the authoritative
// stroke list on this machine, feeds the engine through its serialized
// setters, and blits the rendered frame into a fyne image. All engine
// access is serialized by the widget's mutex, because input events and
// the frame ticker arrive on different goroutines.
type BoardWidget struct {
	widget.BaseWidget

	mu      sync.Mutex
	eng     *engine.Engine
	surface *raster.Surface
	display *canvas.Image

	strokes    []engine.Stroke
	background image.Image

	tool  Tool
	style Style
	text  string

	drawing bool
	points  []engine.Point
	anchor  engine.Point

	epoch time.Time
	stop  chan struct{}

	// OnStrokesChanged receives the serialized stroke list after every
	// local edit, for persistence and network sharing.
	OnStrokesChanged func(strokes []byte)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget() *BoardWidget {
	b := &BoardWidget{
		eng:     engine.New(boardWidth, boardHeight),
		surface: raster.New(boardWidth, boardHeight),
		tool:    ToolPen,
		style:   DefaultStyle(),
		epoch:   time.Now(),
	}

	for _, path := range fontPaths {
		if err := b.surface.LoadFont(path); err == nil {
			break
		}
	}

	b.display = canvas.NewImageFromImage(b.surface.Image())
	b.display.FillMode = canvas.ImageFillContain
	b.display.SetMinSize(fyne.NewSize(boardWidth/2, boardHeight/2))

	b.ExtendBaseWidget(b)
	b.renderFrame()
	return b
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.display)
}

// Start runs the frame loop until Stop is called.
func (b *BoardWidget) Start() {
	if b.stop != nil {
		return
	}
	b.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-b.stop:
				return
			case <-ticker.C:
				b.mu.Lock()
				b.eng.RecordFrame(float64(time.Since(b.epoch)) / float64(time.Millisecond))
				b.mu.Unlock()
				b.renderFrame()
				fyne.Do(func() { b.display.Refresh() })
			}
		}
	}()
}

// Stop halts the frame loop.
func (b *BoardWidget) Stop() {
	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
}

// FPS reports the engine's smoothed frame rate.
func (b *BoardWidget) FPS() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.eng.FPS()
}

func (b *BoardWidget) renderFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.background != nil {
		b.surface.DrawImage(b.background, 0, 0)
		b.eng.Render(b.surface, true)
	} else {
		b.eng.Render(b.surface, false)
	}
	b.display.Image = b.surface.Image()
}

// SetTool switches the active tool and drops any half-finished input.
func (b *BoardWidget) SetTool(tool Tool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tool = tool
	b.drawing = false
	b.points = nil
	b.eng.SetCurrentStroke([]byte("[]"), nil)
	b.eng.SetShapePreview(nil)
	b.eng.SetSymbolPreview(nil)
}

// SetStyle replaces the drawing style used for new strokes.
func (b *BoardWidget) SetStyle(style Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.style = style
}

// SetText sets the literal stamped by the text tool.
func (b *BoardWidget) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
}

// SetBackground installs a page raster under the annotations, or
// removes it when img is nil.
func (b *BoardWidget) SetBackground(img image.Image) {
	b.mu.Lock()
	b.background = img
	b.mu.Unlock()
}

// Image renders and returns the current frame, for export.
func (b *BoardWidget) Image() image.Image {
	b.renderFrame()
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.Image()
}

// Strokes returns the serialized authoritative stroke list.
func (b *BoardWidget) Strokes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return marshalStrokes(b.strokes)
}

// SetStrokes replaces the stroke list from a serialized payload, e.g. a
// loaded project. The selection is cleared.
func (b *BoardWidget) SetStrokes(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var strokes []engine.Stroke
	if err := json.Unmarshal(data, &strokes); err != nil {
		log.Printf("ignoring malformed stroke payload: %v", err)
		return
	}
	b.strokes = strokes
	b.eng.SetStrokes(data)
	b.eng.SetSelection("")
}

// ApplyRemote mirrors a stroke list received from the network.
func (b *BoardWidget) ApplyRemote(data []byte) {
	b.SetStrokes(data)
}

// Clear removes every stroke.
func (b *BoardWidget) Clear() {
	b.mu.Lock()
	b.strokes = nil
	data := b.commitLocked()
	b.mu.Unlock()
	b.notify(data)
}

func marshalStrokes(strokes []engine.Stroke) []byte {
	if len(strokes) == 0 {
		return []byte("[]")
	}
	data, err := json.Marshal(strokes)
	if err != nil {
		log.Printf("marshal strokes: %v", err)
		return []byte("[]")
	}
	return data
}

// commitLocked pushes the authoritative list into the engine and
// returns the serialized payload. Caller holds the mutex.
func (b *BoardWidget) commitLocked() []byte {
	data := marshalStrokes(b.strokes)
	b.eng.SetStrokes(data)
	return data
}

func (b *BoardWidget) notify(data []byte) {
	if b.OnStrokesChanged != nil {
		b.OnStrokesChanged(data)
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	pos := engine.Point{X: float64(e.Position.X), Y: float64(e.Position.Y)}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.tool.Kind {
	case ToolKindPen:
		b.drawing = true
		b.points = []engine.Point{pos}
		b.pushCurrentLocked()

	case ToolKindShape:
		b.drawing = true
		b.anchor = pos
		b.pushShapePreviewLocked(pos)

	case ToolKindSymbol:
		b.drawing = true
		b.anchor = pos
		b.pushSymbolPreviewLocked(pos)

	case ToolKindText:
		if b.text == "" {
			return
		}
		b.strokes = append(b.strokes, engine.Stroke{
			ID:        uuid.NewString(),
			Points:    []engine.Point{pos},
			Color:     b.style.Color,
			Thickness: b.style.Thickness,
			Opacity:   b.style.Opacity,
			ToolTag:   "text:" + b.text,
		})
		data := b.commitLocked()
		go b.notify(data)

	case ToolKindSelect:
		idx := b.eng.HitTest(pos.X, pos.Y, hitRadius)
		if idx >= 0 && idx < len(b.strokes) {
			b.eng.SetSelection(b.strokes[idx].ID)
		} else {
			b.eng.SetSelection("")
		}

	case ToolKindEraser:
		idx := b.eng.HitTest(pos.X, pos.Y, hitRadius)
		if idx < 0 || idx >= len(b.strokes) {
			return
		}
		// Keep the selection consistent with the deletion.
		if b.eng.PrimarySelection() == b.strokes[idx].ID {
			b.eng.SetSelection("")
		}
		b.strokes = append(b.strokes[:idx], b.strokes[idx+1:]...)
		data := b.commitLocked()
		go b.notify(data)
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	pos := engine.Point{X: float64(e.Position.X), Y: float64(e.Position.Y)}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.drawing {
		return
	}

	switch b.tool.Kind {
	case ToolKindPen:
		b.points = append(b.points, pos)
		b.pushCurrentLocked()
	case ToolKindShape:
		b.pushShapePreviewLocked(pos)
	case ToolKindSymbol:
		b.pushSymbolPreviewLocked(pos)
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	pos := engine.Point{X: float64(e.Position.X), Y: float64(e.Position.Y)}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.drawing {
		return
	}
	b.drawing = false

	switch b.tool.Kind {
	case ToolKindPen:
		points := engine.Simplify(b.points, simplifyTolerance)
		b.points = nil
		b.eng.SetCurrentStroke([]byte("[]"), nil)
		if len(points) < 2 {
			return
		}
		b.strokes = append(b.strokes, engine.Stroke{
			ID:        uuid.NewString(),
			Points:    points,
			Color:     b.style.Color,
			Thickness: b.style.Thickness,
			Opacity:   b.style.Opacity,
			ToolTag:   b.tool.Tag(),
		})
		data := b.commitLocked()
		go b.notify(data)

	case ToolKindShape:
		b.eng.SetShapePreview(nil)
		stroke := engine.Stroke{
			ID:        uuid.NewString(),
			Points:    []engine.Point{b.anchor, pos},
			Color:     b.style.Color,
			Thickness: b.style.Thickness,
			Opacity:   b.style.Opacity,
			ToolTag:   b.tool.Tag(),
		}
		if b.style.FillEnabled {
			fill := b.style.FillColor
			stroke.FillColor = &fill
		}
		b.strokes = append(b.strokes, stroke)
		data := b.commitLocked()
		go b.notify(data)

	case ToolKindSymbol:
		b.eng.SetSymbolPreview(nil)
		// A placed symbol persists as a text entity sized to the drag.
		size := math.Max(20, math.Max(math.Abs(pos.X-b.anchor.X), math.Abs(pos.Y-b.anchor.Y)))
		b.strokes = append(b.strokes, engine.Stroke{
			ID:        uuid.NewString(),
			Points:    []engine.Point{b.anchor},
			Color:     b.style.Color,
			Thickness: size / 4,
			Opacity:   b.style.Opacity,
			ToolTag:   "text:" + b.tool.Symbol,
		})
		data := b.commitLocked()
		go b.notify(data)
	}
}

// pushCurrentLocked feeds the live freehand path to the engine.
func (b *BoardWidget) pushCurrentLocked() {
	points, err := json.Marshal(b.points)
	if err != nil {
		return
	}
	opacity := b.style.Opacity
	style, err := json.Marshal(engine.CurrentStrokeStyle{
		Color:     b.style.Color,
		Thickness: b.style.Thickness,
		Opacity:   opacity,
	})
	if err != nil {
		return
	}
	b.eng.SetCurrentStroke(points, style)
}

func (b *BoardWidget) pushSymbolPreviewLocked(end engine.Point) {
	data, err := json.Marshal(engine.SymbolPreview{
		Symbol:  b.tool.Symbol,
		Start:   b.anchor,
		End:     end,
		Color:   b.style.Color,
		Opacity: b.style.Opacity,
	})
	if err != nil {
		return
	}
	b.eng.SetSymbolPreview(data)
}

func (b *BoardWidget) pushShapePreviewLocked(end engine.Point) {
	preview := engine.ShapePreview{
		ShapeType: b.tool.Shape,
		Start:     b.anchor,
		End:       end,
		Color:     b.style.Color,
		Thickness: b.style.Thickness,
		Opacity:   b.style.Opacity,
	}
	if b.style.FillEnabled {
		fill := b.style.FillColor
		preview.FillColor = &fill
	}
	data, err := json.Marshal(preview)
	if err != nil {
		return
	}
	b.eng.SetShapePreview(data)
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}
func (b *BoardWidget) DragEnd()                       {}
