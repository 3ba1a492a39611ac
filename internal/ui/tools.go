package ui

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"MarkBoard/internal/raster"
)

// ToolKind selects how the board interprets mouse input.
type ToolKind int

const (
	ToolKindPen ToolKind = iota
	ToolKindShape
	ToolKindSymbol
	ToolKindText
	ToolKindSelect
	ToolKindEraser
)

// Tool is the active input mode. Highlighter is a pen variant that only
// differs in the tag it stamps on committed strokes.
type Tool struct {
	Kind        ToolKind
	Shape       string
	Symbol      string
	Highlighter bool
}

// ToolPen is the default tool.
var ToolPen = Tool{Kind: ToolKindPen}

// Tag returns the tool tag recorded on strokes committed by this tool.
func (t Tool) Tag() string {
	switch t.Kind {
	case ToolKindPen:
		if t.Highlighter {
			return "highlighter"
		}
		return "pen"
	case ToolKindShape:
		return "shape-" + t.Shape
	default:
		return "pen"
	}
}

// Style is the stroke appearance applied to new strokes.
type Style struct {
	Color       string
	Thickness   float64
	Opacity     float64
	FillEnabled bool
	FillColor   string
}

func DefaultStyle() Style {
	return Style{
		Color:     "#1f2937",
		Thickness: 2,
		Opacity:   100,
		FillColor: "#8b5cf6",
	}
}

var shapeKinds = []string{
	"rectangle", "circle", "line", "arrow",
	"triangle", "diamond", "star", "heart",
}

var symbolKinds = []string{"✓", "✗", "★", "?", "!"}

var palette = []string{
	"#1f2937", // near-black
	"#ef4444", // red
	"#22c55e", // green
	"#3b82f6", // blue
	"#eab308", // yellow
	"#8b5cf6", // violet
}

// --- Custom widget for color swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Spec     string
	OnTapped func(spec string)
}

func newColorSwatch(spec string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Spec: spec, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(raster.ParseColor(s.Spec))
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = raster.ParseColor("#d4d4d8")
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Spec)
	}
}

// --- The main toolbar ---
func NewToolbar(board *BoardWidget) fyne.CanvasObject {
	style := DefaultStyle()
	apply := func() { board.SetStyle(style) }

	shapeSelect := widget.NewSelect(shapeKinds, nil)
	shapeSelect.SetSelected("rectangle")
	shapeSelect.Disable()

	symbolSelect := widget.NewSelect(symbolKinds, nil)
	symbolSelect.SetSelected("✓")
	symbolSelect.Disable()

	textEntry := widget.NewEntry()
	textEntry.SetPlaceHolder("Text to place")
	textEntry.OnChanged = board.SetText
	textEntry.Disable()

	toolSelect := widget.NewSelect(
		[]string{"Pen", "Highlighter", "Shape", "Symbol", "Text", "Select", "Eraser"},
		nil,
	)
	toolSelect.OnChanged = func(name string) {
		shapeSelect.Disable()
		symbolSelect.Disable()
		textEntry.Disable()
		switch name {
		case "Pen":
			board.SetTool(Tool{Kind: ToolKindPen})
		case "Highlighter":
			board.SetTool(Tool{Kind: ToolKindPen, Highlighter: true})
		case "Shape":
			shapeSelect.Enable()
			board.SetTool(Tool{Kind: ToolKindShape, Shape: shapeSelect.Selected})
		case "Symbol":
			symbolSelect.Enable()
			board.SetTool(Tool{Kind: ToolKindSymbol, Symbol: symbolSelect.Selected})
		case "Text":
			textEntry.Enable()
			board.SetTool(Tool{Kind: ToolKindText})
		case "Select":
			board.SetTool(Tool{Kind: ToolKindSelect})
		case "Eraser":
			board.SetTool(Tool{Kind: ToolKindEraser})
		}
	}
	toolSelect.SetSelected("Pen")

	shapeSelect.OnChanged = func(kind string) {
		board.SetTool(Tool{Kind: ToolKindShape, Shape: kind})
	}
	symbolSelect.OnChanged = func(sym string) {
		board.SetTool(Tool{Kind: ToolKindSymbol, Symbol: sym})
	}

	// --- Color palette ---
	onColorTapped := func(spec string) {
		style.Color = spec
		apply()
	}
	colorBox := container.NewHBox()
	for _, spec := range palette {
		colorBox.Add(newColorSwatch(spec, onColorTapped))
	}

	// --- Thickness and opacity sliders ---
	thicknessSlider := widget.NewSlider(1, 30)
	thicknessSlider.SetValue(style.Thickness)
	thicknessSlider.OnChanged = func(val float64) {
		style.Thickness = val
		apply()
	}

	opacitySlider := widget.NewSlider(5, 100)
	opacitySlider.SetValue(style.Opacity)
	opacitySlider.OnChanged = func(val float64) {
		style.Opacity = val
		apply()
	}

	fillCheck := widget.NewCheck("Fill", func(on bool) {
		style.FillEnabled = on
		apply()
	})

	clearBtn := widget.NewButton("Clear", board.Clear)

	sliderSize := fyne.NewSize(120, 35)
	return container.NewHBox(
		widget.NewLabel("Tool:"),
		toolSelect,
		shapeSelect,
		symbolSelect,
		textEntry,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		fillCheck,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		container.New(layout.NewGridWrapLayout(sliderSize), thicknessSlider),
		widget.NewLabel("Opacity:"),
		container.New(layout.NewGridWrapLayout(sliderSize), opacitySlider),
		layout.NewSpacer(),
		clearBtn,
	)
}

// NewStatusBar shows the share link and a live FPS readout.
func NewStatusBar(board *BoardWidget, shareLink string) fyne.CanvasObject {
	fpsLabel := widget.NewLabel("FPS: --")
	go func() {
		for range time.Tick(500 * time.Millisecond) {
			text := fmt.Sprintf("FPS: %.0f", board.FPS())
			fyne.Do(func() { fpsLabel.SetText(text) })
		}
	}()

	link := widget.NewLabel(shareLink)
	return container.NewHBox(link, layout.NewSpacer(), fpsLabel)
}
