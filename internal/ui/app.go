package ui

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"MarkBoard/internal/export"
	"MarkBoard/internal/project"
)

// RunApp assembles the window and blocks until it closes. shareLink is
// shown in the status bar so peers can join this board.
func RunApp(board *BoardWidget, shareLink string) {
	myApp := app.New()
	myWindow := myApp.NewWindow("MarkBoard")
	myWindow.Resize(fyne.NewSize(1280, 860))

	toolbar := NewToolbar(board)
	status := NewStatusBar(board, shareLink)

	myWindow.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File",
		fyne.NewMenuItem("Open Project...", func() { openProject(myWindow, board) }),
		fyne.NewMenuItem("Save Project...", func() { saveProject(myWindow, board) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Background...", func() { openBackground(myWindow, board) }),
		fyne.NewMenuItem("Clear Background", func() { board.SetBackground(nil) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", func() { exportBoard(myWindow, board, "pdf") }),
		fyne.NewMenuItem("Export PNG...", func() { exportBoard(myWindow, board, "png") }),
	)))

	content := container.NewBorder(toolbar, status, nil, nil, board)
	myWindow.SetContent(content)

	board.Start()
	defer board.Stop()
	myWindow.ShowAndRun()
}

func openProject(win fyne.Window, board *BoardWidget) {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()

		doc, err := project.Load(path)
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		board.SetStrokes(doc.Strokes)
		board.notify(doc.Strokes)
		log.Printf("loaded project %s", path)
	}, win)
}

func saveProject(win fyne.Window, board *BoardWidget) {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		path := wc.URI().Path()
		wc.Close()

		doc := project.Document{
			Version: project.CurrentVersion,
			Strokes: board.Strokes(),
		}
		if err := project.Save(path, &doc); err != nil {
			dialog.ShowError(err, win)
			return
		}
		log.Printf("saved project %s", path)
	}, win)
	d.SetFileName("board.mkb")
	d.Show()
}

func openBackground(win fyne.Window, board *BoardWidget) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()

		img, _, err := image.Decode(rc)
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		board.SetBackground(img)
	}, win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	d.Show()
}

func exportBoard(win fyne.Window, board *BoardWidget, format string) {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		path := wc.URI().Path()
		wc.Close()

		img := board.Image()
		if format == "pdf" {
			err = export.PDF(path, img)
		} else {
			err = export.PNG(path, img)
		}
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		log.Printf("exported %s", path)
	}, win)
	d.SetFileName("board." + format)
	d.Show()
}
