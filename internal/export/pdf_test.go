package export

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(3, 1, color.NRGBA{B: 255, A: 255})
	return img
}

func TestPNGRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.png")
	if err := PNG(path, testImage()); err != nil {
		t.Fatalf("PNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("bounds = %v", b)
	}
}

func TestPDFWritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.pdf")
	if err := PDF(path, testImage()); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Errorf("empty pdf written")
	}
}

func TestPDFRejectsEmptyImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := PDF(path, image.NewNRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Errorf("expected an error for an empty image")
	}
}
