package voronoi

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestLoadImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(1, 1, color.RGBA{R: 9, G: 8, B: 7, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := LoadImage(&buf)
	if err != nil {
		t.Fatalf("LoadImage() error = %v, want nil", err)
	}
	if got := img.Bounds(); got != src.Bounds() {
		t.Errorf("LoadImage() bounds = %v, want %v", got, src.Bounds())
	}

	if _, err := LoadImage(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Errorf("LoadImage() on garbage error = nil, want non-nil")
	}
}

func TestFitImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 9, 8))
	want := color.RGBA{R: 40, G: 50, B: 60, A: 255}
	for y := 5; y < 8; y++ {
		for x := 5; x < 9; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 40, G: 50, B: 60, A: 255})
		}
	}

	got := FitImage(src, 4, 3)
	if got.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("FitImage() bounds = %v, want (0,0)-(4,3)", got.Bounds())
	}
	if c := got.RGBAAt(0, 0); c != want {
		t.Errorf("FitImage() pixel = %v, want %v", c, want)
	}

	scaled := FitImage(src, 8, 6)
	if scaled.Bounds() != image.Rect(0, 0, 8, 6) {
		t.Errorf("FitImage() scaled bounds = %v, want (0,0)-(8,6)", scaled.Bounds())
	}
}

func TestGrayscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	src.SetRGBA(1, 0, color.RGBA{R: 255, A: 255})

	got := Grayscale(src)
	if c := got.RGBAAt(0, 0); c.R != c.G || c.G != c.B || c.R < 254 {
		t.Errorf("Grayscale(white) = %v, want white", c)
	}
	if c := got.RGBAAt(1, 0); c.R != c.G || c.G != c.B || c.R != 76 {
		t.Errorf("Grayscale(red) = %v, want gray 76", c)
	}
}
