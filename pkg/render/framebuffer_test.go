package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFramebufferPixels(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.Clear(RGB(1, 2, 3))

	fb.SetPixel(1, 2, RGB(9, 9, 9))
	fb.SetPixel(-1, 0, RGB(9, 9, 9)) // dropped
	fb.SetPixel(4, 0, RGB(9, 9, 9))  // dropped

	if got := fb.GetPixel(1, 2); got != RGB(9, 9, 9) {
		t.Errorf("GetPixel(1, 2) = %v, want (9, 9, 9)", got)
	}
	if got := fb.GetPixel(10, 10); got != RGBA(0, 0, 0, 0) {
		t.Errorf("out of bounds GetPixel = %v, want transparent", got)
	}
	if n := fb.CountNot(RGB(1, 2, 3)); n != 1 {
		t.Errorf("CountNot = %d, want 1", n)
	}
}

func TestDrawLine(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	white := RGB(255, 255, 255)
	fb.DrawLine(0, 0, 9, 9, white)

	for i := range 10 {
		if fb.GetPixel(i, i) != white {
			t.Errorf("diagonal pixel (%d, %d) not set", i, i)
		}
	}
	if n := fb.CountNot(RGBA(0, 0, 0, 0)); n != 10 {
		t.Errorf("line set %d pixels, want 10", n)
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(8, 6)
	fb.Clear(RGB(10, 20, 30))
	fb.SetPixel(3, 4, RGB(200, 100, 0))

	path := filepath.Join(t.TempDir(), "out.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("image size = %v, want 8x6", b)
	}
	r, g, b, _ := img.At(3, 4).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 0 {
		t.Errorf("pixel (3, 4) = (%d, %d, %d), want (200, 100, 0)", r>>8, g>>8, b>>8)
	}
}

func TestSavePNGBadPath(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("expected error for missing directory")
	}
}
