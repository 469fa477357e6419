package ggrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestRenderer_CreateCanvas(t *testing.T) {
	r := New()

	canvas := r.CreateCanvas(100, 60, color.Black)
	img := canvas.ToImage()

	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 60 {
		t.Fatalf("expected 100x60, got %dx%d", b.Dx(), b.Dy())
	}
	rr, g, b, a := img.At(50, 30).RGBA()
	if rr != 0 || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("expected opaque black background, got %v %v %v %v", rr, g, b, a)
	}
}

func TestCanvas_DrawImageAtOffset(t *testing.T) {
	r := New()
	red := color.RGBA{R: 255, A: 255}

	canvas := r.CreateCanvas(40, 40, color.Black)
	canvas.DrawImage(solid(10, 10, red), 15, 5)
	img := canvas.ToImage()

	tests := []struct {
		x, y    int
		wantRed bool
	}{
		{15, 5, true},
		{24, 14, true},
		{14, 5, false},
		{25, 5, false},
		{15, 15, false},
	}
	for _, tt := range tests {
		rr, _, _, _ := img.At(tt.x, tt.y).RGBA()
		if got := rr > 0x8000; got != tt.wantRed {
			t.Errorf("pixel (%d,%d): red=%v, want %v", tt.x, tt.y, got, tt.wantRed)
		}
	}
}

func TestRenderer_ResizeImage(t *testing.T) {
	for name, r := range map[string]*Renderer{"bicubic": New(), "bilinear": NewFast()} {
		t.Run(name, func(t *testing.T) {
			src := solid(64, 48, color.RGBA{G: 200, A: 255})
			dst := r.ResizeImage(src, 32, 18)

			if b := dst.Bounds(); b.Dx() != 32 || b.Dy() != 18 {
				t.Fatalf("expected 32x18, got %dx%d", b.Dx(), b.Dy())
			}
			c := dst.RGBAAt(16, 9)
			if c.G < 190 || c.R != 0 || c.A != 255 {
				t.Errorf("unexpected center color %v", c)
			}
		})
	}
}

func TestRenderer_EncodePNG(t *testing.T) {
	r := New()

	data, err := r.EncodePNG(solid(8, 8, color.RGBA{B: 255, A: 255}))
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("expected 8x8, got %dx%d", b.Dx(), b.Dy())
	}
}
