package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
)

func solidAtlas(cell int, on color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cell*16, cell*16))
	// light up only the top-left pixel of every cell
	for gy := 0; gy < 16; gy++ {
		for gx := 0; gx < 16; gx++ {
			img.Set(gx*cell, gy*cell, on)
		}
	}
	return img
}

func TestBitmapFontCodePage437(t *testing.T) {
	f, err := NewBitmapFont(solidAtlas(4, White))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		r     rune
		index int
		ok    bool
	}{
		{'A', 65, true},
		{' ', 32, true},
		{'░', 0xB0, true},
		{'é', 0x82, true},
		{'€', 0, false},
	}
	for _, tc := range tests {
		g, ok := f.Glyph(tc.r)
		if ok != tc.ok {
			t.Errorf("Glyph(%q) ok = %v, want %v", tc.r, ok, tc.ok)
			continue
		}
		if ok && g.Index != tc.index {
			t.Errorf("Glyph(%q) = %d, want %d", tc.r, g.Index, tc.index)
		}
	}
	if w, h := f.CellSize(); w != 4 || h != 4 {
		t.Fatalf("cell = %dx%d", w, h)
	}
}

func TestBitmapFontRejectsOddAtlas(t *testing.T) {
	if _, err := NewBitmapFont(image.NewRGBA(image.Rect(0, 0, 30, 32))); err == nil {
		t.Fatal("expected error for non-grid atlas")
	}
}

func TestCanvasFillAndGlyph(t *testing.T) {
	c := NewCanvas(32, 32)
	c.Clear(Black)
	red := color.RGBA{0xff, 0, 0, 0xff}
	c.FillRect(Rect{X: 4, Y: 4, W: 8, H: 8}, red)

	if got := color.RGBAModel.Convert(c.Image().At(6, 6)).(color.RGBA); got != red {
		t.Fatalf("fill pixel = %v, want %v", got, red)
	}
	if got := color.RGBAModel.Convert(c.Image().At(20, 20)).(color.RGBA); got != Black {
		t.Fatalf("outside pixel = %v, want black", got)
	}

	f, _ := NewBitmapFont(solidAtlas(4, White))
	w := DrawText(c, f, "AB", 20, 20, White)
	if w != 8 {
		t.Fatalf("advance = %d, want 8", w)
	}
	if got := color.RGBAModel.Convert(c.Image().At(24, 20)).(color.RGBA); got != White {
		t.Fatalf("glyph pixel = %v, want white", got)
	}
}

func TestImageFramesAndTint(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.RGBA{0, 0xff, 0, 0xff})
		}
	}
	img := NewImage(src)
	if img.Frames() != 2 {
		t.Fatalf("frames = %d, want 2", img.Frames())
	}
	if w, h := img.Size(); w != 4 || h != 4 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if img.Tint() != (color.RGBA{0, 0xff, 0, 0xff}) {
		t.Fatalf("tint = %v", img.Tint())
	}
	if img.Frame(3).Bounds().Dx() != 4 {
		t.Fatal("frame index did not wrap")
	}
}

func TestFileResources(t *testing.T) {
	dir := t.TempDir()
	dc := gg.NewContext(64, 64)
	dc.SetColor(White)
	dc.Clear()
	if err := dc.SavePNG(filepath.Join(dir, "font.png")); err != nil {
		t.Fatal(err)
	}
	res := NewFileResources(dir)
	if _, err := res.LoadFont("font.png"); err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	tex, err := res.LoadImage("font.png")
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if tex.Frames() != 1 {
		t.Fatalf("frames = %d", tex.Frames())
	}
	if _, err := res.LoadImage("missing.png"); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := os.Stat(filepath.Join(dir, "font.png")); err != nil {
		t.Fatal(err)
	}
}
