// Package render holds the drawing contracts the simulation core renders
// through, plus a raster Surface backed by gg for headless frames.
package render

import "image/color"

// Rect is an axis-aligned rectangle in surface pixels.
type Rect struct {
	X, Y, W, H int32
}

// Texture is an opaque handle returned by a Resources provider.
type Texture interface {
	Size() (w, h int)
	Frames() int
	Tint() color.RGBA // average color, for surfaces that cannot blit pixels
}

// Glyph identifies one character cell of a Font.
type Glyph struct {
	Rune  rune
	Index int
}

// Font maps runes to glyphs.
type Font interface {
	Glyph(r rune) (Glyph, bool)
	CellSize() (w, h int)
}

// Surface is the drawing target the core renders through.
type Surface interface {
	FillRect(r Rect, c color.RGBA)
	DrawRect(r Rect, c color.RGBA)
	DrawSprite(t Texture, frame int, dst Rect)
	DrawGlyph(f Font, g Glyph, x, y int32, c color.RGBA)
}

// Resources loads textures and fonts on behalf of the scene lifecycle.
type Resources interface {
	LoadImage(path string) (Texture, error)
	LoadFont(path string) (Font, error)
}

// Releaser is implemented by providers that free resources explicitly.
type Releaser interface {
	Release(path string)
}

var (
	White  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	Black  = color.RGBA{0x00, 0x00, 0x00, 0xff}
	Shadow = color.RGBA{0x10, 0x10, 0x18, 0xe0}
)

// DrawText draws s left to right starting at x,y and returns the advance.
// Runes without a glyph are drawn as '?'.
func DrawText(dst Surface, f Font, s string, x, y int32, c color.RGBA) int32 {
	if f == nil {
		return 0
	}
	cw, _ := f.CellSize()
	start := x
	for _, r := range s {
		g, ok := f.Glyph(r)
		if !ok {
			g, ok = f.Glyph('?')
		}
		if ok {
			dst.DrawGlyph(f, g, x, y, c)
		}
		x += int32(cw)
	}
	return x - start
}
