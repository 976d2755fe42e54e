package render

import (
	"fmt"
	"image"

	"golang.org/x/text/encoding/charmap"
)

// BitmapFont is a 16x16 atlas of glyph cells laid out in code page 437 order,
// the layout most bitmap console fonts ship in.
type BitmapFont struct {
	atlas image.Image
	cellW int
	cellH int
	cols  int
}

const atlasCols = 16

// NewBitmapFont slices an atlas into 16 columns and 16 rows of cells.
func NewBitmapFont(atlas image.Image) (*BitmapFont, error) {
	b := atlas.Bounds()
	if b.Dx()%atlasCols != 0 || b.Dy()%atlasCols != 0 || b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("font atlas %dx%d is not a 16x16 grid", b.Dx(), b.Dy())
	}
	return &BitmapFont{
		atlas: atlas,
		cellW: b.Dx() / atlasCols,
		cellH: b.Dy() / atlasCols,
		cols:  atlasCols,
	}, nil
}

func (f *BitmapFont) CellSize() (int, int) { return f.cellW, f.cellH }

// Glyph maps r through CP437. Runes outside the code page have no glyph.
func (f *BitmapFont) Glyph(r rune) (Glyph, bool) {
	b, ok := charmap.CodePage437.EncodeRune(r)
	if !ok {
		return Glyph{}, false
	}
	return Glyph{Rune: r, Index: int(b)}, true
}

// Mask returns the atlas cell of g.
func (f *BitmapFont) Mask(g Glyph) image.Image {
	min := f.atlas.Bounds().Min
	x := min.X + (g.Index%f.cols)*f.cellW
	y := min.Y + (g.Index/f.cols)*f.cellH
	cell := image.Rect(x, y, x+f.cellW, y+f.cellH)
	if sub, ok := f.atlas.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(cell)
	}
	return f.atlas
}
