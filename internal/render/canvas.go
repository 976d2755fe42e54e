package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Canvas is a raster Surface backed by a gg context. The headless backend
// renders frames into it and the console screenshot command saves it as PNG.
type Canvas struct {
	dc *gg.Context
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{dc: gg.NewContext(w, h)}
}

func (c *Canvas) Clear(col color.RGBA) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

func (c *Canvas) FillRect(r Rect, col color.RGBA) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
	c.dc.Fill()
}

func (c *Canvas) DrawRect(r Rect, col color.RGBA) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(1)
	c.dc.DrawRectangle(float64(r.X)+0.5, float64(r.Y)+0.5, float64(r.W-1), float64(r.H-1))
	c.dc.Stroke()
}

func (c *Canvas) DrawSprite(t Texture, frame int, dst Rect) {
	img, ok := t.(*Image)
	if !ok {
		c.FillRect(dst, t.Tint())
		return
	}
	c.dc.DrawImage(img.Frame(frame), int(dst.X), int(dst.Y))
}

func (c *Canvas) DrawGlyph(f Font, g Glyph, x, y int32, col color.RGBA) {
	bf, ok := f.(*BitmapFont)
	if !ok {
		return
	}
	mask := bf.Mask(g)
	b := mask.Bounds()
	c.dc.SetColor(col)
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			if _, _, _, a := mask.At(px, py).RGBA(); a == 0 {
				continue
			}
			c.dc.SetPixel(int(x)+px-b.Min.X, int(y)+py-b.Min.Y)
		}
	}
}

// Image returns the backing image.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// SavePNG writes the current frame to path.
func (c *Canvas) SavePNG(path string) error { return c.dc.SavePNG(path) }
