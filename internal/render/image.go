package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Image is a sprite strip of square frames (frame width = image height).
type Image struct {
	frames []*image.RGBA
	w, h   int
	tint   color.RGBA
}

// NewImage splits src into frames and precomputes its average color.
func NewImage(src image.Image) *Image {
	b := src.Bounds()
	fw := b.Dy()
	if fw <= 0 || fw > b.Dx() {
		fw = b.Dx()
	}
	n := 1
	if fw > 0 {
		n = b.Dx() / fw
	}
	img := &Image{w: fw, h: b.Dy(), tint: average(src)}
	for i := 0; i < n; i++ {
		dst := image.NewRGBA(image.Rect(0, 0, fw, b.Dy()))
		draw.Draw(dst, dst.Bounds(), src, image.Pt(b.Min.X+i*fw, b.Min.Y), draw.Src)
		img.frames = append(img.frames, dst)
	}
	return img
}

func (i *Image) Size() (int, int) { return i.w, i.h }
func (i *Image) Frames() int      { return len(i.frames) }
func (i *Image) Tint() color.RGBA { return i.tint }

// Frame returns frame n, wrapping around the strip.
func (i *Image) Frame(n int) image.Image {
	if len(i.frames) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	if n < 0 {
		n = -n
	}
	return i.frames[n%len(i.frames)]
}

func average(src image.Image) color.RGBA {
	b := src.Bounds()
	var r, g, bl, n uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, ca := src.At(x, y).RGBA()
			if ca == 0 {
				continue
			}
			r += uint64(cr >> 8)
			g += uint64(cg >> 8)
			bl += uint64(cb >> 8)
			n++
		}
	}
	if n == 0 {
		return color.RGBA{}
	}
	return color.RGBA{uint8(r / n), uint8(g / n), uint8(bl / n), 0xff}
}
