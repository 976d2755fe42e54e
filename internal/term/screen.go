// Package term drives the world on a character terminal through tcell: a
// render.Surface that maps world pixels onto cells, and a keyboard that turns
// key events into input snapshots.
package term

import (
	"image/color"

	"github.com/driftwood2d/driftwood/internal/render"
	"github.com/gdamore/tcell/v2"
)

// Screen is a render.Surface over a tcell screen. One cell covers
// CellW x CellH world pixels.
type Screen struct {
	scr   tcell.Screen
	cellW int32
	cellH int32
}

func NewScreen(scr tcell.Screen, cellW, cellH int32) *Screen {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &Screen{scr: scr, cellW: cellW, cellH: cellH}
}

// View returns the world-pixel extent the terminal can show.
func (s *Screen) View() (int32, int32) {
	cols, rows := s.scr.Size()
	return int32(cols) * s.cellW, int32(rows) * s.cellH
}

// Begin clears the screen for a new frame.
func (s *Screen) Begin() { s.scr.Clear() }

// Present flushes the frame to the terminal.
func (s *Screen) Present() { s.scr.Show() }

// cells converts a pixel rect to the half-open cell range it touches.
func (s *Screen) cells(r render.Rect) (x0, y0, x1, y1 int) {
	cols, rows := s.scr.Size()
	x0 = int(floorDiv(r.X, s.cellW))
	y0 = int(floorDiv(r.Y, s.cellH))
	x1 = int(floorDiv(r.X+r.W+s.cellW-1, s.cellW))
	y1 = int(floorDiv(r.Y+r.H+s.cellH-1, s.cellH))
	return max(x0, 0), max(y0, 0), min(x1, cols), min(y1, rows)
}

func (s *Screen) FillRect(r render.Rect, c color.RGBA) {
	x0, y0, x1, y1 := s.cells(r)
	st := tcell.StyleDefault.Background(rgb(c))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.scr.SetContent(x, y, ' ', nil, st)
		}
	}
}

func (s *Screen) DrawRect(r render.Rect, c color.RGBA) {
	x0, y0, x1, y1 := s.cells(r)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if y != y0 && y != y1-1 && x != x0 && x != x1-1 {
				continue
			}
			_, _, st, _ := s.scr.GetContent(x, y)
			s.scr.SetContent(x, y, borderRune(x, y, x0, y0, x1-1, y1-1), nil, st.Foreground(rgb(c)))
		}
	}
}

// DrawSprite fills the destination with the texture's average color;
// terminals cannot show the pixels themselves.
func (s *Screen) DrawSprite(t render.Texture, _ int, dst render.Rect) {
	s.FillRect(dst, t.Tint())
}

func (s *Screen) DrawGlyph(_ render.Font, g render.Glyph, x, y int32, c color.RGBA) {
	cx, cy := int(floorDiv(x, s.cellW)), int(floorDiv(y, s.cellH))
	cols, rows := s.scr.Size()
	if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		return
	}
	_, _, st, _ := s.scr.GetContent(cx, cy)
	s.scr.SetContent(cx, cy, g.Rune, nil, st.Foreground(rgb(c)))
}

func borderRune(x, y, left, top, right, bottom int) rune {
	switch {
	case (x == left || x == right) && (y == top || y == bottom):
		return '+'
	case y == top || y == bottom:
		return tcell.RuneHLine
	default:
		return tcell.RuneVLine
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Font is the terminal's own character set: one glyph per cell.
type Font struct {
	cellW, cellH int
}

func (s *Screen) Font() *Font {
	return &Font{cellW: int(s.cellW), cellH: int(s.cellH)}
}

func (f *Font) Glyph(r rune) (render.Glyph, bool) {
	if r < ' ' {
		return render.Glyph{}, false
	}
	return render.Glyph{Rune: r, Index: int(r)}, true
}

func (f *Font) CellSize() (int, int) { return f.cellW, f.cellH }

// Resources loads images from disk for their tint and serves the terminal
// font for every font request.
type Resources struct {
	Images render.Resources
	Font   *Font
}

func (r *Resources) LoadImage(path string) (render.Texture, error) {
	return r.Images.LoadImage(path)
}

func (r *Resources) LoadFont(string) (render.Font, error) {
	return r.Font, nil
}

// Release forwards to the image provider when it tracks resources.
func (r *Resources) Release(path string) {
	if rel, ok := r.Images.(render.Releaser); ok {
		rel.Release(path)
	}
}
