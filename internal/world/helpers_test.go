package world

import (
	"image/color"
	"testing"

	"github.com/driftwood2d/driftwood/internal/render"
)

const (
	kindSolid Kind = iota + 1
	kindMover
	kindSmall
	kindProbe
)

type hit struct {
	self, other Kind
	code        Code
	axis        Axis
}

// scriptBehavior is a configurable behavior for core tests.
type scriptBehavior struct {
	update  func(w *World, e *Entity, axis Axis)
	collide func(w *World, e, other *Entity, code Code, axis Axis)
	hits    *[]hit
}

func (b *scriptBehavior) Update(w *World, e *Entity, axis Axis) {
	if b.update != nil {
		b.update(w, e, axis)
	}
}

func (b *scriptBehavior) Collide(w *World, e, other *Entity, code Code, axis Axis) {
	if b.hits != nil {
		*b.hits = append(*b.hits, hit{e.Kind, other.Kind, code, axis})
	}
	if b.collide != nil {
		b.collide(w, e, other, code, axis)
	}
}

func (b *scriptBehavior) Render(w *World, e *Entity, dst render.Surface) {
	dst.FillRect(w.Camera.Project(w.Types.Box(e)), render.White)
}

func move(w *World, e *Entity, axis Axis) {
	if axis == AxisX {
		e.X += e.VX
	} else {
		e.Y += e.VY
	}
}

func block(w *World, e, other *Entity, code Code, axis Axis) {
	w.Block(e, other, code, axis)
}

// newTestWorld registers a 40x40 static solid, a 10x10 mover, a 4x4 small
// mover and a 10x10 probe that only records collisions.
func newTestWorld(t *testing.T) (*World, *[]hit) {
	t.Helper()
	hits := &[]hit{}
	w := New(Options{Tuning: DefaultTuning()})
	reg := []struct {
		kind Kind
		d    Descriptor
	}{
		{kindSolid, Descriptor{Name: "solid", Width: 40, Height: 40, Behavior: &scriptBehavior{collide: block, hits: hits}}},
		{kindMover, Descriptor{Name: "mover", Width: 10, Height: 10, Behavior: &scriptBehavior{update: move, hits: hits}}},
		{kindSmall, Descriptor{Name: "small", Width: 4, Height: 4, Behavior: &scriptBehavior{update: move, hits: hits}}},
		{kindProbe, Descriptor{Name: "probe", Width: 10, Height: 10, Behavior: &scriptBehavior{hits: hits}}},
	}
	for _, r := range reg {
		if err := w.Types.Register(r.kind, r.d); err != nil {
			t.Fatal(err)
		}
	}
	w.Types.Seal()
	return w, hits
}

func spawn(t *testing.T, w *World, kind Kind, x, y int32) *Entity {
	t.Helper()
	e, err := w.Spawn(kind, x, y)
	if err != nil {
		t.Fatal(err)
	}
	if kind == kindSolid {
		e.Set(FlagStatic)
	}
	return e
}

type recordingSurface struct {
	fills  []render.Rect
	rects  int
	glyphs int
}

func (s *recordingSurface) FillRect(r render.Rect, _ color.RGBA) { s.fills = append(s.fills, r) }
func (s *recordingSurface) DrawRect(render.Rect, color.RGBA)     { s.rects++ }
func (s *recordingSurface) DrawSprite(render.Texture, int, render.Rect) {}
func (s *recordingSurface) DrawGlyph(render.Font, render.Glyph, int32, int32, color.RGBA) {
	s.glyphs++
}
