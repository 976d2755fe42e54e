package handler

import (
	"github.com/driftwood2d/driftwood/internal/render"
	"github.com/driftwood2d/driftwood/internal/world"
)

// Dialog shows a speaker's lines one page at a time. The value is owned by
// the speaker's component data and reopened on every interaction.
type Dialog struct {
	Name  string
	Lines []string
	page  int
}

func NewDialog(name string, lines []string) *Dialog {
	return &Dialog{Name: name, Lines: lines}
}

// Open rewinds to the first page and makes the dialog the active frame.
// It reports false when the dialog has nothing to show or is already open.
func (d *Dialog) Open(w *world.World) bool {
	if len(d.Lines) == 0 || w.Input.Contains(d) {
		return false
	}
	d.page = 0
	w.Input.Push(d)
	return true
}

// Page returns the index of the visible line.
func (d *Dialog) Page() int { return d.page }

func (d *Dialog) HandleInput(w *world.World, in world.Snapshot) {
	switch {
	case in.Pressed(world.KeyCancel):
		closeFrame(w, d)
	case in.Pressed(world.KeyConfirm), in.Pressed(world.KeyInteract), in.Pressed(world.KeyJump):
		d.page++
		if d.page >= len(d.Lines) {
			d.page = 0
			closeFrame(w, d)
		}
	}
}

func (d *Dialog) DrawOverlay(w *world.World, dst render.Surface) {
	if d.page >= len(d.Lines) {
		return
	}
	font := w.Scenes.Font()
	vw, vh := viewSize(w)
	_, ch := cellSize(font)
	box := render.Rect{X: 4, Y: vh - 4*ch - 4, W: vw - 8, H: 4 * ch}
	dst.FillRect(box, render.Shadow)
	dst.DrawRect(box, render.White)
	x, y := box.X+ch/2, box.Y+ch/2
	if d.Name != "" {
		render.DrawText(dst, font, d.Name+":", x, y, render.White)
		y += ch + ch/2
	}
	render.DrawText(dst, font, d.Lines[d.page], x, y, render.White)
}
