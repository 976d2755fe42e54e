package handler

import (
	"github.com/driftwood2d/driftwood/internal/render"
	"github.com/driftwood2d/driftwood/internal/world"
	"go.uber.org/zap"
)

// MenuItem is one selectable row. Label is evaluated on every draw so rows
// can show current settings.
type MenuItem struct {
	Label  func(w *world.World) string
	Action func(w *world.World, m *Menu)
}

// Item builds a row with a fixed label.
func Item(label string, action func(w *world.World, m *Menu)) MenuItem {
	return MenuItem{Label: func(*world.World) string { return label }, Action: action}
}

// Menu is a vertical list of items navigated with up/down and confirm.
// Cancel and the menu key close it.
type Menu struct {
	Title  string
	Items  []MenuItem
	cursor int
	log    *zap.Logger
}

func NewMenu(title string, log *zap.Logger, items ...MenuItem) *Menu {
	return &Menu{Title: title, Items: items, log: log}
}

// Open resets the cursor and pushes the menu unless it is already stacked.
func (m *Menu) Open(w *world.World) {
	if w.Input.Contains(m) {
		return
	}
	m.cursor = 0
	w.Input.Push(m)
}

// Close pops the menu if it is the active frame.
func (m *Menu) Close(w *world.World) { closeFrame(w, m) }

func (m *Menu) Cursor() int { return m.cursor }

func (m *Menu) HandleInput(w *world.World, in world.Snapshot) {
	n := len(m.Items)
	switch {
	case in.Pressed(world.KeyCancel), in.Pressed(world.KeyMenu):
		m.Close(w)
	case n == 0:
	case in.Pressed(world.KeyUp):
		m.cursor = (m.cursor + n - 1) % n
	case in.Pressed(world.KeyDown):
		m.cursor = (m.cursor + 1) % n
	case in.Pressed(world.KeyConfirm), in.Pressed(world.KeyJump):
		it := m.Items[m.cursor]
		m.log.Debug("menu select",
			zap.String("menu", m.Title),
			zap.String("item", it.Label(w)),
		)
		if it.Action != nil {
			it.Action(w, m)
		}
	}
}

func (m *Menu) DrawOverlay(w *world.World, dst render.Surface) {
	font := w.Scenes.Font()
	vw, vh := viewSize(w)
	cw, ch := cellSize(font)
	width := int32(len(m.Title)+4) * cw
	for _, it := range m.Items {
		if l := int32(len(it.Label(w))+4) * cw; l > width {
			width = l
		}
	}
	height := int32(len(m.Items)+3) * ch
	box := render.Rect{X: (vw - width) / 2, Y: (vh - height) / 2, W: width, H: height}
	dst.FillRect(box, render.Shadow)
	dst.DrawRect(box, render.White)

	x, y := box.X+cw, box.Y+ch/2
	render.DrawText(dst, font, m.Title, x, y, render.White)
	y += ch + ch/2
	for i, it := range m.Items {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		render.DrawText(dst, font, prefix+it.Label(w), x, y, render.White)
		y += ch
	}
}

// NewPauseMenu builds the menu the gameplay frame opens, with its nested
// options menu.
func NewPauseMenu(deps *Deps) *Menu {
	log := deps.log()
	options := NewMenu("Options", log,
		MenuItem{
			Label: func(w *world.World) string {
				if w.ShowHitboxes {
					return "Hitboxes: on"
				}
				return "Hitboxes: off"
			},
			Action: func(w *world.World, _ *Menu) { w.ShowHitboxes = !w.ShowHitboxes },
		},
		Item("Back", func(w *world.World, m *Menu) { m.Close(w) }),
	)
	return NewMenu("Paused", log,
		Item("Resume", func(w *world.World, m *Menu) { m.Close(w) }),
		Item("Options", func(w *world.World, _ *Menu) { options.Open(w) }),
		Item("Restart scene", func(w *world.World, m *Menu) {
			if err := w.RequestTransition(w.Scenes.Current(), nil); err != nil {
				log.Warn("restart scene", zap.Error(err))
				return
			}
			m.Close(w)
		}),
		Item("Quit", func(w *world.World, m *Menu) {
			m.Close(w)
			w.RequestQuit()
		}),
	)
}
