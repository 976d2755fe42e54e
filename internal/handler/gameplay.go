package handler

import (
	"github.com/driftwood2d/driftwood/internal/world"
)

// Gameplay is the root frame. It turns held keys into movement intents on the
// player and opens the pause menu and the console.
type Gameplay struct {
	deps    *Deps
	menu    *Menu
	console *Console
}

func NewGameplay(deps *Deps) *Gameplay {
	g := &Gameplay{deps: deps}
	g.menu = NewPauseMenu(deps)
	return g
}

// AttachConsole enables the console key. Without a console it is ignored.
func (g *Gameplay) AttachConsole(c *Console) { g.console = c }

// Menu returns the pause menu this frame opens.
func (g *Gameplay) Menu() *Menu { return g.menu }

func (g *Gameplay) HandleInput(w *world.World, in world.Snapshot) {
	p := w.Store.Get(w.Player)

	if in.Pressed(world.KeyMenu) {
		release(p)
		g.menu.Open(w)
		return
	}
	if in.Pressed(world.KeyConsole) && g.console != nil {
		release(p)
		g.console.Open(w)
		return
	}
	if p == nil || !p.Alive() {
		return
	}

	p.Toggle(world.FlagMoveLeft, in.Held(world.KeyLeft) && !in.Held(world.KeyRight))
	p.Toggle(world.FlagMoveRight, in.Held(world.KeyRight) && !in.Held(world.KeyLeft))
	if in.Pressed(world.KeyJump) {
		p.Set(world.FlagWantJump)
	}
	if in.Pressed(world.KeyInteract) || in.Pressed(world.KeyUp) {
		p.Set(world.FlagWantInteract)
	}
	if in.Pressed(world.KeyFire) {
		p.Set(world.FlagWantFire)
	}
}

// release drops held movement so the player stops while a modal frame is up.
func release(p *world.Entity) {
	if p != nil {
		p.Clear(world.FlagMoveLeft | world.FlagMoveRight)
	}
}
