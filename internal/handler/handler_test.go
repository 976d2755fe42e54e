package handler

import (
	"errors"
	"image/color"
	"testing"

	"github.com/driftwood2d/driftwood/internal/render"
	"github.com/driftwood2d/driftwood/internal/world"
)

type stillBehavior struct{}

func (stillBehavior) Update(*world.World, *world.Entity, world.Axis)                          {}
func (stillBehavior) Collide(*world.World, *world.Entity, *world.Entity, world.Code, world.Axis) {}
func (stillBehavior) Render(*world.World, *world.Entity, render.Surface)                     {}

func newWorld(t *testing.T) (*world.World, *Gameplay, *world.Entity) {
	t.Helper()
	w := world.New(world.Options{ViewW: 320, ViewH: 240})
	if err := w.Types.Register(1, world.Descriptor{Name: "hero", Width: 8, Height: 8, Behavior: stillBehavior{}}); err != nil {
		t.Fatal(err)
	}
	w.Types.Seal()
	g := NewGameplay(&Deps{})
	w.Input.Push(g)
	p, err := w.Spawn(1, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	w.Player = p.ID
	return w, g, p
}

func press(keys ...world.Key) world.Snapshot {
	var s world.Snapshot
	for _, k := range keys {
		s.Down[k] = true
	}
	return s
}

func typed(text string) world.Snapshot {
	return world.Snapshot{Text: []rune(text)}
}

func TestGameplaySetsIntents(t *testing.T) {
	w, _, p := newWorld(t)

	w.TickInput(press(world.KeyRight, world.KeyJump, world.KeyFire))
	if !p.Has(world.FlagMoveRight) || p.Has(world.FlagMoveLeft) {
		t.Fatalf("flags = %b, want move right only", p.Flags)
	}
	if !p.Has(world.FlagWantJump | world.FlagWantFire) {
		t.Fatal("jump and fire intents not set")
	}

	held := press(world.KeyRight).Next(press(world.KeyLeft, world.KeyRight).Down, nil)
	p.Clear(world.FlagWantJump | world.FlagWantFire)
	w.TickInput(held)
	if p.Has(world.FlagMoveRight) || p.Has(world.FlagMoveLeft) {
		t.Fatal("opposite directions should cancel out")
	}

	w.TickInput(press(world.KeyUp))
	if !p.Has(world.FlagWantInteract) {
		t.Fatal("up did not request interaction")
	}
}

func TestGameplayWithoutPlayer(t *testing.T) {
	w, _, p := newWorld(t)
	w.Kill(p)
	w.Sweep()
	w.TickInput(press(world.KeyRight, world.KeyJump))
	if w.Input.Len() != 1 {
		t.Fatal("stack changed")
	}
}

func TestMenuOpensOptionsAndToggles(t *testing.T) {
	w, g, p := newWorld(t)
	p.Set(world.FlagMoveLeft)

	w.TickInput(press(world.KeyMenu))
	if w.Input.Top() != world.Handler(g.Menu()) {
		t.Fatal("menu not on top")
	}
	if p.Has(world.FlagMoveLeft) {
		t.Fatal("held movement survived opening the menu")
	}

	w.TickInput(press(world.KeyDown))
	if g.Menu().Cursor() != 1 {
		t.Fatalf("cursor = %d", g.Menu().Cursor())
	}
	w.TickInput(press(world.KeyConfirm))
	if w.Input.Len() != 3 {
		t.Fatalf("depth = %d, want options on top of menu", w.Input.Len())
	}
	options, ok := w.Input.Top().(*Menu)
	if !ok || options.Title != "Options" {
		t.Fatal("options submenu not on top")
	}

	w.TickInput(press(world.KeyConfirm))
	if !w.ShowHitboxes {
		t.Fatal("hitbox overlay not toggled")
	}
	w.TickInput(press(world.KeyCancel))
	if w.Input.Top() != world.Handler(g.Menu()) {
		t.Fatal("cancel did not return to the pause menu")
	}
	w.TickInput(press(world.KeyCancel))
	if w.Input.Top() != world.Handler(g) {
		t.Fatal("cancel did not return to gameplay")
	}
}

func TestMenuQuit(t *testing.T) {
	w, g, _ := newWorld(t)
	w.TickInput(press(world.KeyMenu))
	w.TickInput(press(world.KeyUp)) // wraps to the last item
	w.TickInput(press(world.KeyConfirm))
	if !w.QuitRequested() {
		t.Fatal("quit not requested")
	}
	if w.Input.Top() != world.Handler(g) {
		t.Fatal("menu left open after quit")
	}
}

func TestDialogPages(t *testing.T) {
	w, g, _ := newWorld(t)
	d := NewDialog("sage", []string{"one", "two"})
	if !d.Open(w) {
		t.Fatal("open failed")
	}
	if d.Open(w) {
		t.Fatal("dialog opened twice")
	}

	w.TickInput(press(world.KeyConfirm))
	if d.Page() != 1 || w.Input.Top() != world.Handler(d) {
		t.Fatalf("page = %d", d.Page())
	}
	w.TickInput(press(world.KeyConfirm))
	if w.Input.Top() != world.Handler(g) {
		t.Fatal("dialog did not close after the last page")
	}

	if !d.Open(w) || d.Page() != 0 {
		t.Fatal("reopen did not rewind")
	}
	w.TickInput(press(world.KeyCancel))
	if w.Input.Len() != 1 {
		t.Fatal("cancel did not close")
	}

	if NewDialog("mute", nil).Open(w) {
		t.Fatal("empty dialog opened")
	}
}

type fakeInterp struct {
	lines []string
}

func (f *fakeInterp) Exec(line string) (string, error) {
	f.lines = append(f.lines, line)
	if line == "boom()" {
		return "", errors.New("boom")
	}
	return "ok", nil
}

func TestConsoleEditsAndRuns(t *testing.T) {
	w, g, _ := newWorld(t)
	interp := &fakeInterp{}
	c := NewConsole(interp, &Deps{})
	g.AttachConsole(c)

	w.TickInput(press(world.KeyConsole))
	if w.Input.Top() != world.Handler(c) {
		t.Fatal("console not opened")
	}
	w.TickInput(typed("prinx"))
	w.TickInput(press(world.KeyBackspace))
	w.TickInput(typed("t(1)"))
	if c.Line() != "print(1)" {
		t.Fatalf("line = %q", c.Line())
	}
	w.TickInput(press(world.KeyConfirm))
	w.TickInput(typed("boom()"))
	w.TickInput(press(world.KeyConfirm))

	if len(interp.lines) != 2 || interp.lines[0] != "print(1)" {
		t.Fatalf("interpreter saw %v", interp.lines)
	}
	want := []string{"> print(1)", "ok", "> boom()", "error: boom"}
	out := c.Output()
	if len(out) != len(want) {
		t.Fatalf("output = %q", out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("output[%d] = %q, want %q", i, out[i], want[i])
		}
	}

	w.TickInput(press(world.KeyUp))
	if c.Line() != "boom()" {
		t.Fatalf("recall = %q", c.Line())
	}
	w.TickInput(press(world.KeyUp))
	if c.Line() != "print(1)" {
		t.Fatalf("recall = %q", c.Line())
	}
	w.TickInput(press(world.KeyDown))
	w.TickInput(press(world.KeyDown))
	if c.Line() != "" {
		t.Fatalf("recall past newest = %q", c.Line())
	}

	letter := press(world.KeyUp)
	letter.Text = []rune("k")
	w.TickInput(letter)
	if c.Line() != "k" {
		t.Fatalf("typing k recalled history: %q", c.Line())
	}
	w.TickInput(press(world.KeyBackspace))

	w.TickInput(typed(".clear"))
	w.TickInput(press(world.KeyConfirm))
	if len(c.Output()) != 0 {
		t.Fatalf("clear left %q", c.Output())
	}
	if len(interp.lines) != 2 {
		t.Fatal("console command reached the interpreter")
	}

	w.TickInput(press(world.KeyConsole))
	if w.Input.Top() != world.Handler(g) {
		t.Fatal("console key did not close the console")
	}
}

type countingSurface struct {
	fills, rects, glyphs int
}

func (s *countingSurface) FillRect(render.Rect, color.RGBA)                   { s.fills++ }
func (s *countingSurface) DrawRect(render.Rect, color.RGBA)                   { s.rects++ }
func (s *countingSurface) DrawSprite(render.Texture, int, render.Rect)        {}
func (s *countingSurface) DrawGlyph(render.Font, render.Glyph, int32, int32, color.RGBA) {
	s.glyphs++
}

func TestOverlaysDrawBottomToTop(t *testing.T) {
	w, g, _ := newWorld(t)
	g.Menu().Open(w)
	NewDialog("sage", []string{"hello"}).Open(w)

	var s countingSurface
	w.Render(&s)
	if s.fills != 2 || s.rects != 2 {
		t.Fatalf("fills = %d rects = %d, want one box per overlay", s.fills, s.rects)
	}
}
