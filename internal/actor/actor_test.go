package actor

import (
	"errors"
	"image/color"
	"testing"

	"github.com/driftwood2d/driftwood/internal/core/event"
	"github.com/driftwood2d/driftwood/internal/data"
	"github.com/driftwood2d/driftwood/internal/handler"
	"github.com/driftwood2d/driftwood/internal/render"
	"github.com/driftwood2d/driftwood/internal/world"
)

type flatTexture struct{}

func (flatTexture) Size() (int, int)  { return 16, 16 }
func (flatTexture) Frames() int       { return 1 }
func (flatTexture) Tint() color.RGBA { return color.RGBA{A: 0xff} }

type stubResources struct{ loads int }

func (r *stubResources) LoadImage(string) (render.Texture, error) {
	r.loads++
	return flatTexture{}, nil
}

func (r *stubResources) LoadFont(string) (render.Font, error) {
	return nil, errors.New("no fonts in tests")
}

const doorScenes = `
scenes:
  - id: hall
    player: {x: 0, y: 0}
    entities:
      - {kind: door, x: 4, y: 0, target: yard, spawn: {x: 50, y: 60}}
  - id: yard
    width: 320
    height: 240
    player: {x: 10, y: 10}
    entities:
      - {kind: block, x: 0, y: 100, count: 4, step_x: 16}
`

// flat disables gravity so a test can look at one axis at a time.
func flat() world.Tuning {
	t := world.DefaultTuning()
	t.Gravity = 0
	return t
}

func newActorWorld(t *testing.T, tuning world.Tuning) (*world.World, *Kit) {
	t.Helper()
	tbl, err := data.ParseSceneTable([]byte(doorScenes))
	if err != nil {
		t.Fatal(err)
	}
	w, k, err := NewWorld(world.Options{
		Tuning:    tuning,
		Scenes:    tbl,
		Resources: &stubResources{},
		Bus:       event.NewBus(),
		ViewW:     160,
		ViewH:     120,
	}, &handler.Deps{})
	if err != nil {
		t.Fatal(err)
	}
	return w, k
}

func place(t *testing.T, w *world.World, k *Kit, entry data.EntityEntry, x, y int32) *world.Entity {
	t.Helper()
	kind, ok := w.Types.ByName(entry.Kind)
	if !ok {
		t.Fatalf("kind %q not registered", entry.Kind)
	}
	e, err := (&Populator{Kit: k}).spawn(w, entry, kind, data.Point{X: x, Y: y})
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestNewWorldIsSealedWithRoot(t *testing.T) {
	w, k := newActorWorld(t, flat())
	if w.Input.Len() != 1 || w.Input.Top() != world.Handler(k.Root) {
		t.Fatal("gameplay frame is not the stack root")
	}
	err := w.Types.Register(99, world.Descriptor{Name: "late", Width: 1, Height: 1, Behavior: block{}})
	if !errors.Is(err, world.ErrRegistrySealed) {
		t.Fatalf("err = %v, want ErrRegistrySealed", err)
	}
	if len(w.Types.Names()) != 8 {
		t.Fatalf("kinds = %v", w.Types.Names())
	}
}

func TestPlayerWalksIntoWall(t *testing.T) {
	w, k := newActorWorld(t, flat())
	p := place(t, w, k, data.EntityEntry{Kind: "player"}, 26, 0)
	place(t, w, k, data.EntityEntry{Kind: "block"}, 40, 0)
	p.Set(world.FlagMoveRight)

	w.TickSimulation()
	if p.X != 28 || p.VX != 0 {
		t.Fatalf("player X=%d VX=%d, want 28 0", p.X, p.VX)
	}
	if p.Has(world.FlagFacingLeft) {
		t.Fatal("walking right should face right")
	}
}

func TestPlayerLandsAndJumps(t *testing.T) {
	w, k := newActorWorld(t, world.DefaultTuning())
	p := place(t, w, k, data.EntityEntry{Kind: "player"}, 0, 10)
	place(t, w, k, data.EntityEntry{Kind: "block"}, 0, 32)

	for i := 0; i < 10; i++ {
		w.TickSimulation()
	}
	if p.Y != 16 || p.VY != 0 || p.Has(world.FlagAirborne) {
		t.Fatalf("player Y=%d VY=%d flags=%b, want resting on the block", p.Y, p.VY, p.Flags)
	}

	p.Set(world.FlagWantJump)
	w.TickSimulation()
	if p.VY != -9 || !p.Has(world.FlagJumping|world.FlagAirborne) {
		t.Fatalf("after jump VY=%d flags=%b", p.VY, p.Flags)
	}

	p.Set(world.FlagWantJump)
	vy := p.VY
	w.TickSimulation()
	if p.VY != vy+1 {
		t.Fatal("jumped again while airborne")
	}
}

func TestSpikesKnockbackAndRecovery(t *testing.T) {
	tuning := flat()
	tuning.InvulnTicks = 6
	w, k := newActorWorld(t, tuning)
	p := place(t, w, k, data.EntityEntry{Kind: "player"}, 0, 0)
	place(t, w, k, data.EntityEntry{Kind: "spikes"}, 4, 4)

	w.TickSimulation()
	if p.Life != playerLife-1 {
		t.Fatalf("life = %d, want one hit only", p.Life)
	}
	if p.VX != -tuning.KnockbackX {
		t.Fatalf("VX = %d, want knocked away from the spikes", p.VX)
	}
	if !p.Has(world.FlagInvulnerable | world.FlagBlinking | world.FlagStunned) {
		t.Fatalf("flags = %b", p.Flags)
	}
	if w.Sched.Len() != 1 {
		t.Fatalf("tasks = %d, want the recovery task", w.Sched.Len())
	}

	for i := 0; i < tuning.InvulnTicks; i++ {
		w.TickScheduler()
	}
	if !p.Has(world.FlagInvulnerable) || p.Has(world.FlagStunned) {
		t.Fatalf("flags before final invocation = %b", p.Flags)
	}
	w.TickScheduler()
	if p.Has(world.FlagInvulnerable) || p.Has(world.FlagBlinking) || w.Sched.Len() != 0 {
		t.Fatalf("flags after recovery = %b tasks = %d", p.Flags, w.Sched.Len())
	}
}

func TestLastLifeKillsPlayer(t *testing.T) {
	w, k := newActorWorld(t, flat())
	p := place(t, w, k, data.EntityEntry{Kind: "player", Life: 1}, 0, 0)
	place(t, w, k, data.EntityEntry{Kind: "spikes"}, 4, 4)

	w.TickSimulation()
	if w.Store.Get(p.ID) != nil {
		t.Fatal("dead player not swept")
	}
	if w.Sched.Len() != 0 {
		t.Fatal("recovery scheduled for a dead player")
	}
}

func TestFireProjectileLifetime(t *testing.T) {
	w, k := newActorWorld(t, flat())
	p := place(t, w, k, data.EntityEntry{Kind: "player"}, 0, 0)
	p.Set(world.FlagWantFire)

	w.TickSimulation()
	shot := w.Store.First(KindProjectile)
	if shot == nil {
		t.Fatal("no projectile")
	}
	if shot.X != 12 || shot.Y != 6 || shot.VX != w.Tuning.ProjectileSpeed {
		t.Fatalf("projectile at %d,%d VX=%d", shot.X, shot.Y, shot.VX)
	}
	w.TickSimulation()
	if shot.X != 12+w.Tuning.ProjectileSpeed {
		t.Fatalf("projectile X = %d after one step", shot.X)
	}

	for i := 0; i < 20; i++ {
		w.TickScheduler()
	}
	if w.Sched.Len() != 1 {
		t.Fatal("flight task ended early")
	}
	w.Kill(shot)
	w.TickScheduler()
	if w.Sched.Len() != 0 {
		t.Fatal("flight task still active after its projectile died")
	}
}

func TestProjectileExpires(t *testing.T) {
	tuning := flat()
	tuning.ProjectileTicks = 3
	w, k := newActorWorld(t, tuning)
	p := place(t, w, k, data.EntityEntry{Kind: "player"}, 0, 0)
	p.Set(world.FlagWantFire)
	w.TickSimulation()
	id := w.Store.First(KindProjectile).ID

	for i := 0; i < 4; i++ {
		w.TickScheduler()
	}
	w.TickSimulation()
	if w.Store.Get(id) != nil {
		t.Fatal("projectile outlived its flight")
	}
}

func TestProjectileKillsSlime(t *testing.T) {
	w, k := newActorWorld(t, flat())
	shot := place(t, w, k, data.EntityEntry{Kind: "projectile"}, 20, 6)
	shot.VX = 6
	place(t, w, k, data.EntityEntry{Kind: "slime"}, 30, 6)

	w.TickSimulation()
	if w.Store.Live() != 0 {
		t.Fatalf("live = %d, want projectile and slime gone", w.Store.Live())
	}
}

func TestSlimePatrolsAndHurts(t *testing.T) {
	w, k := newActorWorld(t, flat())
	s := place(t, w, k, data.EntityEntry{Kind: "slime", Patrol: 4}, 100, 0)
	for i := 0; i < 20; i++ {
		w.TickSimulation()
		if s.X < 96 || s.X > 104 {
			t.Fatalf("frame %d: slime at %d left its patrol range", i, s.X)
		}
	}

	p := place(t, w, k, data.EntityEntry{Kind: "player"}, 0, 0)
	place(t, w, k, data.EntityEntry{Kind: "slime"}, 6, 4)
	w.TickSimulation()
	if p.Life != playerLife-1 || p.VX >= 0 {
		t.Fatalf("player life=%d VX=%d, want knocked left", p.Life, p.VX)
	}
}

func TestInteractOpensDialog(t *testing.T) {
	w, k := newActorWorld(t, flat())
	var opened []event.DialogOpened
	event.Subscribe(w.Bus, func(e event.DialogOpened) { opened = append(opened, e) })

	p := place(t, w, k, data.EntityEntry{Kind: "player"}, 0, 0)
	npc := place(t, w, k, data.EntityEntry{Kind: "npc", Name: "sage", Dialog: []string{"hi", "bye"}}, 4, 0)

	w.TickSimulation()
	if w.Input.Len() != 1 {
		t.Fatal("dialog opened without interaction")
	}

	p.Set(world.FlagWantInteract)
	w.TickSimulation()
	d, ok := w.Input.Top().(*handler.Dialog)
	if !ok || d.Name != "sage" || len(d.Lines) != 2 {
		t.Fatalf("top = %#v", w.Input.Top())
	}
	sp, _ := k.Speech.Get(npc.ID)
	if sp.Frame != d {
		t.Fatal("dialog frame is not the one owned by the npc")
	}

	w.Bus.SwapBuffers()
	w.Bus.DispatchAll()
	if len(opened) != 1 || opened[0].Speaker != npc.ID || opened[0].Lines != 2 {
		t.Fatalf("events = %+v", opened)
	}
}

func TestDoorChangesScene(t *testing.T) {
	w, k := newActorWorld(t, flat())
	if err := w.LoadScene("hall"); err != nil {
		t.Fatal(err)
	}
	p := w.Store.Get(w.Player)
	if p == nil || p.Kind != KindPlayer {
		t.Fatal("hall has no player")
	}
	door := w.Store.First(KindDoor)
	if _, ok := k.Doors.Get(door.ID); !ok {
		t.Fatal("door has no destination")
	}

	p.Set(world.FlagWantInteract)
	w.TickSimulation()
	if pend := w.Scenes.Pending(); pend == nil || pend.To != "yard" {
		t.Fatalf("pending = %+v", pend)
	}
	if err := w.TickScene(); err != nil {
		t.Fatal(err)
	}

	if w.Scenes.Current() != "yard" {
		t.Fatalf("current = %q", w.Scenes.Current())
	}
	if k.Doors.Len() != 0 {
		t.Fatal("door component outlived its scene")
	}
	p = w.Store.Get(w.Player)
	if p == nil || p.X != 50 || p.Y != 60 {
		t.Fatalf("player = %+v, want at the door's spawn point", p)
	}
	if w.Store.Live() != 5 {
		t.Fatalf("live = %d, want player and 4 blocks", w.Store.Live())
	}
	if w.Scenes.Texture("sprites/block.png") == nil {
		t.Fatal("block texture not loaded with the scene")
	}
}
