package actor

import (
	"github.com/driftwood2d/driftwood/internal/render"
	"github.com/driftwood2d/driftwood/internal/world"
	"go.uber.org/zap"
)

const playerLife = 3

// player reads the intents the gameplay frame sets. Walking, interaction and
// firing run on the X pass; jumping and gravity on the Y pass.
type player struct {
	kit *Kit
}

func (p *player) Update(w *world.World, e *world.Entity, axis world.Axis) {
	stunned := e.Has(world.FlagStunned)
	switch axis {
	case world.AxisX:
		e.Clear(world.FlagInteracting)
		switch {
		case stunned:
			e.VX = friction(e.VX, w.Tuning.Friction)
		case e.Has(world.FlagMoveLeft):
			e.VX = -w.Tuning.WalkSpeed
			e.Set(world.FlagFacingLeft)
		case e.Has(world.FlagMoveRight):
			e.VX = w.Tuning.WalkSpeed
			e.Clear(world.FlagFacingLeft)
		default:
			e.VX = friction(e.VX, w.Tuning.Friction)
		}
		e.X += e.VX
		if e.Take(world.FlagWantInteract) && !stunned {
			e.Set(world.FlagInteracting)
		}
		if e.Take(world.FlagWantFire) && !stunned {
			fire(w, e)
		}
		animate(w, e)
		w.Camera.Follow(w.Types.Box(e), world.AxisX)
	case world.AxisY:
		if e.Take(world.FlagWantJump) && !e.Has(world.FlagAirborne) && !stunned {
			e.VY = -w.Tuning.JumpImpulse
			e.Set(world.FlagJumping)
		}
		fall(w, e)
		w.Camera.Follow(w.Types.Box(e), world.AxisY)
	}
}

func (p *player) Collide(*world.World, *world.Entity, *world.Entity, world.Code, world.Axis) {}

func (p *player) Render(w *world.World, e *world.Entity, dst render.Surface) {
	draw(w, e, dst, playerColor)
}

// animate cycles four walk frames while moving.
func animate(w *world.World, e *world.Entity) {
	if e.VX == 0 {
		e.Frame = 0
		return
	}
	if w.Frame%6 == 0 {
		e.Frame = (e.Frame + 1) % 4
	}
}

// fire launches a projectile from the shooter's front edge.
func fire(w *world.World, shooter *world.Entity) {
	box := w.Types.Box(shooter)
	size := w.Types.Lookup(KindProjectile)
	x := box.X + box.W
	if shooter.Has(world.FlagFacingLeft) {
		x = box.X - size.Width
	}
	y := box.Y + box.H/2 - size.Height/2
	shot, err := w.Spawn(KindProjectile, x, y)
	if err != nil {
		w.Log.Warn("fire", zap.Error(err))
		return
	}
	shot.VX = shooter.Facing() * w.Tuning.ProjectileSpeed
	shot.Toggle(world.FlagFacingLeft, shooter.Has(world.FlagFacingLeft))
	w.Schedule("projectile", w.Tuning.ProjectileTicks, shot.ID, flight)
}

// flight bounds a projectile's lifetime. It ends early once the projectile
// is gone and removes it at the final invocation.
func flight(w *world.World, t *world.Task, e *world.Entity) {
	if !e.Alive() {
		t.Done = true
		return
	}
	if t.Counter >= t.Limit {
		w.Kill(e)
	}
}
