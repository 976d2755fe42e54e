package actor

import (
	"image/color"

	"github.com/driftwood2d/driftwood/internal/core/event"
	"github.com/driftwood2d/driftwood/internal/render"
	"github.com/driftwood2d/driftwood/internal/world"
	"go.uber.org/zap"
)

var (
	playerColor     = color.RGBA{0x4a, 0x9e, 0xff, 0xff}
	blockColor      = color.RGBA{0x7a, 0x6a, 0x58, 0xff}
	spikesColor     = color.RGBA{0xd0, 0xd0, 0xd8, 0xff}
	projectileColor = color.RGBA{0xff, 0xd0, 0x40, 0xff}
	npcColor        = color.RGBA{0x60, 0xc0, 0x60, 0xff}
	doorColor       = color.RGBA{0x90, 0x50, 0x20, 0xff}
	slimeColor      = color.RGBA{0x50, 0xe0, 0x90, 0xff}
	signColor       = color.RGBA{0xc0, 0xa0, 0x60, 0xff}
)

// friction decays v toward zero by f.
func friction(v, f int32) int32 {
	switch {
	case v > f:
		return v - f
	case v < -f:
		return v + f
	default:
		return 0
	}
}

// fall applies gravity and vertical velocity. The entity is assumed airborne
// until a solid lands it during the Y collision pass.
func fall(w *world.World, e *world.Entity) {
	e.VY += w.Tuning.Gravity
	if e.VY > w.Tuning.MaxFall {
		e.VY = w.Tuning.MaxFall
	}
	e.Y += e.VY
	e.Set(world.FlagAirborne)
}

// knockback throws victim away from hazard, takes one life and starts the
// recovery window. Invulnerable victims are untouched. It reports whether
// the hit landed.
func knockback(w *world.World, victim, hazard *world.Entity) bool {
	if victim.Has(world.FlagInvulnerable) || !victim.Alive() {
		return false
	}
	dir := int32(1)
	if hazard.X > victim.X {
		dir = -1
	}
	victim.VX = dir * w.Tuning.KnockbackX
	victim.VY = -w.Tuning.KnockbackY
	victim.Set(world.FlagInvulnerable | world.FlagBlinking | world.FlagStunned | world.FlagAirborne)
	victim.Life--
	event.Emit(w.Bus, event.PlayerHurt{ID: victim.ID, Life: victim.Life})
	w.Log.Debug("entity hurt",
		zap.Uint64("id", uint64(victim.ID)),
		zap.String("by", w.Types.Name(hazard.Kind)),
		zap.Int32("life", victim.Life),
	)
	if victim.Life <= 0 {
		w.Kill(victim)
		return true
	}
	w.Schedule("recover", w.Tuning.InvulnTicks, victim.ID, recoverTask)
	return true
}

// recoverTask ends the knockback window at its final invocation. Control comes
// back after the first third.
func recoverTask(_ *world.World, t *world.Task, e *world.Entity) {
	if e == nil {
		t.Done = true
		return
	}
	if t.Counter >= t.Limit/3 {
		e.Clear(world.FlagStunned)
	}
	if t.Counter >= t.Limit {
		e.Clear(world.FlagInvulnerable | world.FlagBlinking | world.FlagStunned)
	}
}

// draw renders e with its kind texture when one is attached, a flat box
// otherwise. Blinking entities skip every other group of frames.
func draw(w *world.World, e *world.Entity, dst render.Surface, c color.RGBA) {
	if e.Has(world.FlagBlinking) && (w.Frame/4)%2 == 1 {
		return
	}
	box := w.Camera.Project(w.Types.Box(e))
	if d := w.Types.Lookup(e.Kind); d != nil && d.Texture != "" {
		if tex := w.Scenes.Texture(d.Texture); tex != nil {
			dst.DrawSprite(tex, e.Frame, box)
			return
		}
	}
	dst.FillRect(box, c)
}
