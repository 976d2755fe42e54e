package actor

import (
	"errors"
	"image/color"

	"github.com/driftwood2d/driftwood/internal/core/event"
	"github.com/driftwood2d/driftwood/internal/render"
	"github.com/driftwood2d/driftwood/internal/world"
	"go.uber.org/zap"
)

// block is a static solid.
type block struct{}

func (block) Update(*world.World, *world.Entity, world.Axis) {}

func (block) Collide(w *world.World, e, other *world.Entity, code world.Code, axis world.Axis) {
	w.Block(e, other, code, axis)
}

func (block) Render(w *world.World, e *world.Entity, dst render.Surface) {
	draw(w, e, dst, blockColor)
}

// spikes hurt the player on contact.
type spikes struct{}

func (spikes) Update(*world.World, *world.Entity, world.Axis) {}

func (spikes) Collide(w *world.World, e, other *world.Entity, _ world.Code, _ world.Axis) {
	if other.Kind == KindPlayer {
		knockback(w, other, e)
	}
}

func (spikes) Render(w *world.World, e *world.Entity, dst render.Surface) {
	draw(w, e, dst, spikesColor)
}

// projectile flies straight until it hits a block or an enemy, or its
// flight task runs out.
type projectile struct{}

func (projectile) Update(_ *world.World, e *world.Entity, axis world.Axis) {
	if axis == world.AxisX {
		e.X += e.VX
	}
}

func (projectile) Collide(w *world.World, e, other *world.Entity, _ world.Code, _ world.Axis) {
	switch other.Kind {
	case KindBlock:
		w.Kill(e)
	case KindSlime:
		other.Life--
		if other.Life <= 0 {
			w.Kill(other)
		}
		w.Kill(e)
	}
}

func (projectile) Render(w *world.World, e *world.Entity, dst render.Surface) {
	draw(w, e, dst, projectileColor)
}

// speaker opens its dialog when the player interacts while overlapping it.
// npcs and signs differ only in look.
type speaker struct {
	kit   *Kit
	color color.RGBA
}

func (s *speaker) Update(*world.World, *world.Entity, world.Axis) {}

func (s *speaker) Collide(w *world.World, e, other *world.Entity, _ world.Code, axis world.Axis) {
	if axis != world.AxisX || other.Kind != KindPlayer || !other.Has(world.FlagInteracting) {
		return
	}
	sp, ok := s.kit.Speech.Get(e.ID)
	if !ok || sp.Frame == nil {
		return
	}
	other.Clear(world.FlagInteracting)
	if sp.Frame.Open(w) {
		event.Emit(w.Bus, event.DialogOpened{Speaker: e.ID, Lines: len(sp.Frame.Lines)})
	}
}

func (s *speaker) Render(w *world.World, e *world.Entity, dst render.Surface) {
	draw(w, e, dst, s.color)
}

// door moves the player to another scene on interaction.
type door struct {
	kit *Kit
}

func (d *door) Update(*world.World, *world.Entity, world.Axis) {}

func (d *door) Collide(w *world.World, e, other *world.Entity, _ world.Code, axis world.Axis) {
	if axis != world.AxisX || other.Kind != KindPlayer || !other.Has(world.FlagInteracting) {
		return
	}
	dest, ok := d.kit.Doors.Get(e.ID)
	if !ok {
		return
	}
	other.Clear(world.FlagInteracting)
	if err := w.RequestTransition(dest.Target, dest.Spawn); err != nil {
		if errors.Is(err, world.ErrTransitionPending) {
			return
		}
		w.Log.Warn("door transition", zap.String("target", dest.Target), zap.Error(err))
	}
}

func (d *door) Render(w *world.World, e *world.Entity, dst render.Surface) {
	draw(w, e, dst, doorColor)
}

// slime walks back and forth inside its patrol range and knocks the player
// back on contact.
type slime struct {
	kit *Kit
}

func (s *slime) Update(w *world.World, e *world.Entity, axis world.Axis) {
	if axis == world.AxisY {
		fall(w, e)
		return
	}
	if p, ok := s.kit.Patrols.Get(e.ID); ok && p.Range > 0 {
		switch {
		case e.X <= p.Origin-p.Range:
			e.Clear(world.FlagFacingLeft)
		case e.X >= p.Origin+p.Range:
			e.Set(world.FlagFacingLeft)
		}
	}
	e.VX = e.Facing()
	e.X += e.VX
	animate(w, e)
}

func (s *slime) Collide(w *world.World, e, other *world.Entity, code world.Code, axis world.Axis) {
	switch other.Kind {
	case KindPlayer:
		knockback(w, other, e)
	case KindBlock:
		// walked into a wall: turn around
		if axis == world.AxisX {
			e.Toggle(world.FlagFacingLeft, !code.Left())
		}
	}
}

func (s *slime) Render(w *world.World, e *world.Entity, dst render.Surface) {
	draw(w, e, dst, slimeColor)
}
