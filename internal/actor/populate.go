package actor

import (
	"fmt"

	"github.com/driftwood2d/driftwood/internal/data"
	"github.com/driftwood2d/driftwood/internal/handler"
	"github.com/driftwood2d/driftwood/internal/world"
	"go.uber.org/zap"
)

const (
	slimeLife   = 1
	patrolRange = 48
)

// Populator places a scene's entities and attaches their component data.
type Populator struct {
	Kit *Kit
}

func (p *Populator) Populate(w *world.World, scene *data.SceneEntry) error {
	if scene.Player != nil {
		if _, err := p.spawn(w, data.EntityEntry{Kind: "player"}, KindPlayer, *scene.Player); err != nil {
			return err
		}
	}
	for _, entry := range scene.Entities {
		kind, ok := w.Types.ByName(entry.Kind)
		if !ok {
			return fmt.Errorf("scene %q: kind %q: %w", scene.ID, entry.Kind, world.ErrUnknownKind)
		}
		for _, pt := range entry.Expand() {
			if _, err := p.spawn(w, entry, kind, pt); err != nil {
				return fmt.Errorf("scene %q: %w", scene.ID, err)
			}
		}
	}
	if w.Player == 0 {
		w.Log.Warn("scene has no player", zap.String("scene", scene.ID))
	}
	return nil
}

func (p *Populator) spawn(w *world.World, entry data.EntityEntry, kind world.Kind, at data.Point) (*world.Entity, error) {
	e, err := w.Spawn(kind, at.X, at.Y)
	if err != nil {
		return nil, err
	}
	e.Life = entry.Life
	k := p.Kit

	switch kind {
	case KindPlayer:
		if e.Life <= 0 {
			e.Life = playerLife
		}
		if w.Player == 0 {
			w.Player = e.ID
		}
	case KindBlock, KindSpikes:
		e.Set(world.FlagStatic)
	case KindNPC, KindSign:
		e.Set(world.FlagStatic)
		k.Speech.Set(e.ID, &Speech{Frame: handler.NewDialog(entry.Name, entry.Dialog)})
	case KindDoor:
		e.Set(world.FlagStatic)
		k.Doors.Set(e.ID, &Door{Target: entry.Target, Spawn: entry.Spawn})
	case KindSlime:
		if e.Life <= 0 {
			e.Life = slimeLife
		}
		r := entry.Patrol
		if r <= 0 {
			r = patrolRange
		}
		k.Patrols.Set(e.ID, &Patrol{Origin: at.X, Range: r})
		e.Set(world.FlagFacingLeft)
	}
	return e, nil
}
