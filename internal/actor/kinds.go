// Package actor defines the stock entity kinds: their behaviors, the
// component data some of them carry, and the scene populator that places them.
package actor

import (
	"fmt"

	"github.com/driftwood2d/driftwood/internal/core/ecs"
	"github.com/driftwood2d/driftwood/internal/data"
	"github.com/driftwood2d/driftwood/internal/handler"
	"github.com/driftwood2d/driftwood/internal/world"
)

const (
	KindPlayer world.Kind = iota + 1
	KindBlock
	KindSpikes
	KindProjectile
	KindNPC
	KindDoor
	KindSlime
	KindSign
)

// Speech is the dialog component of npcs and signs. The frame is created
// once with the entity and reopened on every interaction.
type Speech struct {
	Frame *handler.Dialog
}

// Door is the destination of a door entity.
type Door struct {
	Target string
	Spawn  *data.Point
}

// Patrol is the walk range of a slime, centred on where it was placed.
type Patrol struct {
	Origin int32
	Range  int32
}

// Kit holds the component stores the stock kinds share. Rows are dropped
// with their entity.
type Kit struct {
	Speech  *ecs.Store[Speech]
	Doors   *ecs.Store[Door]
	Patrols *ecs.Store[Patrol]
	Root    *handler.Gameplay
	deps    *handler.Deps
}

func newKit(w *world.World, deps *handler.Deps) *Kit {
	reg := w.Store.Components()
	return &Kit{
		Speech:  ecs.NewStore[Speech](reg),
		Doors:   ecs.NewStore[Door](reg),
		Patrols: ecs.NewStore[Patrol](reg),
		deps:    deps,
	}
}

// Register installs every stock kind into w's registry.
func (k *Kit) Register(w *world.World) error {
	kinds := []struct {
		kind world.Kind
		desc world.Descriptor
	}{
		{KindPlayer, world.Descriptor{Name: "player", Width: 12, Height: 16, Texture: "sprites/player.png", Behavior: &player{kit: k}}},
		{KindBlock, world.Descriptor{Name: "block", Width: 16, Height: 16, Texture: "sprites/block.png", Behavior: block{}}},
		{KindSpikes, world.Descriptor{Name: "spikes", Width: 16, Height: 8, Behavior: spikes{}}},
		{KindProjectile, world.Descriptor{Name: "projectile", Width: 4, Height: 4, Behavior: projectile{}}},
		{KindNPC, world.Descriptor{Name: "npc", Width: 12, Height: 16, Behavior: &speaker{kit: k, color: npcColor}}},
		{KindDoor, world.Descriptor{Name: "door", Width: 16, Height: 24, Behavior: &door{kit: k}}},
		{KindSlime, world.Descriptor{Name: "slime", Width: 12, Height: 8, Texture: "sprites/slime.png", Behavior: &slime{kit: k}}},
		{KindSign, world.Descriptor{Name: "sign", Width: 12, Height: 12, Behavior: &speaker{kit: k, color: signColor}}},
	}
	for _, kd := range kinds {
		if err := w.Types.Register(kd.kind, kd.desc); err != nil {
			return fmt.Errorf("register stock kinds: %w", err)
		}
	}
	return nil
}

// NewWorld builds a world with the stock kinds registered and sealed, the
// gameplay frame installed as the stack root and the populator in place.
func NewWorld(opts world.Options, deps *handler.Deps) (*world.World, *Kit, error) {
	w := world.New(opts)
	k := newKit(w, deps)
	if err := k.Register(w); err != nil {
		return nil, nil, err
	}
	w.Types.Seal()
	k.Root = handler.NewGameplay(deps)
	w.Input.Push(k.Root)
	w.Scenes.Use(&Populator{Kit: k})
	return w, k, nil
}
