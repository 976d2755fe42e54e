package world

import "github.com/driftwood2d/driftwood/internal/core/ecs"

// Kind is the small integer tag that selects an entity's type descriptor.
type Kind uint8

// KindNone is never registered; a zero Kind marks an uninitialised entity.
const KindNone Kind = 0

// Flags is the per-entity state bitfield.
type Flags uint32

const (
	FlagAlive Flags = 1 << iota
	FlagFacingLeft
	FlagJumping
	FlagAirborne
	FlagInteracting
	FlagInvulnerable
	FlagBlinking
	FlagStunned
	FlagStatic // never displaced by solid resolution

	// One-shot intents set by input handlers and consumed by the next update.
	FlagWantJump
	FlagWantInteract
	FlagWantFire

	// Held movement intents, rewritten by the gameplay handler every frame.
	FlagMoveLeft
	FlagMoveRight
)

// Entity is a positioned, simulated object. The Entity Store owns every
// Entity; other components keep its ID, never the pointer, across frames.
type Entity struct {
	ID    ecs.EntityID
	Kind  Kind
	X, Y  int32
	VX    int32
	VY    int32
	Flags Flags
	Life  int32
	Frame int // animation frame index, opaque to the core
}

func (e *Entity) Has(f Flags) bool { return e.Flags&f == f }
func (e *Entity) Set(f Flags)      { e.Flags |= f }
func (e *Entity) Clear(f Flags)    { e.Flags &^= f }

// Toggle sets f when on is true and clears it otherwise.
func (e *Entity) Toggle(f Flags, on bool) {
	if on {
		e.Set(f)
	} else {
		e.Clear(f)
	}
}

// Take reports whether f was set and clears it.
func (e *Entity) Take(f Flags) bool {
	if e.Flags&f == 0 {
		return false
	}
	e.Flags &^= f
	return true
}

func (e *Entity) Alive() bool { return e != nil && e.Flags&FlagAlive != 0 }

// Facing returns -1 when the entity faces left, +1 otherwise.
func (e *Entity) Facing() int32 {
	if e.Has(FlagFacingLeft) {
		return -1
	}
	return 1
}
