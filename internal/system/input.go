package system

import (
	"time"

	coresys "github.com/driftwood2d/driftwood/internal/core/system"
	"github.com/driftwood2d/driftwood/internal/world"
)

// SnapshotSource produces the raw input state for one frame.
type SnapshotSource interface {
	Poll() world.Snapshot
}

// InputSystem polls the input collaborator and hands the snapshot to the
// active handler frame. Phase 0 (Input).
type InputSystem struct {
	world  *world.World
	source SnapshotSource
}

func NewInputSystem(w *world.World, source SnapshotSource) *InputSystem {
	return &InputSystem{world: w, source: source}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) error {
	var in world.Snapshot
	if s.source != nil {
		in = s.source.Poll()
	}
	s.world.TickInput(in)
	return nil
}
