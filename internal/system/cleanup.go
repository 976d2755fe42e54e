package system

import (
	"time"

	coresys "github.com/driftwood2d/driftwood/internal/core/system"
	"github.com/driftwood2d/driftwood/internal/world"
)

// Publisher receives the read-only world digest at the end of every frame.
type Publisher interface {
	Publish(s world.Summary)
}

// CleanupSystem sweeps entities killed outside the step (scheduler actions,
// console commands) and publishes the frame summary. Phase 5 (Cleanup).
type CleanupSystem struct {
	world *world.World
	pub   Publisher
}

func NewCleanupSystem(w *world.World, pub Publisher) *CleanupSystem {
	return &CleanupSystem{world: w, pub: pub}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) error {
	s.world.Sweep()
	if s.pub != nil {
		s.pub.Publish(s.world.Summarize())
	}
	return nil
}

// RegisterAll installs the frame pipeline for w in phase order.
func RegisterAll(r *coresys.Runner, w *world.World, source SnapshotSource, pub Publisher) {
	r.Register(NewInputSystem(w, source))
	r.Register(NewEventDispatchSystem(w.Bus))
	r.Register(NewSimulationSystem(w))
	r.Register(NewScheduleSystem(w))
	r.Register(NewSceneSystem(w))
	r.Register(NewCleanupSystem(w, pub))
}
