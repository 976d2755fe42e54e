package system

import (
	"time"

	coresys "github.com/driftwood2d/driftwood/internal/core/system"
	"github.com/driftwood2d/driftwood/internal/world"
)

// SimulationSystem runs the two-axis update/collision step. Phase 2 (Update).
type SimulationSystem struct {
	world *world.World
}

func NewSimulationSystem(w *world.World) *SimulationSystem {
	return &SimulationSystem{world: w}
}

func (s *SimulationSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *SimulationSystem) Update(_ time.Duration) error {
	s.world.TickSimulation()
	return nil
}

// ScheduleSystem advances timed tasks after the step. Phase 3 (PostUpdate).
type ScheduleSystem struct {
	world *world.World
}

func NewScheduleSystem(w *world.World) *ScheduleSystem {
	return &ScheduleSystem{world: w}
}

func (s *ScheduleSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *ScheduleSystem) Update(_ time.Duration) error {
	s.world.TickScheduler()
	return nil
}

// SceneSystem applies a pending scene transition once nothing is iterating
// the store. A failed load stops the frame. Phase 4 (Scene).
type SceneSystem struct {
	world *world.World
}

func NewSceneSystem(w *world.World) *SceneSystem {
	return &SceneSystem{world: w}
}

func (s *SceneSystem) Phase() coresys.Phase { return coresys.PhaseScene }

func (s *SceneSystem) Update(_ time.Duration) error {
	return s.world.TickScene()
}
