package system

import (
	"time"

	"github.com/driftwood2d/driftwood/internal/core/event"
	coresys "github.com/driftwood2d/driftwood/internal/core/system"
)

// EventDispatchSystem delivers the events emitted during the previous frame.
// Phase 1 (PreUpdate).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) error {
	if s.bus == nil {
		return nil
	}
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
	return nil
}
