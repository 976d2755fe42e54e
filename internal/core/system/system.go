package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput      Phase = iota // 0: top input handler consumes the snapshot
	PhasePreUpdate               // 1: deliver last frame's events
	PhaseUpdate                  // 2: two-axis update/collision step
	PhasePostUpdate              // 3: scheduler tick
	PhaseScene                   // 4: apply a pending scene transition
	PhaseCleanup                 // 5: sweep entities killed this frame
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseScene:
		return "scene"
	case PhaseCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// System is the interface every frame system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration) error
}
