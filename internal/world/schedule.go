package world

import (
	"github.com/driftwood2d/driftwood/internal/core/ecs"
	"go.uber.org/zap"
)

// TaskID identifies a scheduled task. IDs are never reused.
type TaskID uint64

// Action is one non-blocking step of a task. target is nil once the target
// handle has gone stale. The action owns completion: setting t.Done ends the
// task early, otherwise it ends after the invocation whose Counter equals Limit.
type Action func(w *World, t *Task, target *Entity)

// Task is a counted, deferred action bound to an entity.
type Task struct {
	ID      TaskID
	Name    string
	Counter int
	Limit   int
	Target  ecs.EntityID
	Done    bool

	action    Action
	cancelled bool
}

// Scheduler advances tasks once per frame, after the simulation step.
type Scheduler struct {
	tasks   []*Task
	byID    map[TaskID]*Task
	next    TaskID
	ticking bool
	log     *zap.Logger
}

func NewScheduler(log *zap.Logger) *Scheduler {
	return &Scheduler{
		tasks: make([]*Task, 0, 32),
		byID:  make(map[TaskID]*Task, 32),
		log:   log,
	}
}

// Schedule enqueues action. A task scheduled during Tick first runs on the
// next Tick.
func (s *Scheduler) Schedule(name string, action Action, limit int, target ecs.EntityID) TaskID {
	if limit < 0 {
		limit = 0
	}
	s.next++
	t := &Task{ID: s.next, Name: name, Limit: limit, Target: target, action: action}
	s.tasks = append(s.tasks, t)
	s.byID[t.ID] = t
	return t.ID
}

// Cancel removes a task without touching its target. A cancelled task
// receives no further invocations, including one still pending in the
// current Tick. Cancelling an unknown or finished task is a contract violation.
func (s *Scheduler) Cancel(id TaskID) bool {
	t, ok := s.byID[id]
	if !ok {
		contract(s.log, "cancel of unknown schedule task", zap.Uint64("task", uint64(id)))
		return false
	}
	t.cancelled = true
	delete(s.byID, id)
	if !s.ticking {
		s.compact()
	}
	return true
}

// Active reports whether id is still scheduled.
func (s *Scheduler) Active(id TaskID) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of scheduled tasks.
func (s *Scheduler) Len() int { return len(s.byID) }

// Tick invokes every task once with its current counter, then removes the
// ones that completed or reached their limit and advances the rest. It
// returns the number of tasks that finished.
func (s *Scheduler) Tick(w *World) int {
	s.ticking = true
	n := len(s.tasks)
	finished := 0
	for i := 0; i < n && i < len(s.tasks); i++ {
		t := s.tasks[i]
		if t.cancelled || t.Done {
			continue
		}
		var target *Entity
		if w != nil {
			target = w.Store.Get(t.Target)
		}
		t.action(w, t, target)
		if t.cancelled {
			continue
		}
		if t.Done || t.Counter >= t.Limit {
			t.Done = true
			delete(s.byID, t.ID)
			finished++
			continue
		}
		t.Counter++
	}
	s.ticking = false
	s.compact()
	return finished
}

// Drain cancels every task. Targets are untouched.
func (s *Scheduler) Drain() int {
	n := len(s.byID)
	for _, t := range s.tasks {
		t.cancelled = true
	}
	clear(s.byID)
	if !s.ticking {
		s.compact()
	}
	return n
}

func (s *Scheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled && !t.Done {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}
