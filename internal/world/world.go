package world

import (
	"fmt"

	"github.com/driftwood2d/driftwood/internal/core/ecs"
	"github.com/driftwood2d/driftwood/internal/core/event"
	"github.com/driftwood2d/driftwood/internal/data"
	"github.com/driftwood2d/driftwood/internal/render"
	"go.uber.org/zap"
)

// Tuning holds the physics constants the stock behaviors read.
type Tuning struct {
	Gravity         int32
	MaxFall         int32
	JumpImpulse     int32
	WalkSpeed       int32
	Friction        int32
	KnockbackX      int32
	KnockbackY      int32
	InvulnTicks     int
	ProjectileSpeed int32
	ProjectileTicks int
}

func DefaultTuning() Tuning {
	return Tuning{
		Gravity:         1,
		MaxFall:         8,
		JumpImpulse:     10,
		WalkSpeed:       3,
		Friction:        1,
		KnockbackX:      4,
		KnockbackY:      5,
		InvulnTicks:     60,
		ProjectileSpeed: 6,
		ProjectileTicks: 50,
	}
}

// Options configures a World.
type Options struct {
	Log       *zap.Logger
	Metrics   *Metrics
	Bus       *event.Bus
	Scenes    *data.SceneTable
	Resources render.Resources
	Tuning    Tuning
	ViewW     int32
	ViewH     int32
}

// World ties the core together. It is driven by exactly one goroutine.
type World struct {
	Log     *zap.Logger
	Types   *Types
	Store   *Store
	Sched   *Scheduler
	Input   *Stack
	Scenes  *Director
	Camera  Camera
	Tuning  Tuning
	Bus     *event.Bus
	Metrics *Metrics

	Player       ecs.EntityID // camera focus and target of spawn points
	Frame        uint64
	ShowHitboxes bool

	quit bool
}

func New(opts Options) *World {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = NewMetrics(nil)
	}
	w := &World{
		Log:     log,
		Types:   NewTypes(),
		Store:   NewStore(),
		Sched:   NewScheduler(log),
		Input:   NewStack(log),
		Scenes:  NewDirector(opts.Scenes, opts.Resources, log),
		Camera:  Camera{Width: opts.ViewW, Height: opts.ViewH},
		Tuning:  opts.Tuning,
		Bus:     opts.Bus,
		Metrics: m,
	}
	return w
}

// Spawn creates an entity of a registered kind at the tail of the store.
func (w *World) Spawn(kind Kind, x, y int32) (*Entity, error) {
	if w.Types.Lookup(kind) == nil {
		return nil, fmt.Errorf("spawn kind %d: %w", kind, ErrUnknownKind)
	}
	e := w.Store.Create(kind, x, y)
	w.Metrics.EntitiesSpawned.Inc()
	w.Metrics.LiveEntities.Set(float64(w.Store.Live()))
	event.Emit(w.Bus, event.EntitySpawned{ID: e.ID, Kind: uint8(kind)})
	return e, nil
}

// Kill clears the alive flag. The entity is swept after the current pass.
func (w *World) Kill(e *Entity) {
	if e != nil {
		e.Clear(FlagAlive)
	}
}

// Schedule starts a timed action bound to target.
func (w *World) Schedule(name string, limit int, target ecs.EntityID, action Action) TaskID {
	w.Metrics.TasksScheduled.Inc()
	return w.Sched.Schedule(name, action, limit, target)
}

// RequestTransition queues a scene change from the current scene.
func (w *World) RequestTransition(to string, spawn *data.Point) error {
	return w.Scenes.RequestTransition(w.Scenes.Current(), to, spawn)
}

// RequestQuit asks the driver to stop after this frame.
func (w *World) RequestQuit()        { w.quit = true }
func (w *World) QuitRequested() bool { return w.quit }

// TickInput hands the snapshot to the active input handler frame.
func (w *World) TickInput(in Snapshot) {
	w.Input.Dispatch(w, in)
	w.Metrics.StackDepth.Set(float64(w.Input.Len()))
}

// TickScheduler advances every schedule task by one.
func (w *World) TickScheduler() {
	n := w.Sched.Tick(w)
	w.Metrics.TasksFinished.Add(float64(n))
	w.Metrics.ActiveTasks.Set(float64(w.Sched.Len()))
}

// TickScene applies a pending transition, if any. A load failure is fatal.
func (w *World) TickScene() error {
	applied, err := w.Scenes.apply(w)
	if applied {
		w.Metrics.Transitions.Inc()
		w.Metrics.LiveEntities.Set(float64(w.Store.Live()))
	}
	return err
}

// LoadScene performs the initial load outside the frame loop.
func (w *World) LoadScene(id string) error {
	err := w.Scenes.Load(w, id)
	w.Metrics.LiveEntities.Set(float64(w.Store.Live()))
	return err
}

// Sweep removes killed entities from the store.
func (w *World) Sweep() {
	w.Store.Sweep(w.destroyed)
	w.Metrics.LiveEntities.Set(float64(w.Store.Live()))
}

func (w *World) destroyed(e *Entity) {
	w.Metrics.EntitiesDestroyed.Inc()
	event.Emit(w.Bus, event.EntityDestroyed{ID: e.ID, Kind: uint8(e.Kind)})
}

// Render draws alive entities in store order, then the overlays of stacked
// frames bottom to top.
func (w *World) Render(dst render.Surface) {
	w.Store.Each(func(e *Entity) {
		d := w.Types.Lookup(e.Kind)
		if d == nil {
			return
		}
		if !w.Camera.Visible(w.Types.Box(e)) {
			return
		}
		d.Behavior.Render(w, e, dst)
		if w.ShowHitboxes {
			dst.DrawRect(w.Camera.Project(w.Types.Box(e)), render.White)
		}
	})
	w.Input.each(func(h Handler) {
		if o, ok := h.(Overlay); ok {
			o.DrawOverlay(w, dst)
		}
	})
}

// Summary is a read-only digest of the world for diagnostics.
type Summary struct {
	Frame      uint64 `json:"frame"`
	Scene      string `json:"scene"`
	Pending    string `json:"pending,omitempty"`
	Entities   int    `json:"entities"`
	Tasks      int    `json:"tasks"`
	StackDepth int    `json:"stack_depth"`
	Resident   int    `json:"resident_resources"`
}

func (w *World) Summarize() Summary {
	s := Summary{
		Frame:      w.Frame,
		Scene:      w.Scenes.Current(),
		Entities:   w.Store.Live(),
		Tasks:      w.Sched.Len(),
		StackDepth: w.Input.Len(),
		Resident:   w.Scenes.Resident(),
	}
	if p := w.Scenes.Pending(); p != nil {
		s.Pending = p.To
	}
	return s
}
