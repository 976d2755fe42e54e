package world

import (
	"errors"
	"fmt"

	"github.com/driftwood2d/driftwood/internal/core/event"
	"github.com/driftwood2d/driftwood/internal/data"
	"github.com/driftwood2d/driftwood/internal/render"
	"go.uber.org/zap"
)

var (
	ErrUnknownScene      = errors.New("unknown scene")
	ErrTransitionPending = errors.New("scene transition already pending")
	ErrNoResources       = errors.New("no resource provider")
)

// Populator constructs a scene's entities from its data entry.
type Populator interface {
	Populate(w *World, scene *data.SceneEntry) error
}

// Transition is a deferred scene change.
type Transition struct {
	From  string
	To    string
	Spawn *data.Point // where the player arrives; nil keeps the scene default
}

type resource struct {
	tex      render.Texture
	font     render.Font
	common   bool
	attached bool
}

// Director runs the scene lifecycle: load, clear and deferred transitions.
type Director struct {
	table   *data.SceneTable
	res     render.Resources
	pop     Populator
	log     *zap.Logger
	current string
	pending *Transition
	cache   map[string]*resource
	font    string
}

func NewDirector(table *data.SceneTable, res render.Resources, log *zap.Logger) *Director {
	return &Director{
		table: table,
		res:   res,
		log:   log,
		cache: make(map[string]*resource),
	}
}

// Use installs the populator that turns scene entries into entities.
func (d *Director) Use(p Populator) { d.pop = p }

// Current returns the loaded scene id, empty before the first Load.
func (d *Director) Current() string { return d.current }

// Pending returns the queued transition, or nil.
func (d *Director) Pending() *Transition { return d.pending }

// Scene returns the data entry of the loaded scene.
func (d *Director) Scene() *data.SceneEntry {
	if d.table == nil {
		return nil
	}
	return d.table.Get(d.current)
}

// Known reports whether id names a scene in the table.
func (d *Director) Known(id string) bool {
	return d.table != nil && d.table.Get(id) != nil
}

// Load requests the scene's resources and populates the store. Failures are
// configuration errors: the caller is expected to abort.
func (d *Director) Load(w *World, id string) error {
	if !d.Known(id) {
		return fmt.Errorf("load %q: %w", id, ErrUnknownScene)
	}
	scene := d.table.Get(id)
	for _, r := range scene.Resources {
		if err := d.acquire(r.Path, r.Font, r.Common); err != nil {
			return fmt.Errorf("load %q: %w", id, err)
		}
	}
	for _, e := range scene.Entities {
		kind, ok := w.Types.ByName(e.Kind)
		if !ok {
			return fmt.Errorf("load %q: kind %q: %w", id, e.Kind, ErrUnknownKind)
		}
		if tex := w.Types.Lookup(kind).Texture; tex != "" {
			if err := d.acquire(tex, false, true); err != nil {
				return fmt.Errorf("load %q: %w", id, err)
			}
		}
	}
	from := d.current
	d.current = id
	w.Camera.Bounds(scene.Width, scene.Height)
	if d.pop != nil {
		if err := d.pop.Populate(w, scene); err != nil {
			return fmt.Errorf("populate %q: %w", id, err)
		}
	}
	event.Emit(w.Bus, event.SceneEntered{Scene: id, From: from})
	d.log.Info("scene loaded",
		zap.String("scene", id),
		zap.Int("entities", w.Store.Len()),
		zap.Int("resources", len(d.cache)),
	)
	return nil
}

// Clear destroys every entity, drains the scheduler, releases per-scene
// resources and detaches common ones (kept cached for the next Load).
func (d *Director) Clear(w *World) {
	n := w.Store.DestroyAll(w.destroyed)
	tasks := w.Sched.Drain()
	for path, r := range d.cache {
		if r.common {
			r.attached = false
			continue
		}
		delete(d.cache, path)
		if rel, ok := d.res.(render.Releaser); ok {
			rel.Release(path)
		}
		if path == d.font {
			d.font = ""
		}
	}
	w.Player = 0
	d.log.Debug("scene cleared",
		zap.String("scene", d.current),
		zap.Int("entities", n),
		zap.Int("tasks", tasks),
	)
}

// RequestTransition queues a change from one scene to another. At most one
// transition can be pending.
func (d *Director) RequestTransition(from, to string, spawn *data.Point) error {
	if d.pending != nil {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrTransitionPending)
	}
	if !d.Known(to) {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrUnknownScene)
	}
	d.pending = &Transition{From: from, To: to, Spawn: spawn}
	return nil
}

// apply consumes the pending transition: Clear, then Load.
func (d *Director) apply(w *World) (bool, error) {
	t := d.pending
	if t == nil {
		return false, nil
	}
	d.pending = nil
	d.Clear(w)
	if err := d.Load(w, t.To); err != nil {
		return true, err
	}
	if t.Spawn != nil {
		if p := w.Store.Get(w.Player); p != nil {
			p.X, p.Y = t.Spawn.X, t.Spawn.Y
			p.VX, p.VY = 0, 0
		}
	}
	return true, nil
}

// Texture returns an attached texture by path.
func (d *Director) Texture(path string) render.Texture {
	if r, ok := d.cache[path]; ok && r.attached {
		return r.tex
	}
	return nil
}

// Font returns the most recently attached font, or nil.
func (d *Director) Font() render.Font {
	if r, ok := d.cache[d.font]; ok && r.attached {
		return r.font
	}
	return nil
}

// Resident returns the number of cached resources, attached or not.
func (d *Director) Resident() int { return len(d.cache) }

func (d *Director) acquire(path string, font, common bool) error {
	if r, ok := d.cache[path]; ok {
		r.attached = true
		r.common = r.common || common
		if font {
			d.font = path
		}
		return nil
	}
	if d.res == nil {
		return fmt.Errorf("%s: %w", path, ErrNoResources)
	}
	r := &resource{common: common, attached: true}
	if font {
		f, err := d.res.LoadFont(path)
		if err != nil {
			return err
		}
		r.font = f
		d.font = path
	} else {
		t, err := d.res.LoadImage(path)
		if err != nil {
			return err
		}
		r.tex = t
	}
	d.cache[path] = r
	return nil
}
