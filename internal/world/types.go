package world

import (
	"errors"
	"fmt"
	"sort"

	"github.com/driftwood2d/driftwood/internal/render"
)

var (
	ErrDuplicateKind     = errors.New("kind already registered")
	ErrUnknownKind       = errors.New("kind not registered")
	ErrInvalidDescriptor = errors.New("invalid kind descriptor")
	ErrRegistrySealed    = errors.New("kind registry is sealed")
)

// Axis selects which half of the simulation step is running.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Behavior is the capability set every entity kind implements.
type Behavior interface {
	// Update advances e along axis. Only state belonging to that axis may change.
	Update(w *World, e *Entity, axis Axis)
	// Collide reacts to an overlap with other; code is from e's perspective.
	Collide(w *World, e, other *Entity, code Code, axis Axis)
	Render(w *World, e *Entity, dst render.Surface)
}

// Descriptor is the fixed per-kind data. Sizes are per kind, never per instance.
type Descriptor struct {
	Name     string
	Width    int32
	Height   int32
	Texture  string // optional, loaded with every scene that places the kind
	Behavior Behavior
}

// Types is the kind dispatch table. It is filled while the world is being
// built, sealed before the first frame, and read-only afterwards.
type Types struct {
	descs  []*Descriptor
	byName map[string]Kind
	sealed bool
}

func NewTypes() *Types {
	return &Types{
		descs:  make([]*Descriptor, 16),
		byName: make(map[string]Kind, 16),
	}
}

// Register installs the descriptor for kind.
func (t *Types) Register(kind Kind, d Descriptor) error {
	if t.sealed {
		return fmt.Errorf("register %q: %w", d.Name, ErrRegistrySealed)
	}
	if kind == KindNone || d.Behavior == nil || d.Width <= 0 || d.Height <= 0 || d.Name == "" {
		return fmt.Errorf("register kind %d %q: %w", kind, d.Name, ErrInvalidDescriptor)
	}
	for int(kind) >= len(t.descs) {
		t.descs = append(t.descs, nil)
	}
	if t.descs[kind] != nil {
		return fmt.Errorf("register kind %d %q: %w", kind, d.Name, ErrDuplicateKind)
	}
	if _, dup := t.byName[d.Name]; dup {
		return fmt.Errorf("register kind %d %q: %w", kind, d.Name, ErrDuplicateKind)
	}
	desc := d
	t.descs[kind] = &desc
	t.byName[d.Name] = kind
	return nil
}

// Seal forbids further registration.
func (t *Types) Seal() { t.sealed = true }

// Lookup returns the descriptor for kind, or nil when the kind is unregistered.
func (t *Types) Lookup(kind Kind) *Descriptor {
	if int(kind) >= len(t.descs) {
		return nil
	}
	return t.descs[kind]
}

// ByName resolves the name used in scene files.
func (t *Types) ByName(name string) (Kind, bool) {
	k, ok := t.byName[name]
	return k, ok
}

// Name returns the registered name of kind, or "?".
func (t *Types) Name(kind Kind) string {
	if d := t.Lookup(kind); d != nil {
		return d.Name
	}
	return "?"
}

// Names lists registered kind names in sorted order.
func (t *Types) Names() []string {
	names := make([]string, 0, len(t.byName))
	for n := range t.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Box returns e's bounding box sized from its descriptor.
func (t *Types) Box(e *Entity) render.Rect {
	d := t.Lookup(e.Kind)
	if d == nil {
		return render.Rect{X: e.X, Y: e.Y}
	}
	return render.Rect{X: e.X, Y: e.Y, W: d.Width, H: d.Height}
}
