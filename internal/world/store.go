package world

import "github.com/driftwood2d/driftwood/internal/core/ecs"

// Store is the arena that owns all entities. Slots are addressed by the
// index half of a generational handle; iteration follows creation order.
//
// Clearing the alive flag only marks an entity. It stays in the arena, and
// keeps its slot and handle, until Sweep runs between passes.
type Store struct {
	handles *ecs.World
	slots   []*Entity
	order   []uint32
}

func NewStore() *Store {
	return &Store{
		handles: ecs.NewWorld(),
		slots:   make([]*Entity, 0, 128),
		order:   make([]uint32, 0, 128),
	}
}

// Components returns the registry per-kind data stores attach to, so their
// rows are dropped together with the entity.
func (s *Store) Components() *ecs.Registry { return s.handles.Registry() }

// Create allocates an alive entity at the tail of the iteration order.
// Kind validation belongs to World.Spawn.
func (s *Store) Create(kind Kind, x, y int32) *Entity {
	id := s.handles.CreateEntity()
	idx := id.Index()
	// fresh allocation, so a pointer to a swept entity never sees the new one
	e := &Entity{ID: id, Kind: kind, X: x, Y: y, Flags: FlagAlive}
	for int(idx) >= len(s.slots) {
		s.slots = append(s.slots, nil)
	}
	s.slots[idx] = e
	s.order = append(s.order, idx)
	return e
}

// Get resolves a handle. Stale or zero handles return nil.
func (s *Store) Get(id ecs.EntityID) *Entity {
	if id.IsZero() || !s.handles.Alive(id) {
		return nil
	}
	return s.slots[id.Index()]
}

// Len returns the number of stored entities, including killed ones not yet swept.
func (s *Store) Len() int { return len(s.order) }

// Live returns the number of valid handles.
func (s *Store) Live() int { return s.handles.Pool().Live() }

// At returns the i-th entity in iteration order.
func (s *Store) At(i int) *Entity { return s.slots[s.order[i]] }

// Each calls fn for every alive entity in iteration order. Entities created
// by fn are not visited; entities killed by fn are skipped once reached.
func (s *Store) Each(fn func(e *Entity)) {
	n := len(s.order)
	for i := 0; i < n; i++ {
		e := s.At(i)
		if e.Alive() {
			fn(e)
		}
	}
}

// First returns the first alive entity of kind, or nil.
func (s *Store) First(kind Kind) *Entity {
	for i := range s.order {
		if e := s.At(i); e.Kind == kind && e.Alive() {
			return e
		}
	}
	return nil
}

// Sweep destroys every entity whose alive flag is clear, keeping the order of
// the survivors. fn observes each entity just before its handle is released.
func (s *Store) Sweep(fn func(e *Entity)) int {
	kept := s.order[:0]
	removed := 0
	for _, idx := range s.order {
		e := s.slots[idx]
		if e.Alive() {
			kept = append(kept, idx)
			continue
		}
		if fn != nil {
			fn(e)
		}
		s.handles.MarkForDestruction(e.ID)
		s.slots[idx] = nil
		removed++
	}
	s.order = kept
	s.handles.FlushDestroyQueue(nil)
	return removed
}

// DestroyAll kills and sweeps every entity.
func (s *Store) DestroyAll(fn func(e *Entity)) int {
	for _, idx := range s.order {
		s.slots[idx].Clear(FlagAlive)
	}
	return s.Sweep(fn)
}
