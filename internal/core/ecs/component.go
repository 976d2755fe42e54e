package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// Store attaches per-entity data of one type to handles. Kinds that need more
// than the common entity fields (dialog text, door targets, patrol ranges)
// keep that data here instead of widening the entity itself.
type Store[T any] struct {
	data map[EntityID]*T
}

// NewStore creates a store and registers it for cleanup on entity destroy.
func NewStore[T any](reg *Registry) *Store[T] {
	s := &Store[T]{
		data: make(map[EntityID]*T, 32),
	}
	if reg != nil {
		reg.Register(s)
	}
	return s
}

func (s *Store[T]) Set(id EntityID, c *T) {
	s.data[id] = c
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *Store[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.data)
}
