package ecs

import "github.com/milk9111/spatialasset/ecs/component"

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// AddComponent stores value for e under the given component id, replacing any
// previous value.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(id, true).Set(e, value)
	return nil
}

// RemoveComponent deletes the component with the given id from e.
func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	return w.store(id, false).Remove(e)
}

// HasComponent reports whether e carries the component with the given id.
func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(id, false).Has(e)
}

// GetComponent returns the raw stored value.
func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if !w.HasComponent(e, id) {
		return nil, false
	}
	return w.store(id, false).Get(e), true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if s, ok := w.stores[id]; ok {
		return s
	}
	if !create {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s := &SparseSet{}
	w.stores[id] = s
	return s
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e, its components and all of its descendants. It
// returns false when e was not alive.
func DestroyEntity(w *World, e Entity) bool {
	if !w.IsAlive(e) {
		return false
	}

	if children, ok := Get(w, e, ChildrenComponent.Kind()); ok {
		for _, child := range append([]Entity(nil), children.Entities...) {
			DestroyEntity(w, child)
		}
	}
	detach(w, e)

	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether e is a live entity of w.
func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}
