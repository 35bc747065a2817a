package ecs

import (
	"fmt"

	"github.com/milk9111/spatialasset/ecs/component"
)

// Parent points a child entity at the node whose transform it inherits.
type Parent struct {
	Entity Entity
}

var ParentComponent = component.NewComponent[Parent]()

// Children lists the direct descendants of a node in insertion order.
type Children struct {
	Entities []Entity
}

var ChildrenComponent = component.NewComponent[Children]()

// SetParent attaches child under parent, detaching it from any previous
// parent first.
func SetParent(w *World, child, parent Entity) error {
	if !w.IsAlive(child) || !w.IsAlive(parent) {
		return component.ErrEntityNotAlive
	}
	if child == parent || isAncestor(w, child, parent) {
		return fmt.Errorf("ecs: set parent of %s to %s: would create a cycle", child, parent)
	}

	detach(w, child)

	if err := Add(w, child, ParentComponent.Kind(), &Parent{Entity: parent}); err != nil {
		return err
	}
	children, ok := Get(w, parent, ChildrenComponent.Kind())
	if !ok {
		children = &Children{}
		if err := Add(w, parent, ChildrenComponent.Kind(), children); err != nil {
			return err
		}
	}
	children.Entities = append(children.Entities, child)
	return nil
}

// Roots returns live entities that have no parent.
func Roots(w *World) []Entity {
	var out []Entity
	for _, e := range Entities(w) {
		if !Has(w, e, ParentComponent.Kind()) {
			out = append(out, e)
		}
	}
	return out
}

func isAncestor(w *World, candidate, e Entity) bool {
	for {
		p, ok := Get(w, e, ParentComponent.Kind())
		if !ok {
			return false
		}
		if p.Entity == candidate {
			return true
		}
		e = p.Entity
	}
}

func detach(w *World, child Entity) {
	p, ok := Get(w, child, ParentComponent.Kind())
	if !ok {
		return
	}
	if siblings, ok := Get(w, p.Entity, ChildrenComponent.Kind()); ok {
		kept := siblings.Entities[:0]
		for _, s := range siblings.Entities {
			if s != child {
				kept = append(kept, s)
			}
		}
		siblings.Entities = kept
	}
	Remove(w, child, ParentComponent.Kind())
}
