package ecs

import "github.com/milk9111/spatialasset/ecs/component"

// Query returns the live entities present in every store named by ids.
func Query(w *World, ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}

	sets := make([]*SparseSet, 0, len(ids))
	for _, id := range ids {
		s := w.store(id, false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}

	// iterate smallest set
	smallest := 0
	for i, s := range sets {
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}

	var out []Entity
	for _, e := range sets[smallest].Entities() {
		if !w.IsAlive(e) {
			continue
		}
		match := true
		for i, s := range sets {
			if i != smallest && !s.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}
