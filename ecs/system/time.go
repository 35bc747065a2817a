package system

import (
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
)

// AdvanceTime moves the frame clock forward by dt seconds. The game calls it
// once per cycle, before the scheduler runs.
func AdvanceTime(w *ecs.World, dt float64) {
	t, ok := ecs.Single(w, component.TimeComponent.Kind())
	if !ok {
		return
	}
	if dt < 0 {
		dt = 0
	}
	t.Delta = dt
	t.Elapsed += dt
	t.Frame++
}

func frameDelta(w *ecs.World) float64 {
	t, ok := ecs.Single(w, component.TimeComponent.Kind())
	if !ok {
		return 0
	}
	return t.Delta
}
