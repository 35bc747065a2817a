package system

import (
	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/common"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
	"github.com/milk9111/spatialasset/ecs/entity"
	"github.com/milk9111/spatialasset/prefabs"
)

// SpatialSphereSystem spawns the rotating emitter once the custom asset and
// its clip are loaded. It spawns at most once for its lifetime.
type SpatialSphereSystem struct {
	assets asset.Store
	spec   prefabs.SpatialSphereSpec
	setup  bool
	pivot  ecs.Entity
}

func NewSpatialSphereSystem(assets asset.Store, spec prefabs.SpatialSphereSpec) *SpatialSphereSystem {
	return &SpatialSphereSystem{assets: assets, spec: spec}
}

// Pivot returns the spawned root entity, if any.
func (s *SpatialSphereSystem) Pivot() (ecs.Entity, bool) {
	return s.pivot, s.setup && s.pivot.Valid()
}

func (s *SpatialSphereSystem) Update(w *ecs.World) {
	if s.setup {
		return
	}
	handle, ok := ecs.Single(w, component.CustomAssetHandleComponent.Kind())
	if !ok || !handle.IsLoaded {
		return
	}
	s.setup = true

	custom, ok := asset.Get(s.assets, handle.Handle)
	if !ok || custom == nil {
		common.LogError("spatial sphere: custom asset %s no longer available", handle.Handle.Path())
		return
	}

	pivot, err := entity.NewSpatialSphere(w, s.spec, custom.Handle)
	if err != nil {
		common.LogError("spatial sphere: %v", err)
		return
	}
	s.pivot = pivot
	common.LogInfo("spatial sphere spawned, playing %s", custom.Handle.Path())
}
