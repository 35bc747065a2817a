package entity

import (
	"fmt"

	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/customasset"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
)

// NewCustomAssetHandle requests path from server and stores the handle on a
// dedicated entity for the load check to poll.
func NewCustomAssetHandle(w *ecs.World, server *asset.Server, path string) (ecs.Entity, error) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.CustomAssetHandleComponent.Kind(), &component.CustomAssetHandle{
		Handle: asset.Load[*customasset.CustomAsset](server, path),
	}); err != nil {
		return 0, fmt.Errorf("custom asset handle: %w", err)
	}
	return ent, nil
}
