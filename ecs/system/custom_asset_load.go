package system

import (
	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/common"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
)

// CustomAssetLoadCheckSystem sets CustomAssetHandle.IsLoaded once the custom
// asset and the clip it names have both loaded. Until then it checks again
// every cycle; there is no timeout.
type CustomAssetLoadCheckSystem struct {
	assets         asset.Store
	reportedCustom bool
}

func NewCustomAssetLoadCheckSystem(assets asset.Store) *CustomAssetLoadCheckSystem {
	return &CustomAssetLoadCheckSystem{assets: assets}
}

func (s *CustomAssetLoadCheckSystem) Update(w *ecs.World) {
	handle, ok := ecs.Single(w, component.CustomAssetHandleComponent.Kind())
	if !ok || handle.IsLoaded {
		return
	}

	if s.assets.LoadState(handle.Handle.ID()) != asset.LoadStateLoaded {
		return
	}
	custom, ok := asset.Get(s.assets, handle.Handle)
	if !ok || custom == nil {
		return
	}
	if !s.reportedCustom {
		s.reportedCustom = true
		common.LogInfo("Custom asset loaded")
	}

	if s.assets.LoadState(custom.Handle.ID()) == asset.LoadStateLoaded {
		common.LogInfo("Audio file loaded")
		handle.IsLoaded = true
	}
}
