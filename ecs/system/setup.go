package system

import (
	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/entity"
	"github.com/milk9111/spatialasset/prefabs"
)

// CustomAssetSetupSystem requests the custom asset at startup.
type CustomAssetSetupSystem struct {
	server *asset.Server
	path   string
}

func NewCustomAssetSetupSystem(server *asset.Server, path string) *CustomAssetSetupSystem {
	return &CustomAssetSetupSystem{server: server, path: path}
}

func (s *CustomAssetSetupSystem) Update(w *ecs.World) {
	if _, err := entity.NewCustomAssetHandle(w, s.server, s.path); err != nil {
		panic("custom asset setup: " + err.Error())
	}
}

// SceneBasicsSystem spawns the ground, sun and camera at startup.
type SceneBasicsSystem struct {
	spec *prefabs.SceneSpec
}

func NewSceneBasicsSystem(spec *prefabs.SceneSpec) *SceneBasicsSystem {
	return &SceneBasicsSystem{spec: spec}
}

func (s *SceneBasicsSystem) Update(w *ecs.World) {
	if _, err := entity.NewGround(w, s.spec.Ground); err != nil {
		panic("scene basics: " + err.Error())
	}
	if _, err := entity.NewSun(w, s.spec.Sun); err != nil {
		panic("scene basics: " + err.Error())
	}
	if _, err := entity.NewCamera(w, s.spec.Camera); err != nil {
		panic("scene basics: " + err.Error())
	}
}
