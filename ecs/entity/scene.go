package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
	"github.com/milk9111/spatialasset/prefabs"
	"golang.org/x/image/colornames"
)

// NewFrameClock spawns the entity holding the frame Time.
func NewFrameClock(w *ecs.World) (ecs.Entity, error) {
	clock := ecs.CreateEntity(w)
	if err := ecs.Add(w, clock, component.TimeComponent.Kind(), &component.Time{}); err != nil {
		return 0, fmt.Errorf("frame clock: add time: %w", err)
	}
	return clock, nil
}

// NewGround spawns the ground plane.
func NewGround(w *ecs.World, spec prefabs.GroundSpec) (ecs.Entity, error) {
	size := spec.Size
	if size <= 0 {
		size = 100
	}

	ground := ecs.CreateEntity(w)
	transform := component.NewTransform(0, 0, 0)
	transform.Scale = mgl64.Vec3{size, size, size}
	if err := ecs.Add(w, ground, component.TransformComponent.Kind(), &transform); err != nil {
		return 0, fmt.Errorf("ground: add transform: %w", err)
	}
	if err := ecs.Add(w, ground, component.MeshComponent.Kind(), &component.Mesh{Shape: component.MeshPlane, Size: 0.5}); err != nil {
		return 0, fmt.Errorf("ground: add mesh: %w", err)
	}
	if err := ecs.Add(w, ground, component.MaterialComponent.Kind(), &component.Material{
		BaseColor: spec.Color.Or(colornames.Silver),
	}); err != nil {
		return 0, fmt.Errorf("ground: add material: %w", err)
	}
	return ground, nil
}

// NewSun spawns the directional light.
func NewSun(w *ecs.World, spec prefabs.SunSpec) (ecs.Entity, error) {
	lookAt := vec3(spec.LookAt)
	if lookAt == (mgl64.Vec3{}) {
		lookAt = mgl64.Vec3{0, -1, 0}
	}
	up := vec3(spec.Up)
	if up == (mgl64.Vec3{}) {
		up = mgl64.Vec3{0, 0, 1}
	}

	sun := ecs.CreateEntity(w)
	transform := component.NewTransform(0, 0, 0).LookingAt(lookAt, up)
	if err := ecs.Add(w, sun, component.TransformComponent.Kind(), &transform); err != nil {
		return 0, fmt.Errorf("sun: add transform: %w", err)
	}
	if err := ecs.Add(w, sun, component.DirectionalLightComponent.Kind(), &component.DirectionalLight{
		ShadowsEnabled: spec.Shadows,
		Illuminance:    spec.Illuminance,
	}); err != nil {
		return 0, fmt.Errorf("sun: add light: %w", err)
	}
	return sun, nil
}
