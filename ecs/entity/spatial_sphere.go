package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
	"github.com/milk9111/spatialasset/prefabs"
	"github.com/milk9111/spatialasset/sound"
	"golang.org/x/image/colornames"
)

// NewSpatialSphere spawns a rotating pivot with one child: a small glowing
// sphere that plays clip as a positional emitter. It returns the pivot.
func NewSpatialSphere(w *ecs.World, spec prefabs.SpatialSphereSpec, clip asset.Handle[*sound.Clip]) (ecs.Entity, error) {
	pivot := ecs.CreateEntity(w)
	pivotTransform := component.NewTransform(spec.Position[0], spec.Position[1], spec.Position[2])
	if err := ecs.Add(w, pivot, component.TransformComponent.Kind(), &pivotTransform); err != nil {
		return 0, fmt.Errorf("spatial sphere: add pivot transform: %w", err)
	}
	if err := ecs.Add(w, pivot, component.RotateComponent.Kind(), &component.Rotate{
		Target: mgl64.QuatRotate(spec.RotationY, mgl64.Vec3{0, 1, 0}),
	}); err != nil {
		return 0, fmt.Errorf("spatial sphere: add rotate: %w", err)
	}

	emitter := ecs.CreateEntity(w)
	if err := ecs.SetParent(w, emitter, pivot); err != nil {
		return 0, fmt.Errorf("spatial sphere: parent emitter: %w", err)
	}

	offset := spec.Marker.Offset
	emitterTransform := component.NewTransform(offset[0], offset[1], offset[2])
	if err := ecs.Add(w, emitter, component.TransformComponent.Kind(), &emitterTransform); err != nil {
		return 0, fmt.Errorf("spatial sphere: add emitter transform: %w", err)
	}
	if err := ecs.Add(w, emitter, component.SpatialEmitterComponent.Kind(), &component.SpatialEmitter{
		MinDistance: spec.Emitter.MinDistance,
		MaxDistance: spec.Emitter.MaxDistance,
	}); err != nil {
		return 0, fmt.Errorf("spatial sphere: add emitter: %w", err)
	}

	volume := spec.Volume
	if volume <= 0 {
		volume = 1
	}
	settings := component.AudioFileSettings{Volume: volume}
	if r := spec.LoopRegion; r != nil {
		settings.LoopRegion = &sound.Region{Start: r.Start, End: r.End}
	}
	if err := ecs.Add(w, emitter, component.AudioFileComponent.Kind(), &component.AudioFile{
		Source:   clip,
		Settings: settings,
	}); err != nil {
		return 0, fmt.Errorf("spatial sphere: add audio file: %w", err)
	}

	radius := spec.Marker.Radius
	if radius <= 0 {
		radius = 0.1
	}
	if err := ecs.Add(w, emitter, component.MeshComponent.Kind(), &component.Mesh{Shape: component.MeshSphere, Radius: radius}); err != nil {
		return 0, fmt.Errorf("spatial sphere: add mesh: %w", err)
	}
	if err := ecs.Add(w, emitter, component.MaterialComponent.Kind(), &component.Material{
		BaseColor: spec.Marker.BaseColor.Or(colornames.White),
		Emissive:  spec.Marker.Emissive.Or(colornames.Lime),
	}); err != nil {
		return 0, fmt.Errorf("spatial sphere: add material: %w", err)
	}

	return pivot, nil
}
