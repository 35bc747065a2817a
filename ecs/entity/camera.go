package entity

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
	"github.com/milk9111/spatialasset/prefabs"
)

// NewCamera spawns the perspective camera. It is also the audio listener and
// carries the fly controller.
func NewCamera(w *ecs.World, spec prefabs.CameraSpec) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)

	transform := component.NewTransform(spec.Position[0], spec.Position[1], spec.Position[2]).
		LookingAt(vec3(spec.LookAt), mgl64.Vec3{0, 1, 0})
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &transform); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	fov := spec.FovDegrees
	if fov <= 0 {
		fov = 45
	}
	near := spec.Near
	if near <= 0 {
		near = 0.1
	}
	far := spec.Far
	if far <= near {
		far = 1000
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		FovY: mgl64.DegToRad(fov),
		Near: near,
		Far:  far,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	if err := ecs.Add(w, camera, component.AudioListenerComponent.Kind(), &component.AudioListener{}); err != nil {
		return 0, fmt.Errorf("camera: add audio listener: %w", err)
	}

	fps := component.DefaultFpsCam()
	if spec.Speed > 0 {
		fps.Speed = spec.Speed
	}
	if spec.Sensitivity > 0 {
		fps.Sensitivity = spec.Sensitivity
	}
	if spec.TurnSpeed > 0 {
		fps.TurnSpeed = spec.TurnSpeed
	}
	forward := transform.Forward()
	fps.Seed(math.Atan2(-forward.X(), -forward.Z()), math.Asin(mgl64.Clamp(forward.Y(), -1, 1)))
	if err := ecs.Add(w, camera, component.FpsCamComponent.Kind(), &fps); err != nil {
		return 0, fmt.Errorf("camera: add fps controller: %w", err)
	}

	return camera, nil
}

func vec3(v prefabs.Vec3Spec) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}
