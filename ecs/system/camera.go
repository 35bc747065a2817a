package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
)

const maxPitch = 89 * math.Pi / 180

// FpsInput is one frame of fly-camera input. Move axes are in [-1, 1]; look
// deltas are in pixels (mouse) or turn units (keys).
type FpsInput struct {
	Forward float64
	Right   float64
	Up      float64
	LookX   float64
	LookY   float64
	TurnX   float64
	TurnY   float64
}

// CameraSystem drives every FpsCam entity from keyboard and mouse.
type CameraSystem struct {
	read func(cam *component.FpsCam) FpsInput
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{read: readFpsInput}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	dt := frameDelta(w)
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.FpsCamComponent.Kind(), func(_ ecs.Entity, t *component.Transform, cam *component.FpsCam) {
		ApplyFpsCam(t, cam, cs.read(cam), dt)
	})
}

func readFpsInput(cam *component.FpsCam) FpsInput {
	var in FpsInput
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		in.Forward++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		in.Forward--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Right++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Right--
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		in.Up++
	}
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		in.Up--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.TurnX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.TurnX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.TurnY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.TurnY++
	}

	looking := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	x, y := ebiten.CursorPosition()
	dx, dy := cam.CursorDelta(x, y, looking)
	in.LookX = float64(dx)
	in.LookY = float64(dy)
	return in
}

// ApplyFpsCam turns and moves t according to in over dt seconds. Movement is
// relative to the camera's heading and ignores pitch.
func ApplyFpsCam(t *component.Transform, cam *component.FpsCam, in FpsInput, dt float64) {
	if !cam.Initialized() {
		forward := t.Forward()
		cam.Seed(math.Atan2(-forward.X(), -forward.Z()), math.Asin(mgl64.Clamp(forward.Y(), -1, 1)))
	}

	cam.Yaw -= in.LookX*cam.Sensitivity + in.TurnX*cam.TurnSpeed*dt
	cam.Pitch -= in.LookY*cam.Sensitivity + in.TurnY*cam.TurnSpeed*dt
	cam.Pitch = mgl64.Clamp(cam.Pitch, -maxPitch, maxPitch)

	yaw := mgl64.QuatRotate(cam.Yaw, mgl64.Vec3{0, 1, 0})
	t.Rotation = yaw.Mul(mgl64.QuatRotate(cam.Pitch, mgl64.Vec3{1, 0, 0})).Normalize()

	forward := yaw.Rotate(mgl64.Vec3{0, 0, -1})
	right := yaw.Rotate(mgl64.Vec3{1, 0, 0})
	move := forward.Mul(in.Forward).Add(right.Mul(in.Right)).Add(mgl64.Vec3{0, in.Up, 0})
	if move.Len() > 1 {
		move = move.Normalize()
	}
	t.Translation = t.Translation.Add(move.Mul(cam.Speed * dt))
}
