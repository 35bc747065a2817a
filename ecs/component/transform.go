package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is an entity's placement relative to its parent, or to the world
// for root entities.
type Transform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
	Scale       mgl64.Vec3
}

var TransformComponent = NewComponent[Transform]()

// NewTransform returns an identity-rotation, unit-scale transform at x, y, z.
func NewTransform(x, y, z float64) Transform {
	return Transform{
		Translation: mgl64.Vec3{x, y, z},
		Rotation:    mgl64.QuatIdent(),
		Scale:       mgl64.Vec3{1, 1, 1},
	}
}

// LookingAt returns t rotated so that its forward axis (-Z) points at target
// and its up axis lies in the plane of up.
func (t Transform) LookingAt(target, up mgl64.Vec3) Transform {
	back := t.Translation.Sub(target)
	if back.Len() < 1e-9 {
		return t
	}
	back = back.Normalize()
	right := up.Cross(back)
	if right.Len() < 1e-9 {
		return t
	}
	right = right.Normalize()
	trueUp := back.Cross(right)

	t.Rotation = mgl64.Mat4ToQuat(mgl64.Mat3FromCols(right, trueUp, back).Mat4()).Normalize()
	return t
}

// Rotate applies q on top of the current rotation.
func (t *Transform) Rotate(q mgl64.Quat) {
	t.Rotation = q.Mul(t.Rotation).Normalize()
}

// Forward is the world direction of the local -Z axis.
func (t Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 0, -1})
}

// Right is the world direction of the local +X axis.
func (t Transform) Right() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
}

// Matrix composes translation, rotation and scale.
func (t Transform) Matrix() mgl64.Mat4 {
	scale := t.Scale
	if scale == (mgl64.Vec3{}) {
		scale = mgl64.Vec3{1, 1, 1}
	}
	return mgl64.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// GlobalTransform is the world-space matrix computed from the hierarchy each
// frame. It is written by the transform propagation system only.
type GlobalTransform struct {
	Matrix mgl64.Mat4
}

var GlobalTransformComponent = NewComponent[GlobalTransform]()

// Translation returns the world-space position.
func (g GlobalTransform) Translation() mgl64.Vec3 {
	return g.Matrix.Col(3).Vec3()
}

// Rotation extracts the world-space rotation, ignoring scale.
func (g GlobalTransform) Rotation() mgl64.Quat {
	right := g.Matrix.Col(0).Vec3().Normalize()
	up := g.Matrix.Col(1).Vec3().Normalize()
	back := g.Matrix.Col(2).Vec3().Normalize()
	return mgl64.Mat4ToQuat(mgl64.Mat3FromCols(right, up, back).Mat4()).Normalize()
}
