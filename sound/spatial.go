package sound

import "github.com/go-gl/mathgl/mgl64"

// Attenuation returns the linear gain of an emitter at distance from the
// listener: full volume within min, silent beyond max, linear in between.
func Attenuation(distance, min, max float64) float64 {
	if distance <= min {
		return 1
	}
	if distance >= max || max <= min {
		return 0
	}
	return 1 - (distance-min)/(max-min)
}

// Pan returns the left/right balance of an emitter heard by a listener at
// listenerPos facing listenerRot: the emitter direction projected on the
// listener's right axis.
func Pan(listenerPos mgl64.Vec3, listenerRot mgl64.Quat, emitterPos mgl64.Vec3) float64 {
	dir := emitterPos.Sub(listenerPos)
	if dir.Len() < 1e-9 {
		return 0
	}
	right := listenerRot.Rotate(mgl64.Vec3{1, 0, 0})
	return right.Dot(dir.Normalize())
}
