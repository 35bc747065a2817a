package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spatialasset/common"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
)

// minRotateDelta skips frames too short to interpolate meaningfully.
const minRotateDelta = 1e-6

// RotateSystem turns every Rotate entity by the fraction of its target
// rotation that corresponds to the frame's elapsed seconds.
type RotateSystem struct{}

func NewRotateSystem() *RotateSystem {
	return &RotateSystem{}
}

func (r *RotateSystem) Update(w *ecs.World) {
	dt := frameDelta(w)
	if dt < minRotateDelta {
		return
	}
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.RotateComponent.Kind(), func(_ ecs.Entity, t *component.Transform, rot *component.Rotate) {
		RotateBy(t, rot.Target, dt)
	})
}

// RotateBy applies dt seconds of rotation toward target to t.
func RotateBy(t *component.Transform, target mgl64.Quat, dt float64) {
	if dt < minRotateDelta {
		return
	}
	t.Rotate(common.Slerp(mgl64.QuatIdent(), target, dt))
}
