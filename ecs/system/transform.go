package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
)

// TransformPropagateSystem writes GlobalTransform for every entity with a
// Transform, walking the hierarchy from the roots down.
type TransformPropagateSystem struct{}

func NewTransformPropagateSystem() *TransformPropagateSystem {
	return &TransformPropagateSystem{}
}

func (p *TransformPropagateSystem) Update(w *ecs.World) {
	for _, root := range ecs.Roots(w) {
		propagate(w, root, mgl64.Ident4())
	}
}

func propagate(w *ecs.World, e ecs.Entity, parent mgl64.Mat4) {
	world := parent
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		world = parent.Mul4(t.Matrix())
		if g, ok := ecs.Get(w, e, component.GlobalTransformComponent.Kind()); ok {
			g.Matrix = world
		} else if err := ecs.Add(w, e, component.GlobalTransformComponent.Kind(), &component.GlobalTransform{Matrix: world}); err != nil {
			panic("transform propagate: add global transform: " + err.Error())
		}
	}

	children, ok := ecs.Get(w, e, ecs.ChildrenComponent.Kind())
	if !ok {
		return
	}
	for _, child := range children.Entities {
		propagate(w, child, world)
	}
}
