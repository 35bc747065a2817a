package component

import "image/color"

type MeshShape int

const (
	MeshSphere MeshShape = iota
	MeshPlane
)

// Mesh is the visual shape of an entity, sized in local units before scale.
type Mesh struct {
	Shape  MeshShape
	Radius float64 // sphere
	Size   float64 // plane half-extent
}

var MeshComponent = NewComponent[Mesh]()

// Material colours a mesh. Emissive light is added on top of lit base colour.
type Material struct {
	BaseColor color.Color
	Emissive  color.Color
}

var MaterialComponent = NewComponent[Material]()
