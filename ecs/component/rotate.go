package component

import "github.com/go-gl/mathgl/mgl64"

// Rotate spins an entity toward Target once per second of frame time.
type Rotate struct {
	Target mgl64.Quat
}

var RotateComponent = NewComponent[Rotate]()
