package component

// Camera renders the world from its entity's global transform.
type Camera struct {
	FovY float64 // radians
	Near float64
	Far  float64
}

var CameraComponent = NewComponent[Camera]()

// FpsCam is a first-person fly camera controller.
type FpsCam struct {
	Speed       float64 // units per second
	Sensitivity float64 // radians per pixel of mouse movement
	TurnSpeed   float64 // radians per second for keyboard turning
	Yaw         float64
	Pitch       float64

	initialized bool
	lastCursorX int
	lastCursorY int
	looking     bool
}

var FpsCamComponent = NewComponent[FpsCam]()

// DefaultFpsCam returns the controller tuning used by the demo.
func DefaultFpsCam() FpsCam {
	return FpsCam{
		Speed:       4,
		Sensitivity: 0.003,
		TurnSpeed:   1.5,
	}
}

// Initialized reports whether yaw and pitch were seeded from the transform.
func (c *FpsCam) Initialized() bool {
	return c.initialized
}

// Seed sets the starting orientation.
func (c *FpsCam) Seed(yaw, pitch float64) {
	c.Yaw = yaw
	c.Pitch = pitch
	c.initialized = true
}

// CursorDelta records the cursor position and returns its movement since the
// previous call while looking. The first call after looking starts returns 0.
func (c *FpsCam) CursorDelta(x, y int, looking bool) (dx, dy int) {
	if looking && c.looking {
		dx, dy = x-c.lastCursorX, y-c.lastCursorY
	}
	c.lastCursorX, c.lastCursorY = x, y
	c.looking = looking
	return dx, dy
}
