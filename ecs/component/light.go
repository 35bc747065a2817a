package component

// DirectionalLight lights the scene along its transform's forward axis.
type DirectionalLight struct {
	ShadowsEnabled bool
	Illuminance    float64
}

var DirectionalLightComponent = NewComponent[DirectionalLight]()
