package component

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/sound"
)

// AudioListener marks the entity whose position and facing the spatial mix
// is heard from. The first one found is used.
type AudioListener struct{}

var AudioListenerComponent = NewComponent[AudioListener]()

// SpatialEmitter makes an entity's audio positional. Gain falls off linearly
// from MinDistance to MaxDistance.
type SpatialEmitter struct {
	MinDistance float64
	MaxDistance float64
}

var SpatialEmitterComponent = NewComponent[SpatialEmitter]()

type AudioFileSettings struct {
	Volume float64
	// LoopRegion, when set, repeats that span after playing up to its end.
	LoopRegion *sound.Region
}

// AudioFile requests playback of a clip once it has loaded.
type AudioFile struct {
	Source   asset.Handle[*sound.Clip]
	Settings AudioFileSettings
}

var AudioFileComponent = NewComponent[AudioFile]()

// AudioPlayback is the runtime state the audio system attaches to an
// AudioFile entity when playback starts.
type AudioPlayback struct {
	Player *audio.Player
	Pan    *sound.PanStream
	Gain   float64
	Failed bool
}

var AudioPlaybackComponent = NewComponent[AudioPlayback]()
