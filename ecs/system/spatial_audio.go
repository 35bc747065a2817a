package system

import (
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
	"github.com/milk9111/spatialasset/sound"
)

// SpatialAudioSystem sets each emitter's gain and balance from its position
// relative to the audio listener.
type SpatialAudioSystem struct{}

func NewSpatialAudioSystem() *SpatialAudioSystem {
	return &SpatialAudioSystem{}
}

func (s *SpatialAudioSystem) Update(w *ecs.World) {
	listener, ok := ecs.First(w, component.AudioListenerComponent.Kind())
	if !ok {
		return
	}
	lt, ok := ecs.Get(w, listener, component.GlobalTransformComponent.Kind())
	if !ok {
		return
	}
	listenerPos := lt.Translation()
	listenerRot := lt.Rotation()

	ecs.ForEach4(w,
		component.SpatialEmitterComponent.Kind(),
		component.GlobalTransformComponent.Kind(),
		component.AudioFileComponent.Kind(),
		component.AudioPlaybackComponent.Kind(),
		func(_ ecs.Entity, emitter *component.SpatialEmitter, gt *component.GlobalTransform, file *component.AudioFile, playback *component.AudioPlayback) {
			if playback.Failed {
				return
			}
			pos := gt.Translation()
			gain := sound.Attenuation(pos.Sub(listenerPos).Len(), emitter.MinDistance, emitter.MaxDistance) * file.Settings.Volume
			playback.Gain = gain
			if playback.Player != nil {
				playback.Player.SetVolume(gain)
			}
			if playback.Pan != nil {
				playback.Pan.SetPan(sound.Pan(listenerPos, listenerRot, pos))
			}
		})
}
