package system

import (
	"io"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/common"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
	"github.com/milk9111/spatialasset/sound"
)

// PlayerFactory creates audio players; *audio.Context satisfies it.
type PlayerFactory interface {
	NewPlayer(src io.Reader) (*audio.Player, error)
}

// AudioSystem starts playback for AudioFile entities whose clip has loaded.
// Entities that already have AudioPlayback are left alone.
type AudioSystem struct {
	assets  asset.Store
	players PlayerFactory
}

func NewAudioSystem(assets asset.Store, players PlayerFactory) *AudioSystem {
	return &AudioSystem{assets: assets, players: players}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioFileComponent.Kind(), func(e ecs.Entity, file *component.AudioFile) {
		if ecs.Has(w, e, component.AudioPlaybackComponent.Kind()) {
			return
		}
		clip, ok := asset.Get(a.assets, file.Source)
		if !ok {
			return
		}

		playback, err := a.start(clip, file, ecs.Has(w, e, component.SpatialEmitterComponent.Kind()))
		if err != nil {
			common.LogError("audio: play %s: %v", file.Source.Path(), err)
			playback = &component.AudioPlayback{Failed: true}
		}
		if err := ecs.Add(w, e, component.AudioPlaybackComponent.Kind(), playback); err != nil {
			panic("audio system: add playback: " + err.Error())
		}
	})
}

func (a *AudioSystem) start(clip *sound.Clip, file *component.AudioFile, spatial bool) (*component.AudioPlayback, error) {
	stream, err := sound.NewLoopStream(clip, file.Settings.LoopRegion)
	if err != nil {
		return nil, err
	}
	pan := sound.NewPanStream(stream)
	player, err := a.players.NewPlayer(pan)
	if err != nil {
		return nil, err
	}

	gain := file.Settings.Volume
	if spatial {
		// The spatial system sets the real gain before the next buffer.
		gain = 0
	}
	player.SetVolume(gain)
	player.Play()
	return &component.AudioPlayback{Player: player, Pan: pan, Gain: gain}, nil
}
