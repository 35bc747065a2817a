package system

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
	"github.com/milk9111/spatialasset/sound"
)

// failingPlayers counts player requests and refuses all of them, since tests
// have no audio device.
type failingPlayers struct {
	calls int
}

func (f *failingPlayers) NewPlayer(io.Reader) (*audio.Player, error) {
	f.calls++
	return nil, errors.New("no audio device")
}

func addAudioFile(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.AudioFileComponent.Kind(), &component.AudioFile{
		Source: clipHandle,
		Settings: component.AudioFileSettings{
			Volume:     1,
			LoopRegion: &sound.Region{Start: 3.6, End: 6.0},
		},
	}); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestAudioSystem(t *testing.T) {
	t.Run("waits_for_clip", func(t *testing.T) {
		w := ecs.NewWorld()
		e := addAudioFile(t, w)
		store := newFakeStore()
		store.set(asset.LoadStateLoaded, asset.LoadStateLoading)
		players := &failingPlayers{}

		NewAudioSystem(store, players).Update(w)
		if ecs.Has(w, e, component.AudioPlaybackComponent.Kind()) {
			t.Fatalf("playback should not start before the clip loads")
		}
		if players.calls != 0 {
			t.Fatalf("expected no player requests, got %d", players.calls)
		}
	})

	t.Run("failure_is_recorded_once", func(t *testing.T) {
		w := ecs.NewWorld()
		e := addAudioFile(t, w)
		store := newFakeStore()
		store.set(asset.LoadStateLoaded, asset.LoadStateLoaded)
		players := &failingPlayers{}
		sys := NewAudioSystem(store, players)

		for i := 0; i < 3; i++ {
			sys.Update(w)
		}
		pb, ok := ecs.Get(w, e, component.AudioPlaybackComponent.Kind())
		if !ok || !pb.Failed {
			t.Fatalf("expected a failed playback, got %+v", pb)
		}
		if players.calls != 1 {
			t.Fatalf("expected one player request, got %d", players.calls)
		}
	})
}

func TestSpatialAudioSystem(t *testing.T) {
	w := ecs.NewWorld()

	listener := ecs.CreateEntity(w)
	if err := ecs.Add(w, listener, component.AudioListenerComponent.Kind(), &component.AudioListener{}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, listener, component.GlobalTransformComponent.Kind(), &component.GlobalTransform{Matrix: mgl64.Ident4()}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		pos      mgl64.Vec3
		volume   float64
		failed   bool
		wantGain float64
		wantPan  float64
	}{
		{name: "near_right", pos: mgl64.Vec3{2, 0, 0}, volume: 1, wantGain: 1, wantPan: 1},
		{name: "mid_left", pos: mgl64.Vec3{-5, 0, 0}, volume: 1, wantGain: 0.5, wantPan: -1},
		{name: "mid_ahead_half_volume", pos: mgl64.Vec3{0, 0, -5}, volume: 0.5, wantGain: 0.25, wantPan: 0},
		{name: "out_of_range", pos: mgl64.Vec3{0, 0, 9}, volume: 1, wantGain: 0, wantPan: 0},
		{name: "failed_untouched", pos: mgl64.Vec3{1, 0, 0}, volume: 1, failed: true, wantGain: -1, wantPan: 0},
	}

	emitters := make([]*component.AudioPlayback, len(tests))
	for i, tc := range tests {
		e := ecs.CreateEntity(w)
		pb := &component.AudioPlayback{Gain: -1, Failed: tc.failed, Pan: sound.NewPanStream(bytes.NewReader(nil))}
		emitters[i] = pb
		for _, err := range []error{
			ecs.Add(w, e, component.SpatialEmitterComponent.Kind(), &component.SpatialEmitter{MinDistance: 3, MaxDistance: 7}),
			ecs.Add(w, e, component.GlobalTransformComponent.Kind(), &component.GlobalTransform{Matrix: mgl64.Translate3D(tc.pos.X(), tc.pos.Y(), tc.pos.Z())}),
			ecs.Add(w, e, component.AudioFileComponent.Kind(), &component.AudioFile{Source: clipHandle, Settings: component.AudioFileSettings{Volume: tc.volume}}),
			ecs.Add(w, e, component.AudioPlaybackComponent.Kind(), pb),
		} {
			if err != nil {
				t.Fatal(err)
			}
		}
	}

	NewSpatialAudioSystem().Update(w)

	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pb := emitters[i]
			if math.Abs(pb.Gain-tc.wantGain) > 1e-9 {
				t.Fatalf("gain = %g, want %g", pb.Gain, tc.wantGain)
			}
			if math.Abs(pb.Pan.Pan()-tc.wantPan) > 1e-9 {
				t.Fatalf("pan = %g, want %g", pb.Pan.Pan(), tc.wantPan)
			}
		})
	}
}
