package system

import (
	"testing"

	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/customasset"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
	"github.com/milk9111/spatialasset/ecs/entity"
	"github.com/milk9111/spatialasset/sound"
)

// fakeStore is an asset.Store whose states the test sets directly.
type fakeStore struct {
	states map[asset.ID]asset.LoadState
	values map[asset.ID]any
}

func newFakeStore() *fakeStore {
	return &fakeStore{states: map[asset.ID]asset.LoadState{}, values: map[asset.ID]any{}}
}

func (s *fakeStore) LoadState(id asset.ID) asset.LoadState {
	return s.states[id]
}

func (s *fakeStore) Value(id asset.ID) (any, bool) {
	if s.states[id] != asset.LoadStateLoaded {
		return nil, false
	}
	v, ok := s.values[id]
	return v, ok
}

var (
	customHandle = asset.NewHandle[*customasset.CustomAsset](1, "drums.custom")
	clipHandle   = asset.NewHandle[*sound.Clip](2, "drums.wav")
)

// set records the states of the custom asset and its clip. The custom value
// is always present so only the states decide what the systems see.
func (s *fakeStore) set(custom, clip asset.LoadState) {
	s.states[customHandle.ID()] = custom
	s.states[clipHandle.ID()] = clip
	s.values[customHandle.ID()] = &customasset.CustomAsset{Handle: clipHandle}
	s.values[clipHandle.ID()] = &sound.Clip{SampleRate: sound.SampleRate, PCM: make([]byte, 8*sound.SampleRate*4)}
}

// newDemoWorld returns a world with a frame clock and the custom asset
// handle entity, as the startup stage leaves it.
func newDemoWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	if _, err := entity.NewFrameClock(w); err != nil {
		t.Fatal(err)
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CustomAssetHandleComponent.Kind(), &component.CustomAssetHandle{Handle: customHandle}); err != nil {
		t.Fatal(err)
	}
	return w
}

func isLoaded(t *testing.T, w *ecs.World) bool {
	t.Helper()
	h, ok := ecs.Single(w, component.CustomAssetHandleComponent.Kind())
	if !ok {
		t.Fatalf("custom asset handle entity missing")
	}
	return h.IsLoaded
}
