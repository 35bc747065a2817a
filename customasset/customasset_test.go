package customasset

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/fstest"
	"testing/iotest"
	"time"

	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/sound"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		want    string
		wantErr error
	}{
		{name: "plain", in: []byte("drums.ogg"), want: "drums.ogg"},
		{name: "surrounding_whitespace", in: []byte("  drums.ogg\n"), want: "drums.ogg"},
		{name: "crlf", in: []byte("sfx/drums.ogg\r\n"), want: "sfx/drums.ogg"},
		{name: "inner_space_kept", in: []byte("my drums.ogg"), want: "my drums.ogg"},
		{name: "non_ascii", in: []byte("ドラム.ogg"), want: "ドラム.ogg"},
		{name: "empty", in: nil, wantErr: ErrEmptyPath},
		{name: "only_whitespace", in: []byte(" \t\n"), wantErr: ErrEmptyPath},
		{name: "invalid_utf8", in: []byte{0xff, 0xfe, 'a'}, wantErr: ErrInvalidEncoding},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Parse: %v", err)
				}
				if got != tc.want {
					t.Fatalf("Parse = %q, want %q", got, tc.want)
				}
				return
			}

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, want %v", err, tc.wantErr)
			}
			var le *LoaderError
			if !errors.As(err, &le) || le.Kind != ErrorKindFormat {
				t.Fatalf("expected a format LoaderError, got %#v", err)
			}
		})
	}
}

func TestLoaderReadFailure(t *testing.T) {
	readErr := errors.New("disk on fire")
	_, err := Loader{}.Load(context.Background(), iotest.ErrReader(readErr), nil)

	var le *LoaderError
	if !errors.As(err, &le) {
		t.Fatalf("expected a LoaderError, got %v", err)
	}
	if le.Kind != ErrorKindIO {
		t.Fatalf("kind = %s, want io", le.Kind)
	}
	if !errors.Is(err, readErr) {
		t.Fatalf("expected the read error to be wrapped, got %v", err)
	}
	if !strings.Contains(err.Error(), "could not load custom asset") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestLoaderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Loader{}.Load(ctx, strings.NewReader("drums.wav"), nil)

	var le *LoaderError
	if !errors.As(err, &le) {
		t.Fatalf("expected a LoaderError, got %v", err)
	}
	if le.Kind != ErrorKindIO {
		t.Fatalf("kind = %s, want io", le.Kind)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled to be wrapped, got %v", err)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{ErrorKindIO, "io"},
		{ErrorKindFormat, "format"},
		{ErrorKind(0), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Fatalf("ErrorKind(%d).String() = %q, want %q", int(tc.kind), got, tc.want)
		}
	}
}

// clipLoader stands in for the real decoder. It waits on gate so tests can
// observe the custom asset finishing before its clip.
type clipLoader struct {
	gate chan struct{}
}

func (clipLoader) Extensions() []string { return []string{"ogg"} }

func (l clipLoader) Load(ctx context.Context, r io.Reader, _ *asset.LoadContext) (any, error) {
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	select {
	case <-l.gate:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &sound.Clip{SampleRate: sound.SampleRate, PCM: make([]byte, 4*sound.SampleRate)}, nil
}

func waitSettled(t *testing.T, s *asset.Server, id asset.ID) asset.LoadState {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if state := s.LoadState(id); state != asset.LoadStateLoading {
			return state
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("asset %s still loading after deadline", id)
	return asset.LoadStateLoading
}

func TestLoaderThroughServer(t *testing.T) {
	gate := make(chan struct{})
	s := asset.NewServer(fstest.MapFS{
		"drums.custom": {Data: []byte("  drums.ogg\n")},
		"drums.ogg":    {Data: []byte("pcm")},
		"bad.custom":   {Data: []byte{0xc3, 0x28}},
		"blank.custom": {Data: []byte("\n\n")},
	}, asset.Options{})
	defer s.Close()
	s.RegisterLoader(Loader{})
	s.RegisterLoader(clipLoader{gate: gate})

	t.Run("resolves_without_waiting_for_clip", func(t *testing.T) {
		h := asset.Load[*CustomAsset](s, "drums.custom")
		if got := waitSettled(t, s, h.ID()); got != asset.LoadStateLoaded {
			t.Fatalf("custom asset state = %s, want loaded (err %v)", got, s.Err(h.ID()))
		}
		custom, ok := asset.Get(s, h)
		if !ok {
			t.Fatalf("expected the custom asset value")
		}
		if got := custom.Handle.Path(); got != "drums.ogg" {
			t.Fatalf("clip path = %q, want drums.ogg", got)
		}
		if got := s.LoadState(custom.Handle.ID()); got != asset.LoadStateLoading {
			t.Fatalf("clip state = %s, want loading while its loader is held", got)
		}
		if deps := s.Dependencies(h.ID()); len(deps) != 1 || deps[0] != custom.Handle.ID() {
			t.Fatalf("dependencies = %v, want [%s]", deps, custom.Handle.ID())
		}

		close(gate)
		if got := waitSettled(t, s, custom.Handle.ID()); got != asset.LoadStateLoaded {
			t.Fatalf("clip state = %s, want loaded", got)
		}
		clip, ok := asset.Get(s, custom.Handle)
		if !ok || clip.Seconds() != 1 {
			t.Fatalf("expected a one second clip, got %v", clip)
		}
	})

	t.Run("invalid_utf8_fails", func(t *testing.T) {
		h := asset.Load[*CustomAsset](s, "bad.custom")
		if got := waitSettled(t, s, h.ID()); got != asset.LoadStateFailed {
			t.Fatalf("state = %s, want failed", got)
		}
		if err := s.Err(h.ID()); !errors.Is(err, ErrInvalidEncoding) {
			t.Fatalf("error = %v, want ErrInvalidEncoding", err)
		}
	})

	t.Run("blank_fails", func(t *testing.T) {
		h := asset.Load[*CustomAsset](s, "blank.custom")
		if got := waitSettled(t, s, h.ID()); got != asset.LoadStateFailed {
			t.Fatalf("state = %s, want failed", got)
		}
		if err := s.Err(h.ID()); !errors.Is(err, ErrEmptyPath) {
			t.Fatalf("error = %v, want ErrEmptyPath", err)
		}
	})
}
