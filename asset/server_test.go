package asset

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

type textLoader struct{}

func (textLoader) Extensions() []string { return []string{"txt"} }

func (textLoader) Load(_ context.Context, r io.Reader, _ *LoadContext) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// listLoader requests every line of a .list file as a .txt dependency.
type listLoader struct{}

func (listLoader) Extensions() []string { return []string{".LIST"} }

func (listLoader) Load(_ context.Context, r io.Reader, lc *LoadContext) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var handles []Handle[string]
	for _, line := range strings.Fields(string(b)) {
		handles = append(handles, LoadDependency[string](lc, line))
	}
	return handles, nil
}

type failLoader struct{ err error }

func (failLoader) Extensions() []string { return []string{"bad"} }

func (l failLoader) Load(context.Context, io.Reader, *LoadContext) (any, error) {
	return nil, l.err
}

type nilLoader struct{}

func (nilLoader) Extensions() []string { return []string{"nil"} }

func (nilLoader) Load(context.Context, io.Reader, *LoadContext) (any, error) {
	return nil, nil
}

type gateLoader struct{ gate chan struct{} }

func (gateLoader) Extensions() []string { return []string{"slow"} }

func (l gateLoader) Load(ctx context.Context, _ io.Reader, _ *LoadContext) (any, error) {
	select {
	case <-l.gate:
		return "done", nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

var errBroken = errors.New("broken")

func newTestServer(t *testing.T, fsys fs.FS) *Server {
	t.Helper()
	s := NewServer(fsys, Options{})
	s.RegisterLoader(textLoader{})
	s.RegisterLoader(listLoader{})
	s.RegisterLoader(failLoader{err: errBroken})
	s.RegisterLoader(nilLoader{})
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// waitSettled polls until id leaves the Loading state.
func waitSettled(t *testing.T, s *Server, id ID) LoadState {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if state := s.LoadState(id); state != LoadStateLoading {
			return state
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("asset %s still loading after deadline", id)
	return LoadStateLoading
}

func TestServerLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"hello.txt":     {Data: []byte("hello")},
		"broken.bad":    {Data: []byte("x")},
		"empty.nil":     {Data: []byte("x")},
		"unknown.xyz":   {Data: []byte("x")},
		"sub/inner.txt": {Data: []byte("inner")},
	}

	tests := []struct {
		name      string
		path      string
		wantState LoadState
		wantValue string
		wantErr   error
	}{
		{name: "loaded", path: "hello.txt", wantState: LoadStateLoaded, wantValue: "hello"},
		{name: "nested", path: "sub/inner.txt", wantState: LoadStateLoaded, wantValue: "inner"},
		{name: "assets_prefix", path: "assets/sub/inner.txt", wantState: LoadStateLoaded, wantValue: "inner"},
		{name: "missing_file", path: "nope.txt", wantState: LoadStateFailed, wantErr: fs.ErrNotExist},
		{name: "no_loader", path: "unknown.xyz", wantState: LoadStateFailed, wantErr: ErrNoLoader},
		{name: "loader_error", path: "broken.bad", wantState: LoadStateFailed, wantErr: errBroken},
		{name: "nil_value", path: "empty.nil", wantState: LoadStateFailed},
		{name: "escapes_root", path: "../hello.txt", wantState: LoadStateFailed, wantErr: ErrInvalidPath},
		{name: "empty_path", path: "   ", wantState: LoadStateFailed, wantErr: ErrInvalidPath},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, fsys)
			h := Load[string](s, tc.path)
			if !h.Valid() {
				t.Fatalf("expected a valid handle for %q", tc.path)
			}

			if got := waitSettled(t, s, h.ID()); got != tc.wantState {
				t.Fatalf("state = %s, want %s (err %v)", got, tc.wantState, s.Err(h.ID()))
			}

			v, ok := Get(s, h)
			if tc.wantState == LoadStateLoaded {
				if !ok || v != tc.wantValue {
					t.Fatalf("Get = %q, %v; want %q", v, ok, tc.wantValue)
				}
				return
			}
			if ok {
				t.Fatalf("expected no value for failed load, got %q", v)
			}
			if err := s.Err(h.ID()); err == nil {
				t.Fatalf("expected an error for failed load")
			} else if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestServerDeduplicatesPaths(t *testing.T) {
	s := newTestServer(t, fstest.MapFS{"a.txt": {Data: []byte("a")}})

	first := Load[string](s, "a.txt")
	for _, p := range []string{"a.txt", "./a.txt", "assets/a.txt", " a.txt\n", "/a.txt"} {
		if h := Load[string](s, p); h.ID() != first.ID() {
			t.Fatalf("Load(%q) id = %s, want %s", p, h.ID(), first.ID())
		}
	}
	if other := Load[string](s, "b.txt"); other.ID() == first.ID() {
		t.Fatalf("distinct paths should get distinct ids")
	}
}

func TestServerLoadDoesNotBlock(t *testing.T) {
	gate := make(chan struct{})
	s := newTestServer(t, fstest.MapFS{"wait.slow": {Data: []byte("x")}})
	s.RegisterLoader(gateLoader{gate: gate})

	h := Load[string](s, "wait.slow")
	if got := s.LoadState(h.ID()); got != LoadStateLoading {
		t.Fatalf("state before the loader finished = %s, want loading", got)
	}
	if _, ok := Get(s, h); ok {
		t.Fatalf("value should not be visible while loading")
	}

	close(gate)
	if got := waitSettled(t, s, h.ID()); got != LoadStateLoaded {
		t.Fatalf("state = %s, want loaded", got)
	}
}

func TestServerGetTypeMismatch(t *testing.T) {
	s := newTestServer(t, fstest.MapFS{"a.txt": {Data: []byte("a")}})
	h := Load[int](s, "a.txt")
	if got := waitSettled(t, s, h.ID()); got != LoadStateLoaded {
		t.Fatalf("state = %s, want loaded", got)
	}
	if v, ok := Get(s, h); ok {
		t.Fatalf("expected Get to reject a string as int, got %v", v)
	}
	if _, ok := Get(s, Handle[string]{}); ok {
		t.Fatalf("expected Get on the zero handle to fail")
	}
	if got := s.LoadState(999); got != LoadStateNotLoaded {
		t.Fatalf("unknown id state = %s, want not loaded", got)
	}
}

func TestServerDependencies(t *testing.T) {
	s := newTestServer(t, fstest.MapFS{
		"pair.list": {Data: []byte("one.txt\ntwo.txt\n")},
		"one.txt":   {Data: []byte("1")},
		"two.txt":   {Data: []byte("2")},
	})

	h := Load[[]Handle[string]](s, "pair.list")
	if got := waitSettled(t, s, h.ID()); got != LoadStateLoaded {
		t.Fatalf("state = %s, want loaded (err %v)", got, s.Err(h.ID()))
	}
	deps, _ := Get(s, h)
	if len(deps) != 2 {
		t.Fatalf("expected 2 dependency handles, got %d", len(deps))
	}

	recorded := s.Dependencies(h.ID())
	for i, dep := range deps {
		if recorded[i] != dep.ID() {
			t.Fatalf("Dependencies()[%d] = %s, want %s", i, recorded[i], dep.ID())
		}
		if got := waitSettled(t, s, dep.ID()); got != LoadStateLoaded {
			t.Fatalf("dependency %s state = %s, want loaded", dep.Path(), got)
		}
	}
	if v, _ := Get(s, deps[1]); v != "2" {
		t.Fatalf("second dependency = %q, want 2", v)
	}
}

func TestServerReload(t *testing.T) {
	fsys := fstest.MapFS{"a.txt": {Data: []byte("old")}}
	s := newTestServer(t, fsys)

	h := Load[string](s, "a.txt")
	waitSettled(t, s, h.ID())

	fsys["a.txt"] = &fstest.MapFile{Data: []byte("new")}
	if !s.Reload("a.txt") {
		t.Fatalf("Reload of a known path should succeed")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if v, _ := Get(s, h); v == "new" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("reloaded value never became visible")
		}
		time.Sleep(time.Millisecond)
	}

	if s.Reload("never-requested.txt") {
		t.Fatalf("Reload of an unknown path should report false")
	}
}

func TestServerClose(t *testing.T) {
	gate := make(chan struct{})
	s := newTestServer(t, fstest.MapFS{"wait.slow": {Data: []byte("x")}, "a.txt": {Data: []byte("a")}})
	s.RegisterLoader(gateLoader{gate: gate})

	pending := Load[string](s, "wait.slow")
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if got := s.LoadState(pending.ID()); got != LoadStateFailed {
		t.Fatalf("in-flight load after Close = %s, want failed", got)
	}

	late := Load[string](s, "a.txt")
	if got := s.LoadState(late.ID()); got != LoadStateFailed {
		t.Fatalf("load after Close = %s, want failed", got)
	}
	if err := s.Err(late.ID()); !errors.Is(err, ErrServerClosed) {
		t.Fatalf("error = %v, want ErrServerClosed", err)
	}
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"drums.ogg", "drums.ogg"},
		{"  drums.ogg\n", "drums.ogg"},
		{"assets/drums.ogg", "drums.ogg"},
		{"/assets/sfx/drums.ogg", "sfx/drums.ogg"},
		{`sfx\drums.ogg`, "sfx/drums.ogg"},
		{"sfx/../drums.ogg", "drums.ogg"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := cleanPath(tc.in); got != tc.want {
				t.Fatalf("cleanPath(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
