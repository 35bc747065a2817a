package asset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/milk9111/spatialasset/common"
)

var (
	ErrNoLoader     = errors.New("asset: no loader registered for extension")
	ErrInvalidPath  = errors.New("asset: invalid path")
	ErrServerClosed = errors.New("asset: server closed")
)

const defaultWorkers = 2

type entry struct {
	path  string
	state LoadState
	value any
	err   error
	deps  []ID
	// generation bumps on every (re)load so a stale job cannot overwrite a
	// newer result.
	generation uint64
}

type job struct {
	id         ID
	path       string
	generation uint64
}

// Server resolves asset paths against a file system and loads them on a
// small worker pool. Requests never block the caller; progress is observed
// through LoadState.
type Server struct {
	fsys    fs.FS
	loaders map[string]Loader

	mu      sync.RWMutex
	entries map[ID]*entry
	paths   map[string]ID
	nextID  ID
	closed  bool

	jobs    chan job
	ctx     context.Context
	cancel  context.CancelFunc
	workers sync.WaitGroup
	pending sync.WaitGroup
}

type Options struct {
	// Workers is the number of concurrent loads. Defaults to 2.
	Workers int
}

// NewServer creates a server reading from fsys and starts its workers.
func NewServer(fsys fs.FS, opts Options) *Server {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		fsys:    fsys,
		loaders: make(map[string]Loader),
		entries: make(map[ID]*entry),
		paths:   make(map[string]ID),
		jobs:    make(chan job),
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := 0; i < workers; i++ {
		s.workers.Add(1)
		go s.work()
	}
	return s
}

// RegisterLoader claims every extension the loader lists. A later loader for
// the same extension replaces the earlier one.
func (s *Server) RegisterLoader(l Loader) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ext := range l.Extensions() {
		s.loaders[strings.ToLower(strings.TrimPrefix(ext, "."))] = l
	}
}

// Load requests path and returns its handle immediately. Requesting the same
// path twice yields the same handle.
func Load[T any](s *Server, p string) Handle[T] {
	clean := cleanPath(p)
	return Handle[T]{id: s.request(clean), path: clean}
}

func (s *Server) request(p string) ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.paths[p]; ok {
		return id
	}
	s.nextID++
	id := s.nextID
	e := &entry{path: p, state: LoadStateLoading, generation: 1}
	s.entries[id] = e
	s.paths[p] = id

	switch {
	case s.closed:
		s.failLocked(e, fmt.Errorf("asset: load %q: %w", p, ErrServerClosed))
	case !fs.ValidPath(p) || p == ".":
		s.failLocked(e, fmt.Errorf("asset: load %q: %w", p, ErrInvalidPath))
	default:
		s.submitLocked(job{id: id, path: p, generation: e.generation})
	}
	return id
}

// Reload re-runs the loader for a path that was requested before. The old
// value stays visible until the new load finishes. It reports false for
// unknown paths.
func (s *Server) Reload(p string) bool {
	clean := cleanPath(p)

	s.mu.Lock()
	id, ok := s.paths[clean]
	if !ok || s.closed {
		s.mu.Unlock()
		return false
	}
	e := s.entries[id]
	e.generation++
	gen := e.generation
	if e.state != LoadStateLoaded {
		e.state = LoadStateLoading
	}
	s.submitLocked(job{id: id, path: clean, generation: gen})
	s.mu.Unlock()

	common.LogDebug("asset: reloading %s", clean)
	return true
}

// LoadState reports the progress of id. Unknown ids are NotLoaded.
func (s *Server) LoadState(id ID) LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return LoadStateNotLoaded
	}
	return e.state
}

// Value returns the loaded value of id.
func (s *Server) Value(id ID) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok || e.value == nil {
		return nil, false
	}
	return e.value, true
}

// Err returns the error of a failed load, or nil.
func (s *Server) Err(id ID) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[id]; ok {
		return e.err
	}
	return nil
}

// Dependencies lists the assets the loader of id requested.
func (s *Server) Dependencies(id ID) []ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	return append([]ID(nil), e.deps...)
}

// Close stops the workers and waits for in-flight loads to return. Loads
// still queued are marked failed.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.pending.Wait()
	s.workers.Wait()
	return nil
}

// submitLocked queues j without blocking the caller, which may be the frame
// loop or a worker issuing a dependency. s.mu must be held so Close cannot
// start waiting in between.
func (s *Server) submitLocked(j job) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		select {
		case s.jobs <- j:
		case <-s.ctx.Done():
			s.fail(j.id, j.generation, fmt.Errorf("asset: load %q: %w", j.path, ErrServerClosed))
		}
	}()
}

func (s *Server) work() {
	defer s.workers.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case j := <-s.jobs:
			s.run(j)
		}
	}
}

func (s *Server) run(j job) {
	loader, ok := s.loaderFor(j.path)
	if !ok {
		s.fail(j.id, j.generation, fmt.Errorf("asset: load %q: %w", j.path, ErrNoLoader))
		return
	}

	f, err := s.fsys.Open(j.path)
	if err != nil {
		s.fail(j.id, j.generation, fmt.Errorf("asset: open %q: %w", j.path, err))
		return
	}
	defer f.Close()

	lc := &LoadContext{server: s, path: j.path}
	value, err := loader.Load(s.ctx, f, lc)
	if err != nil {
		s.fail(j.id, j.generation, fmt.Errorf("asset: load %q: %w", j.path, err))
		return
	}
	if value == nil {
		s.fail(j.id, j.generation, fmt.Errorf("asset: load %q: loader returned no value", j.path))
		return
	}

	s.mu.Lock()
	e := s.entries[j.id]
	if e.generation == j.generation {
		e.state = LoadStateLoaded
		e.value = value
		e.err = nil
		e.deps = lc.deps
	}
	s.mu.Unlock()
	common.LogDebug("asset: loaded %s", j.path)
}

func (s *Server) fail(id ID, generation uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || e.generation != generation {
		return
	}
	s.failLocked(e, err)
}

func (s *Server) failLocked(e *entry, err error) {
	e.state = LoadStateFailed
	e.value = nil
	e.err = err
	common.LogError("%v", err)
}

func (s *Server) loaderFor(p string) (Loader, bool) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.loaders[ext]
	return l, ok
}

func cleanPath(p string) string {
	s := strings.TrimSpace(p)
	s = strings.ReplaceAll(s, "\\", "/")
	if s == "" {
		return ""
	}
	s = path.Clean(s)
	s = strings.TrimPrefix(s, "/")
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		s = after
	}
	return s
}
