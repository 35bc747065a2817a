package asset

import "strconv"

// ID identifies an asset tracked by a Server. The zero ID is never issued.
type ID uint64

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Handle is a typed, possibly not-yet-loaded reference to an asset. Handles
// are plain values: copying one does not affect the asset's lifetime.
type Handle[T any] struct {
	id   ID
	path string
}

// NewHandle wraps an id issued by a Store other than Server.
func NewHandle[T any](id ID, path string) Handle[T] {
	return Handle[T]{id: id, path: path}
}

func (h Handle[T]) ID() ID {
	return h.id
}

// Path is the asset-root relative path the handle was requested with.
func (h Handle[T]) Path() string {
	return h.path
}

func (h Handle[T]) Valid() bool {
	return h.id != 0
}

// LoadState is the server's view of a handle's progress.
type LoadState int

const (
	LoadStateNotLoaded LoadState = iota
	LoadStateLoading
	LoadStateLoaded
	LoadStateFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadStateNotLoaded:
		return "not loaded"
	case LoadStateLoading:
		return "loading"
	case LoadStateLoaded:
		return "loaded"
	case LoadStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Store is the read side of an asset server, as consumed by systems.
type Store interface {
	LoadState(id ID) LoadState
	Value(id ID) (any, bool)
}

// Get returns the loaded value behind h. It reports false while the asset is
// pending, after it failed, or when the value is not a T.
func Get[T any](s Store, h Handle[T]) (T, bool) {
	var zero T
	if s == nil || !h.Valid() {
		return zero, false
	}
	v, ok := s.Value(h.id)
	if !ok {
		return zero, false
	}
	cast, ok := v.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}
