package asset

import (
	"context"
	"io"
)

// Loader turns the bytes of a file into an asset value. A loader claims the
// file extensions it returns, without the leading dot.
type Loader interface {
	Extensions() []string
	Load(ctx context.Context, r io.Reader, lc *LoadContext) (any, error)
}

// LoadContext is handed to a Loader for a single load. It names the file
// being loaded and lets the loader request further assets.
type LoadContext struct {
	server *Server
	path   string
	deps   []ID
}

// NewLoadContext creates a context for loading path whose dependency requests
// go to s.
func NewLoadContext(s *Server, path string) *LoadContext {
	return &LoadContext{server: s, path: cleanPath(path)}
}

// Path is the asset-root relative path being loaded.
func (lc *LoadContext) Path() string {
	return lc.path
}

// LoadDependency requests path from the server the context belongs to. It
// returns at once; the dependency completes on its own schedule.
func LoadDependency[T any](lc *LoadContext, path string) Handle[T] {
	h := Load[T](lc.server, path)
	lc.deps = append(lc.deps, h.id)
	return h
}
