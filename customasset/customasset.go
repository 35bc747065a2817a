// Package customasset defines the .custom asset format: a text file whose
// whole content, once trimmed, is the path of an audio clip. Loading one
// requests the clip and hands back a record pointing at it.
package customasset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/sound"
)

// Extension is the file extension the loader claims.
const Extension = "custom"

// CustomAsset points at the audio clip named by a .custom file.
type CustomAsset struct {
	Handle asset.Handle[*sound.Clip]
}

type ErrorKind int

const (
	// ErrorKindIO means the source stream could not be read.
	ErrorKindIO ErrorKind = iota + 1
	// ErrorKindFormat means the content is not a usable path.
	ErrorKindFormat
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindIO:
		return "io"
	case ErrorKindFormat:
		return "format"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidEncoding = errors.New("content is not valid UTF-8")
	ErrEmptyPath       = errors.New("content names no path")
)

// LoaderError is the error returned by Loader.
type LoaderError struct {
	Kind ErrorKind
	Err  error
}

func (e *LoaderError) Error() string {
	return fmt.Sprintf("could not load custom asset (%s): %v", e.Kind, e.Err)
}

func (e *LoaderError) Unwrap() error {
	return e.Err
}

// Loader loads .custom files.
type Loader struct{}

func (Loader) Extensions() []string {
	return []string{Extension}
}

// Load reads the whole stream, requests the clip it names and returns at
// once; the clip loads independently.
func (Loader) Load(ctx context.Context, r io.Reader, lc *asset.LoadContext) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoaderError{Kind: ErrorKindIO, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &LoaderError{Kind: ErrorKindIO, Err: err}
	}

	name, err := Parse(b)
	if err != nil {
		return nil, err
	}
	return &CustomAsset{Handle: asset.LoadDependency[*sound.Clip](lc, name)}, nil
}

// Parse extracts the clip path from the content of a .custom file.
func Parse(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", &LoaderError{Kind: ErrorKindFormat, Err: ErrInvalidEncoding}
	}
	name := strings.TrimSpace(string(b))
	if name == "" {
		return "", &LoaderError{Kind: ErrorKindFormat, Err: ErrEmptyPath}
	}
	return name, nil
}
