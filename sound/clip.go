package sound

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/spatialasset/asset"
)

// SampleRate is the rate every clip is resampled to on load.
const SampleRate = 44100

// bytesPerFrame is one 16-bit little-endian stereo sample.
const bytesPerFrame = 4

// Clip is a fully decoded audio file.
type Clip struct {
	SampleRate int
	PCM        []byte
}

// Frames returns the number of stereo sample frames.
func (c *Clip) Frames() int64 {
	return int64(len(c.PCM) / bytesPerFrame)
}

// Seconds returns the clip length in seconds.
func (c *Clip) Seconds() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(c.Frames()) / float64(c.SampleRate)
}

func (c *Clip) Duration() time.Duration {
	return time.Duration(c.Seconds() * float64(time.Second))
}

// ClipLoader decodes ogg and wav files into clips.
type ClipLoader struct {
	SampleRate int
}

func (l *ClipLoader) Extensions() []string {
	return []string{"ogg", "wav"}
}

func (l *ClipLoader) Load(ctx context.Context, r io.Reader, lc *asset.LoadContext) (any, error) {
	rate := l.SampleRate
	if rate <= 0 {
		rate = SampleRate
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read clip: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var stream io.Reader
	switch ext := strings.ToLower(path.Ext(lc.Path())); ext {
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(rate, bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("decode ogg: %w", err)
		}
		stream = s
	case ".wav":
		s, err := wav.DecodeWithSampleRate(rate, bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("decode wav: %w", err)
		}
		stream = s
	default:
		return nil, fmt.Errorf("unsupported clip format %q", ext)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("decode clip: %w", err)
	}
	return &Clip{SampleRate: rate, PCM: pcm}, nil
}
