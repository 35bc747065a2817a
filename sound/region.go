package sound

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

var ErrInvalidRegion = errors.New("sound: invalid loop region")

// Region is a half-open span [Start, End) of a clip, in seconds. A looping
// region plays the clip from the beginning, then repeats the span forever.
type Region struct {
	Start float64
	End   float64
}

func (r Region) String() string {
	return fmt.Sprintf("[%g, %g)", r.Start, r.End)
}

// Bytes converts r to the intro and loop lengths, in bytes, of a PCM stream
// of length bytes at sampleRate. Both are whole frames. End is clamped to the
// stream length.
func (r Region) Bytes(sampleRate int, length int64) (intro, loop int64, err error) {
	if sampleRate <= 0 || r.Start < 0 || !(r.End > r.Start) || math.IsInf(r.End, 0) || math.IsNaN(r.Start) {
		return 0, 0, fmt.Errorf("%w: %s", ErrInvalidRegion, r)
	}

	start := int64(math.Round(r.Start*float64(sampleRate))) * bytesPerFrame
	end := int64(math.Round(r.End*float64(sampleRate))) * bytesPerFrame
	if limit := length - length%bytesPerFrame; end > limit {
		end = limit
	}
	if start >= end {
		return 0, 0, fmt.Errorf("%w: %s is outside a %d byte clip", ErrInvalidRegion, r, length)
	}
	return start, end - start, nil
}

// NewLoopStream returns a stream over clip. With a region the stream never
// ends: after the intro it cycles over the region. Without one it plays the
// clip once.
func NewLoopStream(clip *Clip, region *Region) (io.ReadSeeker, error) {
	if clip == nil {
		return nil, errors.New("sound: nil clip")
	}
	src := bytes.NewReader(clip.PCM)
	if region == nil {
		return src, nil
	}

	intro, loop, err := region.Bytes(clip.SampleRate, int64(len(clip.PCM)))
	if err != nil {
		return nil, err
	}
	return audio.NewInfiniteLoopWithIntro(src, intro, loop), nil
}
