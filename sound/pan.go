package sound

import (
	"io"
	"math"
	"sync/atomic"

	"github.com/milk9111/spatialasset/common"
)

// PanStream applies a stereo balance to a 16-bit stereo stream. Pan may be
// changed from the game loop while the audio thread reads.
type PanStream struct {
	io.ReadSeeker

	pan atomic.Uint64 // float64 bits
}

func NewPanStream(src io.ReadSeeker) *PanStream {
	return &PanStream{ReadSeeker: src}
}

// SetPan sets the balance: -1 is hard left, 0 centre, 1 hard right.
func (s *PanStream) SetPan(pan float64) {
	pan = common.Clamp(pan, -1, 1)
	s.pan.Store(math.Float64bits(pan))
}

func (s *PanStream) Pan() float64 {
	return math.Float64frombits(s.pan.Load())
}

func (s *PanStream) Read(p []byte) (int, error) {
	p = p[:len(p)-len(p)%bytesPerFrame]
	n, err := s.ReadSeeker.Read(p)

	pan := s.Pan()
	ls := math.Min(1-pan, 1)
	rs := math.Min(1+pan, 1)
	for i := 0; i+bytesPerFrame <= n; i += bytesPerFrame {
		lc := int16(float64(int16(p[i])|int16(p[i+1])<<8) * ls)
		rc := int16(float64(int16(p[i+2])|int16(p[i+3])<<8) * rs)
		p[i] = byte(lc)
		p[i+1] = byte(lc >> 8)
		p[i+2] = byte(rc)
		p[i+3] = byte(rc >> 8)
	}
	return n, err
}
