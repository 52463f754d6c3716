// SPDX-License-Identifier: EPL-2.0

package stream

import "fmt"

// IQSource turns an interleaved stereo float stream into complex baseband
// samples: channel 0 is the in-phase part, channel 1 the quadrature part.
type IQSource struct {
	src Float
	tmp []float32

	// an I sample whose Q part has not been read yet
	carry    float32
	hasCarry bool
}

func NewIQSource(src Float) (*IQSource, error) {
	if src.Channels() != 2 {
		return nil, fmt.Errorf("%w: got %d channels", ErrNotStereo, src.Channels())
	}
	return &IQSource{
		src: src,
		tmp: make([]float32, 2*src.BufSize()),
	}, nil
}

func (s *IQSource) SampleRate() int { return s.src.SampleRate() }
func (s *IQSource) Channels() int   { return 1 }
func (s *IQSource) BufSize() int    { return s.src.BufSize() }
func (s *IQSource) Close() error {
	err := s.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (s *IQSource) ReadSamples(dst []complex64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	need := 2 * len(dst)
	if cap(s.tmp) < need {
		s.tmp = make([]float32, need)
	}
	s.tmp = s.tmp[:need]

	for {
		off := 0
		if s.hasCarry {
			s.tmp[0] = s.carry
			off = 1
		}

		n, err := s.src.ReadSamples(s.tmp[off:])
		n += off
		frames := n / 2
		for i := range frames {
			dst[i] = complex(s.tmp[2*i], s.tmp[2*i+1])
		}

		s.hasCarry = n%2 == 1
		if s.hasCarry {
			s.carry = s.tmp[n-1]
		}

		if frames > 0 || err != nil {
			return frames, err
		}
	}
}

// IQInterleaver is the inverse of IQSource: it exposes a complex stream as
// a two channel float stream.
type IQInterleaver struct {
	src Complex
	tmp []complex64
}

func NewIQInterleaver(src Complex) *IQInterleaver {
	return &IQInterleaver{
		src: src,
		tmp: make([]complex64, src.BufSize()),
	}
}

func (s *IQInterleaver) SampleRate() int { return s.src.SampleRate() }
func (s *IQInterleaver) Channels() int   { return 2 }
func (s *IQInterleaver) BufSize() int    { return 2 * s.src.BufSize() }
func (s *IQInterleaver) Close() error {
	err := s.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (s *IQInterleaver) ReadSamples(dst []float32) (int, error) {
	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}
	frames := len(dst) / 2
	if frames == 0 {
		return 0, nil
	}
	if cap(s.tmp) < frames {
		s.tmp = make([]complex64, frames)
	}
	s.tmp = s.tmp[:frames]

	n, err := s.src.ReadSamples(s.tmp)
	for i := range n {
		dst[2*i] = real(s.tmp[i])
		dst[2*i+1] = imag(s.tmp[i])
	}

	return 2 * n, err
}

// Tags forwards tags from the wrapped complex stream.
func (s *IQInterleaver) Tags() []Tag { return DrainTags(s.src) }
