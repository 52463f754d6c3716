// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the go-audio integer buffers to float streams.
package pcm

import (
	"io"

	goaudio "github.com/go-audio/audio"
)

// DefaultBufSize is the sample capacity of a Source before its first read.
const DefaultBufSize = 4096

// Reader is the part of the go-audio wav and aiff decoders a Source needs.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source reads signed integer PCM through a Reader and scales it into
// [-1,1).
type Source struct {
	r          Reader
	sampleRate int
	channels   int
	scale      float32
	buf        *goaudio.IntBuffer
}

// SupportedBitDepth reports whether depth is a signed integer PCM depth
// Source can scale.
func SupportedBitDepth(depth int) bool {
	switch depth {
	case 16, 24, 32:
		return true
	}
	return false
}

func NewSource(r Reader, sampleRate, channels, bitDepth int) *Source {
	return &Source{
		r:          r,
		sampleRate: sampleRate,
		channels:   channels,
		scale:      1 / float32(int64(1)<<(bitDepth-1)),
		buf: &goaudio.IntBuffer{
			Data:           make([]int, DefaultBufSize),
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return cap(s.buf.Data) }
func (s *Source) Close() error    { return nil }

// ReadSamples reads whole frames only. A read that returns nothing ends the
// stream.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < want {
		s.buf.Data = make([]int, want)
	}
	s.buf.Data = s.buf.Data[:want]

	n, err := s.r.PCMBuffer(s.buf)
	for i := range n {
		dst[i] = float32(s.buf.Data[i]) * s.scale
	}
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}
