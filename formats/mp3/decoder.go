// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/grblocks/stream"
	"github.com/ik5/grblocks/utils"
)

// go-mp3 always produces interleaved stereo 16-bit little endian PCM.
const (
	channels    = 2
	sampleBytes = 2
	bufSamples  = 4096
)

// pcmReader is the part of gomp3.Decoder used by source.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec pcmReader
	buf []byte
	// carries an odd trailing byte between reads
	rest []byte
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) BufSize() int    { return cap(s.buf) / sampleBytes }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	need := len(dst) * sampleBytes
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	k := copy(s.buf, s.rest)
	s.rest = s.rest[:0]

	n, err := s.dec.Read(s.buf[k:])
	n += k

	samples := n / sampleBytes
	for i := range samples {
		dst[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.buf[sampleBytes*i:])))
	}
	s.rest = append(s.rest, s.buf[samples*sampleBytes:n]...)

	if samples == 0 && err == nil && n == 0 {
		return 0, io.EOF
	}
	return samples, err
}

// Decoder reads MPEG-1/2 layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (stream.Float, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	return &source{
		dec: dec,
		buf: make([]byte, bufSamples*sampleBytes),
	}, nil
}
