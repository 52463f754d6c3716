// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/grblocks/stream"
	"github.com/ik5/grblocks/utils"
)

// Encoder writes interleaved float samples as 16-bit PCM. The header sizes
// are patched on Close, so the target has to be seekable.
type Encoder struct {
	enc     *gowav.Encoder
	buf     *goaudio.IntBuffer
	written int
}

func NewEncoder(w io.WriteSeeker, sampleRate, channels int) (*Encoder, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	return &Encoder{
		enc: gowav.NewEncoder(w, sampleRate, 16, channels, formatPCM),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}, nil
}

// Write encodes whole frames of samples; a trailing partial frame is an
// error.
func (e *Encoder) Write(samples []float32) error {
	if len(samples)%e.buf.Format.NumChannels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels",
			stream.ErrInvalidDstSize, len(samples), e.buf.Format.NumChannels)
	}
	if len(samples) == 0 {
		return nil
	}

	if cap(e.buf.Data) < len(samples) {
		e.buf.Data = make([]int, len(samples))
	}
	e.buf.Data = e.buf.Data[:len(samples)]
	for i, v := range samples {
		e.buf.Data[i] = int(utils.Float32ToInt16(v))
	}

	if err := e.enc.Write(e.buf); err != nil {
		return fmt.Errorf("writing wav frames: %w", err)
	}
	e.written += len(samples)
	return nil
}

// Samples is the number of samples written so far.
func (e *Encoder) Samples() int { return e.written }

// Close finalizes the headers. It does not close the underlying writer.
func (e *Encoder) Close() error {
	if e.written == 0 {
		// emit the header and an empty data chunk
		e.buf.Data = e.buf.Data[:0]
		if err := e.enc.Write(e.buf); err != nil {
			return fmt.Errorf("writing wav header: %w", err)
		}
	}
	return e.enc.Close()
}

// Encode drains src into w and returns the number of samples written.
func Encode(w io.WriteSeeker, src stream.Float) (int, error) {
	enc, err := NewEncoder(w, src.SampleRate(), src.Channels())
	if err != nil {
		return 0, err
	}

	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = pcmBufSize
	}
	bufSize -= bufSize % src.Channels()
	if bufSize == 0 {
		bufSize = src.Channels()
	}
	buf := make([]float32, bufSize)

	for {
		n, rerr := src.ReadSamples(buf)
		if n > 0 {
			if err := enc.Write(buf[:n]); err != nil {
				return enc.Samples(), err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return enc.Samples(), fmt.Errorf("reading samples: %w", rerr)
		}
	}

	return enc.Samples(), enc.Close()
}
