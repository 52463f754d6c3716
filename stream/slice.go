// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"fmt"
	"io"
)

// SliceSource serves samples from memory. It is mostly useful in tests and
// for feeding precomputed signals through a block chain.
type SliceSource[T Sample] struct {
	sampleRate int
	channels   int
	data       []T
	pos        int
	chunk      int
}

// NewSliceSource wraps data (interleaved when channels > 1). A chunk of 0
// lets every read fill as much of dst as possible.
func NewSliceSource[T Sample](sampleRate, channels int, data []T, chunk int) *SliceSource[T] {
	if channels < 1 {
		channels = 1
	}
	return &SliceSource[T]{
		sampleRate: sampleRate,
		channels:   channels,
		data:       data,
		chunk:      chunk,
	}
}

func (s *SliceSource[T]) SampleRate() int { return s.sampleRate }
func (s *SliceSource[T]) Channels() int   { return s.channels }
func (s *SliceSource[T]) Close() error    { return nil }

func (s *SliceSource[T]) BufSize() int {
	if s.chunk > 0 {
		return s.chunk
	}
	return 4096
}

// Remaining reports how many samples are still unread.
func (s *SliceSource[T]) Remaining() int { return len(s.data) - s.pos }

func (s *SliceSource[T]) ReadSamples(dst []T) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	want := len(dst)
	if s.chunk > 0 && want > s.chunk {
		want = s.chunk
	}
	// keep whole frames
	want -= want % s.channels
	if want == 0 {
		return 0, ErrInvalidDstSize
	}

	n := copy(dst[:want], s.data[s.pos:])
	s.pos += n
	if s.pos >= len(s.data) {
		return n, io.EOF
	}
	return n, nil
}

// Collect drains src into a slice using reads of bufSize samples.
// Reaching the end of the stream is not reported as an error.
func Collect[T Sample](src Source[T], bufSize int) ([]T, error) {
	if bufSize <= 0 {
		return nil, ErrInvalidBufSize
	}

	var out []T
	buf := make([]T, bufSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return out, fmt.Errorf("%w", err)
		}
	}

	return out, nil
}
