// SPDX-License-Identifier: EPL-2.0

package flowgraph

import (
	"sync"

	"github.com/ik5/grblocks/stream"
)

// Sink consumes the output of the last stage.
type Sink[T stream.Sample] interface {
	Write(samples []T) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc[T stream.Sample] func(samples []T) error

func (f SinkFunc[T]) Write(samples []T) error { return f(samples) }

// Discard drops everything written to it.
func Discard[T stream.Sample]() Sink[T] {
	return SinkFunc[T](func([]T) error { return nil })
}

// Buffer keeps every sample written to it.
type Buffer[T stream.Sample] struct {
	mtx  sync.Mutex
	data []T
}

func (b *Buffer[T]) Write(samples []T) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.data = append(b.data, samples...)
	return nil
}

// Samples returns a copy of the collected samples.
func (b *Buffer[T]) Samples() []T {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	return append([]T(nil), b.data...)
}

// Interleave turns a complex sink into one taking I/Q pairs as floats, for
// writing baseband to a stereo file.
func Interleave(dst Sink[float32]) Sink[complex64] {
	var buf []float32
	return SinkFunc[complex64](func(samples []complex64) error {
		buf = buf[:0]
		for _, v := range samples {
			buf = append(buf, real(v), imag(v))
		}
		return dst.Write(buf)
	})
}
