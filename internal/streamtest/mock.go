// SPDX-License-Identifier: EPL-2.0

// Package streamtest holds synthetic sources shared by the package tests.
package streamtest

import (
	"io"
	"math"
	"math/rand"
)

// sample mirrors stream.Sample without importing it, so in-package tests of
// stream can use these helpers too.
type sample interface {
	~float32 | ~complex64
}

// MockSource generates samples from a waveform function.
type MockSource[T sample] struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) T
	closed       bool
}

// NewMockSource creates a source producing totalSamples frames.
func NewMockSource[T sample](sampleRate, channels, totalSamples int, waveform func(sample int, channel int) T) *MockSource[T] {
	return &MockSource[T]{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource generates zeros.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource[float32] {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

// NewSineSource generates a sine wave on every channel.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource[float32] {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource generates a constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource[float32] {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

// NewToneSource generates a complex exponential of the given amplitude.
func NewToneSource(sampleRate, totalSamples int, frequency, amplitude float64) *MockSource[complex64] {
	return NewMockSource(sampleRate, 1, totalSamples, func(sample int, _ int) complex64 {
		phase := 2 * math.Pi * frequency * float64(sample) / float64(sampleRate)
		return complex(float32(amplitude*math.Cos(phase)), float32(amplitude*math.Sin(phase)))
	})
}

// QPSK returns n unit-energy QPSK symbols with complex white Gaussian noise
// scaled for the requested SNR in dB. The generator is seeded so results
// are repeatable.
func QPSK(n int, snrDB float64, seed int64) []complex64 {
	rng := rand.New(rand.NewSource(seed))
	sigma := math.Sqrt(math.Pow(10, -snrDB/10) / 2)
	out := make([]complex64, n)
	for i := range out {
		re := float64(2*rng.Intn(2)-1) / math.Sqrt2
		im := float64(2*rng.Intn(2)-1) / math.Sqrt2
		re += sigma * rng.NormFloat64()
		im += sigma * rng.NormFloat64()
		out[i] = complex(float32(re), float32(im))
	}
	return out
}

func (m *MockSource[T]) SampleRate() int { return m.sampleRate }
func (m *MockSource[T]) Channels() int   { return m.channels }
func (m *MockSource[T]) BufSize() int    { return 4096 }

func (m *MockSource[T]) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource[T]) Closed() bool { return m.closed }

// Reset rewinds the generator.
func (m *MockSource[T]) Reset() {
	m.generated = 0
}

func (m *MockSource[T]) ReadSamples(dst []T) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for frame := range frames {
		idx := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(idx, ch)
		}
	}

	m.generated += frames
	written := frames * m.channels

	if m.generated >= m.totalSamples {
		return written, io.EOF
	}

	return written, nil
}
