// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"io"
	"sync"
)

// Sample is the item type carried by a stream.
type Sample interface {
	~float32 | ~complex64
}

type Source[T Sample] interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved samples.
	// Returns number of values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []T) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Float is a real valued stream with samples in [-1,1].
type Float = Source[float32]

// Complex is a baseband I/Q stream.
type Complex = Source[complex64]

// Decoder constructs a Float source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Float, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}
