// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/grblocks/stream"
)

// fakeMP3 serves PCM bytes in chunks of at most step bytes.
type fakeMP3 struct {
	data []byte
	step int
}

func newFakeMP3(step int, samples ...int16) *fakeMP3 {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, samples)
	return &fakeMP3{data: buf.Bytes(), step: step}
}

func (f *fakeMP3) SampleRate() int { return 44100 }

func (f *fakeMP3) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), f.step)], f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("This is not MP3 data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) error = nil", data)
		}
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := &source{dec: newFakeMP3(64), buf: make([]byte, 512)}
	if src.SampleRate() != 44100 || src.Channels() != 2 || src.BufSize() != 256 {
		t.Errorf("metadata = %d Hz, %d ch, buf %d", src.SampleRate(), src.Channels(), src.BufSize())
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	in := []int16{0, 16384, -16384, -32768, 8192, -8192}
	want := []float32{0, 0.5, -0.5, -1, 0.25, -0.25}

	// odd steps split samples across reads
	for _, step := range []int{1, 3, 5, 64} {
		src := &source{dec: newFakeMP3(step, in...)}

		var got []float32
		var err error
		for range 100 {
			var got1 []float32
			got1, err = readOnce(src, 4)
			got = append(got, got1...)
			if err != nil {
				break
			}
		}
		if !errors.Is(err, io.EOF) {
			t.Fatalf("step %d: final error = %v, want EOF", step, err)
		}
		if len(got) != len(want) {
			t.Fatalf("step %d: got %v, want %v", step, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("step %d: sample %d = %v, want %v", step, i, got[i], want[i])
			}
		}
	}
}

func readOnce(src stream.Float, n int) ([]float32, error) {
	dst := make([]float32, n)
	k, err := src.ReadSamples(dst)
	return dst[:k], err
}
