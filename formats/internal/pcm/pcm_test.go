// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

type sliceReader struct {
	data []int
	err  error
}

func (r *sliceReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n := copy(buf.Data, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestSource_Scale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		depth int
		in    int
		want  float32
	}{
		{16, 16384, 0.5},
		{16, -32768, -1},
		{24, -4194304, -0.5},
		{32, 1 << 30, 0.5},
	}

	for _, tt := range tests {
		src := NewSource(&sliceReader{data: []int{tt.in}}, 8000, 1, tt.depth)
		dst := make([]float32, 4)
		n, err := src.ReadSamples(dst)
		if err != nil || n != 1 {
			t.Fatalf("depth %d: ReadSamples() = %d, %v", tt.depth, n, err)
		}
		if dst[0] != tt.want {
			t.Errorf("depth %d: %d -> %v, want %v", tt.depth, tt.in, dst[0], tt.want)
		}
	}
}

func TestSource_WholeFramesAndEOF(t *testing.T) {
	t.Parallel()

	src := NewSource(&sliceReader{data: []int{1, 2, 3, 4}}, 8000, 2, 16)
	if src.Channels() != 2 || src.SampleRate() != 8000 {
		t.Fatalf("metadata = %d ch, %d Hz", src.Channels(), src.SampleRate())
	}

	dst := make([]float32, 3)
	n, err := src.ReadSamples(dst)
	if err != nil || n != 2 {
		t.Fatalf("ReadSamples() = %d, %v, want 2, nil", n, err)
	}

	n, _ = src.ReadSamples(dst)
	if n != 2 {
		t.Fatalf("second ReadSamples() = %d, want 2", n)
	}

	if n, err = src.ReadSamples(dst); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() at end = %d, %v, want 0, EOF", n, err)
	}
}

func TestSource_Error(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken")
	src := NewSource(&sliceReader{err: errBroken}, 8000, 1, 16)
	if _, err := src.ReadSamples(make([]float32, 8)); !errors.Is(err, errBroken) {
		t.Errorf("error = %v, want errBroken", err)
	}
}

func TestSupportedBitDepth(t *testing.T) {
	t.Parallel()

	for depth, want := range map[int]bool{8: false, 16: true, 24: true, 32: true, 12: false} {
		if got := SupportedBitDepth(depth); got != want {
			t.Errorf("SupportedBitDepth(%d) = %v, want %v", depth, got, want)
		}
	}
}
