// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"errors"
	"io"
	"testing"
)

func TestSliceSource_Chunked(t *testing.T) {
	t.Parallel()

	src := NewSliceSource(8000, 1, []float32{1, 2, 3, 4, 5}, 2)
	buf := make([]float32, 10)

	wantN := []int{2, 2, 1}
	for i, want := range wantN {
		n, err := src.ReadSamples(buf)
		if n != want {
			t.Fatalf("read %d: n = %d, want %d", i, n, want)
		}
		if i < len(wantN)-1 && err != nil {
			t.Fatalf("read %d: err = %v, want nil", i, err)
		}
		if i == len(wantN)-1 && err != io.EOF {
			t.Fatalf("last read: err = %v, want io.EOF", err)
		}
	}

	if n, err := src.ReadSamples(buf); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after end = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestSliceSource_WholeFrames(t *testing.T) {
	t.Parallel()

	src := NewSliceSource(8000, 2, []float32{1, 2, 3, 4}, 0)
	buf := make([]float32, 3)

	n, err := src.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 2 {
		t.Errorf("ReadSamples() n = %d, want 2", n)
	}

	_, err = src.ReadSamples(make([]float32, 1))
	if !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() with one slot error = %v, want ErrInvalidDstSize", err)
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()

	data := []complex64{1, 2i, 3, 4i, 5, 6i, 7}
	got, err := Collect[complex64](NewSliceSource(1000, 1, data, 3), 2)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(got) != len(data) {
		t.Fatalf("Collect() len = %d, want %d", len(got), len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], data[i])
		}
	}
}

func TestCollect_InvalidBuffer(t *testing.T) {
	t.Parallel()

	_, err := Collect[float32](NewSliceSource[float32](1000, 1, nil, 0), 0)
	if !errors.Is(err, ErrInvalidBufSize) {
		t.Errorf("Collect() error = %v, want ErrInvalidBufSize", err)
	}
}

type failingSource struct{ SliceSource[float32] }

var errBroken = errors.New("broken pipe")

func (failingSource) ReadSamples([]float32) (int, error) { return 0, errBroken }

func TestCollect_PropagatesError(t *testing.T) {
	t.Parallel()

	_, err := Collect[float32](&failingSource{}, 16)
	if !errors.Is(err, errBroken) {
		t.Errorf("Collect() error = %v, want wrapped errBroken", err)
	}
}
