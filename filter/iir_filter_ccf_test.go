// SPDX-License-Identifier: EPL-2.0

package filter

import (
	"errors"
	"testing"

	"github.com/ik5/grblocks/block"
	"github.com/ik5/grblocks/stream"
)

func TestNewIIRFilterCCF(t *testing.T) {
	t.Parallel()

	f, err := NewIIRFilterCCF([]float64{1}, []float64{1, 0.5})
	if err != nil {
		t.Fatalf("NewIIRFilterCCF() error = %v", err)
	}
	if !f.OldStyle() {
		t.Error("OldStyle() = false, want true by default")
	}

	bb := f.ToBasicBlock()
	if bb.Name() != "iir_filter_ccf" {
		t.Errorf("Name() = %q, want iir_filter_ccf", bb.Name())
	}
	if bb.InputSignature() != block.ComplexStream || bb.OutputSignature() != block.ComplexStream {
		t.Errorf("signatures = %v -> %v", bb.InputSignature(), bb.OutputSignature())
	}

	g, err := NewIIRFilterCCF([]float64{1}, []float64{1}, WithOldStyle(false))
	if err != nil {
		t.Fatalf("NewIIRFilterCCF() error = %v", err)
	}
	if g.OldStyle() {
		t.Error("OldStyle() = true, want false")
	}

	if _, err := NewIIRFilterCCF(nil, nil); !errors.Is(err, ErrEmptyTaps) {
		t.Errorf("error = %v, want ErrEmptyTaps", err)
	}
}

func TestIIRFilterCCF_SetTaps(t *testing.T) {
	t.Parallel()

	f, err := NewIIRFilterCCF([]float64{1}, []float64{1})
	if err != nil {
		t.Fatalf("NewIIRFilterCCF() error = %v", err)
	}

	if err := f.SetTaps(nil, []float64{1}); !errors.Is(err, ErrEmptyTaps) {
		t.Errorf("SetTaps(nil) error = %v, want ErrEmptyTaps", err)
	}

	ff := []float64{3}
	if err := f.SetTaps(ff, []float64{1}); err != nil {
		t.Fatalf("SetTaps() error = %v", err)
	}
	ff[0] = 100 // caller slices are not retained

	gotFF, gotFB := f.Taps()
	if len(gotFF) != 1 || gotFF[0] != 3 || len(gotFB) != 1 {
		t.Errorf("Taps() = %v, %v, want [3], [1]", gotFF, gotFB)
	}

	out := make([]complex64, 2)
	if _, err := f.Work([]complex64{1, 1i}, out); err != nil {
		t.Fatalf("Work() error = %v", err)
	}
	if out[0] != 3 || out[1] != 3i {
		t.Errorf("Work() = %v, want [3 3i]", out)
	}
}

func TestIIRFilterCCF_Stream(t *testing.T) {
	t.Parallel()

	// moving average of two
	f, err := NewIIRFilterCCF([]float64{0.5, 0.5}, []float64{1})
	if err != nil {
		t.Fatalf("NewIIRFilterCCF() error = %v", err)
	}

	in := []complex64{2, 4, 6, 8, 10}
	out, err := stream.Collect[complex64](block.Apply[complex64, complex64](stream.NewSliceSource(1000, 1, in, 2), f), 2)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	want := []complex64{1, 3, 5, 7, 9}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}
