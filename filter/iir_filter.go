// SPDX-License-Identifier: EPL-2.0

package filter

import "fmt"

// IIRFilter is a direct form I recursive filter with real taps and complex
// samples:
//
//	y[n] = sum(k=0..) ff[k]*x[n-k] + sum(k=1..) fb[k]*y[n-k]
//
// fb[0] is ignored. With oldstyle unset the feedback taps follow the usual
// denominator convention and are negated on load, so a tap vector copied
// from a textbook a[] can be used as is.
type IIRFilter struct {
	ff       []float64
	fb       []float64
	oldstyle bool

	// past inputs x[n-1].. and outputs y[n-1]..; head is the newest slot
	xs    []complex128
	ys    []complex128
	xhead int
	yhead int
}

func NewIIRFilter(fftaps, fbtaps []float64, oldstyle bool) (*IIRFilter, error) {
	f := &IIRFilter{oldstyle: oldstyle}
	if err := f.SetTaps(fftaps, fbtaps); err != nil {
		return nil, err
	}
	return f, nil
}

// SetTaps loads new coefficients and clears the filter history.
func (f *IIRFilter) SetTaps(fftaps, fbtaps []float64) error {
	if len(fftaps) == 0 || len(fbtaps) == 0 {
		return fmt.Errorf("%w: %d feed-forward, %d feedback", ErrEmptyTaps, len(fftaps), len(fbtaps))
	}

	f.ff = append(f.ff[:0], fftaps...)
	f.fb = append(f.fb[:0], fbtaps...)
	if !f.oldstyle {
		for k := 1; k < len(f.fb); k++ {
			f.fb[k] = -f.fb[k]
		}
	}

	f.xs = make([]complex128, len(f.ff)-1)
	f.ys = make([]complex128, len(f.fb)-1)
	f.xhead, f.yhead = 0, 0
	return nil
}

// OldStyle reports the feedback tap convention.
func (f *IIRFilter) OldStyle() bool { return f.oldstyle }

// Filter runs one sample through the filter.
func (f *IIRFilter) Filter(x complex64) complex64 {
	in := complex128(x)
	acc := complex(f.ff[0], 0) * in

	for k := 1; k < len(f.ff); k++ {
		acc += complex(f.ff[k], 0) * f.xs[(f.xhead+k-1)%len(f.xs)]
	}
	for k := 1; k < len(f.fb); k++ {
		acc += complex(f.fb[k], 0) * f.ys[(f.yhead+k-1)%len(f.ys)]
	}

	if n := len(f.xs); n > 0 {
		f.xhead = (f.xhead + n - 1) % n
		f.xs[f.xhead] = in
	}
	if n := len(f.ys); n > 0 {
		f.yhead = (f.yhead + n - 1) % n
		f.ys[f.yhead] = acc
	}

	return complex64(acc)
}

// FilterN filters len(in) samples into out.
func (f *IIRFilter) FilterN(out, in []complex64) {
	for i, x := range in {
		out[i] = f.Filter(x)
	}
}
