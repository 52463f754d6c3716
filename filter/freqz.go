// SPDX-License-Identifier: EPL-2.0

package filter

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// FrequencyResponse evaluates H(e^jw) of an IIR filter at n evenly spaced
// frequencies over [0, 2pi). Taps follow the same convention as
// NewIIRFilter. Bins where the denominator vanishes are +Inf.
func FrequencyResponse(fftaps, fbtaps []float64, n int, oldstyle bool) ([]complex128, error) {
	if len(fftaps) == 0 || len(fbtaps) == 0 {
		return nil, ErrEmptyTaps
	}
	if n < len(fftaps) || n < len(fbtaps) {
		return nil, fmt.Errorf("%w: %d < %d", ErrShortFFTSize, n, max(len(fftaps), len(fbtaps)))
	}

	num := make([]float64, n)
	copy(num, fftaps)

	// A(z) = 1 - sum fb'[k] z^-k, with fb' the taps as the filter uses them
	den := make([]float64, n)
	den[0] = 1
	for k := 1; k < len(fbtaps); k++ {
		if oldstyle {
			den[k] = -fbtaps[k]
		} else {
			den[k] = fbtaps[k]
		}
	}

	b := fft.FFTReal(num)
	a := fft.FFTReal(den)

	h := make([]complex128, n)
	for i := range h {
		if a[i] == 0 {
			h[i] = cmplx.Inf()
			continue
		}
		h[i] = b[i] / a[i]
	}
	return h, nil
}

// MagnitudeDB converts a response to 20*log10|h|. With normalize set the
// highest finite bin is shifted to 0 dB; infinite bins stay infinite.
func MagnitudeDB(h []complex128, normalize bool) []float64 {
	db := make([]float64, len(h))
	for i, v := range h {
		db[i] = 20 * math.Log10(cmplx.Abs(v))
	}
	if !normalize {
		return db
	}

	finite := make([]float64, 0, len(db))
	for _, v := range db {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) > 0 {
		floats.AddConst(-floats.Max(finite), db)
	}
	return db
}
