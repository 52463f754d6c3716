// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// MagSquared returns |z|^2 in double precision.
func MagSquared(z complex64) float64 {
	re, im := float64(real(z)), float64(imag(z))
	return re*re + im*im
}

// Mag returns |z| in double precision.
func Mag(z complex64) float64 {
	return math.Hypot(float64(real(z)), float64(imag(z)))
}
