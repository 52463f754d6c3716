// SPDX-License-Identifier: EPL-2.0

package filter

import "errors"

var (
	ErrEmptyTaps    = errors.New("tap vectors must not be empty")
	ErrShortFFTSize = errors.New("fft size must cover every tap")
)
