// SPDX-License-Identifier: EPL-2.0

package stream

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrNotStereo      = errors.New("I/Q conversion needs a two channel stream")
	ErrInvalidBufSize = errors.New("buffer size must be positive")
)
