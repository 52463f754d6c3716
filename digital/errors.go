// SPDX-License-Identifier: EPL-2.0

package digital

import "errors"

var (
	ErrUnknownEstimator   = errors.New("unknown SNR estimator type")
	ErrInvalidTagInterval = errors.New("tag_nsamples must be greater than zero")
	ErrInvalidAlpha       = errors.New("alpha must be in [0,1]")
)
