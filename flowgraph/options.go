// SPDX-License-Identifier: EPL-2.0

package flowgraph

import "go.uber.org/zap"

const (
	DefaultBufSize    = 4096
	DefaultQueueDepth = 4
)

type Option func(*options)

type options struct {
	bufSize    int
	bufSizeSet bool
	depth      int
	logger  *zap.Logger
}

// WithBufSize sets the number of samples read from the source per chunk.
func WithBufSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufSize = n
			o.bufSizeSet = true
		}
	}
}

// WithQueueDepth sets how many chunks may wait between two stages.
func WithQueueDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.depth = n
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
