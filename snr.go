// SPDX-License-Identifier: EPL-2.0

package grblocks

import (
	"context"

	"github.com/ik5/grblocks/digital"
	"github.com/ik5/grblocks/flowgraph"
	"github.com/ik5/grblocks/stream"
	"go.uber.org/zap"
)

// SNRReport is the outcome of EstimateSNR.
type SNRReport struct {
	// Final is the estimate in dB after the last sample.
	Final float64
	// Tags are the periodic estimates, ordered by offset.
	Tags  []stream.Tag
	Items uint64
}

// EstimateSNR runs an M-PSK SNR estimator over the whole of src. src is
// closed when the stream ends.
func EstimateSNR(ctx context.Context, src stream.Complex, t digital.SNREstType, logger *zap.Logger, opts ...digital.SNROption) (SNRReport, error) {
	est, err := digital.NewMPSKSNREstCC(t, append(opts, digital.WithLogger(logger))...)
	if err != nil {
		return SNRReport{}, err
	}

	g := flowgraph.New(src, flowgraph.Discard[complex64](), flowgraph.WithLogger(logger))
	if err := g.Connect(est.ToBasicBlock()); err != nil {
		return SNRReport{}, err
	}

	stats, err := g.Run(ctx)
	if err != nil {
		return SNRReport{}, err
	}
	return SNRReport{Final: est.SNR(), Tags: stats.Tags, Items: stats.Items}, nil
}
