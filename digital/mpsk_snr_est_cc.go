// SPDX-License-Identifier: EPL-2.0

package digital

import (
	"fmt"
	"sync"

	"github.com/ik5/grblocks/block"
	"go.uber.org/zap"
)

const (
	DefaultTagNSamples = 10000
	DefaultAlpha       = 0.001

	// SNRTagKey is the key of the tags carrying the SNR estimate in dB.
	SNRTagKey = "snr"
)

// MPSKSNREstParams are the named construction parameters of MPSKSNREstCC.
type MPSKSNREstParams struct {
	Type        SNREstType `mapstructure:"type" json:"type"`
	TagNSamples int        `mapstructure:"tag_nsamples" json:"tag_nsamples"`
	Alpha       float64    `mapstructure:"alpha" json:"alpha"`
}

func DefaultMPSKSNREstParams(t SNREstType) MPSKSNREstParams {
	return MPSKSNREstParams{
		Type:        t,
		TagNSamples: DefaultTagNSamples,
		Alpha:       DefaultAlpha,
	}
}

type SNROption func(*MPSKSNREstParams, **zap.Logger)

func WithTagNSamples(n int) SNROption {
	return func(p *MPSKSNREstParams, _ **zap.Logger) { p.TagNSamples = n }
}

func WithAlpha(alpha float64) SNROption {
	return func(p *MPSKSNREstParams, _ **zap.Logger) { p.Alpha = alpha }
}

func WithLogger(logger *zap.Logger) SNROption {
	return func(_ *MPSKSNREstParams, l **zap.Logger) { *l = logger }
}

// MPSKSNREstCC passes a complex M-PSK stream through unchanged while
// estimating its SNR. Every TagNSample items it tags the stream with the
// current estimate under SNRTagKey.
type MPSKSNREstCC struct {
	*block.Base

	mtx      sync.Mutex
	typ      SNREstType
	est      SNREstimator
	nsamples int
	count    int
}

func NewMPSKSNREstCC(t SNREstType, opts ...SNROption) (*MPSKSNREstCC, error) {
	p := DefaultMPSKSNREstParams(t)
	var logger *zap.Logger
	for _, opt := range opts {
		opt(&p, &logger)
	}

	b, err := NewMPSKSNREstCCFromParams(p)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		b.SetLogger(logger)
	}
	return b, nil
}

func NewMPSKSNREstCCFromParams(p MPSKSNREstParams) (*MPSKSNREstCC, error) {
	if p.TagNSamples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTagInterval, p.TagNSamples)
	}
	est, err := NewSNREstimator(p.Type, p.Alpha)
	if err != nil {
		return nil, err
	}

	return &MPSKSNREstCC{
		Base:     block.NewBase("mpsk_snr_est_cc", block.ComplexStream, block.ComplexStream, nil),
		typ:      p.Type,
		est:      est,
		nsamples: p.TagNSamples,
	}, nil
}

// ToBasicBlock returns the generic handle of the block.
func (b *MPSKSNREstCC) ToBasicBlock() block.BasicBlock { return b }

// SNR is the current estimate in dB. It is NaN or infinite until enough
// signal has been seen.
func (b *MPSKSNREstCC) SNR() float64 {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.est.SNR()
}

func (b *MPSKSNREstCC) Type() SNREstType {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.typ
}

func (b *MPSKSNREstCC) TagNSample() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.nsamples
}

func (b *MPSKSNREstCC) Alpha() float64 {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.est.Alpha()
}

// SetType switches the estimator. The new estimator starts from scratch
// with the current alpha.
func (b *MPSKSNREstCC) SetType(t SNREstType) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	est, err := NewSNREstimator(t, b.est.Alpha())
	if err != nil {
		return err
	}
	b.typ = t
	b.est = est
	return nil
}

func (b *MPSKSNREstCC) SetTagNSample(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTagInterval, n)
	}

	b.mtx.Lock()
	defer b.mtx.Unlock()

	// realign to the new period: the next tag lands on the first multiple
	// of n at or after the next item
	total := b.NItemsWritten()
	b.nsamples = n
	b.count = int(total % uint64(n))
	if b.count == 0 && total > 0 {
		b.count = n
	}
	return nil
}

func (b *MPSKSNREstCC) SetAlpha(alpha float64) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	return b.est.SetAlpha(alpha)
}

func (b *MPSKSNREstCC) Work(in, out []complex64) (int, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	start := b.NItemsWritten()
	idx := 0

	// Tags land on the first item after each full window, so they always
	// sit at multiples of nsamples in absolute item offsets.
	for idx+(b.nsamples-b.count) < len(in) {
		x := b.nsamples - b.count
		b.est.Update(in[idx : idx+x])
		idx += x
		b.count = 0

		snr := b.est.SNR()
		offset := start + uint64(idx)
		b.AddItemTag(offset, SNRTagKey, snr)
		b.Logger().Debug("snr estimate",
			zap.Uint64("offset", offset),
			zap.Stringer("type", b.typ),
			zap.Float64("snr_db", snr))
	}

	b.est.Update(in[idx:])
	b.count += len(in) - idx

	copy(out, in)
	return len(in), nil
}
