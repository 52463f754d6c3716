// SPDX-License-Identifier: EPL-2.0

package filter

import (
	"slices"
	"sync"

	"github.com/ik5/grblocks/block"
	"go.uber.org/zap"
)

// IIRParams are the named construction parameters of IIRFilterCCF.
type IIRParams struct {
	FFTaps   []float64 `mapstructure:"fftaps" json:"fftaps"`
	FBTaps   []float64 `mapstructure:"fbtaps" json:"fbtaps"`
	OldStyle bool      `mapstructure:"oldstyle" json:"oldstyle"`
}

type IIROption func(*IIRParams, **zap.Logger)

// WithOldStyle selects the feedback tap convention; the default is true.
func WithOldStyle(oldstyle bool) IIROption {
	return func(p *IIRParams, _ **zap.Logger) { p.OldStyle = oldstyle }
}

func WithLogger(logger *zap.Logger) IIROption {
	return func(_ *IIRParams, l **zap.Logger) { *l = logger }
}

// IIRFilterCCF filters a complex stream with real feed-forward and feedback
// taps.
type IIRFilterCCF struct {
	*block.Base

	mtx     sync.Mutex
	kernel  *IIRFilter
	ff, fb  []float64
	pending bool
}

func NewIIRFilterCCF(fftaps, fbtaps []float64, opts ...IIROption) (*IIRFilterCCF, error) {
	p := IIRParams{FFTaps: fftaps, FBTaps: fbtaps, OldStyle: true}
	var logger *zap.Logger
	for _, opt := range opts {
		opt(&p, &logger)
	}

	f, err := NewIIRFilterCCFFromParams(p)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		f.SetLogger(logger)
	}
	return f, nil
}

func NewIIRFilterCCFFromParams(p IIRParams) (*IIRFilterCCF, error) {
	kernel, err := NewIIRFilter(p.FFTaps, p.FBTaps, p.OldStyle)
	if err != nil {
		return nil, err
	}

	return &IIRFilterCCF{
		Base:   block.NewBase("iir_filter_ccf", block.ComplexStream, block.ComplexStream, nil),
		kernel: kernel,
		ff:     slices.Clone(p.FFTaps),
		fb:     slices.Clone(p.FBTaps),
	}, nil
}

// ToBasicBlock returns the generic handle of the block.
func (f *IIRFilterCCF) ToBasicBlock() block.BasicBlock { return f }

// SetTaps replaces both tap vectors. The change is picked up by the next
// Work call, which also clears the filter history.
func (f *IIRFilterCCF) SetTaps(fftaps, fbtaps []float64) error {
	if len(fftaps) == 0 || len(fbtaps) == 0 {
		return ErrEmptyTaps
	}

	f.mtx.Lock()
	defer f.mtx.Unlock()

	f.ff = slices.Clone(fftaps)
	f.fb = slices.Clone(fbtaps)
	f.pending = true
	return nil
}

// Taps returns copies of the most recently set tap vectors.
func (f *IIRFilterCCF) Taps() (fftaps, fbtaps []float64) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return slices.Clone(f.ff), slices.Clone(f.fb)
}

func (f *IIRFilterCCF) OldStyle() bool {
	return f.kernel.OldStyle()
}

func (f *IIRFilterCCF) Work(in, out []complex64) (int, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.pending {
		if err := f.kernel.SetTaps(f.ff, f.fb); err != nil {
			return 0, err
		}
		f.pending = false
		f.Logger().Debug("taps updated", zap.Int("fftaps", len(f.ff)), zap.Int("fbtaps", len(f.fb)))
	}

	f.kernel.FilterN(out, in)
	return len(in), nil
}
