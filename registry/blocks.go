// SPDX-License-Identifier: EPL-2.0

package registry

import (
	"github.com/ik5/grblocks/analog"
	"github.com/ik5/grblocks/block"
	"github.com/ik5/grblocks/digital"
	"github.com/ik5/grblocks/filter"
	"go.uber.org/zap"
)

// AGC2FF builds analog.AGC2FF.
var AGC2FF = Factory{
	Name: "agc2_ff",
	Doc:  "Float AGC with separate attack and decay rates",
	In:   block.KindFloat,
	Out:  block.KindFloat,
	Defaults: func() map[string]any {
		p := analog.DefaultAGC2Params()
		return map[string]any{
			"attack_rate": p.AttackRate,
			"decay_rate":  p.DecayRate,
			"reference":   p.Reference,
			"gain":        p.Gain,
			"max_gain":    p.MaxGain,
		}
	},
	Build: func(params map[string]any) (block.BasicBlock, error) {
		var p analog.AGC2Params
		if err := decode(params, &p); err != nil {
			return nil, err
		}
		return analog.NewAGC2FFFromParams(p).ToBasicBlock(), nil
	},
}

// MPSKSNREstCC builds digital.MPSKSNREstCC. The estimator type may be given
// by name or by number.
var MPSKSNREstCC = Factory{
	Name: "mpsk_snr_est_cc",
	Doc:  "M-PSK SNR estimator that tags the stream with the estimate",
	In:   block.KindComplex,
	Out:  block.KindComplex,
	Defaults: func() map[string]any {
		return map[string]any{
			"tag_nsamples": digital.DefaultTagNSamples,
			"alpha":        digital.DefaultAlpha,
		}
	},
	Required: []string{"type"},
	Build: func(params map[string]any) (block.BasicBlock, error) {
		var p digital.MPSKSNREstParams
		if err := decode(params, &p); err != nil {
			return nil, err
		}
		b, err := digital.NewMPSKSNREstCCFromParams(p)
		if err != nil {
			return nil, err
		}
		return b.ToBasicBlock(), nil
	},
}

// IIRFilterCCF builds filter.IIRFilterCCF.
var IIRFilterCCF = Factory{
	Name: "iir_filter_ccf",
	Doc:  "IIR filter with real taps over a complex stream",
	In:   block.KindComplex,
	Out:  block.KindComplex,
	Defaults: func() map[string]any {
		return map[string]any{"oldstyle": true}
	},
	Required: []string{"fftaps", "fbtaps"},
	Build: func(params map[string]any) (block.BasicBlock, error) {
		var p filter.IIRParams
		if err := decode(params, &p); err != nil {
			return nil, err
		}
		b, err := filter.NewIIRFilterCCFFromParams(p)
		if err != nil {
			return nil, err
		}
		return b.ToBasicBlock(), nil
	},
}

// Default returns a registry holding every block of this module.
func Default() *Registry { return NewDefault(nil) }

// NewDefault is Default with a logger handed to every block it makes.
func NewDefault(logger *zap.Logger) *Registry {
	r := New(logger)
	for _, f := range []Factory{AGC2FF, MPSKSNREstCC, IIRFilterCCF} {
		// names are distinct
		_ = r.Register(f)
	}
	return r
}
