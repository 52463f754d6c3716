// SPDX-License-Identifier: EPL-2.0

package analog

import (
	"math"
	"sync"

	"github.com/ik5/grblocks/block"
	"go.uber.org/zap"
)

const (
	DefaultAttackRate = 0.1
	DefaultDecayRate  = 0.01
	DefaultReference  = 1.0
	DefaultGain       = 1.0
	// DefaultMaxGain caps the gain; 0 disables the cap.
	DefaultMaxGain = 65536.0

	// minGain replaces a gain that was driven below zero.
	minGain = 1e-4
)

// AGC2Params are the named construction parameters of AGC2FF.
type AGC2Params struct {
	AttackRate float64 `mapstructure:"attack_rate" json:"attack_rate"`
	DecayRate  float64 `mapstructure:"decay_rate" json:"decay_rate"`
	Reference  float64 `mapstructure:"reference" json:"reference"`
	Gain       float64 `mapstructure:"gain" json:"gain"`
	MaxGain    float64 `mapstructure:"max_gain" json:"max_gain"`
}

func DefaultAGC2Params() AGC2Params {
	return AGC2Params{
		AttackRate: DefaultAttackRate,
		DecayRate:  DefaultDecayRate,
		Reference:  DefaultReference,
		Gain:       DefaultGain,
		MaxGain:    DefaultMaxGain,
	}
}

// AGC2Option mutates AGC2Params before the block is built.
type AGC2Option func(*AGC2Params, **zap.Logger)

func WithAttackRate(rate float64) AGC2Option {
	return func(p *AGC2Params, _ **zap.Logger) { p.AttackRate = rate }
}

func WithDecayRate(rate float64) AGC2Option {
	return func(p *AGC2Params, _ **zap.Logger) { p.DecayRate = rate }
}

func WithReference(reference float64) AGC2Option {
	return func(p *AGC2Params, _ **zap.Logger) { p.Reference = reference }
}

func WithGain(gain float64) AGC2Option {
	return func(p *AGC2Params, _ **zap.Logger) { p.Gain = gain }
}

func WithMaxGain(maxGain float64) AGC2Option {
	return func(p *AGC2Params, _ **zap.Logger) { p.MaxGain = maxGain }
}

func WithLogger(logger *zap.Logger) AGC2Option {
	return func(_ *AGC2Params, l **zap.Logger) { *l = logger }
}

// AGC2FF is a float automatic gain control with separate attack and decay
// rates. The gain moves quickly (attack) when the output overshoots the
// reference by a wide margin and slowly (decay) otherwise.
type AGC2FF struct {
	*block.Base

	mtx       sync.Mutex
	attack    float64
	decay     float64
	reference float64
	gain      float64
	maxGain   float64
}

// NewAGC2FF builds the block with the default parameters overridden by opts.
func NewAGC2FF(opts ...AGC2Option) *AGC2FF {
	p := DefaultAGC2Params()
	var logger *zap.Logger
	for _, opt := range opts {
		opt(&p, &logger)
	}

	a := NewAGC2FFFromParams(p)
	if logger != nil {
		a.SetLogger(logger)
	}
	return a
}

// NewAGC2FFFromParams builds the block from a complete parameter set.
func NewAGC2FFFromParams(p AGC2Params) *AGC2FF {
	return &AGC2FF{
		Base:      block.NewBase("agc2_ff", block.FloatStream, block.FloatStream, nil),
		attack:    p.AttackRate,
		decay:     p.DecayRate,
		reference: p.Reference,
		gain:      p.Gain,
		maxGain:   p.MaxGain,
	}
}

// ToBasicBlock returns the generic handle of the block.
func (a *AGC2FF) ToBasicBlock() block.BasicBlock { return a }

func (a *AGC2FF) AttackRate() float64 {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return a.attack
}

func (a *AGC2FF) DecayRate() float64 {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return a.decay
}

func (a *AGC2FF) Reference() float64 {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return a.reference
}

// Gain is the current gain, which evolves as samples are processed.
func (a *AGC2FF) Gain() float64 {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return a.gain
}

func (a *AGC2FF) MaxGain() float64 {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return a.maxGain
}

func (a *AGC2FF) SetAttackRate(rate float64) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.attack = rate
}

func (a *AGC2FF) SetDecayRate(rate float64) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.decay = rate
}

func (a *AGC2FF) SetReference(reference float64) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.reference = reference
}

func (a *AGC2FF) SetGain(gain float64) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.gain = gain
}

func (a *AGC2FF) SetMaxGain(maxGain float64) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.maxGain = maxGain
}

// scale applies the current gain to one sample and updates the gain.
// Callers hold a.mtx.
func (a *AGC2FF) scale(x float32) float32 {
	out := float64(x) * a.gain
	diff := math.Abs(out) - a.reference

	rate := a.decay
	if diff > a.gain {
		rate = a.attack
	}
	a.gain -= diff * rate

	if a.gain < 0 {
		a.gain = minGain
	}
	if a.maxGain > 0 && a.gain > a.maxGain {
		a.gain = a.maxGain
	}

	return float32(out)
}

func (a *AGC2FF) Work(in, out []float32) (int, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	for i, x := range in {
		out[i] = a.scale(x)
	}
	if a.maxGain > 0 && a.gain >= a.maxGain {
		a.Logger().Debug("gain pinned at maximum", zap.Float64("max_gain", a.maxGain))
	}
	return len(in), nil
}

// Scale runs the AGC over buf in place.
func (a *AGC2FF) Scale(buf []float32) {
	_, _ = a.Work(buf, buf)
}
