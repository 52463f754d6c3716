// SPDX-License-Identifier: EPL-2.0

package digital

import (
	"fmt"
	"math"
	"strings"

	"github.com/ik5/grblocks/utils"
)

// SNREstType selects the estimation algorithm used for M-PSK signals.
type SNREstType int

const (
	// SNREstSimple compares the squared mean envelope with its variance.
	SNREstSimple SNREstType = iota
	// SNREstSkew corrects the simple estimate with the envelope skewness.
	SNREstSkew
	// SNREstM2M4 uses the second and fourth moments; it needs no carrier
	// or phase lock.
	SNREstM2M4
	// SNREstSVR is the signal-to-variation ratio estimator.
	SNREstSVR
)

var snrEstNames = [...]string{"simple", "skew", "m2m4", "svr"}

func (t SNREstType) String() string {
	if t < 0 || int(t) >= len(snrEstNames) {
		return fmt.Sprintf("SNREstType(%d)", int(t))
	}
	return snrEstNames[t]
}

// Valid reports whether t names a known estimator.
func (t SNREstType) Valid() bool {
	return t >= 0 && int(t) < len(snrEstNames)
}

// ParseSNREstType accepts the estimator name (case insensitive) or its
// numeric value.
func ParseSNREstType(s string) (SNREstType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range snrEstNames {
		if s == name || s == fmt.Sprint(i) {
			return SNREstType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEstimator, s)
}

// SNREstimator accumulates moments of a complex signal and reports the
// current SNR estimate in dB.
type SNREstimator interface {
	Update(in []complex64)
	SNR() float64
	Alpha() float64
	SetAlpha(alpha float64) error
}

// NewSNREstimator builds the estimator for t with averaging factor alpha.
func NewSNREstimator(t SNREstType, alpha float64) (SNREstimator, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}

	avg := smoother{alpha: alpha, beta: 1 - alpha}
	switch t {
	case SNREstSimple:
		return &simpleEst{smoother: avg}, nil
	case SNREstSkew:
		return &skewEst{smoother: avg}, nil
	case SNREstM2M4:
		return &m2m4Est{smoother: avg}, nil
	case SNREstSVR:
		return &svrEst{smoother: avg}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownEstimator, int(t))
}

func checkAlpha(alpha float64) error {
	if !(alpha >= 0 && alpha <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidAlpha, alpha)
	}
	return nil
}

// smoother holds the single-pole averaging factors shared by all
// estimators: avg = alpha*x + (1-alpha)*avg.
type smoother struct {
	alpha float64
	beta  float64
}

func (s *smoother) Alpha() float64 { return s.alpha }

func (s *smoother) SetAlpha(alpha float64) error {
	if err := checkAlpha(alpha); err != nil {
		return err
	}
	s.alpha = alpha
	s.beta = 1 - alpha
	return nil
}

func (s *smoother) avg(acc *float64, x float64) {
	*acc = s.alpha*x + s.beta**acc
}

type simpleEst struct {
	smoother
	y1, y2 float64
}

func (e *simpleEst) Update(in []complex64) {
	for _, x := range in {
		e.avg(&e.y1, utils.Mag(x))
		e.avg(&e.y2, utils.MagSquared(x))
	}
}

// SNR treats the envelope variance as the noise power. Circular noise only
// shows its radial half in the envelope, so for M-PSK the estimate reads
// about 3 dB above the true SNR.
func (e *simpleEst) SNR() float64 {
	signal := e.y1 * e.y1
	noise := e.y2 - signal
	return 10 * math.Log10(signal/noise)
}

type skewEst struct {
	smoother
	y1, y2, y3 float64
}

func (e *skewEst) Update(in []complex64) {
	for _, x := range in {
		m := utils.Mag(x)
		e.avg(&e.y1, m)
		e.avg(&e.y2, m*m)
		d := m - e.y1
		e.avg(&e.y3, d*d*d)
	}
}

func (e *skewEst) SNR() float64 {
	signal := e.y1 * e.y1
	variance := e.y2 - signal
	skew := e.y3 * e.y3 / (variance * variance * variance)
	return 10 * math.Log10(signal/variance/(1+skew))
}

type m2m4Est struct {
	smoother
	y1, y2 float64
}

func (e *m2m4Est) Update(in []complex64) {
	for _, x := range in {
		p := utils.MagSquared(x)
		e.avg(&e.y1, p)
		e.avg(&e.y2, p*p)
	}
}

func (e *m2m4Est) SNR() float64 {
	signal := math.Sqrt(2*e.y1*e.y1 - e.y2)
	noise := e.y1 - signal
	return 10 * math.Log10(signal/noise)
}

type svrEst struct {
	smoother
	y1, y2 float64
	prev   float64 // |x|^2 of the last sample of the previous update
	seeded bool
}

// Update pairs every sample with the one before it. The very first sample
// only seeds prev.
func (e *svrEst) Update(in []complex64) {
	for _, x := range in {
		p := utils.MagSquared(x)
		if !e.seeded {
			e.prev = p
			e.seeded = true
			continue
		}
		e.avg(&e.y1, p*e.prev)
		e.avg(&e.y2, p*p)
		e.prev = p
	}
}

func (e *svrEst) SNR() float64 {
	beta := e.y1 / (e.y2 - e.y1)
	return 10 * math.Log10(beta-1+math.Sqrt(beta*(beta-1)))
}
