// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"fmt"
	"io"

	"github.com/ik5/grblocks/utils"
)

// Resampler streams from src to a target sample rate using cubic
// interpolation. It works on interleaved frames and keeps the channel count.
// When downsampling, a one-pole low-pass smooths the input first.
type Resampler struct {
	src      Float
	srcRate  uint64
	dstRate  uint64
	channels int

	// hist[0..3] hold frames t-1, t0, t+1, t+2 around the interpolation point
	hist  [4][]float32
	valid [4]bool
	base  uint64 // source index of hist[1]
	out   uint64 // output frames produced

	primed bool
	eof    bool

	smooth bool
	alpha  float32
	state  []float32
	warm   bool
}

func NewResampler(src Float, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		srcRate:  uint64(src.SampleRate()),
		dstRate:  uint64(dstRate),
		channels: channels,
		smooth:   src.SampleRate() > dstRate,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls one frame into dst. It reports false once the source is
// exhausted.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	if r.eof {
		return false, nil
	}

	for {
		n, err := r.src.ReadSamples(dst)
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("resample: %w", err)
		}

		if n >= r.channels {
			break
		}
		if r.eof {
			return false, nil
		}
	}

	if r.smooth {
		if !r.warm {
			copy(r.state, dst)
			r.warm = true
		}
		for c := range r.channels {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	ok, err := r.readFrame(r.hist[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.hist[0], r.hist[1])
	r.valid[0], r.valid[1] = true, true

	for i := 2; i < 4; i++ {
		ok, err := r.readFrame(r.hist[i])
		if err != nil {
			return err
		}
		r.valid[i] = ok
	}

	r.primed = true
	return nil
}

// advance shifts the history window by one source frame.
func (r *Resampler) advance() error {
	r.hist[0], r.hist[1], r.hist[2], r.hist[3] = r.hist[1], r.hist[2], r.hist[3], r.hist[0]
	r.valid[0], r.valid[1], r.valid[2] = r.valid[1], r.valid[2], r.valid[3]

	ok, err := r.readFrame(r.hist[3])
	if err != nil {
		return err
	}
	r.valid[3] = ok

	if !r.valid[1] {
		return io.EOF
	}
	return nil
}

// ReadSamples produces samples at the target rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		// output frame k sits at source position k*srcRate/dstRate; keeping
		// it rational avoids drift over long streams
		pos := r.out * r.srcRate
		for r.base < pos/r.dstRate {
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
			r.base++
		}

		x := float32(float64(pos%r.dstRate) / float64(r.dstRate))
		for c := range r.channels {
			// past the last source frame the edge sample is repeated
			y2 := r.hist[1][c]
			if r.valid[2] {
				y2 = r.hist[2][c]
			}
			y3 := y2
			if r.valid[3] {
				y3 = r.hist[3][c]
			}
			dst[written*r.channels+c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], y2, y3, x)
		}

		written++
		r.out++
	}

	return written * r.channels, nil
}
