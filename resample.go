// SPDX-License-Identifier: EPL-2.0

package grblocks

import (
	"fmt"
	"io"

	"github.com/ik5/grblocks/stream"
	"github.com/ik5/grblocks/utils"
)

// ResampleToMono16 resamples src to targetRate, mixes it down to mono and
// returns the whole stream as 16-bit PCM together with its rate.
func ResampleToMono16(src stream.Float, targetRate int, bufferSize int) ([]int16, int, error) {
	if bufferSize <= 0 {
		return nil, targetRate, fmt.Errorf("%w: %d", stream.ErrInvalidBufSize, bufferSize)
	}

	mono := stream.NewMonoMixer(stream.NewResampler(src, targetRate))
	buf := make([]float32, bufferSize)
	pcm16 := make([]int16, 0, targetRate)

	for {
		n, err := mono.ReadSamples(buf)
		for _, v := range buf[:n] {
			pcm16 = append(pcm16, utils.Float32ToInt16(v))
		}
		if err == io.EOF {
			return pcm16, targetRate, nil
		}
		if err != nil {
			return nil, targetRate, fmt.Errorf("resampling: %w", err)
		}
	}
}
