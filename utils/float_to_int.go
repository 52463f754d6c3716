// SPDX-License-Identifier: EPL-2.0

package utils

const (
	pcm16Pos = 32767.0
	pcm16Neg = 32768.0
)

// Float32ToInt16 clamps x to [-1,1] and scales it to 16-bit PCM. The
// positive and negative halves use their own full scale so both -1 and 1
// reach the int16 limits.
func Float32ToInt16(x float32) int16 {
	switch {
	case x >= 1:
		return 32767
	case x <= -1:
		return -32768
	case x < 0:
		return int16(x * pcm16Neg)
	}
	return int16(x * pcm16Pos)
}

// Int16ToFloat32 maps 16-bit PCM into [-1,1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / pcm16Neg
}
