// SPDX-License-Identifier: EPL-2.0

// Package analog contains analog-domain blocks.
//
// AGC2FF keeps a float signal near a reference amplitude:
//
//	agc := analog.NewAGC2FF(analog.WithDecayRate(1e-3))
//	out := block.Apply[float32, float32](src, agc)
//
// Every parameter has a getter and a setter; setters are safe to call while
// the block is running.
package analog
