// SPDX-License-Identifier: EPL-2.0

// Package grblocks is a set of streaming signal processing blocks: an
// automatic gain control for real signals, an SNR estimator for M-PSK
// baseband and an IIR filter for complex samples.
//
// # Layout
//
//   - stream: pull based sample sources, tags, resampling, I/Q adapters
//   - block: the generic block handle and the sync block contract
//   - analog: AGC2FF
//   - digital: MPSKSNREstCC and its estimators
//   - filter: IIRFilterCCF and frequency response helpers
//   - registry: blocks by name with defaulted parameters
//   - flowgraph: runs a chain of blocks, one goroutine per stage
//   - config: JSON graph files
//   - formats: WAV, AIFF, MP3 and Ogg Vorbis decoders, WAV encoder
//
// # Quick Start
//
// Blocks are built with functional options and fed through a flow graph:
//
//	agc := analog.NewAGC2FF(analog.WithReference(0.5))
//	g := flowgraph.New(src, &flowgraph.Buffer[float32]{})
//	if err := g.Connect(agc.ToBasicBlock()); err != nil {
//	    return err
//	}
//	stats, err := g.Run(ctx)
//
// The same blocks can be created from loosely typed parameters:
//
//	b, err := registry.Default().Make("mpsk_snr_est_cc", map[string]any{"type": "m2m4"})
//
// EstimateSNR and ResampleToMono16 wrap the most common uses.
package grblocks
