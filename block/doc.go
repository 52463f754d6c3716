// SPDX-License-Identifier: EPL-2.0

// Package block defines the generic block handle and the glue that runs a
// block over a stream.
//
// Every concrete block (analog.AGC2FF, digital.MPSKSNREstCC,
// filter.IIRFilterCCF) embeds a *Base and offers ToBasicBlock, which returns
// it as a BasicBlock: a name, a unique id, an alias and the signatures of
// its input and output ports. Flow graphs work with that handle and
// CheckConnect to validate wiring.
//
// A SyncBlock maps one input item to one output item. Apply turns a source
// and a sync block into a new source:
//
//	agc := analog.NewAGC2FF()
//	out := block.Apply[float32, float32](src, agc)
//	n, err := out.ReadSamples(buf)
package block
