// SPDX-License-Identifier: EPL-2.0

// Package config reads graph description files.
//
// A graph file is JSON:
//
//	{
//	  "input": "capture.wav",
//	  "output": "out.wav",
//	  "sample_rate": 48000,
//	  "iq": true,
//	  "blocks": [
//	    {"name": "iir_filter_ccf", "params": {"fftaps": [0.5, 0.5], "fbtaps": [1]}},
//	    {"name": "mpsk_snr_est_cc", "params": {"type": "m2m4", "tag_nsamples": 4800}}
//	  ]
//	}
//
// With iq set the input must be stereo and is read as I/Q pairs.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ik5/grblocks/block"
	"github.com/ik5/grblocks/registry"
	"github.com/spf13/afero"
)

const DefaultBufferSize = 4096

var (
	ErrNoBlocks      = errors.New("graph has no blocks")
	ErrNoInput       = errors.New("graph has no input")
	ErrInvalidConfig = errors.New("invalid graph file")
)

// BlockSpec names a block and its parameters.
type BlockSpec struct {
	Name   string         `json:"name"`
	Alias  string         `json:"alias,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

// Graph is a decoded graph file.
type Graph struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	// SampleRate resamples the input when set; 0 keeps the file rate.
	SampleRate int  `json:"sample_rate,omitempty"`
	IQ         bool `json:"iq,omitempty"`
	// Mono mixes a real input down to one channel.
	Mono       bool        `json:"mono,omitempty"`
	BufferSize int         `json:"buffer_size,omitempty"`
	Blocks     []BlockSpec `json:"blocks"`
}

// Load reads and validates the graph file at path.
func Load(fs afero.Fs, path string) (*Graph, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading graph: %w", err)
	}
	return Parse(data)
}

// Parse decodes a graph file. Unknown fields are rejected.
func Parse(data []byte) (*Graph, error) {
	var g Graph
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if g.BufferSize <= 0 {
		g.BufferSize = DefaultBufferSize
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

func (g *Graph) Validate() error {
	if g.Input == "" {
		return ErrNoInput
	}
	if len(g.Blocks) == 0 {
		return ErrNoBlocks
	}
	for i, b := range g.Blocks {
		if b.Name == "" {
			return fmt.Errorf("%w: block %d has no name", ErrInvalidConfig, i)
		}
	}
	if g.SampleRate < 0 {
		return fmt.Errorf("%w: sample_rate %d", ErrInvalidConfig, g.SampleRate)
	}
	return nil
}

// Build creates the blocks in file order.
func (g *Graph) Build(r *registry.Registry) ([]block.BasicBlock, error) {
	out := make([]block.BasicBlock, 0, len(g.Blocks))
	for i, spec := range g.Blocks {
		b, err := r.Make(spec.Name, spec.Params)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		if spec.Alias != "" {
			b.SetAlias(spec.Alias)
		}
		out = append(out, b)
	}
	return out, nil
}

// Kind is the item type the blocks of g run on.
func (g *Graph) Kind() block.Kind {
	if g.IQ {
		return block.KindComplex
	}
	return block.KindFloat
}
