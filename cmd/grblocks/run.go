// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ik5/grblocks/block"
	"github.com/ik5/grblocks/config"
	"github.com/ik5/grblocks/digital"
	"github.com/ik5/grblocks/flowgraph"
	"github.com/ik5/grblocks/formats"
	"github.com/ik5/grblocks/formats/wav"
	"github.com/ik5/grblocks/registry"
	"github.com/ik5/grblocks/stream"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// `grblocks run` command
func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <graph.json>",
		Short: "Runs a graph file",
		Long:  "Runs the blocks of a graph file over its input and writes the output as 16-bit WAV.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := config.Load(a.fs, args[0])
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), cmd.OutOrStdout(), g)
		},
	}
}

func (a *app) run(ctx context.Context, w io.Writer, g *config.Graph) error {
	blocks, err := g.Build(registry.NewDefault(a.logger))
	if err != nil {
		return err
	}

	src, err := a.open(g)
	if err != nil {
		return err
	}
	// the flow graph closes src when it runs; this covers the early returns
	defer src.Close()

	var enc *wav.Encoder
	if g.Output != "" {
		f, err := a.fs.Create(g.Output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()

		channels := src.Channels()
		if g.IQ {
			channels = 2
		}
		if enc, err = wav.NewEncoder(f, src.SampleRate(), channels); err != nil {
			return err
		}
	}

	opts := []flowgraph.Option{flowgraph.WithBufSize(g.BufferSize), flowgraph.WithLogger(a.logger)}

	var stats flowgraph.Stats
	if g.IQ {
		iq, err := stream.NewIQSource(src)
		if err != nil {
			return err
		}
		var sink flowgraph.Sink[complex64] = flowgraph.Discard[complex64]()
		if enc != nil {
			sink = flowgraph.Interleave(enc)
		}
		stats, err = runGraph(ctx, flowgraph.New[complex64](iq, sink, opts...), blocks)
		if err != nil {
			return err
		}
	} else {
		var sink flowgraph.Sink[float32] = flowgraph.Discard[float32]()
		if enc != nil {
			sink = enc
		}
		stats, err = runGraph(ctx, flowgraph.New[float32](src, sink, opts...), blocks)
		if err != nil {
			return err
		}
	}

	if enc != nil {
		if err := enc.Close(); err != nil {
			return fmt.Errorf("finishing output: %w", err)
		}
	}

	rate := float64(src.SampleRate())
	for _, tag := range stats.Tags {
		if tag.Key != digital.SNRTagKey {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%.3fs\t%.2f dB\n", tag.Source, tag.Offset, float64(tag.Offset)/rate, tag.Value)
	}
	a.logger.Info("run complete",
		zap.String("run", stats.RunID),
		zap.Uint64("items", stats.Items),
		zap.Duration("elapsed", stats.Elapsed))
	return nil
}

func runGraph[T stream.Sample](ctx context.Context, fg *flowgraph.Graph[T], blocks []block.BasicBlock) (flowgraph.Stats, error) {
	if err := fg.Connect(blocks...); err != nil {
		return flowgraph.Stats{}, err
	}
	return fg.Run(ctx)
}

// open decodes the input and applies the resampling and down mixing the
// graph asks for.
func (a *app) open(g *config.Graph) (stream.Float, error) {
	dec, err := formats.ForPath(formats.Registry(), g.Input)
	if err != nil {
		return nil, err
	}
	f, err := a.fs.Open(g.Input)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", g.Input, err)
	}
	src = closeWith(src, f)

	if g.Mono && !g.IQ {
		src = stream.NewMonoMixer(src)
	}
	if g.SampleRate > 0 && g.SampleRate != src.SampleRate() {
		a.logger.Debug("resampling input",
			zap.Int("from", src.SampleRate()),
			zap.Int("to", g.SampleRate))
		src = stream.NewResampler(src, g.SampleRate)
	}
	return src, nil
}

// fileSource closes the underlying file together with the decoder. Close
// may be called more than once.
type fileSource struct {
	stream.Float
	f io.Closer

	once sync.Once
	err  error
}

func closeWith(src stream.Float, f io.Closer) stream.Float {
	return &fileSource{Float: src, f: f}
}

func (s *fileSource) Close() error {
	s.once.Do(func() {
		s.err = multierr.Append(s.Float.Close(), s.f.Close())
	})
	return s.err
}
