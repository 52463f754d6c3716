// SPDX-License-Identifier: EPL-2.0

package flowgraph

import (
	"context"
	"errors"
	"testing"

	"github.com/ik5/grblocks/analog"
	"github.com/ik5/grblocks/block"
	"github.com/ik5/grblocks/digital"
	"github.com/ik5/grblocks/filter"
	"github.com/ik5/grblocks/internal/streamtest"
	"github.com/ik5/grblocks/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGraph_FloatChain(t *testing.T) {
	t.Parallel()

	in := make([]float32, 10000)
	for i := range in {
		in[i] = 0.01
	}

	agc := analog.NewAGC2FF(analog.WithAttackRate(0.5), analog.WithDecayRate(0.5))
	sink := &Buffer[float32]{}
	g := New[float32](stream.NewSliceSource(8000, 1, in, 512), sink)
	require.NoError(t, g.Connect(agc.ToBasicBlock()))

	stats, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, len(in), stats.Items)
	assert.NotEmpty(t, stats.RunID)

	out := sink.Samples()
	require.Len(t, out, len(in))
	assert.InDelta(t, 1.0, out[len(out)-1], 1e-3)
	assert.EqualValues(t, len(in), agc.NItemsWritten())
}

func TestGraph_ComplexChainTags(t *testing.T) {
	t.Parallel()

	iir, err := filter.NewIIRFilterCCF([]float64{1}, []float64{1})
	require.NoError(t, err)
	est, err := digital.NewMPSKSNREstCC(digital.SNREstM2M4, digital.WithTagNSamples(1000), digital.WithAlpha(0.01))
	require.NoError(t, err)

	samples := streamtest.QPSK(5000, 15, 1)
	sink := &Buffer[complex64]{}
	g := New[complex64](stream.NewSliceSource(1000, 1, samples, 300), sink, WithQueueDepth(1))
	require.NoError(t, g.Connect(iir.ToBasicBlock(), est.ToBasicBlock()))
	assert.Len(t, g.Blocks(), 2)

	stats, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, samples, sink.Samples())

	require.Len(t, stats.Tags, 4)
	for i, tag := range stats.Tags {
		assert.EqualValues(t, 1000*(i+1), tag.Offset)
		assert.Equal(t, digital.SNRTagKey, tag.Key)
		assert.Equal(t, est.Alias(), tag.Source)
		assert.InDelta(t, 15, tag.Value.(float64), 3)
	}
}

func TestGraph_ConnectRejectsWrongKind(t *testing.T) {
	t.Parallel()

	g := New[complex64](stream.NewSliceSource[complex64](1000, 1, nil, 0), Discard[complex64]())
	err := g.Connect(analog.NewAGC2FF().ToBasicBlock())
	require.ErrorIs(t, err, ErrNotSyncBlock)

	f := New[float32](stream.NewSliceSource[float32](1000, 1, nil, 0), Discard[float32]())
	est, err := digital.NewMPSKSNREstCC(digital.SNREstSimple)
	require.NoError(t, err)
	require.ErrorIs(t, f.Connect(est.ToBasicBlock()), ErrNotSyncBlock)
}

// mislabeled claims complex output while processing floats.
type mislabeled struct{ *block.Base }

func (mislabeled) Work(in, out []float32) (int, error) { return copy(out, in), nil }

func TestGraph_ConnectChecksSignatures(t *testing.T) {
	t.Parallel()

	bad := mislabeled{block.NewBase("mislabeled", block.FloatStream, block.ComplexStream, nil)}
	g := New[float32](stream.NewSliceSource[float32](1000, 1, nil, 0), Discard[float32]())
	require.NoError(t, g.Connect(bad))
	require.ErrorIs(t, g.Connect(analog.NewAGC2FF()), block.ErrSignatureMismatch)
}

func TestGraph_BufSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
		want int
	}{
		{name: "source size", want: 10000},
		{name: "explicit default size", opts: []Option{WithBufSize(DefaultBufSize)}, want: DefaultBufSize},
		{name: "explicit size", opts: []Option{WithBufSize(1000)}, want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			largest := 0
			sink := SinkFunc[float32](func(samples []float32) error {
				largest = max(largest, len(samples))
				return nil
			})

			src := stream.NewSliceSource(8000, 1, make([]float32, 10000), 20000)
			g := New[float32](src, sink, tt.opts...)
			require.NoError(t, g.Connect(analog.NewAGC2FF()))

			stats, err := g.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, uint64(10000), stats.Items)
			assert.Equal(t, tt.want, largest)
		})
	}
}

func TestGraph_SinkError(t *testing.T) {
	t.Parallel()

	errFull := errors.New("disk full")
	calls := 0
	sink := SinkFunc[float32](func([]float32) error {
		calls++
		if calls == 2 {
			return errFull
		}
		return nil
	})

	src := streamtest.NewSineSource(8000, 1, 100000, 440)
	g := New[float32](src, sink, WithBufSize(256))
	require.NoError(t, g.Connect(analog.NewAGC2FF()))

	_, err := g.Run(context.Background())
	require.ErrorIs(t, err, errFull)
	assert.True(t, src.Closed())
}

func TestGraph_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := New[float32](streamtest.NewSilentSource(8000, 1, 1<<20), Discard[float32]())
	_, err := g.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGraph_NoSink(t *testing.T) {
	t.Parallel()

	g := New[float32](streamtest.NewSilentSource(8000, 1, 10), nil)
	_, err := g.Run(context.Background())
	require.ErrorIs(t, err, ErrNoSink)
}

func TestGraph_Logs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	g := New[float32](streamtest.NewSilentSource(8000, 1, 10), Discard[float32](), WithLogger(zap.New(core)))

	stats, err := g.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, logs.FilterMessage("flowgraph started").Len())
	done := logs.FilterMessage("flowgraph finished").All()
	require.Len(t, done, 1)
	fields := done[0].ContextMap()
	assert.Equal(t, stats.RunID, fields["run"])
	assert.EqualValues(t, 10, fields["items"])
}

func TestInterleave(t *testing.T) {
	t.Parallel()

	buf := &Buffer[float32]{}
	sink := Interleave(buf)
	require.NoError(t, sink.Write([]complex64{complex(1, 2), complex(3, 4)}))
	require.NoError(t, sink.Write([]complex64{complex(5, 6)}))
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, buf.Samples())
}
