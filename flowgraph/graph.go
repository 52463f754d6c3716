// SPDX-License-Identifier: EPL-2.0

package flowgraph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/grblocks/block"
	"github.com/ik5/grblocks/stream"
	"github.com/rs/xid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Stats summarizes a finished run.
type Stats struct {
	RunID   string
	Items   uint64
	Tags    []stream.Tag
	Elapsed time.Duration
}

// chunk is the unit passed between stages.
type chunk[T stream.Sample] struct {
	data []T
	tags []stream.Tag
}

// Graph is a linear chain source -> blocks -> sink over one item type.
type Graph[T stream.Sample] struct {
	src    stream.Source[T]
	blocks []block.SyncBlock[T, T]
	sink   Sink[T]
	opts   options

	running atomic.Bool
}

func New[T stream.Sample](src stream.Source[T], sink Sink[T], opts ...Option) *Graph[T] {
	o := options{
		bufSize: DefaultBufSize,
		depth:   DefaultQueueDepth,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if bs := src.BufSize(); bs > 0 && !o.bufSizeSet {
		o.bufSize = bs
	}

	return &Graph[T]{src: src, sink: sink, opts: o}
}

// Connect appends blocks to the chain. Every block must process items of
// the graph type and accept the output of the block before it.
func (g *Graph[T]) Connect(blocks ...block.BasicBlock) error {
	kind := block.KindOf[T]()

	for _, b := range blocks {
		sb, ok := b.(block.SyncBlock[T, T])
		if !ok {
			return fmt.Errorf("%w: %s on %s items", ErrNotSyncBlock, b.Alias(), kind)
		}
		if n := len(g.blocks); n > 0 {
			if err := block.CheckConnect(g.blocks[n-1], b); err != nil {
				return err
			}
		} else if in := b.InputSignature(); in.Kind != kind {
			return fmt.Errorf("%w: source %s -> %s %s", block.ErrSignatureMismatch, kind, b.Alias(), in)
		}
		g.blocks = append(g.blocks, sb)
	}
	return nil
}

// Blocks returns the connected blocks in order.
func (g *Graph[T]) Blocks() []block.BasicBlock {
	out := make([]block.BasicBlock, len(g.blocks))
	for i, b := range g.blocks {
		out[i] = b
	}
	return out
}

// Run streams the source through every block into the sink until the
// source is exhausted, a stage fails or ctx is done. Each stage runs in its
// own goroutine. The source is closed when Run returns.
func (g *Graph[T]) Run(ctx context.Context) (Stats, error) {
	if g.sink == nil {
		return Stats{}, ErrNoSink
	}
	if !g.running.CompareAndSwap(false, true) {
		return Stats{}, ErrRunning
	}
	defer g.running.Store(false)

	stats := Stats{RunID: xid.New().String()}
	logger := g.opts.logger.With(zap.String("run", stats.RunID))
	start := time.Now()

	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mtx  sync.Mutex
		errs error
	)
	fail := func(err error) {
		mtx.Lock()
		errs = multierr.Append(errs, err)
		mtx.Unlock()
		cancel()
	}

	logger.Info("flowgraph started",
		zap.Int("blocks", len(g.blocks)),
		zap.Int("sample_rate", g.src.SampleRate()),
		zap.Int("buf_size", g.opts.bufSize))

	in := make(chan chunk[T], g.opts.depth)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(in)
		if err := g.read(ctx, in); err != nil {
			fail(err)
		}
	}()

	for _, b := range g.blocks {
		out := make(chan chunk[T], g.opts.depth)
		wg.Add(1)
		go func(b block.SyncBlock[T, T], in <-chan chunk[T], out chan<- chunk[T]) {
			defer wg.Done()
			defer close(out)
			if err := work(ctx, b, in, out); err != nil {
				fail(err)
			}
		}(b, in, out)
		in = out
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for c := range in {
			if ctx.Err() != nil {
				continue
			}
			if err := g.sink.Write(c.data); err != nil {
				fail(fmt.Errorf("sink: %w", err))
				continue
			}
			stats.Items += uint64(len(c.data))
			stats.Tags = append(stats.Tags, c.tags...)
		}
	}()

	wg.Wait()

	if err := g.src.Close(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("closing source: %w", err))
	}
	if errs == nil {
		errs = parent.Err()
	}
	stats.Elapsed = time.Since(start)

	fields := []zap.Field{
		zap.Uint64("items", stats.Items),
		zap.Int("tags", len(stats.Tags)),
		zap.Duration("elapsed", stats.Elapsed),
	}
	if errs != nil {
		logger.Error("flowgraph failed", append(fields, zap.Error(errs))...)
	} else {
		logger.Info("flowgraph finished", fields...)
	}
	return stats, errs
}

func (g *Graph[T]) read(ctx context.Context, out chan<- chunk[T]) error {
	for {
		buf := make([]T, g.opts.bufSize)
		n, err := g.src.ReadSamples(buf)
		tags := stream.DrainTags(g.src)

		if n > 0 || len(tags) > 0 {
			select {
			case out <- chunk[T]{data: buf[:n], tags: tags}:
			case <-ctx.Done():
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("source: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func work[T stream.Sample](ctx context.Context, b block.SyncBlock[T, T], in <-chan chunk[T], out chan<- chunk[T]) error {
	for c := range in {
		if ctx.Err() != nil {
			continue
		}

		dst := make([]T, len(c.data))
		n, tags, err := block.Call(b, c.data, dst)
		if err != nil {
			return err
		}

		select {
		case out <- chunk[T]{data: dst[:n], tags: append(c.tags, tags...)}:
		case <-ctx.Done():
		}
	}
	return nil
}
