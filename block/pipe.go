// SPDX-License-Identifier: EPL-2.0

package block

import (
	"fmt"

	"github.com/ik5/grblocks/stream"
)

type producer interface {
	Produce(n int)
}

// Call runs one Work call of b and the bookkeeping around it: the item
// counters advance by the produced count and the tags the call added are
// returned.
func Call[In, Out stream.Sample](b SyncBlock[In, Out], in []In, out []Out) (int, []stream.Tag, error) {
	m, err := b.Work(in, out)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", b.Alias(), err)
	}
	if m > len(in) {
		return 0, nil, fmt.Errorf("%s: %w", b.Alias(), ErrOverProduce)
	}
	if c, ok := b.(producer); ok {
		c.Produce(m)
	}
	return m, stream.DrainTags(b), nil
}

// Pipe runs a sync block over a source and is itself a source of the
// block's output. Tags from upstream pass through at their original offsets
// together with the tags the block adds.
type Pipe[In, Out stream.Sample] struct {
	src  stream.Source[In]
	blk  SyncBlock[In, Out]
	buf  []In
	tags []stream.Tag
}

// Apply connects src to the input of b.
func Apply[In, Out stream.Sample](src stream.Source[In], b SyncBlock[In, Out]) *Pipe[In, Out] {
	return &Pipe[In, Out]{
		src: src,
		blk: b,
		buf: make([]In, src.BufSize()),
	}
}

func (p *Pipe[In, Out]) SampleRate() int { return p.src.SampleRate() }
func (p *Pipe[In, Out]) Channels() int   { return p.src.Channels() }
func (p *Pipe[In, Out]) BufSize() int    { return p.src.BufSize() }

// Block returns the wrapped block.
func (p *Pipe[In, Out]) Block() SyncBlock[In, Out] { return p.blk }

func (p *Pipe[In, Out]) Close() error {
	err := p.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (p *Pipe[In, Out]) ReadSamples(dst []Out) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if cap(p.buf) < len(dst) {
		p.buf = make([]In, len(dst))
	}
	p.buf = p.buf[:len(dst)]

	n, err := p.src.ReadSamples(p.buf)
	p.tags = append(p.tags, stream.DrainTags(p.src)...)
	if n == 0 {
		return 0, err
	}

	m, tags, werr := Call(p.blk, p.buf[:n], dst)
	if werr != nil {
		return 0, werr
	}
	p.tags = append(p.tags, tags...)

	return m, err
}

// Tags returns upstream and block tags seen since the last call, ordered by
// offset.
func (p *Pipe[In, Out]) Tags() []stream.Tag {
	out := p.tags
	p.tags = nil
	sortTags(out)
	return out
}
