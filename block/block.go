// SPDX-License-Identifier: EPL-2.0

package block

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/ik5/grblocks/stream"
	"go.uber.org/zap"
)

// BasicBlock is the generic handle every block converts to. It carries the
// identity and port signatures a flow graph needs to connect blocks without
// knowing their concrete types.
type BasicBlock interface {
	Name() string
	UniqueID() int64
	Alias() string
	SetAlias(alias string)
	InputSignature() IOSignature
	OutputSignature() IOSignature
}

// SyncBlock produces exactly one output item per input item.
type SyncBlock[In, Out stream.Sample] interface {
	BasicBlock
	// Work processes in into out (len(out) >= len(in)) and returns the
	// number of items produced.
	Work(in []In, out []Out) (int, error)
}

var nextID atomic.Int64

// Base implements BasicBlock and the item/tag bookkeeping shared by all
// blocks. Concrete blocks embed a *Base.
type Base struct {
	name string
	id   int64
	in   IOSignature
	out  IOSignature

	mtx      sync.Mutex
	alias    string
	nread    uint64
	nwritten uint64
	tags     []stream.Tag

	logger *zap.Logger
}

func NewBase(name string, in, out IOSignature, logger *zap.Logger) *Base {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := nextID.Add(1) - 1
	alias := fmt.Sprintf("%s%d", name, id)

	return &Base{
		name:   name,
		id:     id,
		in:     in,
		out:    out,
		alias:  alias,
		logger: logger.With(zap.String("block", alias)),
	}
}

func (b *Base) Name() string                 { return b.name }
func (b *Base) UniqueID() int64              { return b.id }
func (b *Base) InputSignature() IOSignature  { return b.in }
func (b *Base) OutputSignature() IOSignature { return b.out }
func (b *Base) Logger() *zap.Logger          { return b.logger }

func (b *Base) Alias() string {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	return b.alias
}

func (b *Base) SetAlias(alias string) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.alias = alias
}

// SetLogger replaces the block logger.
func (b *Base) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	b.logger = logger.With(zap.String("block", b.Alias()))
}

// NItemsRead is the number of input items consumed so far.
func (b *Base) NItemsRead() uint64 {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	return b.nread
}

// NItemsWritten is the number of output items produced so far.
func (b *Base) NItemsWritten() uint64 {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	return b.nwritten
}

// Produce records n items consumed and produced by one Work call.
func (b *Base) Produce(n int) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.nread += uint64(n)
	b.nwritten += uint64(n)
}

// AddItemTag attaches a tag to the output item at the absolute offset.
func (b *Base) AddItemTag(offset uint64, key string, value any) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.tags = append(b.tags, stream.Tag{
		Offset: offset,
		Key:    key,
		Value:  value,
		Source: b.alias,
	})
}

// Tags returns and clears the tags added since the last call.
func (b *Base) Tags() []stream.Tag {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	out := b.tags
	b.tags = nil
	return out
}

// CheckConnect verifies that up's output can feed down's input.
func CheckConnect(up, down BasicBlock) error {
	o, i := up.OutputSignature(), down.InputSignature()
	if o.Kind != i.Kind || o.MaxStreams == 0 || i.MaxStreams == 0 {
		return fmt.Errorf("%w: %s %s -> %s %s", ErrSignatureMismatch, up.Alias(), o, down.Alias(), i)
	}
	return nil
}

func sortTags(tags []stream.Tag) {
	sort.SliceStable(tags, func(i, j int) bool { return tags[i].Offset < tags[j].Offset })
}
