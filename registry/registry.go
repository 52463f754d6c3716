// SPDX-License-Identifier: EPL-2.0

package registry

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/ik5/grblocks/block"
	"go.uber.org/zap"
)

// Factory describes how to build one kind of block from named parameters.
type Factory struct {
	Name string
	Doc  string
	In   block.Kind
	Out  block.Kind

	// Defaults returns a fresh map of the optional parameters and their
	// default values.
	Defaults func() map[string]any
	// Required parameters have no default and must be supplied.
	Required []string
	// Build receives the defaults overlaid with the caller's parameters.
	Build func(params map[string]any) (block.BasicBlock, error)
}

// Registry maps block names to factories.
type Registry struct {
	factories map[string]Factory
	logger    *zap.Logger

	mtx *sync.RWMutex
}

// New returns an empty registry. Blocks built by Make get logger attached
// when they accept one; a nil logger leaves the block default.
func New(logger *zap.Logger) *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		logger:    logger,
		mtx:       &sync.RWMutex{},
	}
}

func (r *Registry) Register(f Factory) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.factories[f.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBlock, f.Name)
	}
	r.factories[f.Name] = f
	return nil
}

func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered block names in sorted order.
func (r *Registry) Names() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return slices.Sorted(maps.Keys(r.factories))
}

// Make builds the named block. params may be nil when the block has no
// required parameters.
func (r *Registry) Make(name string, params map[string]any) (block.BasicBlock, error) {
	f, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBlock, name)
	}

	merged := map[string]any{}
	if f.Defaults != nil {
		merged = f.Defaults()
	}
	maps.Copy(merged, params)

	for _, key := range f.Required {
		if _, ok := merged[key]; !ok {
			return nil, fmt.Errorf("%s: %w: %s", name, ErrMissingParam, key)
		}
	}

	b, err := f.Build(merged)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if r.logger != nil {
		if l, ok := b.(interface{ SetLogger(*zap.Logger) }); ok {
			l.SetLogger(r.logger)
		}
		r.logger.Debug("block created",
			zap.String("block", b.Alias()),
			zap.Any("params", merged))
	}
	return b, nil
}
