package bower

import (
	"context"
	"fmt"
	"slices"
)

// ElementPool is a keyed, dynamic collection of elements sharing one
// container node. Entries can be added and removed after the pool is
// initialized.
type ElementPool[K comparable] struct {
	scene     *Scene
	container *Element
	ctor      Constructor
	entries   map[K]*Element
	order     []K
}

// NewElementPool declares a pool whose entries are built by ctor and whose
// container is configured by init. init may be nil.
func NewElementPool[K comparable](s *Scene, ctor Constructor, init Initializer) *ElementPool[K] {
	return &ElementPool[K]{
		scene:     s,
		container: NewElement(s, NewContainer, init),
		ctor:      ctor,
		entries:   make(map[K]*Element),
	}
}

// InitializeElement builds the container under parent.
func (p *ElementPool[K]) InitializeElement(ctx context.Context, parent *Node) error {
	return p.container.InitializeElement(ctx, parent)
}

// UpdateElement updates the container, then every entry in insertion order.
// The first failure stops the pass.
func (p *ElementPool[K]) UpdateElement(ctx context.Context) error {
	if err := p.container.UpdateElement(ctx); err != nil {
		return err
	}
	for _, k := range p.order {
		if err := p.entries[k].UpdateElement(ctx); err != nil {
			return err
		}
	}
	return nil
}

// DestroyElement destroys every entry and the container.
func (p *ElementPool[K]) DestroyElement() {
	p.Clear()
	p.container.DestroyElement()
}

// Container returns the pool's own node, or nil before initialization.
func (p *ElementPool[K]) Container() *Node {
	return p.container.Node()
}

// Add builds an element with the pool's constructor under the pool's container and stores it
// under key. An existing entry for key is destroyed first. On failure
// nothing is stored.
func (p *ElementPool[K]) Add(ctx context.Context, key K, init Initializer) (*Element, error) {
	parent := p.container.Node()
	if parent == nil || !p.container.Ready() {
		return nil, notInitialized("ElementPool", "Container")
	}
	if prev, ok := p.entries[key]; ok {
		p.scene.logger.Warn("pool key replaced", "key", fmt.Sprint(key))
		prev.DestroyElement()
		p.forget(key)
	}

	e := NewElement(p.scene, p.ctor, init)
	if err := e.InitializeElement(ctx, parent); err != nil {
		return nil, err
	}
	p.entries[key] = e
	p.order = append(p.order, key)
	return e, nil
}

// Get returns the entry for key.
func (p *ElementPool[K]) Get(key K) (*Element, bool) {
	e, ok := p.entries[key]
	return e, ok
}

// Delete destroys and removes the entry for key. A missing key is a no-op.
func (p *ElementPool[K]) Delete(key K) {
	e, ok := p.entries[key]
	if !ok {
		return
	}
	e.DestroyElement()
	p.forget(key)
}

// Clear destroys and removes every entry.
func (p *ElementPool[K]) Clear() {
	for _, k := range p.order {
		p.entries[k].DestroyElement()
	}
	clear(p.entries)
	p.order = p.order[:0]
}

// Len returns the number of entries.
func (p *ElementPool[K]) Len() int {
	return len(p.entries)
}

// Keys returns the keys in insertion order.
func (p *ElementPool[K]) Keys() []K {
	return slices.Clone(p.order)
}

func (p *ElementPool[K]) forget(key K) {
	delete(p.entries, key)
	if i := slices.Index(p.order, key); i >= 0 {
		p.order = slices.Delete(p.order, i, i+1)
	}
}
