package bower

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// ViewElement composes a View into a parent with the same lifecycle as
// Element. The declaration applies to the view's root: options are merged
// onto it, declared children are mounted under it, and layout positions it.
type ViewElement[V View] struct {
	scene *Scene
	view  V
	init  ViewInitializer[V]
	host  *Element
	dead  bool
}

// NewViewElement wraps view. init may be nil.
func NewViewElement[V View](s *Scene, view V, init ViewInitializer[V]) *ViewElement[V] {
	if s == nil {
		panic("bower: NewViewElement with nil scene")
	}
	return &ViewElement[V]{
		scene: s,
		view:  view,
		init:  init,
		host:  &Element{id: uuid.New(), scene: s, search: make(map[string]*Node)},
	}
}

// ID returns the element's identity.
func (ve *ViewElement[V]) ID() uuid.UUID {
	return ve.host.id
}

// View returns the wrapped view.
func (ve *ViewElement[V]) View() V {
	return ve.view
}

// Ready reports whether the view has been initialized and not destroyed.
func (ve *ViewElement[V]) Ready() bool {
	return !ve.dead && ve.host.Ready()
}

// InitializeElement loads the declared assets, initializes the view under
// parent with the scene and its context, then applies the declaration to the
// view's root.
func (ve *ViewElement[V]) InitializeElement(ctx context.Context, parent *Node) error {
	if ve.dead {
		return ErrDestroyed
	}
	if parent == nil {
		return notInitialized("ViewElement", "Parent")
	}
	b, p, err := ve.prepare(ctx)
	if err != nil {
		ve.scene.logger.Error("view initialization failed", "id", ve.ID(), "err", err)
		return err
	}
	if err := ve.view.InitializeView(ctx, ve.scene, parent, ve.scene.Context()); err != nil {
		return err
	}
	if err := ve.apply(b, p); err != nil {
		return err
	}
	ve.scene.logger.Debug("view initialized", "id", ve.ID(), "label", ve.view.Root().Label)
	ve.scene.emit(LifecycleEvent{Kind: LifecycleInitialized, ElementID: ve.ID(), Label: ve.view.Root().Label})
	return nil
}

// UpdateElement refreshes the view, then reapplies the declaration to its
// root.
func (ve *ViewElement[V]) UpdateElement(ctx context.Context) error {
	if ve.dead {
		return ErrDestroyed
	}
	if ve.view.Root() == nil {
		return notInitialized("ViewElement", "View")
	}
	b, p, err := ve.prepare(ctx)
	if err != nil {
		ve.scene.logger.Error("view update failed", "id", ve.ID(), "err", err)
		return err
	}
	if err := ve.view.RefreshView(ctx); err != nil {
		return err
	}
	if err := ve.apply(b, p); err != nil {
		return err
	}
	ve.scene.logger.Debug("view updated", "id", ve.ID(), "label", ve.view.Root().Label)
	ve.scene.emit(LifecycleEvent{Kind: LifecycleUpdated, ElementID: ve.ID(), Label: ve.view.Root().Label})
	return nil
}

// DestroyElement destroys the declared children and the view.
func (ve *ViewElement[V]) DestroyElement() {
	if ve.dead {
		return
	}
	label := ""
	if root := ve.view.Root(); root != nil {
		label = root.Label
	}
	for _, child := range ve.host.children {
		child.DestroyElement()
	}
	ve.host.children = nil
	ve.host.node = nil
	ve.host.state = stateDestroyed
	ve.view.DestroyView()
	ve.dead = true
	ve.scene.logger.Debug("view destroyed", "id", ve.ID(), "label", label)
	ve.scene.emit(LifecycleEvent{Kind: LifecycleDestroyed, ElementID: ve.ID(), Label: label})
}

func (ve *ViewElement[V]) prepare(ctx context.Context) (*ViewBuilder[V], *plan, error) {
	b := &ViewBuilder[V]{Builder: NewBuilder(ve.scene.layout)}
	if ve.init != nil {
		ve.init(b)
	}
	p, err := ve.host.prepareFrom(ctx, b.Builder)
	if err != nil {
		return nil, nil, err
	}
	return b, p, nil
}

func (ve *ViewElement[V]) apply(b *ViewBuilder[V], p *plan) error {
	root := ve.view.Root()
	if root == nil {
		return notInitialized("ViewElement", "View root")
	}
	if err := ve.host.adopt(root, p); err != nil {
		return err
	}
	for _, load := range b.loads {
		load(ve.view)
	}
	return nil
}

// ViewElementPool is a keyed, dynamic collection of view elements sharing
// one container node.
type ViewElementPool[K comparable, V View] struct {
	scene     *Scene
	container *Element
	entries   map[K]*ViewElement[V]
	order     []K
}

// NewViewElementPool declares a pool whose container is configured by init.
// init may be nil.
func NewViewElementPool[K comparable, V View](s *Scene, init Initializer) *ViewElementPool[K, V] {
	return &ViewElementPool[K, V]{
		scene:     s,
		container: NewElement(s, NewContainer, init),
		entries:   make(map[K]*ViewElement[V]),
	}
}

// InitializeElement builds the container under parent.
func (p *ViewElementPool[K, V]) InitializeElement(ctx context.Context, parent *Node) error {
	return p.container.InitializeElement(ctx, parent)
}

// UpdateElement updates the container, then every entry in insertion order.
func (p *ViewElementPool[K, V]) UpdateElement(ctx context.Context) error {
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
func (p *ViewElementPool[K, V]) DestroyElement() {
	p.Clear()
	p.container.DestroyElement()
}

// Container returns the pool's own node, or nil before initialization.
func (p *ViewElementPool[K, V]) Container() *Node {
	return p.container.Node()
}

// Add initializes view under the pool's container and stores it under key.
// An existing entry for key is destroyed first. On failure nothing is
// stored.
func (p *ViewElementPool[K, V]) Add(ctx context.Context, key K, view V, init ViewInitializer[V]) (*ViewElement[V], error) {
	parent := p.container.Node()
	if parent == nil || !p.container.Ready() {
		return nil, notInitialized("ViewElementPool", "Container")
	}
	if prev, ok := p.entries[key]; ok {
		p.scene.logger.Warn("pool key replaced", "key", fmt.Sprint(key))
		prev.DestroyElement()
		p.forget(key)
	}

	ve := NewViewElement(p.scene, view, init)
	if err := ve.InitializeElement(ctx, parent); err != nil {
		ve.DestroyElement()
		return nil, err
	}
	p.entries[key] = ve
	p.order = append(p.order, key)
	return ve, nil
}

// Get returns the entry for key.
func (p *ViewElementPool[K, V]) Get(key K) (*ViewElement[V], bool) {
	ve, ok := p.entries[key]
	return ve, ok
}

// Delete destroys and removes the entry for key. A missing key is a no-op.
func (p *ViewElementPool[K, V]) Delete(key K) {
	ve, ok := p.entries[key]
	if !ok {
		return
	}
	ve.DestroyElement()
	p.forget(key)
}

// Clear destroys and removes every entry.
func (p *ViewElementPool[K, V]) Clear() {
	for _, k := range p.order {
		p.entries[k].DestroyElement()
	}
	clear(p.entries)
	p.order = p.order[:0]
}

// Len returns the number of entries.
func (p *ViewElementPool[K, V]) Len() int {
	return len(p.entries)
}

// Keys returns the keys in insertion order.
func (p *ViewElementPool[K, V]) Keys() []K {
	return slices.Clone(p.order)
}

// Views returns the wrapped views in insertion order.
func (p *ViewElementPool[K, V]) Views() []V {
	views := make([]V, 0, len(p.order))
	for _, k := range p.order {
		views = append(views, p.entries[k].view)
	}
	return views
}

func (p *ViewElementPool[K, V]) forget(key K) {
	delete(p.entries, key)
	if i := slices.Index(p.order, key); i >= 0 {
		p.order = slices.Delete(p.order, i, i+1)
	}
}
