package bower

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Lifecycle is the contract shared by every composable scene part: Element,
// ElementPool, ViewElement and ViewElementPool.
type Lifecycle interface {
	InitializeElement(ctx context.Context, parent *Node) error
	UpdateElement(ctx context.Context) error
	DestroyElement()
}

type elementState uint8

const (
	stateUninitialized elementState = iota
	stateInitializing
	stateReady
	stateDestroyed
)

var stateNames = [...]string{"uninitialized", "initializing", "ready", "destroyed"}

func (s elementState) String() string { return stateNames[s] }

// Element owns one concrete Node built from a declaration. Every initialize
// or update re-runs the declaration, rebuilds the children from scratch and
// reapplies layout.
//
// Calls on one Element must be serialized by the caller.
type Element struct {
	id    uuid.UUID
	scene *Scene
	ctor  Constructor
	init  Initializer

	state    elementState
	node     *Node
	children []*Element
	search   map[string]*Node
}

// NewElement declares an element built by ctor and configured by init.
// init may be nil.
func NewElement(s *Scene, ctor Constructor, init Initializer) *Element {
	if s == nil {
		panic("bower: NewElement with nil scene")
	}
	if ctor == nil {
		panic("bower: NewElement with nil constructor")
	}
	return &Element{
		id:     uuid.New(),
		scene:  s,
		ctor:   ctor,
		init:   init,
		search: make(map[string]*Node),
	}
}

// ID returns the element's identity, stable across updates.
func (e *Element) ID() uuid.UUID {
	return e.id
}

// Ready reports whether the element has completed initialization and has
// not been destroyed.
func (e *Element) Ready() bool {
	return e.state == stateReady
}

// Node returns the concrete node, or nil before the first initialization.
func (e *Element) Node() *Node {
	return e.node
}

// Children returns the child elements created by the last pass. The returned
// slice MUST NOT be mutated.
func (e *Element) Children() []*Element {
	return e.children
}

// Object returns the element's node when label is empty, or the first node
// carrying label in its subtree. Hits are memoized until the next pass.
func (e *Element) Object(label string) (*Node, error) {
	if e.state != stateReady || e.node == nil {
		return nil, notInitialized("Element", "Node")
	}
	if label == "" {
		return e.node, nil
	}
	if n, ok := e.search[label]; ok {
		return n, nil
	}
	n := e.node.FindByLabel(label)
	if n == nil {
		return nil, &NotFoundError{Host: "Element", Label: label}
	}
	e.search[label] = n
	return n, nil
}

// InitializeElement builds the node and its subtree and attaches it to
// parent. Every asset of the subtree is loaded before anything is
// constructed; on failure nothing is left attached to parent.
// Initializing a ready element replaces its previous node.
func (e *Element) InitializeElement(ctx context.Context, parent *Node) error {
	if e.state == stateDestroyed {
		return ErrDestroyed
	}
	if parent == nil {
		return notInitialized("Element", "Parent")
	}
	prev := e.state
	e.state = stateInitializing
	clear(e.search)

	p, err := e.prepare(ctx)
	if err != nil {
		e.state = prev
		e.logFailure("element initialization failed", err, "state", prev)
		return err
	}

	if e.node != nil {
		e.teardown()
	}
	if err := e.mount(p, parent); err != nil {
		e.logFailure("element initialization failed", err)
		return err
	}
	e.scene.logger.Debug("element initialized", "id", e.id, "label", e.node.Label, "children", len(e.children))
	e.scene.emit(LifecycleEvent{Kind: LifecycleInitialized, ElementID: e.id, Label: e.node.Label})
	return nil
}

// UpdateElement re-runs the declaration against the existing node: options
// are merged onto it in place, children are destroyed and rebuilt, and
// layout is reapplied. A failed asset load leaves the node untouched.
func (e *Element) UpdateElement(ctx context.Context) error {
	switch {
	case e.state == stateDestroyed:
		return ErrDestroyed
	case e.node == nil:
		return notInitialized("Element", "Node")
	}
	e.state = stateInitializing
	clear(e.search)

	p, err := e.prepare(ctx)
	if err != nil {
		e.state = stateReady
		e.logFailure("element update failed", err)
		return err
	}

	e.mergeOptions(p)
	err = e.commit(p)
	e.state = stateReady
	if err != nil {
		e.logFailure("element update failed", err)
		return err
	}
	e.scene.logger.Debug("element updated", "id", e.id, "label", e.node.Label, "children", len(e.children))
	e.scene.emit(LifecycleEvent{Kind: LifecycleUpdated, ElementID: e.id, Label: e.node.Label})
	return nil
}

// DestroyElement disposes the node and every owned child. The element
// cannot be used afterwards.
func (e *Element) DestroyElement() {
	if e.state == stateDestroyed {
		return
	}
	label := ""
	if e.node != nil {
		label = e.node.Label
	}
	e.teardown()
	e.state = stateDestroyed
	e.scene.logger.Debug("element destroyed", "id", e.id, "label", label)
	e.scene.emit(LifecycleEvent{Kind: LifecycleDestroyed, ElementID: e.id, Label: label})
}

// logFailure logs err at error level, naming the asset when a load failed.
func (e *Element) logFailure(msg string, err error, keyvals ...any) {
	keyvals = append([]any{"id", e.id}, keyvals...)
	var ae *AssetLoadError
	if errors.As(err, &ae) {
		keyvals = append(keyvals, "field", ae.Field, "asset", ae.Name)
	}
	e.scene.logger.Error(msg, append(keyvals, "err", err)...)
}

func (e *Element) teardown() {
	for _, child := range e.children {
		child.DestroyElement()
	}
	e.children = nil
	if e.node != nil {
		e.node.Dispose()
		e.node = nil
	}
	clear(e.search)
}

// --- Preparation ---

// plan is the resolved declaration of one element and its subtree.
type plan struct {
	elem     *Element
	builder  *Builder
	assets   []option
	children []*plan
}

// prepare runs the declarations of the whole subtree on the calling
// goroutine, then loads every requested asset concurrently. It never
// touches the node tree.
func (e *Element) prepare(ctx context.Context) (*plan, error) {
	return e.prepareFrom(ctx, e.declaration())
}

func (e *Element) prepareFrom(ctx context.Context, b *Builder) (*plan, error) {
	root, err := e.planFrom(b)
	if err != nil {
		return nil, err
	}
	if err := e.resolveAssets(ctx, root); err != nil {
		return nil, err
	}
	return root, nil
}

func (e *Element) declaration() *Builder {
	b := NewBuilder(e.scene.layout)
	if e.init != nil {
		e.init(b)
	}
	return b
}

func (e *Element) planFrom(b *Builder) (*plan, error) {
	if b.err != nil {
		return nil, b.err
	}
	p := &plan{elem: e, builder: b, assets: make([]option, len(b.assets))}
	for _, decl := range b.children {
		child := NewElement(e.scene, decl.ctor, decl.init)
		cp, err := child.planFrom(child.declaration())
		if err != nil {
			return nil, err
		}
		p.children = append(p.children, cp)
	}
	return p, nil
}

func (e *Element) resolveAssets(ctx context.Context, root *plan) error {
	type load struct {
		p   *plan
		idx int
	}
	var loads []load
	var walk func(p *plan)
	walk = func(p *plan) {
		for i := range p.builder.assets {
			loads = append(loads, load{p: p, idx: i})
		}
		for _, c := range p.children {
			walk(c)
		}
	}
	walk(root)
	if len(loads) == 0 {
		return nil
	}

	loader := e.scene.assets
	g, gctx := errgroup.WithContext(ctx)
	for _, l := range loads {
		req := l.p.builder.assets[l.idx]
		g.Go(func() error {
			if loader == nil {
				return &AssetLoadError{Field: req.field, Name: req.name, Err: notInitialized("Scene", "AssetLoader")}
			}
			tex, err := loader.LoadTexture(gctx, req.name)
			if err != nil {
				return &AssetLoadError{Field: req.field, Name: req.name, Err: err}
			}
			l.p.assets[l.idx] = req.bind(tex)
			return nil
		})
	}
	return g.Wait()
}

// --- Commit ---

// mount constructs the node, attaches it to parent and applies the plan.
// On failure the node and anything attached beneath it are disposed.
func (e *Element) mount(p *plan, parent *Node) error {
	e.state = stateInitializing
	n := e.ctor()
	e.node = n
	e.mergeOptions(p)
	parent.AddChild(n)

	if err := e.commit(p); err != nil {
		e.teardown()
		e.state = stateUninitialized
		return err
	}
	e.state = stateReady
	return nil
}

// adopt applies p to n, a node the caller constructed and attached. Children
// from a previous pass are destroyed even when n replaces the old node.
func (e *Element) adopt(n *Node, p *plan) error {
	e.state = stateInitializing
	e.node = n
	clear(e.search)
	e.mergeOptions(p)
	if err := e.commit(p); err != nil {
		e.state = stateUninitialized
		return err
	}
	e.state = stateReady
	return nil
}

func (e *Element) mergeOptions(p *plan) {
	n := e.node
	// Size chains fold from the natural size so reapplying them is stable.
	if len(p.builder.sizes) > 0 {
		n.SetScale(1, 1)
		n.tileW, n.tileH = 0, 0
	}
	p.builder.options.apply(n)
	for _, opt := range p.assets {
		opt(n)
	}
}

// commit runs everything after the options are merged: listeners, filters,
// draws, children, size and position chains, then post-attach actions.
func (e *Element) commit(p *plan) error {
	n := e.node

	n.RemoveAllListeners()
	for _, ev := range p.builder.events {
		n.On(ev.event, ev.handler)
	}

	n.Filters = append([]Filter(nil), p.builder.filters...)

	if n.Type == NodeTypeGraphics && n.Graphics != nil {
		n.Graphics.Clear()
		for _, draw := range p.builder.draws {
			draw(n.Graphics)
		}
	}

	for _, child := range e.children {
		child.DestroyElement()
	}
	e.children = e.children[:0]
	for _, cp := range p.children {
		if err := cp.elem.mount(cp, n); err != nil {
			return err
		}
		e.children = append(e.children, cp.elem)
	}

	if err := applySizeChain(n, p.builder.sizes); err != nil {
		return err
	}
	if err := applyPositionChain(n, p.builder.positions); err != nil {
		return err
	}

	for _, action := range p.builder.actions {
		action(n)
	}
	return nil
}
