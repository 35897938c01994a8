package bower

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Initializer declares a node by configuring a builder. It runs again on
// every initialize and update, so it must be a pure description of intent.
type Initializer func(b *Builder)

// option writes one property onto a node.
type option func(n *Node)

// optionBag is a keyed set of options: last write wins, first declaration
// fixes the application order.
type optionBag struct {
	keys   []string
	values map[string]option
}

func (o *optionBag) set(key string, fn option) {
	if o.values == nil {
		o.values = make(map[string]option)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = fn
}

func (o *optionBag) has(key string) bool {
	_, ok := o.values[key]
	return ok
}

func (o *optionBag) apply(n *Node) {
	for _, k := range o.keys {
		o.values[k](n)
	}
}

// Option keys. Asset fields share the bag so a loaded asset overwrites any
// literal value set under the same key.
const (
	optLabel       = "label"
	optVisible     = "visible"
	optAlpha       = "alpha"
	optScale       = "scale"
	optZIndex      = "zIndex"
	optAnchor      = "anchor"
	optTint        = "tint"
	optText        = "text"
	optTextStyle   = "style"
	optInteractive = "interactive"
	optCursor      = "cursor"
	optTexture     = "texture"
)

type assetRequest struct {
	field string
	name  string
	bind  func(tex *Texture) option
}

type eventBinding struct {
	event   EventType
	handler Listener
}

type childDecl struct {
	ctor Constructor
	init Initializer
}

// Builder accumulates the declaration of one node. Every setter returns the
// builder so calls chain:
//
//	b.Label("title").Layout(bower.PresetTopScreen).Shift(bower.DirectionDown, bower.Pixels(40))
type Builder struct {
	layout *LayoutManager

	options   optionBag
	positions []PositionChange
	sizes     []SizeChange
	assets    []assetRequest
	events    []eventBinding
	draws     []func(g *Graphics)
	filters   []Filter
	children  []childDecl
	actions   []func(n *Node)

	err error
}

// NewBuilder creates an empty builder whose layout changes use lm.
func NewBuilder(lm *LayoutManager) *Builder {
	return &Builder{layout: lm}
}

// Err returns the first declaration error, such as an unknown color name.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func (b *Builder) set(key string, fn option) *Builder {
	b.options.set(key, fn)
	return b
}

// --- Static options ---

// Label names the node for Element.Object lookups.
func (b *Builder) Label(label string) *Builder {
	return b.set(optLabel, func(n *Node) { n.Label = label })
}

// Hidden hides or shows the node.
func (b *Builder) Hidden(hidden bool) *Builder {
	return b.set(optVisible, func(n *Node) { n.Visible = !hidden })
}

// Alpha sets the node opacity.
func (b *Builder) Alpha(alpha float64) *Builder {
	return b.set(optAlpha, func(n *Node) { n.Alpha = alpha })
}

// Scale sets the node scale.
func (b *Builder) Scale(sx, sy float64) *Builder {
	return b.set(optScale, func(n *Node) { n.SetScale(sx, sy) })
}

// ZIndex sets the node's sibling order.
func (b *Builder) ZIndex(z int) *Builder {
	return b.set(optZIndex, func(n *Node) { n.ZIndex = z })
}

// Anchor sets the normalized content origin of sprites and text.
func (b *Builder) Anchor(ax, ay float64) *Builder {
	return b.set(optAnchor, func(n *Node) { n.SetAnchor(ax, ay) })
}

// Tint sets the node color multiplier.
func (b *Builder) Tint(c Color) *Builder {
	return b.set(optTint, func(n *Node) { n.Tint = c })
}

// TintNamed sets the tint from a CSS color name or hex literal. An unknown
// name is reported when the node is initialized.
func (b *Builder) TintNamed(name string) *Builder {
	c, err := ColorByName(name)
	if err != nil {
		return b.fail(err)
	}
	return b.Tint(c)
}

// Text sets the content of a text node.
func (b *Builder) Text(content string) *Builder {
	return b.set(optText, func(n *Node) {
		if n.Text != nil {
			n.Text.Content = content
		}
	})
}

// TextStyle sets the style of a text node.
func (b *Builder) TextStyle(style TextStyle) *Builder {
	return b.set(optTextStyle, func(n *Node) {
		if n.Text != nil {
			n.Text.Style = style
		}
	})
}

// Interactive marks the node as a pointer target with a pointer cursor.
func (b *Builder) Interactive() *Builder {
	b.set(optInteractive, func(n *Node) { n.Interactive = true })
	return b.set(optCursor, func(n *Node) { n.Cursor = ebiten.CursorShapePointer })
}

// --- Deferred layout ---

// Position appends a change that moves the node to p.
func (b *Builder) Position(p Vec2) *Builder {
	b.positions = append(b.positions, func(*Node) (Vec2, error) { return p, nil })
	return b
}

// Layout appends a preset position change.
func (b *Builder) Layout(preset Preset) *Builder {
	b.positions = append(b.positions, b.layout.PositionPreset(preset, nil))
	return b
}

// LayoutWithin appends a preset position change that uses bounding in place
// of the parent size.
func (b *Builder) LayoutWithin(preset Preset, bounding Size) *Builder {
	b.positions = append(b.positions, b.layout.PositionPreset(preset, &bounding))
	return b
}

// Shift appends a change that moves the node along dir by amount.
func (b *Builder) Shift(dir Direction, amount Amount) *Builder {
	b.positions = append(b.positions, b.layout.PositionShift(dir, amount))
	return b
}

// ShiftBy is Shift with an amount written as "40" or "10%".
func (b *Builder) ShiftBy(dir Direction, amount string) *Builder {
	a, err := ParseAmount(amount)
	if err != nil {
		return b.fail(err)
	}
	return b.Shift(dir, a)
}

// Size appends a change that sets the node size to s.
func (b *Builder) Size(s Size) *Builder {
	b.sizes = append(b.sizes, func(*Node, Size) (Size, error) { return s, nil })
	return b
}

// Fill appends a size fill change.
func (b *Builder) Fill(fill Fill) *Builder {
	b.sizes = append(b.sizes, b.layout.SizeFill(fill))
	return b
}

// Padding appends a change that shrinks the size by p on every side.
func (b *Builder) Padding(p Vec2) *Builder {
	b.sizes = append(b.sizes, b.layout.SizePadding(p))
	return b
}

// --- Assets ---

// SpriteTexture requests the named texture for the node's texture field.
// The load completes before the node is constructed or updated.
func (b *Builder) SpriteTexture(name string) *Builder {
	return b.asset(optTexture, name, func(tex *Texture) option {
		return func(n *Node) { n.Texture = tex }
	})
}

func (b *Builder) asset(field, name string, bind func(*Texture) option) *Builder {
	for i := range b.assets {
		if b.assets[i].field == field {
			b.assets[i] = assetRequest{field: field, name: name, bind: bind}
			return b
		}
	}
	b.assets = append(b.assets, assetRequest{field: field, name: name, bind: bind})
	return b
}

// --- Behavior ---

// On binds handler to evt. Bindings replace the node's previous bindings on
// every pass.
func (b *Builder) On(evt EventType, handler Listener) *Builder {
	b.events = append(b.events, eventBinding{event: evt, handler: handler})
	return b
}

// Hover brightens the node while the pointer is over it.
func (b *Builder) Hover() *Builder {
	return b.OnAttach(attachHover)
}

// Draw appends a draw command. Commands only run on graphics nodes.
func (b *Builder) Draw(cmd func(g *Graphics)) *Builder {
	b.draws = append(b.draws, cmd)
	return b
}

// Filter appends a visual effect.
func (b *Builder) Filter(f Filter) *Builder {
	b.filters = append(b.filters, f)
	return b
}

// Child declares a nested node built by ctor and configured by init.
// Nothing is constructed until the parent is initialized.
func (b *Builder) Child(ctor Constructor, init Initializer) *Builder {
	b.children = append(b.children, childDecl{ctor: ctor, init: init})
	return b
}

// OnAttach appends an action that runs with the node after layout.
func (b *Builder) OnAttach(action func(n *Node)) *Builder {
	b.actions = append(b.actions, action)
	return b
}

// ViewInitializer declares a view element.
type ViewInitializer[V View] func(b *ViewBuilder[V])

// ViewBuilder is a Builder for a view's root with actions that receive the
// view itself once it has loaded.
type ViewBuilder[V View] struct {
	*Builder
	loads []func(v V)
}

// OnLoad appends an action that runs with the view after layout.
func (b *ViewBuilder[V]) OnLoad(action func(v V)) *ViewBuilder[V] {
	b.loads = append(b.loads, action)
	return b
}
