package bower

import (
	"context"
)

// View is a self-contained subsystem with its own root node. A ViewElement
// composes it into a parent like any other element.
type View interface {
	// InitializeView builds the view under parent. Calling it again rebuilds
	// the view from scratch.
	InitializeView(ctx context.Context, s *Scene, parent *Node, vc ViewContext) error
	// RefreshView re-evaluates the view against the current scene state.
	RefreshView(ctx context.Context) error
	// Root returns the view's top-level node, or nil before initialization.
	Root() *Node
	DestroyView()
}

// ViewContext is the read-only state a scene shares with every view.
type ViewContext struct {
	Model      any
	TextStyles map[string]TextStyle
}

// Style returns the named text style.
func (vc ViewContext) Style(name string) (TextStyle, error) {
	st, ok := vc.TextStyles[name]
	if !ok {
		return TextStyle{}, &NotFoundError{Host: "ViewContext", Label: name}
	}
	return st, nil
}

// Composer declares the parts of a view. It runs on every initialization
// against a fresh root, so parts it creates belong to that pass only.
type Composer func(v *BaseView)

// BaseView implements View for views assembled from Lifecycle parts. Embed a
// *BaseView in a struct to build a concrete view:
//
//	type HUD struct {
//		*bower.BaseView
//		score *bower.Element
//	}
//
//	func NewHUD() *HUD {
//		h := &HUD{}
//		h.BaseView = bower.NewBaseView(func(v *bower.BaseView) {
//			h.score = bower.NewElement(v.Scene(), bower.NewText, func(b *bower.Builder) {
//				b.Label("score").Layout(bower.PresetTopRightScreen)
//			})
//			v.Use(h.score)
//		})
//		return h
//	}
type BaseView struct {
	// OnLoad runs after every part has been initialized.
	OnLoad func(ctx context.Context) error

	compose Composer
	scene   *Scene
	parent  *Node
	root    *Node
	vc      ViewContext
	parts   []Lifecycle
	search  map[string]*Node
}

// NewBaseView returns a view whose parts are declared by compose. compose
// may be nil for a view with an empty root.
func NewBaseView(compose Composer) *BaseView {
	return &BaseView{
		compose: compose,
		search:  make(map[string]*Node),
	}
}

// InitializeView creates the root under parent, runs the composer and
// initializes each registered part in registration order. A previous root is
// destroyed first.
func (v *BaseView) InitializeView(ctx context.Context, s *Scene, parent *Node, vc ViewContext) error {
	if s == nil {
		return notInitialized("View", "Scene")
	}
	if parent == nil {
		return notInitialized("View", "Parent")
	}
	if v.root != nil {
		v.DestroyView()
	}

	v.scene = s
	v.parent = parent
	v.vc = vc
	v.root = NewContainer()
	parent.AddChild(v.root)

	if v.compose != nil {
		v.compose(v)
	}
	for _, part := range v.parts {
		if err := part.InitializeElement(ctx, v.root); err != nil {
			return err
		}
	}
	if v.OnLoad != nil {
		return v.OnLoad(ctx)
	}
	return nil
}

// RefreshView updates every part in registration order. Layout is
// re-evaluated against the scene's current viewport.
func (v *BaseView) RefreshView(ctx context.Context) error {
	if v.root == nil {
		return notInitialized("View", "Root")
	}
	clear(v.search)
	for _, part := range v.parts {
		if err := part.UpdateElement(ctx); err != nil {
			return err
		}
	}
	return nil
}

// DestroyView destroys every part and the root.
func (v *BaseView) DestroyView() {
	for i := len(v.parts) - 1; i >= 0; i-- {
		v.parts[i].DestroyElement()
	}
	v.parts = nil
	if v.root != nil {
		v.root.Dispose()
		v.root = nil
	}
	clear(v.search)
}

// Root returns the view's root container.
func (v *BaseView) Root() *Node {
	return v.root
}

// Use registers parts for initialization. It is meant to be called from the
// composer.
func (v *BaseView) Use(parts ...Lifecycle) {
	v.parts = append(v.parts, parts...)
}

// Scene returns the scene passed to the last InitializeView.
func (v *BaseView) Scene() *Scene {
	return v.scene
}

// Context returns the view context passed to the last InitializeView.
func (v *BaseView) Context() ViewContext {
	return v.vc
}

// Child returns the first node below the root carrying label. Hits are
// memoized until the next initialize or refresh.
func (v *BaseView) Child(label string) (*Node, error) {
	if v.root == nil {
		return nil, notInitialized("View", "Root")
	}
	if n, ok := v.search[label]; ok {
		return n, nil
	}
	for _, c := range v.root.Children() {
		if n := c.FindByLabel(label); n != nil {
			v.search[label] = n
			return n, nil
		}
	}
	return nil, &NotFoundError{Host: "View", Label: label}
}
