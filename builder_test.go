package bower

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestBuilderChainReturnsSameBuilder(t *testing.T) {
	lm, _ := newTestLayout(800, 600)
	b := NewBuilder(lm)
	got := b.Label("x").Alpha(0.5).Scale(2, 2).ZIndex(1).Layout(PresetCenterScreen).
		Shift(DirectionUp, Pixels(1)).Size(Size{1, 1}).Padding(Vec2{}).Interactive()
	if got != b {
		t.Error("setter returned a different builder")
	}
}

func TestBuilderOptionsLastWriteWins(t *testing.T) {
	b := NewBuilder(nil)
	b.Label("first").Alpha(0.2).Label("second")
	n := NewContainer()
	b.options.apply(n)
	if n.Label != "second" || n.Alpha != 0.2 {
		t.Errorf("node = (%q, %v), want (second, 0.2)", n.Label, n.Alpha)
	}
	if len(b.options.keys) != 2 {
		t.Errorf("option keys = %v, want 2 entries", b.options.keys)
	}
}

func TestBuilderStaticOptions(t *testing.T) {
	b := NewBuilder(nil)
	style := TextStyle{Font: MonoFont{Advance: 1, Line: 1}, Align: TextAlignRight}
	b.Hidden(true).Anchor(0.5, 1).Tint(Color{1, 0, 0, 1}).Text("hi").TextStyle(style).Interactive()
	n := NewText()
	b.options.apply(n)

	if n.Visible {
		t.Error("Visible = true, want false")
	}
	if n.AnchorX != 0.5 || n.AnchorY != 1 {
		t.Errorf("Anchor = (%v, %v), want (0.5, 1)", n.AnchorX, n.AnchorY)
	}
	if n.Tint != (Color{1, 0, 0, 1}) {
		t.Errorf("Tint = %v, want red", n.Tint)
	}
	if n.Text.Content != "hi" || n.Text.Style.Align != TextAlignRight {
		t.Errorf("Text = %+v", n.Text)
	}
	if !n.Interactive || n.Cursor != ebiten.CursorShapePointer {
		t.Errorf("Interactive = %v, Cursor = %v", n.Interactive, n.Cursor)
	}
}

func TestBuilderTextOptionsIgnoreNonText(t *testing.T) {
	b := NewBuilder(nil)
	b.Text("hi").TextStyle(TextStyle{})
	n := NewContainer()
	b.options.apply(n) // must not panic
	if n.Text != nil {
		t.Error("container gained a text block")
	}
}

func TestBuilderDefersLayout(t *testing.T) {
	lm, vp := newTestLayout(800, 600)
	b := NewBuilder(lm).Layout(PresetBottomRightScreen)
	if len(b.positions) != 1 {
		t.Fatalf("positions = %d, want 1", len(b.positions))
	}
	vp.size = Size{100, 50}
	got, _ := b.positions[0](NewContainer())
	assertVec(t, "position", got, Vec2{100, 50})
}

func TestBuilderLayoutWithinCopiesBounding(t *testing.T) {
	lm, _ := newTestLayout(800, 600)
	bounding := Size{10, 20}
	b := NewBuilder(lm).LayoutWithin(PresetCenterParent, bounding)
	bounding.Width = 999

	parent, child := NewContainer(), NewContainer()
	parent.AddChild(child)
	got, err := b.positions[0](child)
	if err != nil {
		t.Fatalf("position: %v", err)
	}
	assertVec(t, "position", got, Vec2{5, 10})
}

func TestBuilderShiftByParseError(t *testing.T) {
	lm, _ := newTestLayout(800, 600)
	b := NewBuilder(lm).ShiftBy(DirectionLeft, "lots").Label("after")
	if !errors.Is(b.Err(), ErrUnsupportedFormat) {
		t.Errorf("Err() = %v, want ErrUnsupportedFormat", b.Err())
	}
	if len(b.positions) != 0 {
		t.Error("invalid shift was recorded")
	}
}

func TestBuilderFirstErrorKept(t *testing.T) {
	lm, _ := newTestLayout(800, 600)
	b := NewBuilder(lm).TintNamed("nope").ShiftBy(DirectionUp, "x")
	if !errors.Is(b.Err(), ErrNotFound) {
		t.Errorf("Err() = %v, want the first error (ErrNotFound)", b.Err())
	}
}

func TestBuilderTintNamed(t *testing.T) {
	b := NewBuilder(nil).TintNamed("#ff000080")
	if b.Err() != nil {
		t.Fatalf("Err() = %v", b.Err())
	}
	n := NewContainer()
	b.options.apply(n)
	if n.Tint.R != 1 || n.Tint.G != 0 || !approxEqual(n.Tint.A, 128.0/255, 1e-9) {
		t.Errorf("Tint = %v", n.Tint)
	}
}

func TestBuilderAssetRequests(t *testing.T) {
	b := NewBuilder(nil).SpriteTexture("a").SpriteTexture("b")
	if len(b.assets) != 1 || b.assets[0].name != "b" || b.assets[0].field != "texture" {
		t.Fatalf("assets = %+v, want one texture request for b", b.assets)
	}
	n := NewSprite()
	tex := &Texture{Name: "b"}
	b.assets[0].bind(tex)(n)
	if n.Texture != tex {
		t.Error("bind did not set the texture")
	}
}

func TestBuilderChildDoesNotConstruct(t *testing.T) {
	constructed := 0
	ctor := func() *Node { constructed++; return NewContainer() }
	b := NewBuilder(nil).Child(ctor, nil).Child(ctor, nil)
	if constructed != 0 {
		t.Errorf("constructed = %d, want 0", constructed)
	}
	if len(b.children) != 2 {
		t.Errorf("children = %d, want 2", len(b.children))
	}
}

func TestBuilderBehaviorIsDeclarative(t *testing.T) {
	n := NewSprite()
	b := NewBuilder(nil).
		On(EventClick, func(PointerContext) {}).
		Hover().
		Filter(NewColorMatrixFilter()).
		Draw(func(*Graphics) {})
	if n.ListenerCount(EventClick) != 0 || len(n.Filters) != 0 {
		t.Error("builder touched a node")
	}
	if len(b.events) != 1 || len(b.actions) != 1 || len(b.filters) != 1 || len(b.draws) != 1 {
		t.Errorf("recorded (%d events, %d actions, %d filters, %d draws), want 1 each",
			len(b.events), len(b.actions), len(b.filters), len(b.draws))
	}
}

func TestViewBuilderOnLoad(t *testing.T) {
	vb := &ViewBuilder[*BaseView]{Builder: NewBuilder(nil)}
	calls := 0
	vb.OnLoad(func(*BaseView) { calls++ }).OnLoad(func(*BaseView) { calls++ })
	for _, fn := range vb.loads {
		fn(nil)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
