package bower

import (
	"sync"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	assertNodeDefaults(t, NewContainer(), NodeTypeContainer)
}

func TestNewSpriteDefaults(t *testing.T) {
	n := NewSprite()
	assertNodeDefaults(t, n, NodeTypeSprite)
	if n.Texture != nil {
		t.Error("Texture should be nil until loaded")
	}
}

func TestNewTilingSpriteDefaults(t *testing.T) {
	assertNodeDefaults(t, NewTilingSprite(), NodeTypeTilingSprite)
}

func TestNewGraphicsDefaults(t *testing.T) {
	n := NewGraphics()
	assertNodeDefaults(t, n, NodeTypeGraphics)
	if n.Graphics == nil {
		t.Error("Graphics should be allocated")
	}
}

func TestNewTextDefaults(t *testing.T) {
	n := NewText()
	assertNodeDefaults(t, n, NodeTypeText)
	if n.Text == nil || n.Text.Style.Color != ColorWhite {
		t.Errorf("Text = %+v, want white empty block", n.Text)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Type != typ {
		t.Errorf("Type = %v, want %v", n.Type, typ)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if n.Tint != ColorWhite {
		t.Errorf("Tint = %v, want white", n.Tint)
	}
	if n.Cursor != ebiten.CursorShapeDefault {
		t.Errorf("Cursor = %v, want default", n.Cursor)
	}
}

func TestNodeIDsUnique(t *testing.T) {
	a, b := NewContainer(), NewContainer()
	if a.ID == b.ID {
		t.Errorf("IDs collide: %d", a.ID)
	}
}

func TestNodeIDsUniqueAcrossGoroutines(t *testing.T) {
	const workers, perWorker = 8, 200
	ids := make([][]uint32, workers)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				ids[w] = append(ids[w], NewContainer().ID)
			}
		}()
	}
	wg.Wait()

	seen := make(map[uint32]bool, workers*perWorker)
	for _, batch := range ids {
		for _, id := range batch {
			if seen[id] {
				t.Fatalf("ID %d issued twice", id)
			}
			seen[id] = true
		}
	}
}

// --- Tree manipulation ---

func TestAddChildSetsParent(t *testing.T) {
	parent, child := NewContainer(), NewContainer()
	parent.AddChild(child)
	if child.Parent != parent {
		t.Error("child.Parent not set")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("child not in parent's list")
	}
}

func TestAddChildReparents(t *testing.T) {
	a, b, child := NewContainer(), NewContainer(), NewContainer()
	a.AddChild(child)
	b.AddChild(child)
	if a.NumChildren() != 0 {
		t.Errorf("old parent children = %d, want 0", a.NumChildren())
	}
	if child.Parent != b {
		t.Error("child.Parent not updated")
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil", func() { NewContainer().AddChild(nil) }},
		{"self", func() {
			n := NewContainer()
			n.AddChild(n)
		}},
		{"cycle", func() {
			a, b := NewContainer(), NewContainer()
			a.AddChild(b)
			b.AddChild(a)
		}},
		{"disposed", func() {
			a, b := NewContainer(), NewContainer()
			b.Dispose()
			a.AddChild(b)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRemoveFromParent(t *testing.T) {
	parent, child := NewContainer(), NewContainer()
	parent.AddChild(child)
	child.RemoveFromParent()
	if child.Parent != nil || parent.NumChildren() != 0 {
		t.Error("child not removed")
	}
	child.RemoveFromParent() // no-op without a parent
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewContainer().RemoveChild(NewContainer())
}

func TestFindByLabel(t *testing.T) {
	root := NewContainer()
	root.Label = "root"
	a, b, deep := NewContainer(), NewContainer(), NewText()
	a.Label, b.Label, deep.Label = "a", "b", "target"
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(deep)
	dup := NewContainer()
	dup.Label = "target"
	b.AddChild(dup)

	if got := root.FindByLabel("root"); got != root {
		t.Error("FindByLabel should match the receiver")
	}
	if got := root.FindByLabel("target"); got != deep {
		t.Error("FindByLabel should return the first depth-first match")
	}
	if got := root.FindByLabel("nope"); got != nil {
		t.Errorf("FindByLabel(nope) = %v, want nil", got)
	}
}

// --- Events ---

func TestListeners(t *testing.T) {
	n := NewContainer()
	var order []int
	n.On(EventClick, func(PointerContext) { order = append(order, 1) })
	n.On(EventClick, func(ctx PointerContext) {
		if ctx.Node != n {
			t.Error("ctx.Node not filled in")
		}
		order = append(order, 2)
	})
	n.Emit(EventClick, PointerContext{GlobalX: 5})
	n.Emit(EventPointerDown, PointerContext{})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
	if n.ListenerCount(EventClick) != 2 {
		t.Errorf("ListenerCount = %d, want 2", n.ListenerCount(EventClick))
	}
	n.RemoveAllListeners()
	if n.ListenerCount(EventClick) != 0 {
		t.Error("listeners not removed")
	}
}

// --- Disposal ---

func TestDisposeRecursive(t *testing.T) {
	parent, child, grandchild := NewContainer(), NewContainer(), NewSprite()
	parent.AddChild(child)
	child.AddChild(grandchild)
	grandchild.Texture = &Texture{Width: 4, Height: 4}

	child.Dispose()
	child.Dispose()

	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("subtree not disposed")
	}
	if parent.NumChildren() != 0 {
		t.Error("disposed child still attached")
	}
	if grandchild.Texture != nil || grandchild.ID != 0 {
		t.Error("disposed node kept its resources")
	}
}
