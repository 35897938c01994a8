package bower

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

// PointerContext carries pointer event data delivered by the host runtime.
type PointerContext struct {
	Node      *Node
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
}

// Listener handles one pointer event.
type Listener func(PointerContext)

// nodeIDCounter is shared by every scene in the process.
var nodeIDCounter atomic.Uint32

func nextNodeID() uint32 {
	return nodeIDCounter.Add(1)
}

// Node is the concrete renderable owned by an Element. A single flat struct
// is used for all node types; Type selects which content fields apply.
type Node struct {
	// Identity
	ID    uint32
	Label string
	Type  NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Anchor is the normalized origin of sprite and text content. Ignored by
	// containers and graphics.
	AnchorX, AnchorY float64

	// Visibility & interaction
	Alpha       float64
	Visible     bool
	ZIndex      int
	Tint        Color
	Interactive bool
	Cursor      ebiten.CursorShapeType

	// Content
	Texture  *Texture
	Text     *TextBlock
	Graphics *Graphics
	Filters  []Filter

	// explicit size for tiling sprites; zero means texture size
	tileW, tileH float64

	// Metadata
	UserData any

	listeners map[EventType][]Listener
	disposed  bool
}

// Constructor creates a fresh, unattached node of one concrete kind.
// NewContainer, NewSprite, NewTilingSprite, NewGraphics and NewText all
// satisfy it.
type Constructor func() *Node

func newNode(typ NodeType) *Node {
	return &Node{
		ID:      nextNodeID(),
		Type:    typ,
		ScaleX:  1,
		ScaleY:  1,
		Alpha:   1,
		Visible: true,
		Tint:    ColorWhite,
		Cursor:  ebiten.CursorShapeDefault,
	}
}

// NewContainer creates a group node with no visual representation.
func NewContainer() *Node {
	return newNode(NodeTypeContainer)
}

// NewSprite creates a sprite node. Its texture is usually supplied through
// Builder.SpriteTexture.
func NewSprite() *Node {
	return newNode(NodeTypeSprite)
}

// NewTilingSprite creates a sprite that repeats its texture over an explicit
// size instead of scaling it.
func NewTilingSprite() *Node {
	return newNode(NodeTypeTilingSprite)
}

// NewGraphics creates a node that renders retained draw commands.
func NewGraphics() *Node {
	n := newNode(NodeTypeGraphics)
	n.Graphics = &Graphics{}
	return n
}

// NewText creates a text node with empty content.
func NewText() *Node {
	n := newNode(NodeTypeText)
	n.Text = &TextBlock{Style: TextStyle{Color: ColorWhite}}
	return n
}

// anchorable reports whether AnchorX/AnchorY shift this node's content.
func (n *Node) anchorable() bool {
	switch n.Type {
	case NodeTypeSprite, NodeTypeTilingSprite, NodeTypeText:
		return true
	}
	return false
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil, either node is disposed, or child is an ancestor
// of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("bower: cannot add nil child")
	}
	if n.disposed || child.disposed {
		panic("bower: AddChild on disposed node")
	}
	if isAncestor(child, n) {
		panic("bower: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("bower: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// FindByLabel searches this node and its descendants depth-first, in child
// order, for the first node carrying label. Returns nil on a miss.
func (n *Node) FindByLabel(label string) *Node {
	if n.Label == label {
		return n
	}
	for _, child := range n.children {
		if match := child.FindByLabel(label); match != nil {
			return match
		}
	}
	return nil
}

// --- Events ---

// On registers fn for evt. Listeners fire in registration order.
func (n *Node) On(evt EventType, fn Listener) {
	if n.listeners == nil {
		n.listeners = make(map[EventType][]Listener)
	}
	n.listeners[evt] = append(n.listeners[evt], fn)
}

// RemoveAllListeners drops every registered listener.
func (n *Node) RemoveAllListeners() {
	n.listeners = nil
}

// ListenerCount returns the number of listeners registered for evt.
func (n *Node) ListenerCount(evt EventType) int {
	return len(n.listeners[evt])
}

// Emit dispatches evt to this node's listeners. It is called by the host
// runtime's input layer; ctx.Node is filled in when left nil.
func (n *Node) Emit(evt EventType, ctx PointerContext) {
	if ctx.Node == nil {
		ctx.Node = n
	}
	for _, fn := range n.listeners[evt] {
		fn(ctx)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Filters = nil
	n.Texture = nil
	n.Text = nil
	n.Graphics = nil
	n.UserData = nil
	n.listeners = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
