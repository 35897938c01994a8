package bower

import (
	"strconv"
	"strings"
)

// Viewport reports the live size of the visible screen area. Layout changes
// read it every time they are evaluated.
type Viewport interface {
	ViewportSize() Size
}

// PositionChange computes a node's next position from its current state.
type PositionChange func(n *Node) (Vec2, error)

// SizeChange computes a node's next size from the size produced by the
// previous change in the chain.
type SizeChange func(n *Node, current Size) (Size, error)

// Preset is a named absolute-position rule.
type Preset uint8

const (
	PresetCenterScreen Preset = iota
	PresetTopScreen
	PresetTopLeftScreen
	PresetTopRightScreen
	PresetBottomScreen
	PresetBottomLeftScreen
	PresetBottomRightScreen
	PresetCenterParent
)

var presetNames = [...]string{
	"center-screen", "top-screen", "top-left-screen", "top-right-screen",
	"bottom-screen", "bottom-left-screen", "bottom-right-screen", "center-parent",
}

func (p Preset) String() string {
	if int(p) < len(presetNames) {
		return presetNames[p]
	}
	return "Preset(" + strconv.Itoa(int(p)) + ")"
}

// Direction selects the axis and sign of a shift.
type Direction uint8

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

var directionNames = [...]string{"up", "down", "left", "right"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "Direction(" + strconv.Itoa(int(d)) + ")"
}

// Fill is a named size rule.
type Fill uint8

const (
	// FillWidthScreen stretches the width to the viewport and the height to
	// the node's texture height.
	FillWidthScreen Fill = iota
)

func (f Fill) String() string {
	if f == FillWidthScreen {
		return "width-screen"
	}
	return "Fill(" + strconv.Itoa(int(f)) + ")"
}

// Amount is a shift distance: either pixels or a percentage of the node's
// own current size on the shifted axis.
type Amount struct {
	value   float64
	percent bool
}

// Pixels returns an absolute amount.
func Pixels(v float64) Amount {
	return Amount{value: v}
}

// Percent returns an amount relative to the node's size; Percent(10) is 10%.
func Percent(p float64) Amount {
	return Amount{value: p, percent: true}
}

// ParseAmount reads "NN%" as a percentage and a bare number as pixels.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return Amount{}, &UnsupportedFormatError{Kind: "layout amount", Input: s}
		}
		return Percent(v), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Amount{}, &UnsupportedFormatError{Kind: "layout amount", Input: s}
	}
	return Pixels(v), nil
}

// IsPercent reports whether the amount is relative.
func (a Amount) IsPercent() bool { return a.percent }

// Value returns the raw number (pixels or percent points).
func (a Amount) Value() float64 { return a.value }

// resolve converts the amount to pixels against extent.
func (a Amount) resolve(extent float64) float64 {
	if a.percent {
		return extent * a.value / 100
	}
	return a.value
}

func (a Amount) String() string {
	s := strconv.FormatFloat(a.value, 'g', -1, 64)
	if a.percent {
		return s + "%"
	}
	return s
}

// LayoutManager builds position and size changes against a scene's live
// viewport. The zero value is usable once Initialize has been called.
type LayoutManager struct {
	viewport Viewport
}

// NewLayoutManager returns an uninitialized manager.
func NewLayoutManager() *LayoutManager {
	return &LayoutManager{}
}

// Initialize injects the viewport handle. Changes built before Initialize
// work as long as they are evaluated after it.
func (m *LayoutManager) Initialize(vp Viewport) {
	m.viewport = vp
}

func (m *LayoutManager) screen() (Size, error) {
	if m.viewport == nil {
		return Size{}, notInitialized("LayoutManager", "Viewport")
	}
	return m.viewport.ViewportSize(), nil
}

// PositionPreset returns a change that places a node at preset. bounding,
// when non-nil, replaces the parent size used by PresetCenterParent.
// Panics with *UnhandledCaseError for a preset outside the defined set.
func (m *LayoutManager) PositionPreset(preset Preset, bounding *Size) PositionChange {
	switch preset {
	case PresetCenterScreen:
		return m.screenPoint(func(s Size) Vec2 { return Vec2{s.Width / 2, s.Height / 2} })
	case PresetTopScreen:
		return m.screenPoint(func(s Size) Vec2 { return Vec2{s.Width / 2, 0} })
	case PresetTopLeftScreen:
		return func(*Node) (Vec2, error) { return Vec2{}, nil }
	case PresetTopRightScreen:
		return m.screenPoint(func(s Size) Vec2 { return Vec2{s.Width, 0} })
	case PresetBottomScreen:
		return m.screenPoint(func(s Size) Vec2 { return Vec2{s.Width / 2, s.Height} })
	case PresetBottomLeftScreen:
		return m.screenPoint(func(s Size) Vec2 { return Vec2{0, s.Height} })
	case PresetBottomRightScreen:
		return m.screenPoint(func(s Size) Vec2 { return Vec2{s.Width, s.Height} })
	case PresetCenterParent:
		var override *Size
		if bounding != nil {
			b := *bounding
			override = &b
		}
		return func(n *Node) (Vec2, error) {
			return centerIn(n, override)
		}
	default:
		panic(&UnhandledCaseError{Kind: "preset", Value: int(preset)})
	}
}

func (m *LayoutManager) screenPoint(at func(Size) Vec2) PositionChange {
	return func(*Node) (Vec2, error) {
		s, err := m.screen()
		if err != nil {
			return Vec2{}, err
		}
		return at(s), nil
	}
}

// centerIn returns the center of n's parent in the parent's local space. An
// anchored parent has its origin shifted by anchor*size.
func centerIn(n *Node, bounding *Size) (Vec2, error) {
	parent := n.Parent
	if parent == nil {
		return Vec2{}, notInitialized("LayoutManager", "Parent of "+strconv.Quote(n.Label))
	}
	size := parent.Size()
	if bounding != nil {
		size = *bounding
	}
	c := Vec2{size.Width / 2, size.Height / 2}
	if parent.anchorable() {
		c.X -= parent.AnchorX * size.Width
		c.Y -= parent.AnchorY * size.Height
	}
	return c, nil
}

// PositionShift returns a change that moves a node along one axis.
// Percentage amounts resolve against the node's current size on that axis.
// Panics with *UnhandledCaseError for a direction outside the defined set.
func (m *LayoutManager) PositionShift(dir Direction, amount Amount) PositionChange {
	switch dir {
	case DirectionUp:
		return func(n *Node) (Vec2, error) { return Vec2{n.X, n.Y - amount.resolve(n.Height())}, nil }
	case DirectionDown:
		return func(n *Node) (Vec2, error) { return Vec2{n.X, n.Y + amount.resolve(n.Height())}, nil }
	case DirectionLeft:
		return func(n *Node) (Vec2, error) { return Vec2{n.X - amount.resolve(n.Width()), n.Y}, nil }
	case DirectionRight:
		return func(n *Node) (Vec2, error) { return Vec2{n.X + amount.resolve(n.Width()), n.Y}, nil }
	default:
		panic(&UnhandledCaseError{Kind: "direction", Value: int(dir)})
	}
}

// SizeFill returns a change that stretches a node per fill.
// Panics with *UnhandledCaseError for a fill outside the defined set.
func (m *LayoutManager) SizeFill(fill Fill) SizeChange {
	switch fill {
	case FillWidthScreen:
		return func(n *Node, _ Size) (Size, error) {
			s, err := m.screen()
			if err != nil {
				return Size{}, err
			}
			return Size{Width: s.Width, Height: textureHeight(n)}, nil
		}
	default:
		panic(&UnhandledCaseError{Kind: "fill", Value: int(fill)})
	}
}

// SizePadding returns a change that shrinks the incoming size by p on each
// side of both axes.
func (m *LayoutManager) SizePadding(p Vec2) SizeChange {
	return func(_ *Node, s Size) (Size, error) {
		return Size{Width: s.Width - p.X*2, Height: s.Height - p.Y*2}, nil
	}
}

func textureHeight(n *Node) float64 {
	switch n.Type {
	case NodeTypeSprite, NodeTypeTilingSprite:
		if n.Texture != nil {
			return n.Texture.Height
		}
	}
	return 0
}

// applyPositionChain resets n to the origin and applies each change in turn.
func applyPositionChain(n *Node, chain []PositionChange) error {
	n.SetPosition(0, 0)
	for _, change := range chain {
		p, err := change(n)
		if err != nil {
			return err
		}
		n.SetPosition(p.X, p.Y)
	}
	return nil
}

// applySizeChain folds the chain over n's current size and applies the
// result. An empty chain leaves n untouched.
func applySizeChain(n *Node, chain []SizeChange) error {
	if len(chain) == 0 {
		return nil
	}
	size := n.Size()
	for _, change := range chain {
		next, err := change(n, size)
		if err != nil {
			return err
		}
		size = next
	}
	n.SetSize(size)
	return nil
}
