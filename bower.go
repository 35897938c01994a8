package bower

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// RGBA implements color.Color, so a Color can fill an ebiten.Image directly.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.toRGBA().RGBA()
}

func clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// ColorByName resolves a CSS/SVG color name ("cornflowerblue") or a hex
// literal ("#rrggbb", "#rrggbbaa") to a Color.
func ColorByName(name string) (Color, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if strings.HasPrefix(name, "#") {
		return parseHexColor(name)
	}
	rgba, ok := colornames.Map[name]
	if !ok {
		return Color{}, &NotFoundError{Host: "colornames", Label: name}
	}
	return Color{
		R: float64(rgba.R) / 255,
		G: float64(rgba.G) / 255,
		B: float64(rgba.B) / 255,
		A: float64(rgba.A) / 255,
	}, nil
}

func parseHexColor(s string) (Color, error) {
	hex := s[1:]
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, &UnsupportedFormatError{Kind: "color", Input: s}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, &UnsupportedFormatError{Kind: "color", Input: s}
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// Vec2 is a 2D vector used for positions, offsets, anchors and paddings.
type Vec2 struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rectangle containing both r and other. An empty
// operand is ignored.
func (r Rect) Union(other Rect) Rect {
	if r.Width == 0 && r.Height == 0 {
		return other
	}
	if other.Width == 0 && other.Height == 0 {
		return r
	}
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// NodeType distinguishes the content a Node carries.
type NodeType uint8

const (
	NodeTypeContainer    NodeType = iota // group node with no visual output
	NodeTypeSprite                       // renders a Texture
	NodeTypeTilingSprite                 // repeats a Texture over an explicit size
	NodeTypeGraphics                     // renders retained draw commands
	NodeTypeText                         // renders a TextBlock
)

var nodeTypeNames = [...]string{"container", "sprite", "tiling-sprite", "graphics", "text"}

func (t NodeType) String() string {
	if int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "NodeType(" + strconv.Itoa(int(t)) + ")"
}

// EventType identifies a kind of pointer event dispatched by the host.
type EventType uint8

const (
	EventPointerDown  EventType = iota // fires when a pointer button is pressed
	EventPointerUp                     // fires when a pointer button is released
	EventPointerMove                   // fires when the pointer moves over the node
	EventClick                         // fires on press then release over the same node
	EventPointerEnter                  // fires when the pointer enters a node's bounds
	EventPointerLeave                  // fires when the pointer leaves a node's bounds
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// TextAlign controls horizontal text alignment within a TextBlock.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
	TextAlignRight                   // align text to the right edge
)

// Offset returns how far a line of the given width is shifted right inside
// a box of boxWidth.
func (a TextAlign) Offset(lineWidth, boxWidth float64) float64 {
	switch a {
	case TextAlignLeft:
		return 0
	case TextAlignCenter:
		return (boxWidth - lineWidth) / 2
	case TextAlignRight:
		return boxWidth - lineWidth
	default:
		panic(&UnhandledCaseError{Kind: "text align", Value: int(a)})
	}
}
