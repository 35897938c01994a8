package bower

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// transform properties. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Rotate -> Translate(X, Y)
func computeLocalTransform(n *Node) [6]float64 {
	sx := n.ScaleX
	sy := n.ScaleY
	sin, cos := math.Sincos(n.Rotation)

	preTx := -n.PivotX * sx
	preTy := -n.PivotY * sy

	return [6]float64{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		cos*preTx - sin*preTy + n.X,
		sin*preTx + cos*preTy + n.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// transformRect returns the axis-aligned bounds of r after applying m.
func transformRect(m [6]float64, r Rect) Rect {
	x0, y0 := transformPoint(m, r.X, r.Y)
	x1, y1 := transformPoint(m, r.X+r.Width, r.Y)
	x2, y2 := transformPoint(m, r.X, r.Y+r.Height)
	x3, y3 := transformPoint(m, r.X+r.Width, r.Y+r.Height)
	minX := min(x0, x1, x2, x3)
	minY := min(y0, y1, y2, y3)
	return Rect{
		X:      minX,
		Y:      minY,
		Width:  max(x0, x1, x2, x3) - minX,
		Height: max(y0, y1, y2, y3) - minY,
	}
}

// worldTransform composes the local transforms from the root down to n.
func (n *Node) worldTransform() [6]float64 {
	m := computeLocalTransform(n)
	for p := n.Parent; p != nil; p = p.Parent {
		m = multiplyAffine(computeLocalTransform(p), m)
	}
	return m
}

// --- Geometry ---

// contentSize returns the unscaled size of the node's own content.
func (n *Node) contentSize() (float64, float64) {
	switch n.Type {
	case NodeTypeSprite:
		if n.Texture != nil {
			return n.Texture.Width, n.Texture.Height
		}
	case NodeTypeTilingSprite:
		w, h := n.tileW, n.tileH
		if n.Texture != nil {
			if w == 0 {
				w = n.Texture.Width
			}
			if h == 0 {
				h = n.Texture.Height
			}
		}
		return w, h
	case NodeTypeText:
		if n.Text != nil {
			return n.Text.Measure()
		}
	case NodeTypeGraphics:
		if n.Graphics != nil {
			b := n.Graphics.Bounds()
			return b.Width, b.Height
		}
	}
	return 0, 0
}

// contentBounds returns the node's own content rectangle in local space.
func (n *Node) contentBounds() Rect {
	if n.Type == NodeTypeGraphics && n.Graphics != nil {
		return n.Graphics.Bounds()
	}
	w, h := n.contentSize()
	if w == 0 && h == 0 {
		return Rect{}
	}
	return Rect{X: -n.AnchorX * w, Y: -n.AnchorY * h, Width: w, Height: h}
}

// LocalBounds returns the union of the node's content and its visible
// children, in the node's local (unscaled) coordinate space.
func (n *Node) LocalBounds() Rect {
	b := n.contentBounds()
	for _, child := range n.children {
		if !child.Visible {
			continue
		}
		cb := child.LocalBounds()
		if cb.Width == 0 && cb.Height == 0 {
			continue
		}
		b = b.Union(transformRect(computeLocalTransform(child), cb))
	}
	return b
}

// Width returns the node's scaled width.
func (n *Node) Width() float64 {
	return n.LocalBounds().Width * math.Abs(n.ScaleX)
}

// Height returns the node's scaled height.
func (n *Node) Height() float64 {
	return n.LocalBounds().Height * math.Abs(n.ScaleY)
}

// Size returns the node's scaled width and height.
func (n *Node) Size() Size {
	b := n.LocalBounds()
	return Size{Width: b.Width * math.Abs(n.ScaleX), Height: b.Height * math.Abs(n.ScaleY)}
}

// SetSize resizes the node. Tiling sprites change their tiled area; every
// other type rescales so its bounds match s. An axis with empty bounds is
// left unchanged.
func (n *Node) SetSize(s Size) {
	if n.Type == NodeTypeTilingSprite {
		if n.ScaleX != 0 {
			n.tileW = s.Width / math.Abs(n.ScaleX)
		}
		if n.ScaleY != 0 {
			n.tileH = s.Height / math.Abs(n.ScaleY)
		}
		return
	}
	b := n.LocalBounds()
	if b.Width > 0 {
		n.ScaleX = math.Copysign(s.Width/b.Width, signOrOne(n.ScaleX))
	}
	if b.Height > 0 {
		n.ScaleY = math.Copysign(s.Height/b.Height, signOrOne(n.ScaleY))
	}
}

func signOrOne(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// --- Transform property setters ---

// Position returns the node's local position.
func (n *Node) Position() Vec2 {
	return Vec2{X: n.X, Y: n.Y}
}

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetScale sets the node's ScaleX and ScaleY.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
}

// SetAnchor sets the normalized content anchor.
func (n *Node) SetAnchor(ax, ay float64) {
	n.AnchorX = ax
	n.AnchorY = ay
}

// --- Coordinate conversion ---

// WorldToLocal converts a point in root space to this node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	inv := invertAffine(n.worldTransform())
	return transformPoint(inv, wx, wy)
}

// LocalToWorld converts a local-space point to root space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform(), lx, ly)
}

// WorldGeoM returns the root-space transform of n for hosts that draw the
// tree onto an ebiten.Image.
func (n *Node) WorldGeoM() ebiten.GeoM {
	m := n.worldTransform()
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
