package bower

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// circleSegments is the number of edges used to approximate a circle.
const circleSegments = 32

// ShapeKind identifies a retained graphics primitive.
type ShapeKind uint8

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
	ShapePolygon
)

// Shape is one retained draw command. Points holds the outline in local
// coordinates; circles are stored pre-tessellated.
type Shape struct {
	Kind   ShapeKind
	Points []Vec2
	Fill   Color
}

// Graphics is the retained drawing state of a NodeTypeGraphics node. Builder
// draw commands replay into it after every Clear.
type Graphics struct {
	shapes []Shape
}

// Clear drops every recorded shape.
func (g *Graphics) Clear() {
	g.shapes = g.shapes[:0]
}

// Rect records an axis-aligned rectangle. Chain Fill to color it.
func (g *Graphics) Rect(x, y, w, h float64) *Graphics {
	g.shapes = append(g.shapes, Shape{
		Kind:   ShapeRect,
		Points: []Vec2{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}},
		Fill:   ColorWhite,
	})
	return g
}

// Circle records a circle centered at (cx, cy).
func (g *Graphics) Circle(cx, cy, r float64) *Graphics {
	pts := make([]Vec2, circleSegments)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / circleSegments)
		pts[i] = Vec2{cx + cos*r, cy + sin*r}
	}
	g.shapes = append(g.shapes, Shape{Kind: ShapeCircle, Points: pts, Fill: ColorWhite})
	return g
}

// Polygon records a convex polygon. Fewer than three points records nothing.
func (g *Graphics) Polygon(points ...Vec2) *Graphics {
	if len(points) < 3 {
		return g
	}
	pts := make([]Vec2, len(points))
	copy(pts, points)
	g.shapes = append(g.shapes, Shape{Kind: ShapePolygon, Points: pts, Fill: ColorWhite})
	return g
}

// Fill colors the most recently recorded shape.
func (g *Graphics) Fill(c Color) *Graphics {
	if len(g.shapes) > 0 {
		g.shapes[len(g.shapes)-1].Fill = c
	}
	return g
}

// Shapes returns the recorded shapes. The returned slice MUST NOT be mutated.
func (g *Graphics) Shapes() []Shape {
	return g.shapes
}

// Bounds returns the local bounds of every recorded shape.
func (g *Graphics) Bounds() Rect {
	if len(g.shapes) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range g.shapes {
		for _, p := range s.Points {
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// whitePixel is a lazily created 1x1 white source image for untextured
// triangles. Only touched from the host's draw goroutine.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(ColorWhite.toRGBA())
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

// Render draws every shape onto dst, transformed by geo and tinted by tint.
// The host renderer calls it; the composition core never does.
func (g *Graphics) Render(dst *ebiten.Image, geo ebiten.GeoM, tint Color) {
	src := ensureWhitePixel()
	for _, s := range g.shapes {
		verts, inds := fanTriangulate(s.Points, geo, mulColor(s.Fill, tint))
		if verts == nil {
			continue
		}
		dst.DrawTriangles(verts, inds, src, &ebiten.DrawTrianglesOptions{})
	}
}

func mulColor(a, b Color) Color {
	return Color{R: a.R * b.R, G: a.G * b.G, B: a.B * b.B, A: a.A * b.A}
}

// fanTriangulate generates vertices and indices for a fan-triangulated
// convex outline. N vertices, 3*(N-2) indices.
func fanTriangulate(points []Vec2, geo ebiten.GeoM, c Color) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}
	verts := make([]ebiten.Vertex, n)
	inds := make([]uint16, (n-2)*3)

	// Premultiplied vertex color.
	r, gc, b, a := float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A)
	for i, p := range points {
		x, y := geo.Apply(p.X, p.Y)
		verts[i] = ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1.5, SrcY: 1.5,
			ColorR: r, ColorG: gc, ColorB: b, ColorA: a,
		}
	}
	for i := 0; i < n-2; i++ {
		inds[i*3+0] = 0
		inds[i*3+1] = uint16(i + 1)
		inds[i*3+2] = uint16(i + 2)
	}
	return verts, inds
}
