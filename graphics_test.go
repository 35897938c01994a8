package bower

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestGraphicsRecordsShapes(t *testing.T) {
	var g Graphics
	red := Color{1, 0, 0, 1}
	g.Rect(0, 0, 10, 5).Fill(red).Circle(20, 20, 4).Polygon(Vec2{0, 0}, Vec2{1, 0}, Vec2{0, 1})

	shapes := g.Shapes()
	if len(shapes) != 3 {
		t.Fatalf("shapes = %d, want 3", len(shapes))
	}
	if shapes[0].Kind != ShapeRect || shapes[0].Fill != red {
		t.Errorf("rect = %+v", shapes[0])
	}
	if shapes[1].Kind != ShapeCircle || len(shapes[1].Points) != circleSegments || shapes[1].Fill != ColorWhite {
		t.Errorf("circle = kind %v with %d points", shapes[1].Kind, len(shapes[1].Points))
	}
	if shapes[2].Kind != ShapePolygon {
		t.Errorf("polygon kind = %v", shapes[2].Kind)
	}
}

func TestGraphicsDegeneratePolygon(t *testing.T) {
	var g Graphics
	g.Polygon(Vec2{0, 0}, Vec2{1, 1})
	if len(g.Shapes()) != 0 {
		t.Error("two-point polygon was recorded")
	}
	g.Fill(ColorWhite) // no shape to fill
}

func TestGraphicsPolygonCopiesPoints(t *testing.T) {
	var g Graphics
	pts := []Vec2{{0, 0}, {4, 0}, {0, 4}}
	g.Polygon(pts...)
	pts[1].X = 100
	if g.Shapes()[0].Points[1].X != 4 {
		t.Error("polygon aliases the caller's slice")
	}
}

func TestGraphicsBounds(t *testing.T) {
	var g Graphics
	if g.Bounds() != (Rect{}) {
		t.Errorf("empty bounds = %+v", g.Bounds())
	}
	g.Rect(-5, 0, 10, 10).Circle(20, 5, 5)
	b := g.Bounds()
	assertNear(t, "X", b.X, -5)
	assertNear(t, "Y", b.Y, 0)
	assertNear(t, "Width", b.Width, 30)
	assertNear(t, "Height", b.Height, 10)
}

func TestGraphicsClear(t *testing.T) {
	var g Graphics
	g.Rect(0, 0, 1, 1)
	g.Clear()
	if len(g.Shapes()) != 0 || g.Bounds() != (Rect{}) {
		t.Error("Clear left shapes behind")
	}
}

func TestFanTriangulate(t *testing.T) {
	pts := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	var geo ebiten.GeoM
	geo.Translate(5, 5)
	verts, inds := fanTriangulate(pts, geo, Color{1, 1, 1, 0.5})
	if len(verts) != 4 || len(inds) != 6 {
		t.Fatalf("verts = %d, inds = %d, want 4, 6", len(verts), len(inds))
	}
	if verts[2].DstX != 15 || verts[2].DstY != 15 {
		t.Errorf("vertex 2 = (%v, %v), want (15, 15)", verts[2].DstX, verts[2].DstY)
	}
	if verts[0].ColorR != 0.5 || verts[0].ColorA != 0.5 {
		t.Errorf("color not premultiplied: %+v", verts[0])
	}
	want := []uint16{0, 1, 2, 0, 2, 3}
	for i := range want {
		if inds[i] != want[i] {
			t.Fatalf("inds = %v, want %v", inds, want)
		}
	}
	if v, _ := fanTriangulate(pts[:2], geo, ColorWhite); v != nil {
		t.Error("fewer than three points produced vertices")
	}
}
