package bower

import (
	"math"
)

// Tile placement for square, staggered isometric ("iso square") and diamond
// isometric ("iso rhombic") maps. Positions are the top-left of the tile's
// bounding box in map space.

// TileSquare returns the position of the tile at (col, row) on a square grid.
func TileSquare(col, row int, tileW, tileH float64) Vec2 {
	return Vec2{float64(col) * tileW, float64(row) * tileH}
}

// TileIsoSquare returns the position of the tile at (col, row) on a
// staggered isometric grid. Odd rows are offset by half a tile.
func TileIsoSquare(col, row int, tileW, tileH float64) Vec2 {
	return Vec2{
		X: float64(col)*tileW + float64(absMod2(row))*(tileW/2),
		Y: float64(row) * (tileH / 2),
	}
}

// TileIsoRhombic returns the position of the tile at (col, row) on a diamond
// isometric grid.
func TileIsoRhombic(col, row int, tileW, tileH float64) Vec2 {
	return Vec2{
		X: float64(col-row) * (tileW / 2),
		Y: float64(col+row) * (tileH / 2),
	}
}

// MapSquare returns the pixel size of a square map.
func MapSquare(cols, rows int, tileW, tileH float64) Size {
	return Size{float64(cols) * tileW, float64(rows) * tileH}
}

// MapIsoSquare returns the pixel size of a staggered isometric map.
func MapIsoSquare(cols, rows int, tileW, tileH float64) Size {
	return Size{
		Width:  float64(cols)*tileW + float64(absMod2(cols))*(tileW/2),
		Height: float64(rows)*(tileH/2) + tileH/2,
	}
}

// MapIsoRhombic returns the pixel size of a diamond isometric map.
func MapIsoRhombic(cols, rows int, tileW, tileH float64) Size {
	return Size{
		Width:  float64(cols+rows) * (tileW / 2),
		Height: float64(cols+rows) * (tileH / 2),
	}
}

// TileSizeIsoSquare returns the tile size that makes a staggered isometric
// map of cols x rows fill mapSize. Inverse of MapIsoSquare.
func TileSizeIsoSquare(cols, rows int, mapSize Size) Size {
	return Size{
		Width:  2 * mapSize.Width / float64(2*cols+absMod2(cols)),
		Height: 2 * mapSize.Height / float64(rows+1),
	}
}

// TileSizeIsoRhombic returns the tile size that makes a diamond isometric map
// of cols x rows fill mapSize. Inverse of MapIsoRhombic.
func TileSizeIsoRhombic(cols, rows int, mapSize Size) Size {
	return Size{
		Width:  2 * mapSize.Width / float64(cols+rows),
		Height: 2 * mapSize.Height / float64(cols+rows),
	}
}

func absMod2(v int) int {
	if v%2 != 0 {
		return 1
	}
	return 0
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// ClampRect limits p to the rectangle r.
func ClampRect(p Vec2, r Rect) Vec2 {
	return Vec2{
		X: Clamp(p.X, r.X, r.X+r.Width),
		Y: Clamp(p.Y, r.Y, r.Y+r.Height),
	}
}

// ClampRhombus limits p to the diamond inscribed in r, such as the outline of
// an iso rhombic map.
func ClampRhombus(p Vec2, r Rect) Vec2 {
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	top := Vec2{cx, r.Y}
	bottom := Vec2{cx, r.Y + r.Height}

	x := Clamp(p.X, r.X, r.X+r.Width)
	y := Clamp(p.Y, top.Y, bottom.Y)

	var side Vec2
	switch {
	case x < cx:
		side = Vec2{r.X, cy}
	case x > cx:
		side = Vec2{r.X + r.Width, cy}
	default:
		return Vec2{x, y}
	}
	minY, maxY := top.Y, bottom.Y
	if t, ok := LinesIntersection(side, top, Vec2{x, y}, Vec2{x, y - 1}); ok {
		minY = t.Y
	}
	if b, ok := LinesIntersection(side, bottom, Vec2{x, y}, Vec2{x, y + 1}); ok {
		maxY = b.Y
	}
	return Vec2{x, Clamp(y, minY, maxY)}
}

// LinesIntersection returns the intersection of the infinite lines through
// a1-a2 and b1-b2. ok is false for parallel lines.
func LinesIntersection(a1, a2, b1, b2 Vec2) (p Vec2, ok bool) {
	d := (a1.X-a2.X)*(b1.Y-b2.Y) - (a1.Y-a2.Y)*(b1.X-b2.X)
	if d == 0 {
		return Vec2{}, false
	}
	ca := a1.X*a2.Y - a1.Y*a2.X
	cb := b1.X*b2.Y - b1.Y*b2.X
	return Vec2{
		X: (ca*(b1.X-b2.X) - (a1.X-a2.X)*cb) / d,
		Y: (ca*(b1.Y-b2.Y) - (a1.Y-a2.Y)*cb) / d,
	}, true
}

// InRange reports whether v lies in [lo, hi].
func InRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// Lerp interpolates linearly from a to b.
func Lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// LerpVec interpolates each component of a and b.
func LerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// Oscillate maps t to a sine wave starting at lo with peak-to-peak amplitude
// hi-lo, one period per unit of t.
func Oscillate(lo, hi, t float64) float64 {
	return lo + (hi-lo)/2*math.Sin(2*math.Pi*t)
}

// Proportion scales base to the non-zero dimension of target, keeping the
// aspect ratio. Width takes precedence when both are set.
func Proportion(base, target Size) (Size, error) {
	switch {
	case target.Width != 0:
		return Size{target.Width, base.Height * target.Width / base.Width}, nil
	case target.Height != 0:
		return Size{base.Width * target.Height / base.Height, target.Height}, nil
	}
	return Size{}, &UnsupportedFormatError{Kind: "proportion target", Input: target.String()}
}

// FitWidth shrinks s to at most width, keeping the aspect ratio. Narrower
// sizes are returned unchanged.
func FitWidth(width float64, s Size) Size {
	out, err := Proportion(s, Size{Width: min(width, s.Width)})
	if err != nil {
		return s
	}
	return out
}
