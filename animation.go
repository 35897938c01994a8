package bower

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one with TweenPosition, TweenScale, TweenAlpha, TweenTint or
// TweenLayout and call Update(dt) each frame. If the target node is disposed,
// the group stops immediately.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields. If the target node has been disposed, Done is set and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenPosition animates n.X and n.Y to (toX, toY).
func TweenPosition(n *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: n}
	g.add(&n.X, toX, duration, fn)
	g.add(&n.Y, toY, duration, fn)
	return g
}

// TweenScale animates n.ScaleX and n.ScaleY to (toSX, toSY).
func TweenScale(n *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: n}
	g.add(&n.ScaleX, toSX, duration, fn)
	g.add(&n.ScaleY, toSY, duration, fn)
	return g
}

// TweenTint animates all four components of n.Tint to the target color.
func TweenTint(n *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: n}
	g.add(&n.Tint.R, to.R, duration, fn)
	g.add(&n.Tint.G, to.G, duration, fn)
	g.add(&n.Tint.B, to.B, duration, fn)
	g.add(&n.Tint.A, to.A, duration, fn)
	return g
}

// TweenAlpha animates n.Alpha to the target value.
func TweenAlpha(n *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: n}
	g.add(&n.Alpha, to, duration, fn)
	return g
}

// TweenLayout evaluates change against n's current state and animates n to
// the resulting position. Use it to slide a node to a preset or shift
// instead of jumping there.
func TweenLayout(n *Node, change PositionChange, duration float32, fn ease.TweenFunc) (*TweenGroup, error) {
	p, err := change(n)
	if err != nil {
		return nil, err
	}
	return TweenPosition(n, p.X, p.Y, duration, fn), nil
}
