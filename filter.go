package bower

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is the interface for visual effects applied to a node's rendered
// output by the host renderer.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels needed around the source to accommodate
	// the effect. Zero means no padding.
	Padding() int
}

const colorMatrixShaderSrc = `//kage:unit pixels
package main

var Matrix [20]float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	// Un-premultiply alpha.
	if c.a > 0 {
		c.rgb /= c.a
	}
	r := Matrix[0]*c.r + Matrix[1]*c.g + Matrix[2]*c.b + Matrix[3]*c.a + Matrix[4]
	g := Matrix[5]*c.r + Matrix[6]*c.g + Matrix[7]*c.b + Matrix[8]*c.a + Matrix[9]
	b := Matrix[10]*c.r + Matrix[11]*c.g + Matrix[12]*c.b + Matrix[13]*c.a + Matrix[14]
	a := Matrix[15]*c.r + Matrix[16]*c.g + Matrix[17]*c.b + Matrix[18]*c.a + Matrix[19]
	r = clamp(r, 0, 1)
	g = clamp(g, 0, 1)
	b = clamp(b, 0, 1)
	a = clamp(a, 0, 1)
	return vec4(r*a, g*a, b*a, a)
}
`

// colorMatrixShader is compiled on first use. Filters are only applied on
// the host's draw goroutine.
var colorMatrixShader *ebiten.Shader

func ensureColorMatrixShader() *ebiten.Shader {
	if colorMatrixShader == nil {
		s, err := ebiten.NewShader([]byte(colorMatrixShaderSrc))
		if err != nil {
			panic("bower: failed to compile color matrix shader: " + err.Error())
		}
		colorMatrixShader = s
	}
	return colorMatrixShader
}

// ColorMatrixFilter applies a 4x5 color matrix transformation using a Kage shader.
// The matrix is stored in row-major order: [R_r, R_g, R_b, R_a, R_offset, G_r, ...].
// A disabled filter copies src unchanged.
type ColorMatrixFilter struct {
	Matrix  [20]float64
	Enabled bool

	uniforms    map[string]any
	matrixF32   [20]float32
	matrixSlice []float32
	shaderOp    ebiten.DrawRectShaderOptions
	imgOp       ebiten.DrawImageOptions
}

// NewColorMatrixFilter creates an enabled color matrix filter initialized to
// the identity.
func NewColorMatrixFilter() *ColorMatrixFilter {
	f := &ColorMatrixFilter{
		Enabled:  true,
		uniforms: make(map[string]any, 1),
	}
	f.matrixSlice = f.matrixF32[:]
	f.uniforms["Matrix"] = f.matrixSlice
	f.Matrix[0] = 1
	f.Matrix[6] = 1
	f.Matrix[12] = 1
	f.Matrix[18] = 1
	return f
}

// SetBrightness sets the matrix to adjust brightness by the given offset [-1, 1].
func (f *ColorMatrixFilter) SetBrightness(b float64) {
	f.Matrix = [20]float64{
		1, 0, 0, 0, b,
		0, 1, 0, 0, b,
		0, 0, 1, 0, b,
		0, 0, 0, 1, 0,
	}
}

// SetBrightnessScale multiplies the color channels by s. s=1 is normal.
func (f *ColorMatrixFilter) SetBrightnessScale(s float64) {
	f.Matrix = [20]float64{
		s, 0, 0, 0, 0,
		0, s, 0, 0, 0,
		0, 0, s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// SetSaturation sets the matrix to adjust saturation. s=1 is normal, 0=grayscale.
func (f *ColorMatrixFilter) SetSaturation(s float64) {
	sr := (1 - s) * 0.299
	sg := (1 - s) * 0.587
	sb := (1 - s) * 0.114
	f.Matrix = [20]float64{
		sr + s, sg, sb, 0, 0,
		sr, sg + s, sb, 0, 0,
		sr, sg, sb + s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Apply renders the color matrix transformation from src into dst.
func (f *ColorMatrixFilter) Apply(src, dst *ebiten.Image) {
	if !f.Enabled {
		f.imgOp.GeoM.Reset()
		dst.DrawImage(src, &f.imgOp)
		return
	}
	for i, v := range f.Matrix {
		f.matrixF32[i] = float32(v)
	}
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), ensureColorMatrixShader(), &f.shaderOp)
}

// Padding returns 0; color matrix transforms don't expand the image bounds.
func (f *ColorMatrixFilter) Padding() int { return 0 }

// ApplyFilters runs filters in order, alternating between src and scratch
// as source and destination, and returns the image holding the result. Both
// images are overwritten and must be large enough to cover each filter's
// Padding. With no filters src is returned untouched.
func ApplyFilters(filters []Filter, src, scratch *ebiten.Image) *ebiten.Image {
	in, out := src, scratch
	for _, f := range filters {
		out.Clear()
		f.Apply(in, out)
		in, out = out, in
	}
	return in
}

// --- Node filter helpers ---

// AttachFilter appends f to the node's filter list and returns it.
func AttachFilter[F Filter](n *Node, f F) F {
	n.Filters = append(n.Filters, f)
	return f
}

// RemoveFilter drops every occurrence of f from the node's filter list.
func RemoveFilter(n *Node, f Filter) {
	kept := n.Filters[:0]
	for _, existing := range n.Filters {
		if existing != f {
			kept = append(kept, existing)
		}
	}
	n.Filters = kept
}

// hoverBrightness is the channel multiplier applied while hovered.
const hoverBrightness = 1.2

// attachHover adds a disabled brightness filter that the pointer
// enter/leave listeners toggle.
func attachHover(n *Node) {
	f := AttachFilter(n, NewColorMatrixFilter())
	f.SetBrightnessScale(hoverBrightness)
	f.Enabled = false

	n.On(EventPointerEnter, func(PointerContext) { f.Enabled = true })
	n.On(EventPointerLeave, func(PointerContext) { f.Enabled = false })
}
