package bower

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font is the interface for text measurement.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// TextStyle holds the presentation of a TextBlock. Styles are usually kept
// in a ViewContext registry and looked up by name.
type TextStyle struct {
	Font  Font
	Color Color
	Align TextAlign
}

// TextBlock holds text content and its style.
type TextBlock struct {
	Content string
	Style   TextStyle
}

// Measure returns the unscaled size of the laid-out content. Without a font
// the block measures as empty.
func (tb *TextBlock) Measure() (width, height float64) {
	if tb.Style.Font == nil || tb.Content == "" {
		return 0, 0
	}
	return tb.Style.Font.MeasureString(tb.Content)
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font measurement.
type TTFFont struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("bower: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	return &TTFFont{
		face: face,
		lh:   m.HAscent + m.HDescent + m.HLineGap,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// MonoFont measures every rune as a fixed-size cell. It is useful for
// layout tests and for bitmap fonts with uniform advances.
type MonoFont struct {
	Advance float64
	Line    float64
}

// MeasureString returns the widest line times Advance and the line count
// times Line.
func (f MonoFont) MeasureString(s string) (width, height float64) {
	lines := strings.Split(s, "\n")
	widest := 0
	for _, l := range lines {
		widest = max(widest, len([]rune(l)))
	}
	return float64(widest) * f.Advance, float64(len(lines)) * f.Line
}

// LineHeight returns Line.
func (f MonoFont) LineHeight() float64 {
	return f.Line
}
