package bower

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestColorMatrixFilterIdentity(t *testing.T) {
	f := NewColorMatrixFilter()
	if !f.Enabled {
		t.Error("new filter should be enabled")
	}
	want := [20]float64{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
	if f.Matrix != want {
		t.Errorf("Matrix = %v, want identity", f.Matrix)
	}
	if f.Padding() != 0 {
		t.Errorf("Padding = %d, want 0", f.Padding())
	}
}

func TestColorMatrixFilterSetters(t *testing.T) {
	f := NewColorMatrixFilter()

	f.SetBrightness(0.25)
	if f.Matrix[4] != 0.25 || f.Matrix[9] != 0.25 || f.Matrix[14] != 0.25 || f.Matrix[19] != 0 {
		t.Errorf("brightness offsets = %v", f.Matrix)
	}

	f.SetBrightnessScale(1.5)
	if f.Matrix[0] != 1.5 || f.Matrix[6] != 1.5 || f.Matrix[12] != 1.5 || f.Matrix[18] != 1 {
		t.Errorf("brightness scale diagonal = %v", f.Matrix)
	}

	f.SetSaturation(0)
	// Grayscale rows sum the luma weights.
	for row := range 3 {
		sum := f.Matrix[row*5] + f.Matrix[row*5+1] + f.Matrix[row*5+2]
		assertNear(t, "row sum", sum, 1)
	}
	assertNear(t, "R from G", f.Matrix[1], 0.587)
}

func TestAttachAndRemoveFilter(t *testing.T) {
	n := NewSprite()
	a := AttachFilter(n, NewColorMatrixFilter())
	b := AttachFilter(n, NewColorMatrixFilter())
	AttachFilter(n, a)
	if len(n.Filters) != 3 {
		t.Fatalf("Filters = %d, want 3", len(n.Filters))
	}

	RemoveFilter(n, a)
	if len(n.Filters) != 1 || n.Filters[0] != Filter(b) {
		t.Errorf("after RemoveFilter: %v, want [b]", n.Filters)
	}
	RemoveFilter(n, a) // absent
	if len(n.Filters) != 1 {
		t.Error("removing an absent filter changed the list")
	}
}

func TestHoverTogglesFilter(t *testing.T) {
	n := NewSprite()
	attachHover(n)
	if len(n.Filters) != 1 {
		t.Fatalf("Filters = %d, want 1", len(n.Filters))
	}
	f := n.Filters[0].(*ColorMatrixFilter)
	if f.Enabled {
		t.Error("hover filter enabled before the pointer entered")
	}
	n.Emit(EventPointerEnter, PointerContext{})
	if !f.Enabled {
		t.Error("pointer enter did not enable the filter")
	}
	n.Emit(EventPointerLeave, PointerContext{})
	if f.Enabled {
		t.Error("pointer leave did not disable the filter")
	}
}

func TestHoverOnElementSurvivesUpdate(t *testing.T) {
	s, _ := newTestScene()
	e := NewElement(s, NewSprite, func(b *Builder) { b.Hover() })
	if err := e.InitializeElement(t.Context(), s.Root()); err != nil {
		t.Fatalf("InitializeElement: %v", err)
	}
	if err := e.UpdateElement(t.Context()); err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}
	n := e.Node()
	if len(n.Filters) != 1 {
		t.Errorf("Filters = %d, want 1 after update", len(n.Filters))
	}
	if got := n.ListenerCount(EventPointerEnter); got != 1 {
		t.Errorf("enter listeners = %d, want 1", got)
	}
}

// recordingFilter logs the images it was applied between.
type recordingFilter struct {
	name  string
	calls *[]string
	imgs  map[*ebiten.Image]string
}

func (f recordingFilter) Apply(src, dst *ebiten.Image) {
	*f.calls = append(*f.calls, f.name+":"+f.imgs[src]+">"+f.imgs[dst])
}

func (f recordingFilter) Padding() int { return 0 }

func TestApplyFilters(t *testing.T) {
	src, scratch := ebiten.NewImage(4, 4), ebiten.NewImage(4, 4)
	imgs := map[*ebiten.Image]string{src: "src", scratch: "scratch"}

	if got := ApplyFilters(nil, src, scratch); got != src {
		t.Error("no filters should return src")
	}

	var calls []string
	filters := []Filter{
		recordingFilter{"a", &calls, imgs},
		recordingFilter{"b", &calls, imgs},
		recordingFilter{"c", &calls, imgs},
	}
	got := ApplyFilters(filters, src, scratch)
	want := []string{"a:src>scratch", "b:scratch>src", "c:src>scratch"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
	if got != scratch {
		t.Errorf("result = %s, want scratch", imgs[got])
	}
}
