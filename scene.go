package bower

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// ResizeDebounce is how long the viewport must stay unchanged after
// RequestResize before FlushResize refreshes the views.
const ResizeDebounce = 300 * time.Millisecond

// Scene owns the root node, the live viewport, the layout manager and the
// shared state handed to views. Elements hold a reference to their scene;
// nothing in the package is global.
type Scene struct {
	root   *Node
	width  float64
	height float64
	layout *LayoutManager
	assets AssetLoader
	logger *log.Logger
	sink   EventSink
	debug  bool

	model      any
	textStyles map[string]TextStyle
	views      []View

	pending       Size
	pendingAt     time.Time
	resizePending bool
}

// NewScene creates a scene with a root container and a viewport of the given
// size.
func NewScene(width, height float64) *Scene {
	root := NewContainer()
	root.Label = "root"
	s := &Scene{
		root:       root,
		width:      width,
		height:     height,
		logger:     newDiscardLogger(),
		textStyles: make(map[string]TextStyle),
	}
	s.layout = NewLayoutManager()
	s.layout.Initialize(s)
	return s
}

// Root returns the scene's root container.
func (s *Scene) Root() *Node {
	return s.root
}

// ViewportSize returns the current viewport size.
func (s *Scene) ViewportSize() Size {
	return Size{Width: s.width, Height: s.height}
}

// Layout returns the scene's layout manager.
func (s *Scene) Layout() *LayoutManager {
	return s.layout
}

// SetAssets sets the loader used for every asset declared by elements of
// this scene.
func (s *Scene) SetAssets(loader AssetLoader) {
	s.assets = loader
}

// Assets returns the scene's asset loader, which may be nil.
func (s *Scene) Assets() AssetLoader {
	return s.assets
}

// SetLogger replaces the scene's logger. A nil logger discards output.
func (s *Scene) SetLogger(l *log.Logger) {
	if l == nil {
		l = newDiscardLogger()
	}
	s.logger = l
	if s.debug {
		s.logger.SetLevel(log.DebugLevel)
	}
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *log.Logger {
	return s.logger
}

// SetDebugMode lowers the logger to debug level when enabled and restores
// info level when disabled.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	if enabled {
		s.logger.SetLevel(log.DebugLevel)
	} else {
		s.logger.SetLevel(log.InfoLevel)
	}
}

// SetEventSink sets the receiver of lifecycle events. Pass nil to disable.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetModel sets the application model shared with views.
func (s *Scene) SetModel(model any) {
	s.model = model
}

// SetTextStyles replaces the named text style registry shared with views.
func (s *Scene) SetTextStyles(styles map[string]TextStyle) {
	s.textStyles = make(map[string]TextStyle, len(styles))
	for k, v := range styles {
		s.textStyles[k] = v
	}
}

// Context returns the view context for the current model and styles.
func (s *Scene) Context() ViewContext {
	return ViewContext{Model: s.model, TextStyles: s.textStyles}
}

// AddView registers a top-level view. Views are initialized by Initialize in
// registration order.
func (s *Scene) AddView(v View) {
	s.views = append(s.views, v)
}

// Views returns the registered top-level views.
func (s *Scene) Views() []View {
	return s.views
}

// Initialize initializes every registered view against the root. The first
// failure stops the pass.
func (s *Scene) Initialize(ctx context.Context) error {
	vc := s.Context()
	for _, v := range s.views {
		if err := v.InitializeView(ctx, s, s.root, vc); err != nil {
			return err
		}
	}
	s.logger.Debug("scene initialized", "views", len(s.views), "viewport", s.ViewportSize())
	return nil
}

// Resize updates the viewport and refreshes every initialized view so
// screen-relative layout follows the new size. It runs immediately; hosts
// that receive a stream of window sizes should use RequestResize and
// FlushResize instead.
func (s *Scene) Resize(ctx context.Context, width, height float64) error {
	s.width = width
	s.height = height
	s.logger.Debug("scene resized", "viewport", s.ViewportSize())
	for _, v := range s.views {
		if v.Root() == nil {
			continue
		}
		if err := v.RefreshView(ctx); err != nil {
			return err
		}
	}
	return nil
}

// RequestResize records a viewport size reported at now. Only the latest
// request is kept.
func (s *Scene) RequestResize(width, height float64, now time.Time) {
	s.pending = Size{Width: width, Height: height}
	s.pendingAt = now
	s.resizePending = true
}

// FlushResize applies the pending size once ResizeDebounce has passed since
// the latest request. It reports whether a resize ran. A request matching
// the current viewport is dropped without refreshing.
func (s *Scene) FlushResize(ctx context.Context, now time.Time) (bool, error) {
	if !s.resizePending || now.Sub(s.pendingAt) < ResizeDebounce {
		return false, nil
	}
	s.resizePending = false
	if s.pending == s.ViewportSize() {
		return false, nil
	}
	return true, s.Resize(ctx, s.pending.Width, s.pending.Height)
}

// Destroy destroys every registered view.
func (s *Scene) Destroy() {
	for i := len(s.views) - 1; i >= 0; i-- {
		s.views[i].DestroyView()
	}
	s.views = nil
}

func (s *Scene) emit(event LifecycleEvent) {
	if s.sink != nil {
		s.sink.EmitLifecycle(event)
	}
}
