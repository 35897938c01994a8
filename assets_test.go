package bower

import (
	"context"
	"errors"
	"io/fs"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
)

// countingSource hands out a fresh texture per call and counts calls.
type countingSource struct {
	calls atomic.Int32
	gate  chan struct{}
	err   error
}

func (s *countingSource) Texture(ctx context.Context, name string) (*Texture, error) {
	s.calls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	if s.err != nil {
		return nil, s.err
	}
	return &Texture{Name: name, Width: 8, Height: 8}, nil
}

func TestAssetCacheReturnsSameTexture(t *testing.T) {
	src := &countingSource{}
	c := NewAssetCache(src)
	ctx := context.Background()

	a, err := c.LoadTexture(ctx, "hero")
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	b, _ := c.LoadTexture(ctx, "hero")
	if a != b {
		t.Error("second load returned a different texture")
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source calls = %d, want 1", got)
	}
	if !c.Cached("hero") || c.Cached("other") {
		t.Error("Cached reports the wrong names")
	}
}

func TestAssetCacheSharesConcurrentLoads(t *testing.T) {
	src := &countingSource{gate: make(chan struct{})}
	c := NewAssetCache(src)

	const n = 8
	var wg sync.WaitGroup
	results := make([]*Texture, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = c.LoadTexture(context.Background(), "hero")
		}()
	}
	// Let the first call reach the source before releasing it.
	for src.calls.Load() == 0 {
		runtime.Gosched()
	}
	close(src.gate)
	wg.Wait()

	for i, tex := range results {
		if tex == nil || tex != results[0] {
			t.Errorf("result %d = %p, want %p", i, tex, results[0])
		}
	}
	// Goroutines that arrive after the first call finished hit the cache.
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source calls = %d, want 1", got)
	}
}

func TestAssetCacheDoesNotCacheFailures(t *testing.T) {
	boom := errors.New("boom")
	src := &countingSource{err: boom}
	c := NewAssetCache(src)
	ctx := context.Background()

	if _, err := c.LoadTexture(ctx, "hero"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	src.err = nil
	if _, err := c.LoadTexture(ctx, "hero"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := src.calls.Load(); got != 2 {
		t.Errorf("source calls = %d, want 2", got)
	}
}

func TestAssetCacheEvict(t *testing.T) {
	src := &countingSource{}
	c := NewAssetCache(src)
	ctx := context.Background()

	first, _ := c.LoadTexture(ctx, "hero")
	c.Evict("hero")
	c.Evict("never-loaded")
	if c.Cached("hero") {
		t.Error("hero still cached after Evict")
	}
	second, _ := c.LoadTexture(ctx, "hero")
	if first == second {
		t.Error("load after Evict returned the old texture")
	}
}

func TestAtlasSource(t *testing.T) {
	a := mustAtlas(t, singlePageJSON)
	c := NewAssetCache(AtlasSource(a))
	ctx := context.Background()

	tex, err := c.LoadTexture(ctx, "hero.png")
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if tex.Width != 64 || tex.Region.Width != 64 {
		t.Errorf("texture = %+v", tex)
	}
	if _, err := c.LoadTexture(ctx, "ghost.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFSSourceErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.png": {Data: []byte("not an image")},
	}
	src := FSSource(fsys)
	ctx := context.Background()

	if _, err := src.Texture(ctx, "missing.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing err = %v, want fs.ErrNotExist", err)
	}
	if _, err := src.Texture(ctx, "bad.png"); err == nil {
		t.Error("bad.png decoded without error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := src.Texture(cancelled, "bad.png"); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled err = %v, want context.Canceled", err)
	}
}

func TestElementLoadsThroughAssetCache(t *testing.T) {
	s := NewScene(800, 600)
	src := &countingSource{}
	s.SetAssets(NewAssetCache(src))

	e := NewElement(s, NewContainer, func(b *Builder) {
		for range 3 {
			b.Child(NewSprite, func(b *Builder) { b.SpriteTexture("tile") })
		}
	})
	if err := e.InitializeElement(context.Background(), s.Root()); err != nil {
		t.Fatalf("InitializeElement: %v", err)
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source calls = %d, want 1", got)
	}
	tex := e.Node().ChildAt(0).Texture
	for i := range 3 {
		if e.Node().ChildAt(i).Texture != tex {
			t.Errorf("child %d has a different texture", i)
		}
	}
}
