package bower

import (
	"context"
	_ "image/jpeg" // register decoders used by FSSource
	_ "image/png"
	"io/fs"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/singleflight"
)

// Texture is a loaded image asset with its logical size.
type Texture struct {
	Name   string
	Image  *ebiten.Image
	Region TextureRegion
	Width  float64
	Height float64
}

// AssetLoader resolves named assets. Implementations must be safe for
// concurrent use; Element issues every load of a subtree at once.
type AssetLoader interface {
	LoadTexture(ctx context.Context, name string) (*Texture, error)
}

// TextureSource produces a texture for a name without caching.
type TextureSource interface {
	Texture(ctx context.Context, name string) (*Texture, error)
}

// SourceFunc adapts a function to TextureSource.
type SourceFunc func(ctx context.Context, name string) (*Texture, error)

// Texture calls f.
func (f SourceFunc) Texture(ctx context.Context, name string) (*Texture, error) {
	return f(ctx, name)
}

// AssetCache is a cache-backed AssetLoader. Repeated loads of one name return
// the same *Texture, and concurrent loads of one name share a single call to
// the source. Failures are not cached.
type AssetCache struct {
	source TextureSource
	group  singleflight.Group

	mu       sync.RWMutex
	textures map[string]*Texture
}

// NewAssetCache creates a cache in front of source.
func NewAssetCache(source TextureSource) *AssetCache {
	return &AssetCache{
		source:   source,
		textures: make(map[string]*Texture),
	}
}

// LoadTexture returns the cached texture for name, loading it on first use.
func (c *AssetCache) LoadTexture(ctx context.Context, name string) (*Texture, error) {
	c.mu.RLock()
	tex, ok := c.textures[name]
	c.mu.RUnlock()
	if ok {
		return tex, nil
	}

	v, err, _ := c.group.Do(name, func() (any, error) {
		c.mu.RLock()
		tex, ok := c.textures[name]
		c.mu.RUnlock()
		if ok {
			return tex, nil
		}
		tex, err := c.source.Texture(ctx, name)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.textures[name] = tex
		c.mu.Unlock()
		return tex, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Texture), nil
}

// Cached reports whether name has been loaded successfully.
func (c *AssetCache) Cached(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.textures[name]
	return ok
}

// Evict drops name from the cache so the next load reaches the source.
func (c *AssetCache) Evict(name string) {
	c.mu.Lock()
	delete(c.textures, name)
	c.mu.Unlock()
}

// AtlasSource serves textures from the named regions of an atlas.
func AtlasSource(a *Atlas) TextureSource {
	return SourceFunc(func(_ context.Context, name string) (*Texture, error) {
		return a.Texture(name)
	})
}

// FSSource decodes image files from fsys using the registered image
// decoders. The asset name is the path within fsys.
func FSSource(fsys fs.FS) TextureSource {
	return SourceFunc(func(ctx context.Context, name string) (*Texture, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := decodeImage(fsys, name)
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		return &Texture{
			Name:   name,
			Image:  ebiten.NewImageFromImage(img),
			Width:  float64(b.Dx()),
			Height: float64(b.Dy()),
		}, nil
	})
}
