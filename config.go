package bower

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hajimehoshi/ebiten/v2"
)

// Config describes a scene: viewport, logging, asset source, fonts and the
// named text styles shared with views. It is usually read from TOML:
//
//	debug = true
//	log_level = "info"
//
//	[viewport]
//	width = 800
//	height = 600
//
//	[assets]
//	root = "assets"
//	atlas = "sprites.json"
//	pages = ["sprites.png"]
//
//	[fonts.body]
//	path = "fonts/body.ttf"
//	size = 18
//
//	[styles.title]
//	font = "body"
//	color = "gold"
//	align = "center"
type Config struct {
	Viewport ViewportConfig         `toml:"viewport"`
	Debug    bool                   `toml:"debug"`
	LogLevel string                 `toml:"log_level"`
	Assets   AssetsConfig           `toml:"assets"`
	Fonts    map[string]FontConfig  `toml:"fonts"`
	Styles   map[string]StyleConfig `toml:"styles"`
}

// ViewportConfig is the initial viewport size.
type ViewportConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// AssetsConfig selects the texture source. With Atlas set, textures are
// atlas regions; otherwise asset names are image paths below Root.
type AssetsConfig struct {
	Root  string   `toml:"root"`
	Atlas string   `toml:"atlas"`
	Pages []string `toml:"pages"`
}

// FontConfig is a TrueType font file and its size in pixels.
type FontConfig struct {
	Path string  `toml:"path"`
	Size float64 `toml:"size"`
}

// StyleConfig is a text style referencing a font by name. Color accepts hex
// literals and CSS color names.
type StyleConfig struct {
	Font  string `toml:"font"`
	Color string `toml:"color"`
	Align string `toml:"align"`
}

// DefaultConfig returns an 800x600 scene with info logging and assets read
// from the filesystem root.
func DefaultConfig() Config {
	return Config{
		Viewport: ViewportConfig{Width: 800, Height: 600},
		LogLevel: "info",
	}
}

// LoadConfig reads a TOML file. Missing keys keep their DefaultConfig value.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML data. Missing keys keep their DefaultConfig value;
// unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("bower: parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, &UnsupportedFormatError{Kind: "config key", Input: undecoded[0].String()}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that decode cleanly but cannot be used.
func (c Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return &UnsupportedFormatError{Kind: "viewport", Input: fmt.Sprintf("%vx%v", c.Viewport.Width, c.Viewport.Height)}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	for name, st := range c.Styles {
		if _, ok := c.Fonts[st.Font]; st.Font != "" && !ok {
			return &NotFoundError{Host: "config fonts", Label: st.Font}
		}
		if _, err := ParseTextAlign(st.Align); err != nil {
			return fmt.Errorf("style %q: %w", name, err)
		}
	}
	return nil
}

// ParseTextAlign maps "left", "center" and "right" to an alignment. An
// empty string is left.
func ParseTextAlign(s string) (TextAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return TextAlignLeft, nil
	case "center":
		return TextAlignCenter, nil
	case "right":
		return TextAlignRight, nil
	}
	return TextAlignLeft, &UnsupportedFormatError{Kind: "text align", Input: s}
}

// NewSceneFromConfig builds a scene from cfg. Fonts, atlas data and images
// are read from fsys; the scene logs to stderr.
func NewSceneFromConfig(cfg Config, fsys fs.FS) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := ParseLogLevel(cfg.LogLevel)

	s := NewScene(cfg.Viewport.Width, cfg.Viewport.Height)
	s.SetLogger(NewLogger(os.Stderr, level))
	if cfg.Debug {
		s.SetDebugMode(true)
	}

	styles, err := loadStyles(cfg, fsys)
	if err != nil {
		return nil, err
	}
	s.SetTextStyles(styles)

	source, err := loadSource(cfg.Assets, fsys)
	if err != nil {
		return nil, err
	}
	s.SetAssets(NewAssetCache(source))

	s.logger.Debug("scene configured", "viewport", s.ViewportSize(), "fonts", len(cfg.Fonts), "styles", len(styles))
	return s, nil
}

func loadStyles(cfg Config, fsys fs.FS) (map[string]TextStyle, error) {
	fonts := make(map[string]Font, len(cfg.Fonts))
	for name, fc := range cfg.Fonts {
		data, err := fs.ReadFile(fsys, fc.Path)
		if err != nil {
			return nil, fmt.Errorf("bower: font %q: %w", name, err)
		}
		f, err := LoadTTFFont(data, fc.Size)
		if err != nil {
			return nil, fmt.Errorf("bower: font %q: %w", name, err)
		}
		fonts[name] = f
	}

	styles := make(map[string]TextStyle, len(cfg.Styles))
	for name, sc := range cfg.Styles {
		st := TextStyle{Color: ColorWhite}
		if sc.Font != "" {
			f, ok := fonts[sc.Font]
			if !ok {
				return nil, &NotFoundError{Host: "config fonts", Label: sc.Font}
			}
			st.Font = f
		}
		if sc.Color != "" {
			c, err := ColorByName(sc.Color)
			if err != nil {
				return nil, fmt.Errorf("style %q: %w", name, err)
			}
			st.Color = c
		}
		align, err := ParseTextAlign(sc.Align)
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", name, err)
		}
		st.Align = align
		styles[name] = st
	}
	return styles, nil
}

func loadSource(ac AssetsConfig, fsys fs.FS) (TextureSource, error) {
	root := fsys
	if ac.Root != "" && ac.Root != "." {
		sub, err := fs.Sub(fsys, ac.Root)
		if err != nil {
			return nil, err
		}
		root = sub
	}
	if ac.Atlas == "" {
		return FSSource(root), nil
	}

	data, err := fs.ReadFile(root, ac.Atlas)
	if err != nil {
		return nil, fmt.Errorf("bower: atlas: %w", err)
	}
	pages := make([]*ebiten.Image, 0, len(ac.Pages))
	for _, path := range ac.Pages {
		img, err := decodeImage(root, path)
		if err != nil {
			return nil, err
		}
		pages = append(pages, ebiten.NewImageFromImage(img))
	}
	atlas, err := LoadAtlas(data, pages)
	if err != nil {
		return nil, err
	}
	return AtlasSource(atlas), nil
}

func decodeImage(fsys fs.FS, path string) (image.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
