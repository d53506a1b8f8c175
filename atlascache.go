package textmesh

import (
	"fmt"
	"sync"
)

// Default glyph cache settings.
const (
	// DefaultCacheSize is the default atlas dimension (1024x1024).
	DefaultCacheSize = 1024

	// MinCacheSize is the minimum atlas dimension (256x256).
	MinCacheSize = 256

	// DefaultCachePadding is the padding between packed glyphs.
	DefaultCachePadding = 1
)

// AtlasGlyphCacheConfig holds configuration for creating an
// AtlasGlyphCache. The zero value selects defaults.
type AtlasGlyphCacheConfig struct {
	// Width is the atlas width in pixels. Defaults to DefaultCacheSize.
	Width int

	// Height is the atlas height in pixels. Defaults to DefaultCacheSize.
	Height int

	// Padding is the spacing between packed glyphs.
	// Defaults to DefaultCachePadding.
	Padding int

	// MaxLayers caps how many atlas layers the cache may grow to.
	// Defaults to 1, which keeps the cache usable with the
	// 2D-texture-coordinate quad functions.
	MaxLayers int
}

// DefaultAtlasGlyphCacheConfig returns default configuration.
func DefaultAtlasGlyphCacheConfig() AtlasGlyphCacheConfig {
	return AtlasGlyphCacheConfig{
		Width:     DefaultCacheSize,
		Height:    DefaultCacheSize,
		Padding:   DefaultCachePadding,
		MaxLayers: 1,
	}
}

// cacheShelf is one horizontal shelf of the shelf-packing allocator.
type cacheShelf struct {
	y      int // top Y coordinate of this shelf
	height int // shelf height, grows to the tallest item placed first
	nextX  int // next free X position on this shelf
}

// cacheLayer packs glyph rectangles into one atlas layer using shelf
// packing: each rectangle goes onto the first shelf with room, or onto
// a fresh shelf below the last one.
type cacheLayer struct {
	shelves []cacheShelf
}

// allocate finds room for a width x height rectangle. Returns false
// when the layer cannot fit it.
func (l *cacheLayer) allocate(width, height, atlasWidth, atlasHeight, padding int) (AtlasRegion, bool) {
	paddedWidth := width + padding
	paddedHeight := height + padding
	if paddedWidth > atlasWidth || paddedHeight > atlasHeight {
		return AtlasRegion{}, false
	}

	for i := range l.shelves {
		s := &l.shelves[i]
		if s.nextX+paddedWidth > atlasWidth {
			continue
		}
		// A taller item only fits on a shelf that nothing sits on yet.
		if paddedHeight > s.height && s.nextX > 0 {
			continue
		}
		region := AtlasRegion{X: s.nextX, Y: s.y, Width: width, Height: height}
		s.nextX += paddedWidth
		if paddedHeight > s.height {
			s.height = paddedHeight
		}
		return region, true
	}

	newY := 0
	if n := len(l.shelves); n > 0 {
		last := l.shelves[n-1]
		newY = last.y + last.height
	}
	if newY+paddedHeight > atlasHeight {
		return AtlasRegion{}, false
	}
	l.shelves = append(l.shelves, cacheShelf{y: newY, height: paddedHeight, nextX: paddedWidth})
	return AtlasRegion{X: 0, Y: newY, Width: width, Height: height}, true
}

// AtlasGlyphCache is a concrete [GlyphCache] packing glyph rectangles
// into one or more atlas layers with a shelf-packing allocator. It
// tracks only geometry; uploading the rasterized glyph bitmaps into the
// actual GPU texture is up to the caller, which gets the placement from
// AddGlyph.
//
// Glyph ids that were never added resolve to a zero-size fallback
// entry, so rendering text with missing glyphs produces invisible
// quads instead of failing.
//
// AtlasGlyphCache is safe for concurrent use.
type AtlasGlyphCache struct {
	mu sync.RWMutex

	width   int
	height  int
	padding int

	maxLayers int
	layers    []cacheLayer

	fonts  []Font
	glyphs []map[GlyphID]CachedGlyph
}

// NewAtlasGlyphCache creates a glyph cache with default configuration.
func NewAtlasGlyphCache() *AtlasGlyphCache {
	return NewAtlasGlyphCacheWithConfig(DefaultAtlasGlyphCacheConfig())
}

// NewAtlasGlyphCacheWithConfig creates a glyph cache with the given
// configuration, substituting defaults for out-of-range values.
func NewAtlasGlyphCacheWithConfig(config AtlasGlyphCacheConfig) *AtlasGlyphCache {
	if config.Width < MinCacheSize {
		config.Width = DefaultCacheSize
	}
	if config.Height < MinCacheSize {
		config.Height = DefaultCacheSize
	}
	if config.Padding < 0 {
		config.Padding = DefaultCachePadding
	}
	if config.MaxLayers < 1 {
		config.MaxLayers = 1
	}

	return &AtlasGlyphCache{
		width:     config.Width,
		height:    config.Height,
		padding:   config.Padding,
		maxLayers: config.MaxLayers,
		layers:    make([]cacheLayer, 1),
	}
}

// AddFont registers a font with the cache and returns its index for
// subsequent AddGlyph calls. Registering the same font again returns
// the existing index.
func (c *AtlasGlyphCache) AddFont(font Font) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, f := range c.fonts {
		if f == font {
			return i
		}
	}
	c.fonts = append(c.fonts, font)
	c.glyphs = append(c.glyphs, make(map[GlyphID]CachedGlyph))
	return len(c.fonts) - 1
}

// AddGlyph reserves atlas space for a glyph bitmap of the given pixel
// size and records its placement under (fontIndex, id). offsetX and
// offsetY displace the glyph quad from the glyph position, typically
// the rasterizer's bitmap bearing.
//
// Returns the cache entry with the assigned layer and region. Returns
// ErrAtlasFull when no layer can fit the bitmap and the layer cap is
// reached. Panics when fontIndex is out of range.
func (c *AtlasGlyphCache) AddGlyph(fontIndex int, id GlyphID, offsetX, offsetY, width, height int) (CachedGlyph, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if fontIndex < 0 || fontIndex >= len(c.fonts) {
		panic(fmt.Sprintf("textmesh: font index %d out of range for %d fonts", fontIndex, len(c.fonts)))
	}

	// Zero-size glyphs (spaces) need no atlas space.
	if width <= 0 || height <= 0 {
		glyph := CachedGlyph{OffsetX: offsetX, OffsetY: offsetY}
		c.glyphs[fontIndex][id] = glyph
		return glyph, nil
	}

	for layer := range c.layers {
		if region, ok := c.layers[layer].allocate(width, height, c.width, c.height, c.padding); ok {
			glyph := CachedGlyph{OffsetX: offsetX, OffsetY: offsetY, Layer: layer, Region: region}
			c.glyphs[fontIndex][id] = glyph
			return glyph, nil
		}
	}

	if len(c.layers) < c.maxLayers {
		c.layers = append(c.layers, cacheLayer{})
		layer := len(c.layers) - 1
		if region, ok := c.layers[layer].allocate(width, height, c.width, c.height, c.padding); ok {
			glyph := CachedGlyph{OffsetX: offsetX, OffsetY: offsetY, Layer: layer, Region: region}
			c.glyphs[fontIndex][id] = glyph
			Logger().Debug("textmesh: glyph cache grew a layer", "layers", len(c.layers))
			return glyph, nil
		}
	}

	return CachedGlyph{}, fmt.Errorf("%w: %dx%d glyph does not fit %dx%dx%d atlas",
		ErrAtlasFull, width, height, c.width, c.height, c.maxLayers)
}

// FindFont returns the index of a registered font, or false when the
// font was never added.
func (c *AtlasGlyphCache) FindFont(font Font) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i, f := range c.fonts {
		if f == font {
			return i, true
		}
	}
	return 0, false
}

// FontCount returns the number of registered fonts.
func (c *AtlasGlyphCache) FontCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.fonts)
}

// Glyph returns the cache entry for a glyph, or the zero-size fallback
// entry when the glyph was never added. Panics when fontIndex is out
// of range.
func (c *AtlasGlyphCache) Glyph(fontIndex int, id GlyphID) CachedGlyph {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if fontIndex < 0 || fontIndex >= len(c.fonts) {
		panic(fmt.Sprintf("textmesh: font index %d out of range for %d fonts", fontIndex, len(c.fonts)))
	}
	return c.glyphs[fontIndex][id]
}

// Size returns the atlas dimensions in pixels and the current layer
// count.
func (c *AtlasGlyphCache) Size() (width, height, layers int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width, c.height, len(c.layers)
}
