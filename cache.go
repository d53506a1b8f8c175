package textmesh

// AtlasRegion is an integer pixel rectangle within a glyph atlas layer.
type AtlasRegion struct {
	X, Y          int
	Width, Height int
}

// CachedGlyph is a glyph cache entry: where the rasterized glyph sits
// in the atlas and how its bitmap is displaced from the glyph origin.
type CachedGlyph struct {
	// OffsetX, OffsetY displace the quad's bottom-left corner from the
	// glyph position, in atlas pixels at the cache's processing scale.
	OffsetX, OffsetY int

	// Layer is the atlas array layer holding the glyph.
	Layer int

	// Region is the glyph's pixel rectangle within that layer.
	Region AtlasRegion
}

// GlyphCache resolves (font, glyph id) pairs to texture atlas regions.
// Implementations rasterize glyphs into one or more texture layers;
// this package only reads the resulting geometry.
//
// A glyph id unknown to the cache must resolve to a valid fallback
// entry (typically a zero-size region) rather than failing — quad
// generation treats every resolved entry uniformly.
type GlyphCache interface {
	// FindFont returns the cache-internal index for a registered font,
	// or false when the font was never added to this cache.
	FindFont(font Font) (int, bool)

	// FontCount returns the number of fonts registered with the cache.
	FontCount() int

	// Glyph returns the cache entry for a glyph of a registered font.
	// fontIndex must come from FindFont.
	Glyph(fontIndex int, id GlyphID) CachedGlyph

	// Size returns the atlas dimensions in pixels and the layer count.
	// Single-layer caches (layers == 1) are required by the
	// 2D-texture-coordinate quad overload.
	Size() (width, height, layers int)
}
