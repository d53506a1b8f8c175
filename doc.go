// Package textmesh turns shaped glyph runs into GPU-ready vertex and
// index data.
//
// The package is split into two layers. The lower layer is a set of
// pure functions operating on caller-supplied slices:
// [RenderLineGlyphPositionsInto] advances a cursor over one line of
// shaped glyphs, [RenderGlyphQuadsInto] expands glyph positions into
// textured quads using a [GlyphCache], [RenderGlyphQuadIndicesInto]
// fills triangle-list indices for quads, and [AlignLine]/[AlignBlock]
// translate positions to satisfy an [Alignment]. The stateless
// [RenderText] drives all of them over multi-line text and returns
// deinterleaved positions, texture coordinates, indices and the block
// bounding rectangle.
//
// The upper layer is the stateful [Renderer], which owns persistent
// GPU vertex/index buffers of a fixed glyph capacity and streams fresh
// vertex data into them on every Render call without reallocating.
// [TextPipeline] provides the matching render pipeline and records the
// indexed draw.
//
// Fonts and glyph caches are external collaborators described by the
// [Font], [Shaper] and [GlyphCache] interfaces. [GoTextFont] is a
// concrete Font backed by go-text/typesetting's HarfBuzz shaper, and
// [AtlasGlyphCache] is a concrete shelf-packed GlyphCache.
//
// All lower-layer functions are pure transformations; precondition
// violations (mismatched slice lengths, unsupported layout direction,
// fonts missing from the cache, over-capacity renders) panic rather
// than returning errors. Only GPU resource operations return errors.
package textmesh
