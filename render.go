package textmesh

import (
	"encoding/binary"
	"fmt"
	"math"
)

// vertexStride is the byte stride per vertex in the serialized vertex
// data. Layout per vertex:
//
//	position  (vec2<f32>) = 8 bytes  (location 0)
//	tex_coord (vec2<f32>) = 8 bytes  (location 1)
//
// Total = 16 bytes per vertex.
const vertexStride = 16

// RenderText lays out and expands text into renderable glyph quads in
// one shot. It splits text on '\n', shapes each line with a fresh
// shaper from font, positions the glyphs, expands them into quads
// against cache, aligns each line and finally the whole block, and
// generates matching triangle-list indices.
//
// Returns four vertex positions and texture coordinates per glyph, six
// indices per glyph, and the aligned block bounding rectangle. The
// final line counts toward the rectangle even when it has no glyphs, so
// text ending in '\n' spans one more line band than the same text
// without it, and empty text spans the first line's ascent/descent
// band.
//
// The cache must have a single layer and the font must be registered
// with it. Vertex storage is reserved assuming one glyph per input
// byte, a safe over-estimate for most scripts; a shaper producing more
// glyphs than input bytes (some complex-script compositions) trips an
// internal consistency panic.
func RenderText(
	font Font,
	size float32,
	cache GlyphCache,
	text string,
	alignment Alignment,
) (positions, textureCoordinates []Vec2, indices []uint32, rect Rect) {
	positions, textureCoordinates, rect = renderVertices(font, size, cache, text, alignment)

	glyphCount := len(positions) / 4
	indices = make([]uint32, glyphCount*6)
	RenderGlyphQuadIndicesInto(0, indices)

	return positions, textureCoordinates, indices, rect
}

// renderVertices is the vertex half of RenderText, shared with the
// GPU-backed Renderer which keeps its index buffer static and only
// needs fresh vertices per call.
func renderVertices(
	font Font,
	size float32,
	cache GlyphCache,
	text string,
	alignment Alignment,
) (positions, textureCoordinates []Vec2, rect Rect) {
	const direction = LayoutDirectionHorizontalTopToBottom

	glyphCapacity := len(text)
	positions = make([]Vec2, 0, glyphCapacity*4)
	textureCoordinates = make([]Vec2, 0, glyphCapacity*4)

	shaper := font.CreateShaper()
	scale := size / font.Size()

	var cursor Vec2
	var blockRect Rect
	glyphCount := 0

	// Empty segments between two breaks are skipped entirely, but the
	// final segment always contributes its line rectangle, so text
	// ending in a break (and empty text) still spans the trailing line's
	// ascent/descent band.
	var lineStart Vec2
	lastLineEmpty := false

	for line := range Lines(text) {
		lineStart = cursor
		lastLineEmpty = line == ""
		if line != "" {
			shaper.Shape(line)
			count := shaper.GlyphCount()

			glyphCount += count
			if glyphCount > glyphCapacity {
				panic(fmt.Sprintf("textmesh: shaped %d glyphs from %d bytes of input, expected at most one glyph per byte",
					glyphCount, glyphCapacity))
			}

			ids := make([]GlyphID, count)
			shaper.GlyphIDsInto(ids)
			offsets := make([]Vec2, count)
			advances := make([]Vec2, count)
			shaper.GlyphOffsetsAdvancesInto(offsets, advances)

			// The offsets are not needed once positions are computed, so
			// the position output aliases the offset storage.
			glyphPositions := offsets
			lineRect := RenderLineGlyphPositionsInto(font, size, direction,
				offsets, advances, &cursor, glyphPositions)

			base := len(positions)
			positions = positions[:base+count*4]
			textureCoordinates = textureCoordinates[:base+count*4]
			lineVertices := positions[base:]
			quadRect := RenderGlyphQuadsInto(font, size, cache,
				glyphPositions, ids, lineVertices, textureCoordinates[base:])

			alignRect := lineRect
			if alignment.GlyphBounds {
				alignRect = quadRect
			}
			blockRect = blockRect.Join(AlignLine(alignRect, direction, alignment, lineVertices))
		}

		// Next line starts at X=0, one line height further down.
		cursor = Vec2{Y: cursor.Y - font.LineHeight()*scale}
	}

	if lastLineEmpty {
		lineRect := RenderLineGlyphPositionsInto(font, size, direction,
			nil, nil, &lineStart, nil)
		alignRect := lineRect
		if alignment.GlyphBounds {
			// No ink on this line; a degenerate rectangle joins as the
			// identity.
			alignRect = Rect{}
		}
		blockRect = blockRect.Join(AlignLine(alignRect, direction, alignment, nil))
	}

	rect = AlignBlock(blockRect, direction, alignment, positions)

	Logger().Debug("textmesh: rendered text",
		"glyphs", glyphCount, "vertices", len(positions))

	return positions, textureCoordinates, rect
}

// buildVertexData serializes parallel position and texture coordinate
// slices into interleaved little-endian vertex bytes for GPU upload,
// 16 bytes per vertex.
func buildVertexData(positions, textureCoordinates []Vec2) []byte {
	data := make([]byte, len(positions)*vertexStride)
	off := 0
	for i := range positions {
		writeVertex(data[off:], positions[i], textureCoordinates[i])
		off += vertexStride
	}
	return data
}

// writeVertex writes a single interleaved vertex into buf.
func writeVertex(buf []byte, position, textureCoordinate Vec2) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(position.X))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(position.Y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(textureCoordinate.X))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(textureCoordinate.Y))
}

// buildIndexData serializes triangle-list indices for glyphCount quads
// into raw little-endian bytes of the given index width.
func buildIndexData(glyphCount int, indexType IndexType) []byte {
	switch indexType {
	case IndexTypeUint8:
		indices := make([]uint8, glyphCount*6)
		RenderGlyphQuadIndicesInto(0, indices)
		return indices
	case IndexTypeUint16:
		indices := make([]uint16, glyphCount*6)
		RenderGlyphQuadIndicesInto(0, indices)
		data := make([]byte, len(indices)*2)
		for i, idx := range indices {
			binary.LittleEndian.PutUint16(data[i*2:], idx)
		}
		return data
	case IndexTypeUint32:
		indices := make([]uint32, glyphCount*6)
		RenderGlyphQuadIndicesInto(0, indices)
		data := make([]byte, len(indices)*4)
		for i, idx := range indices {
			binary.LittleEndian.PutUint32(data[i*4:], idx)
		}
		return data
	default:
		panic(fmt.Sprintf("textmesh: invalid index type %d", int(indexType)))
	}
}
