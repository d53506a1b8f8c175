package textmesh

import "fmt"

// RenderLineGlyphPositionsInto converts shaped glyph offsets and
// advances for one line into absolute positions, advancing cursor past
// the line. Offsets and advances are in font native units and get
// scaled by size/font.Size(); glyphPositions receives one absolute
// position per glyph.
//
// The offsets slice and the positions slice may share backing storage:
// each element of glyphOffsets is fully read before the corresponding
// position is written, so callers can lay out in place.
//
// The returned rectangle spans the font's scaled ascent/descent band at
// the initial cursor and is widened to include every post-advance
// cursor position, so an empty line still has the full vertical extent.
//
// Panics when the font is not opened, when direction is anything other
// than [LayoutDirectionHorizontalTopToBottom], or when the three slices
// differ in length.
func RenderLineGlyphPositionsInto(
	font Font,
	size float32,
	direction LayoutDirection,
	glyphOffsets, glyphAdvances []Vec2,
	cursor *Vec2,
	glyphPositions []Vec2,
) Rect {
	if !font.IsOpened() {
		panic("textmesh: font is not opened")
	}
	if direction != LayoutDirectionHorizontalTopToBottom {
		panic(fmt.Sprintf("textmesh: unsupported layout direction %v", direction))
	}
	if len(glyphOffsets) != len(glyphAdvances) || len(glyphOffsets) != len(glyphPositions) {
		panic(fmt.Sprintf("textmesh: expected glyph offsets, advances and positions to have the same length, got %d, %d and %d",
			len(glyphOffsets), len(glyphAdvances), len(glyphPositions)))
	}

	scale := size / font.Size()

	rect := Rect{
		Min: Vec2{X: cursor.X, Y: cursor.Y + font.Descent()*scale},
		Max: Vec2{X: cursor.X, Y: cursor.Y + font.Ascent()*scale},
	}

	for i := range glyphOffsets {
		// Read the offset before writing the position so the two slices
		// can alias.
		offset := glyphOffsets[i]
		glyphPositions[i] = cursor.Add(offset.Mul(scale))
		*cursor = cursor.Add(glyphAdvances[i].Mul(scale))

		rect.Min = minVec(rect.Min, *cursor)
		rect.Max = maxVec(rect.Max, *cursor)
	}

	return rect
}

// RenderGlyphQuadsInto expands glyph positions into textured quads,
// four vertices per glyph. Glyph bitmaps are resolved through cache;
// quad corners are the glyph position displaced by the cached bitmap
// offset and sized by the cached region, both scaled by
// size/font.Size(). Texture coordinates are the cached region
// normalized by the atlas size.
//
// Vertex order within a quad is bottom-left, bottom-right, top-left,
// top-right, forming the triangles (0,1,2) and (2,1,3) used by
// [RenderGlyphQuadIndicesInto].
//
// Returns the bounding rectangle of all generated quads, which hugs the
// glyph ink as opposed to the advance rectangle returned by
// [RenderLineGlyphPositionsInto].
//
// Panics when the font is not opened or not registered with the cache,
// when the cache has more than one layer (use
// [RenderGlyphQuadsInto3D]), when glyphIDs and glyphPositions differ in
// length, or when the vertex slices are not exactly four times as long.
func RenderGlyphQuadsInto(
	font Font,
	size float32,
	cache GlyphCache,
	glyphPositions []Vec2,
	glyphIDs []GlyphID,
	vertexPositions, vertexTextureCoordinates []Vec2,
) Rect {
	if _, _, layers := cache.Size(); layers != 1 {
		panic(fmt.Sprintf("textmesh: expected a single-layer glyph cache for 2D quads, got %d layers", layers))
	}
	return renderGlyphQuads(font, size, cache,
		glyphPositions, glyphIDs, vertexPositions, vertexTextureCoordinates, nil)
}

// RenderGlyphQuadsInto3D is like [RenderGlyphQuadsInto] but additionally
// fills vertexTextureLayers with the atlas array layer of each vertex,
// allowing layered glyph caches. All four vertices of a glyph share the
// same layer value.
func RenderGlyphQuadsInto3D(
	font Font,
	size float32,
	cache GlyphCache,
	glyphPositions []Vec2,
	glyphIDs []GlyphID,
	vertexPositions, vertexTextureCoordinates []Vec2,
	vertexTextureLayers []float32,
) Rect {
	if len(vertexTextureLayers) != len(glyphIDs)*4 {
		panic(fmt.Sprintf("textmesh: expected the texture layer slice to have length %d, got %d",
			len(glyphIDs)*4, len(vertexTextureLayers)))
	}
	return renderGlyphQuads(font, size, cache,
		glyphPositions, glyphIDs, vertexPositions, vertexTextureCoordinates, vertexTextureLayers)
}

func renderGlyphQuads(
	font Font,
	size float32,
	cache GlyphCache,
	glyphPositions []Vec2,
	glyphIDs []GlyphID,
	vertexPositions, vertexTextureCoordinates []Vec2,
	vertexTextureLayers []float32,
) Rect {
	if !font.IsOpened() {
		panic("textmesh: font is not opened")
	}
	if len(glyphIDs) != len(glyphPositions) {
		panic(fmt.Sprintf("textmesh: expected glyph IDs and positions to have the same length, got %d and %d",
			len(glyphIDs), len(glyphPositions)))
	}
	if len(vertexPositions) != len(glyphIDs)*4 || len(vertexTextureCoordinates) != len(glyphIDs)*4 {
		panic(fmt.Sprintf("textmesh: expected the vertex slices to have length %d, got %d and %d",
			len(glyphIDs)*4, len(vertexPositions), len(vertexTextureCoordinates)))
	}

	fontIndex, ok := cache.FindFont(font)
	if !ok {
		panic(fmt.Sprintf("textmesh: font not found among %d fonts in the glyph cache", cache.FontCount()))
	}

	atlasWidth, atlasHeight, _ := cache.Size()
	invAtlas := Vec2{X: 1 / float32(atlasWidth), Y: 1 / float32(atlasHeight)}
	scale := size / font.Size()

	var rect Rect
	for i := range glyphIDs {
		glyph := cache.Glyph(fontIndex, glyphIDs[i])

		quad := RectFromSize(
			glyphPositions[i].Add(Vec2{X: float32(glyph.OffsetX), Y: float32(glyph.OffsetY)}.Mul(scale)),
			Vec2{X: float32(glyph.Region.Width), Y: float32(glyph.Region.Height)}.Mul(scale),
		)
		texQuad := Rect{
			Min: Vec2{X: float32(glyph.Region.X) * invAtlas.X, Y: float32(glyph.Region.Y) * invAtlas.Y},
			Max: Vec2{
				X: float32(glyph.Region.X+glyph.Region.Width) * invAtlas.X,
				Y: float32(glyph.Region.Y+glyph.Region.Height) * invAtlas.Y,
			},
		}

		// Corner j picks X from bit 0 and Y from bit 1: bottom-left,
		// bottom-right, top-left, top-right.
		for j := 0; j < 4; j++ {
			tx := float32(j & 1)
			ty := float32(j >> 1)
			vertexPositions[i*4+j] = Vec2{
				X: quad.Min.X + (quad.Max.X-quad.Min.X)*tx,
				Y: quad.Min.Y + (quad.Max.Y-quad.Min.Y)*ty,
			}
			vertexTextureCoordinates[i*4+j] = Vec2{
				X: texQuad.Min.X + (texQuad.Max.X-texQuad.Min.X)*tx,
				Y: texQuad.Min.Y + (texQuad.Max.Y-texQuad.Min.Y)*ty,
			}
			if vertexTextureLayers != nil {
				vertexTextureLayers[i*4+j] = float32(glyph.Layer)
			}
		}

		rect = rect.Join(quad)
	}

	return rect
}

// AlignLine translates one line's positions horizontally to satisfy the
// alignment and returns the translated rectangle. The offset is derived
// from lineRect: Left puts its left edge at X=0, Center its center
// (rounded to a whole unit when alignment.Integral is set), Right its
// right edge. With no horizontal alignment set the offset is zero and
// positions are returned untouched.
//
// Panics when direction is anything other than
// [LayoutDirectionHorizontalTopToBottom].
func AlignLine(lineRect Rect, direction LayoutDirection, alignment Alignment, positions []Vec2) Rect {
	if direction != LayoutDirectionHorizontalTopToBottom {
		panic(fmt.Sprintf("textmesh: unsupported layout direction %v", direction))
	}

	var offset float32
	switch alignment.Horizontal {
	case HorizontalAlignmentNone:
		return lineRect
	case HorizontalAlignmentLeft:
		offset = -lineRect.Left()
	case HorizontalAlignmentCenter:
		offset = -lineRect.CenterX()
		if alignment.Integral {
			offset = roundf(offset)
		}
	case HorizontalAlignmentRight:
		offset = -lineRect.Right()
	}

	for i := range positions {
		positions[i].X += offset
	}
	return lineRect.Translated(Vec2{X: offset})
}

// AlignBlock translates a whole block's positions vertically to satisfy
// the alignment and returns the translated rectangle. The offset is
// derived from blockRect: Top puts its top edge at Y=0, Middle its
// center (rounded to a whole unit when alignment.Integral is set),
// Bottom its bottom edge. With no vertical alignment set the offset is
// zero; positions stay on the first line's baseline.
//
// Panics when direction is anything other than
// [LayoutDirectionHorizontalTopToBottom].
func AlignBlock(blockRect Rect, direction LayoutDirection, alignment Alignment, positions []Vec2) Rect {
	if direction != LayoutDirectionHorizontalTopToBottom {
		panic(fmt.Sprintf("textmesh: unsupported layout direction %v", direction))
	}

	var offset float32
	switch alignment.Vertical {
	case VerticalAlignmentNone:
		return blockRect
	case VerticalAlignmentTop:
		offset = -blockRect.Top()
	case VerticalAlignmentMiddle:
		offset = -blockRect.CenterY()
		if alignment.Integral {
			offset = roundf(offset)
		}
	case VerticalAlignmentBottom:
		offset = -blockRect.Bottom()
	}

	for i := range positions {
		positions[i].Y += offset
	}
	return blockRect.Translated(Vec2{Y: offset})
}
