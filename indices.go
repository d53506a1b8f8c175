package textmesh

import "fmt"

// IndexType is the storage width of mesh indices.
type IndexType int

const (
	// IndexTypeUint8 is 8-bit indices, valid for up to 256 vertices.
	IndexTypeUint8 IndexType = iota
	// IndexTypeUint16 is 16-bit indices, valid for up to 65536 vertices.
	IndexTypeUint16
	// IndexTypeUint32 is 32-bit indices.
	IndexTypeUint32
)

// Size returns the byte size of one index of this type.
func (t IndexType) Size() int {
	switch t {
	case IndexTypeUint8:
		return 1
	case IndexTypeUint16:
		return 2
	case IndexTypeUint32:
		return 4
	default:
		panic(fmt.Sprintf("textmesh: invalid index type %d", int(t)))
	}
}

// String returns the string representation of IndexType.
func (t IndexType) String() string {
	switch t {
	case IndexTypeUint8:
		return "Uint8"
	case IndexTypeUint16:
		return "Uint16"
	case IndexTypeUint32:
		return "Uint32"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// IndexTypeFor returns the narrowest index type able to address
// vertexCount vertices. The largest index value used is vertexCount-1,
// so exactly 256 vertices still fit 8-bit indices and exactly 65536
// still fit 16-bit.
func IndexTypeFor(vertexCount int) IndexType {
	switch {
	case vertexCount <= 1<<8:
		return IndexTypeUint8
	case vertexCount <= 1<<16:
		return IndexTypeUint16
	default:
		return IndexTypeUint32
	}
}

// indexElement constrains the integer types usable as quad indices.
type indexElement interface {
	uint8 | uint16 | uint32
}

// maxIndexValue returns the largest value representable by the index
// element type of the zero argument.
func maxIndexValue[T indexElement](zero T) uint64 {
	switch any(zero).(type) {
	case uint8:
		return 1<<8 - 1
	case uint16:
		return 1<<16 - 1
	default:
		return 1<<32 - 1
	}
}

// RenderGlyphQuadIndicesInto fills indices with triangle-list indices
// for len(indices)/6 glyph quads, starting at quad glyphOffset. Quad i
// has vertex base (glyphOffset+i)*4 and produces the two triangles
// (base+0, base+1, base+2) and (base+2, base+1, base+3), matching the
// vertex order written by [RenderGlyphQuadsInto].
//
// The glyphOffset bias allows appending to an index buffer that already
// covers glyphOffset quads.
//
// Panics when len(indices) is not divisible by 6 or when the largest
// index value, (glyphOffset + len(indices)/6)*4 - 1, does not fit the
// element type.
func RenderGlyphQuadIndicesInto[T indexElement](glyphOffset uint32, indices []T) {
	if len(indices)%6 != 0 {
		panic(fmt.Sprintf("textmesh: index count %d not divisible by 6", len(indices)))
	}
	glyphCount := len(indices) / 6
	if glyphCount == 0 {
		return
	}
	maxValue := (uint64(glyphOffset)+uint64(glyphCount))*4 - 1
	var zero T
	if limit := maxIndexValue(zero); maxValue > limit {
		panic(fmt.Sprintf("textmesh: max index value %d too large for a %d-bit type", maxValue, findBits(limit)))
	}

	for i := 0; i < glyphCount; i++ {
		base := T((uint64(glyphOffset) + uint64(i)) * 4)
		out := indices[i*6:]
		out[0] = base + 0
		out[1] = base + 1
		out[2] = base + 2
		out[3] = base + 2
		out[4] = base + 1
		out[5] = base + 3
	}
}

// findBits returns the bit width matching an all-ones limit value.
func findBits(limit uint64) int {
	switch limit {
	case 1<<8 - 1:
		return 8
	case 1<<16 - 1:
		return 16
	default:
		return 32
	}
}
