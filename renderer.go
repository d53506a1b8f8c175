package textmesh

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Renderer renders text into persistent GPU vertex and index buffers.
//
// A Renderer is bound at construction to a font, a glyph cache, a
// render size and an alignment, all immutable for its lifetime. Reserve
// allocates buffers for a fixed glyph capacity and uploads the static
// quad indices once; Render then streams fresh vertex data for new text
// into the vertex buffer on every call without reallocating. Rendering
// more glyphs than reserved is a contract violation and panics: the
// fixed capacity is a deliberate trade for a predictable GPU memory
// footprint and no mid-frame reallocation stalls.
//
// Renderer is not safe for concurrent use; callers must serialize
// Reserve/Render/Destroy.
type Renderer struct {
	device hal.Device
	queue  hal.Queue

	font      Font
	cache     GlyphCache
	fontSize  float32
	alignment Alignment

	capacity  uint32
	indexType IndexType

	vertexBuffer *Buffer
	indexBuffer  *Buffer
	writer       bufferWriter

	glyphCount uint32
	rect       Rect
}

// NewRenderer creates a renderer bound to the given font, glyph cache,
// render size and alignment. No GPU resources are allocated until
// Reserve.
func NewRenderer(
	device hal.Device,
	queue hal.Queue,
	font Font,
	cache GlyphCache,
	size float32,
	alignment Alignment,
) (*Renderer, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	if !font.IsOpened() {
		panic("textmesh: font is not opened")
	}

	return &Renderer{
		device:    device,
		queue:     queue,
		font:      font,
		cache:     cache,
		fontSize:  size,
		alignment: alignment,
	}, nil
}

// Reserve allocates GPU buffers for up to glyphCapacity glyphs,
// discarding any previously rendered content. The quad index data is
// generated and uploaded here once; it stays valid for every Render
// call at this capacity since quad topology does not depend on text.
//
// vertexUsage and indexUsage extend the buffers' usage flags; Vertex,
// Index and CopyDst are always included. Passing
// [gputypes.BufferUsageMapWrite] in vertexUsage switches vertex
// streaming from whole-buffer queue writes to mapped writes.
//
// The index width is the narrowest of 16/32 bits that addresses
// glyphCapacity*4 vertices. 8-bit indices exist in the CPU-side
// [RenderGlyphQuadIndicesInto] but no GPU index format for them does,
// so tiny capacities use 16-bit indices here.
func (r *Renderer) Reserve(glyphCapacity uint32, vertexUsage, indexUsage gputypes.BufferUsage) error {
	if glyphCapacity == 0 {
		return fmt.Errorf("%w: glyph capacity is 0", ErrInvalidBufferSize)
	}

	indexType := IndexTypeFor(int(glyphCapacity) * 4)
	if indexType == IndexTypeUint8 {
		indexType = IndexTypeUint16
	}

	vertexBuffer, err := newDeviceBuffer(r.device, r.queue, "textmesh_vertices",
		uint64(glyphCapacity)*4*vertexStride,
		vertexUsage|gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("textmesh: reserve vertex buffer: %w", err)
	}

	indexBuffer, err := newDeviceBuffer(r.device, r.queue, "textmesh_indices",
		uint64(glyphCapacity)*6*uint64(indexType.Size()),
		indexUsage|gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		vertexBuffer.Destroy()
		return fmt.Errorf("textmesh: reserve index buffer: %w", err)
	}

	if err := indexBuffer.Write(0, buildIndexData(int(glyphCapacity), indexType)); err != nil {
		vertexBuffer.Destroy()
		indexBuffer.Destroy()
		return fmt.Errorf("textmesh: upload indices: %w", err)
	}

	// Swap in the new buffers only after everything succeeded.
	if r.vertexBuffer != nil {
		r.vertexBuffer.Destroy()
	}
	if r.indexBuffer != nil {
		r.indexBuffer.Destroy()
	}
	r.vertexBuffer = vertexBuffer
	r.indexBuffer = indexBuffer
	r.capacity = glyphCapacity
	r.indexType = indexType
	r.glyphCount = 0
	r.rect = Rect{}

	if vertexUsage.Contains(gputypes.BufferUsageMapWrite) {
		r.writer = mappedWriter{}
	} else {
		r.writer = queueWriter{}
	}

	Logger().Debug("textmesh: reserved renderer capacity",
		"glyphs", glyphCapacity,
		"vertexBytes", vertexBuffer.Size(),
		"indexBytes", indexBuffer.Size(),
		"indexType", indexType.String())

	return nil
}

// Render lays out text and streams the resulting vertex data into the
// reserved vertex buffer, replacing previously rendered content. The
// index buffer is untouched; only the number of indices to draw
// changes.
//
// Returns ErrNotReserved before a successful Reserve. Panics when the
// text produces more glyphs than the reserved capacity; callers must
// Reserve a larger capacity first.
func (r *Renderer) Render(text string) error {
	if r.vertexBuffer == nil {
		return ErrNotReserved
	}

	positions, textureCoordinates, rect := renderVertices(r.font, r.fontSize, r.cache, text, r.alignment)

	glyphCount := uint32(len(positions) / 4)
	if glyphCount > r.capacity {
		panic(fmt.Sprintf("textmesh: capacity %d too small to render %d glyphs", r.capacity, glyphCount))
	}

	if glyphCount > 0 {
		data := buildVertexData(positions, textureCoordinates)
		if err := r.writer.writeVertices(r.vertexBuffer, data); err != nil {
			return fmt.Errorf("textmesh: stream vertices: %w", err)
		}
	}

	r.glyphCount = glyphCount
	r.rect = rect
	return nil
}

// Rect returns the bounding rectangle of the last rendered text.
func (r *Renderer) Rect() Rect { return r.rect }

// Capacity returns the reserved glyph capacity.
func (r *Renderer) Capacity() uint32 { return r.capacity }

// GlyphCount returns the number of glyphs in the last rendered text.
func (r *Renderer) GlyphCount() uint32 { return r.glyphCount }

// VertexCount returns the number of vertices in the last rendered text.
func (r *Renderer) VertexCount() uint32 { return r.glyphCount * 4 }

// IndexCount returns the number of indices to draw for the last
// rendered text.
func (r *Renderer) IndexCount() uint32 { return r.glyphCount * 6 }

// IndexType returns the width of the uploaded indices, set by Reserve.
func (r *Renderer) IndexType() IndexType { return r.indexType }

// IndexFormat returns the GPU index format matching IndexType.
func (r *Renderer) IndexFormat() gputypes.IndexFormat {
	if r.indexType == IndexTypeUint32 {
		return gputypes.IndexFormatUint32
	}
	return gputypes.IndexFormatUint16
}

// VertexBuffer returns the reserved vertex buffer, or nil before
// Reserve.
func (r *Renderer) VertexBuffer() *Buffer { return r.vertexBuffer }

// IndexBuffer returns the reserved index buffer, or nil before Reserve.
func (r *Renderer) IndexBuffer() *Buffer { return r.indexBuffer }

// Font returns the font the renderer was constructed with.
func (r *Renderer) Font() Font { return r.font }

// Alignment returns the alignment the renderer was constructed with.
func (r *Renderer) Alignment() Alignment { return r.alignment }

// Destroy releases the GPU buffers. Safe to call multiple times.
func (r *Renderer) Destroy() {
	if r.vertexBuffer != nil {
		r.vertexBuffer.Destroy()
		r.vertexBuffer = nil
	}
	if r.indexBuffer != nil {
		r.indexBuffer.Destroy()
		r.indexBuffer = nil
	}
	r.capacity = 0
	r.glyphCount = 0
	r.writer = nil
}

// bufferWriter streams a frame's vertex bytes into the vertex buffer.
// The strategy is picked once per Reserve from the buffer usage flags;
// Render is oblivious to which one is active.
type bufferWriter interface {
	writeVertices(buf *Buffer, data []byte) error
}

// queueWriter overwrites the vertex prefix through the queue.
type queueWriter struct{}

func (queueWriter) writeVertices(buf *Buffer, data []byte) error {
	return buf.Write(0, data)
}

// mappedWriter maps the written range, copies into the mapping and
// flushes on unmap. Used when the vertex buffer has MapWrite usage.
type mappedWriter struct{}

func (mappedWriter) writeVertices(buf *Buffer, data []byte) error {
	size := uint64(len(data))
	if err := buf.Map(0, size); err != nil {
		return err
	}
	mapped, err := buf.GetMappedRange(0, size)
	if err != nil {
		_ = buf.Unmap()
		return err
	}
	copy(mapped, data)
	return buf.Unmap()
}
