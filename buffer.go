package textmesh

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Buffer wraps a hal.Buffer with synchronous mapped-write access.
//
// Mapping gives out a CPU-side shadow of a buffer range; Unmap flushes
// the written bytes to the GPU through the queue. This mirrors the
// WebGPU staging model while keeping the call sites synchronous: the
// renderer writes a full vertex prefix per frame and never reads back.
//
// Buffer is not safe for concurrent use; the owning Renderer serializes
// access.
type Buffer struct {
	halBuffer hal.Buffer
	device    hal.Device
	queue     hal.Queue

	label string
	size  uint64
	usage gputypes.BufferUsage

	mapped    bool
	mapOffset uint64
	shadow    []byte

	destroyed bool
}

// newDeviceBuffer creates a GPU buffer of the given size. The size is
// aligned up to 4 bytes for copy operations.
func newDeviceBuffer(device hal.Device, queue hal.Queue, label string, size uint64, usage gputypes.BufferUsage) (*Buffer, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if size == 0 {
		return nil, fmt.Errorf("%w: size is 0", ErrInvalidBufferSize)
	}

	const copyBufferAlignment uint64 = 4
	alignedSize := (size + copyBufferAlignment - 1) &^ (copyBufferAlignment - 1)

	halBuffer, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  alignedSize,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("textmesh: buffer creation failed: %w", err)
	}

	return &Buffer{
		halBuffer: halBuffer,
		device:    device,
		queue:     queue,
		label:     label,
		size:      alignedSize,
		usage:     usage,
	}, nil
}

// Label returns the buffer's debug label.
func (b *Buffer) Label() string { return b.label }

// Size returns the buffer size in bytes.
func (b *Buffer) Size() uint64 { return b.size }

// Usage returns the buffer usage flags.
func (b *Buffer) Usage() gputypes.BufferUsage { return b.usage }

// Raw returns the underlying buffer handle, or nil after Destroy.
func (b *Buffer) Raw() hal.Buffer {
	if b.destroyed {
		return nil
	}
	return b.halBuffer
}

// Write uploads data at the given byte offset through the queue,
// without mapping. The range must lie within the buffer and the buffer
// must have CopyDst usage.
func (b *Buffer) Write(offset uint64, data []byte) error {
	if b.destroyed {
		return ErrBufferDestroyed
	}
	if offset+uint64(len(data)) > b.size {
		return fmt.Errorf("%w: offset %d + size %d > buffer size %d",
			ErrInvalidMapRange, offset, len(data), b.size)
	}
	b.queue.WriteBuffer(b.halBuffer, offset, data)
	return nil
}

// Map maps a range of the buffer for writing. The buffer must have
// MapWrite usage; offset and size must be 8-byte aligned, except that
// size needs no alignment when the range extends to the end of the
// buffer.
//
// The mapped bytes are staged CPU-side and flushed to the GPU on Unmap.
func (b *Buffer) Map(offset, size uint64) error {
	if b.destroyed {
		return ErrBufferDestroyed
	}
	if b.mapped {
		return ErrBufferAlreadyMapped
	}
	if !b.usage.Contains(gputypes.BufferUsageMapWrite) {
		return fmt.Errorf("%w: buffer does not have MapWrite usage", ErrMapUsageMismatch)
	}
	if offset+size > b.size {
		return fmt.Errorf("%w: offset %d + size %d > buffer size %d",
			ErrInvalidMapRange, offset, size, b.size)
	}

	const mapAlignment uint64 = 8
	if offset%mapAlignment != 0 {
		return fmt.Errorf("%w: offset %d must be %d-byte aligned", ErrInvalidMapRange, offset, mapAlignment)
	}
	if size%mapAlignment != 0 && size != b.size-offset {
		return fmt.Errorf("%w: size %d must be %d-byte aligned", ErrInvalidMapRange, size, mapAlignment)
	}

	b.mapped = true
	b.mapOffset = offset
	b.shadow = make([]byte, size)
	return nil
}

// GetMappedRange returns the writable slice for a sub-range of the
// current mapping. Offsets are buffer-relative, matching Map. The slice
// is invalid after Unmap.
func (b *Buffer) GetMappedRange(offset, size uint64) ([]byte, error) {
	if b.destroyed {
		return nil, ErrBufferDestroyed
	}
	if !b.mapped {
		return nil, ErrBufferNotMapped
	}
	if offset < b.mapOffset || offset+size > b.mapOffset+uint64(len(b.shadow)) {
		return nil, fmt.Errorf("%w: range [%d, %d) outside mapped region [%d, %d)",
			ErrInvalidMapRange, offset, offset+size, b.mapOffset, b.mapOffset+uint64(len(b.shadow)))
	}
	rel := offset - b.mapOffset
	return b.shadow[rel : rel+size], nil
}

// Unmap flushes the mapped bytes to the GPU and releases the mapping.
// Unmapping an unmapped buffer is a no-op.
func (b *Buffer) Unmap() error {
	if b.destroyed {
		return ErrBufferDestroyed
	}
	if !b.mapped {
		return nil
	}

	b.queue.WriteBuffer(b.halBuffer, b.mapOffset, b.shadow)
	b.mapped = false
	b.shadow = nil
	return nil
}

// Destroy releases the GPU buffer. Safe to call multiple times. Any
// unflushed mapping is discarded.
func (b *Buffer) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.mapped = false
	b.shadow = nil
	if b.device != nil && b.halBuffer != nil {
		b.device.DestroyBuffer(b.halBuffer)
	}
	b.halBuffer = nil
}
