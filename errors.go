package textmesh

import "errors"

// Renderer and buffer errors. Contract violations (mismatched slice
// lengths, unsupported layout directions, over-capacity renders) panic
// instead; only GPU resource operations return errors.
var (
	// ErrNilDevice is returned when a renderer or pipeline is created
	// without a device.
	ErrNilDevice = errors.New("textmesh: device is nil")

	// ErrNilQueue is returned when a renderer or pipeline is created
	// without a queue.
	ErrNilQueue = errors.New("textmesh: queue is nil")

	// ErrNotReserved is returned when rendering before a successful Reserve.
	ErrNotReserved = errors.New("textmesh: no capacity reserved")

	// ErrBufferDestroyed is returned when operating on a destroyed buffer.
	ErrBufferDestroyed = errors.New("textmesh: buffer has been destroyed")

	// ErrBufferAlreadyMapped is returned when mapping an already mapped buffer.
	ErrBufferAlreadyMapped = errors.New("textmesh: buffer is already mapped")

	// ErrBufferNotMapped is returned when accessing unmapped buffer data.
	ErrBufferNotMapped = errors.New("textmesh: buffer is not mapped")

	// ErrInvalidMapRange is returned when a map range is out of bounds
	// or misaligned.
	ErrInvalidMapRange = errors.New("textmesh: map range out of bounds")

	// ErrMapUsageMismatch is returned when mapping a buffer whose usage
	// flags do not permit the requested access.
	ErrMapUsageMismatch = errors.New("textmesh: map mode does not match buffer usage flags")

	// ErrInvalidBufferSize is returned when creating a zero-sized buffer.
	ErrInvalidBufferSize = errors.New("textmesh: invalid buffer size")

	// ErrPipelineNotInitialized is returned when recording draws before Init.
	ErrPipelineNotInitialized = errors.New("textmesh: pipeline not initialized")

	// ErrFontParse is returned when font data cannot be parsed.
	ErrFontParse = errors.New("textmesh: cannot parse font data")

	// ErrAtlasFull is returned when a glyph does not fit into any atlas layer.
	ErrAtlasFull = errors.New("textmesh: glyph atlas is full")
)
