package textmesh

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewDeviceBuffer(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	if _, err := newDeviceBuffer(nil, queue, "b", 16, gputypes.BufferUsageVertex); !errors.Is(err, ErrNilDevice) {
		t.Errorf("expected ErrNilDevice, got %v", err)
	}
	if _, err := newDeviceBuffer(device, queue, "b", 0, gputypes.BufferUsageVertex); !errors.Is(err, ErrInvalidBufferSize) {
		t.Errorf("expected ErrInvalidBufferSize, got %v", err)
	}

	buf, err := newDeviceBuffer(device, queue, "vertices", 10, gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		t.Fatalf("newDeviceBuffer failed: %v", err)
	}
	defer buf.Destroy()

	if buf.Label() != "vertices" {
		t.Errorf("unexpected label %q", buf.Label())
	}
	// Sizes align up to 4 bytes for copies.
	if buf.Size() != 12 {
		t.Errorf("expected size 12, got %d", buf.Size())
	}
	if buf.Raw() == nil {
		t.Error("expected a live buffer handle")
	}
}

func TestBufferWrite(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	buf, err := newDeviceBuffer(device, queue, "b", 16, gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		t.Fatalf("newDeviceBuffer failed: %v", err)
	}
	defer buf.Destroy()

	if err := buf.Write(0, make([]byte, 16)); err != nil {
		t.Errorf("full write failed: %v", err)
	}
	if err := buf.Write(8, make([]byte, 8)); err != nil {
		t.Errorf("offset write failed: %v", err)
	}
	if err := buf.Write(8, make([]byte, 16)); !errors.Is(err, ErrInvalidMapRange) {
		t.Errorf("expected range error for write past end, got %v", err)
	}
}

func TestBufferMap(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	buf, err := newDeviceBuffer(device, queue, "b", 32,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst|gputypes.BufferUsageMapWrite)
	if err != nil {
		t.Fatalf("newDeviceBuffer failed: %v", err)
	}
	defer buf.Destroy()

	if err := buf.Map(0, 16); err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if err := buf.Map(0, 16); !errors.Is(err, ErrBufferAlreadyMapped) {
		t.Errorf("expected ErrBufferAlreadyMapped, got %v", err)
	}

	mapped, err := buf.GetMappedRange(8, 8)
	if err != nil {
		t.Fatalf("GetMappedRange failed: %v", err)
	}
	if len(mapped) != 8 {
		t.Errorf("expected 8 mapped bytes, got %d", len(mapped))
	}
	copy(mapped, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	if _, err := buf.GetMappedRange(8, 16); !errors.Is(err, ErrInvalidMapRange) {
		t.Errorf("expected range error past the mapping, got %v", err)
	}

	if err := buf.Unmap(); err != nil {
		t.Fatalf("Unmap failed: %v", err)
	}
	if _, err := buf.GetMappedRange(0, 8); !errors.Is(err, ErrBufferNotMapped) {
		t.Errorf("expected ErrBufferNotMapped after Unmap, got %v", err)
	}
	// Unmapping again is a no-op.
	if err := buf.Unmap(); err != nil {
		t.Errorf("second Unmap failed: %v", err)
	}
}

func TestBufferMapErrors(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	plain, err := newDeviceBuffer(device, queue, "plain", 32, gputypes.BufferUsageVertex)
	if err != nil {
		t.Fatalf("newDeviceBuffer failed: %v", err)
	}
	defer plain.Destroy()

	if err := plain.Map(0, 16); !errors.Is(err, ErrMapUsageMismatch) {
		t.Errorf("expected ErrMapUsageMismatch without MapWrite usage, got %v", err)
	}

	mappable, err := newDeviceBuffer(device, queue, "mappable", 20,
		gputypes.BufferUsageVertex|gputypes.BufferUsageMapWrite)
	if err != nil {
		t.Fatalf("newDeviceBuffer failed: %v", err)
	}
	defer mappable.Destroy()

	if err := mappable.Map(0, 64); !errors.Is(err, ErrInvalidMapRange) {
		t.Errorf("expected range error past buffer end, got %v", err)
	}
	if err := mappable.Map(4, 8); !errors.Is(err, ErrInvalidMapRange) {
		t.Errorf("expected alignment error for offset 4, got %v", err)
	}
	if err := mappable.Map(8, 4); !errors.Is(err, ErrInvalidMapRange) {
		t.Errorf("expected alignment error for interior size 4, got %v", err)
	}
	// Unaligned size is allowed when the range runs to the buffer end.
	if err := mappable.Map(8, 12); err != nil {
		t.Errorf("map to buffer end failed: %v", err)
	}
	if err := mappable.Unmap(); err != nil {
		t.Errorf("Unmap failed: %v", err)
	}
}

func TestBufferDestroy(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	buf, err := newDeviceBuffer(device, queue, "b", 16,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst|gputypes.BufferUsageMapWrite)
	if err != nil {
		t.Fatalf("newDeviceBuffer failed: %v", err)
	}

	buf.Destroy()
	buf.Destroy() // idempotent

	if buf.Raw() != nil {
		t.Error("expected nil handle after Destroy")
	}
	if err := buf.Write(0, make([]byte, 4)); !errors.Is(err, ErrBufferDestroyed) {
		t.Errorf("expected ErrBufferDestroyed on Write, got %v", err)
	}
	if err := buf.Map(0, 8); !errors.Is(err, ErrBufferDestroyed) {
		t.Errorf("expected ErrBufferDestroyed on Map, got %v", err)
	}
}
