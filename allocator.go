package allocgo

import (
	"fmt"
	"math"
	"unsafe"
)

// Allocator is the byte-level allocation contract shared by the
// general-purpose Heap and the pool-backed Dispatch.
//
// Alloc returns uninitialized memory for n elements of size bytes each;
// a non-positive size or count yields (nil, nil). Free must receive the same
// size and count the block was allocated with; a mismatch is undefined
// behavior, mirroring the precondition every generic allocator imposes.
//
// Blocks obtained through this interface must never hold Go pointers: pool
// blocks live outside the garbage collector's view and heap blocks are
// untyped. Bind is the safe entry point for arbitrary element types.
type Allocator interface {
	Alloc(size, n int) (unsafe.Pointer, error)
	Free(p unsafe.Pointer, size, n int)
}

// CopySelector is implemented by allocators that choose the allocator a
// container copy is constructed with. Absent it, the copy uses the source's
// allocator value.
type CopySelector interface {
	SelectOnCopy() Allocator
}

// CopyPropagator is implemented by allocators that decide whether container
// copy-assignment adopts the source's allocator. Absent it, the destination
// keeps its own.
type CopyPropagator interface {
	PropagateOnCopyAssignment() bool
}

// Heap is the general-purpose allocator. Blocks come from the Go heap as
// untyped buffers; the returned pointer is what keeps a buffer reachable, so
// dropping the last pointer releases the block to the garbage collector and
// Free is a no-op.
type Heap struct{}

var _ Allocator = Heap{}

// Alloc returns a zeroed buffer of size × n bytes.
func (Heap) Alloc(size, n int) (unsafe.Pointer, error) {
	if size <= 0 || n <= 0 {
		return nil, nil
	}
	if n > math.MaxInt/size {
		return nil, fmt.Errorf("allocgo: alloc %d x %d bytes: %w", n, size, ErrSizeOverflow)
	}
	buf := make([]byte, size*n)
	return unsafe.Pointer(&buf[0]), nil
}

// Free is a no-op: the garbage collector reclaims the buffer once no pointer
// to it survives.
func (Heap) Free(p unsafe.Pointer, size, n int) {}
