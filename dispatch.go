package allocgo

import "unsafe"

// Dispatch routes allocation requests by size and count: a request for
// exactly one object of at most the registry threshold is served by the
// pool keyed by that exact byte size, everything else by Heap.
//
// Dispatch is a stateless value; copy it freely. The zero value routes
// through DefaultRegistry; Dispatchers obtained from a Registry route
// through that registry. All Dispatch values over the same registry are
// interchangeable: routing is keyed by block size, never by allocator
// identity.
type Dispatch struct {
	reg *Registry
}

var (
	_ Allocator    = Dispatch{}
	_ CopySelector = Dispatch{}
)

func (d Dispatch) registry() *Registry {
	if d.reg == nil {
		return DefaultRegistry
	}
	return d.reg
}

// Alloc returns uninitialized memory for n elements of size bytes each.
// Pool-served blocks are reused most-recently-released first; pool creation
// and region growth failures propagate unmodified.
func (d Dispatch) Alloc(size, n int) (unsafe.Pointer, error) {
	if size <= 0 || n <= 0 {
		return nil, nil
	}

	r := d.registry()
	if n == 1 && size <= r.Threshold() {
		p, err := r.Pool(size)
		if err != nil {
			return nil, err
		}
		blk, err := p.Acquire()
		if err != nil {
			return nil, err
		}
		r.metrics.RecordAlloc(size, n, true)
		return blk, nil
	}

	blk, err := Heap{}.Alloc(size, n)
	if err != nil {
		return nil, err
	}
	r.metrics.RecordAlloc(size, n, false)
	return blk, nil
}

// Free returns memory obtained from Alloc. size and n must match the
// allocating call; the same test decides whether the block is staged on its
// pool's free list or left to the garbage collector. Frees arriving after
// the registry is closed are dropped; the regions are already unmapped.
func (d Dispatch) Free(p unsafe.Pointer, size, n int) {
	if p == nil || size <= 0 || n <= 0 {
		return
	}

	r := d.registry()
	if n == 1 && size <= r.Threshold() {
		pl, err := r.Pool(size)
		if err != nil {
			return
		}
		pl.Release(p)
		r.metrics.RecordFree(size, n, true)
		return
	}

	Heap{}.Free(p, size, n)
	r.metrics.RecordFree(size, n, false)
}

// Equal reports whether both dispatchers route through the same registry,
// the only identity an allocator carries here.
func (d Dispatch) Equal(other Dispatch) bool {
	return d.registry() == other.registry()
}

// SelectOnCopy returns the dispatcher itself: copies are interchangeable.
func (d Dispatch) SelectOnCopy() Allocator {
	return d
}
