// Package allocgo provides size-class memory pooling behind a generic
// allocator interface.
//
// Small single-object allocations are served from growable per-size pools
// that reuse released blocks and never hand memory back to the operating
// system before teardown; everything else is served by the general-purpose
// allocator. Containers consume the interface transparently; the list
// container in the list subpackage obtains all of its node storage through
// it.
//
// # Quick Start
//
//	// Zero-value dispatcher: routes through the package-level registry.
//	var d allocgo.Dispatch
//
//	ints := allocgo.Bind[int64](d)
//	p, _ := ints.New() // 8-byte object, pool-served
//	ints.Free(p)       // staged for reuse, nothing is unmapped
//
// With an explicit registry (dependency injection, own lifecycle):
//
//	reg := allocgo.NewRegistry(
//	    allocgo.WithBudget(allocgo.NewBudget(64 << 20)),
//	)
//	defer reg.Close()
//
//	d := reg.Dispatcher()
//	nodes := list.NewIn[int64](d)
//
// # Routing
//
// Dispatch implements Allocator. A request for exactly one object of at most
// the registry threshold (32 bytes by default) is served by the pool keyed by
// that exact byte size; any other count or size takes the Heap path. Free
// mirrors the same test, so callers must pass the size and count used at
// Alloc time.
//
// # Typed Allocation and Rebinding
//
// Bind adapts the byte-level interface to a concrete element type. Rebind
// derives the equivalent typed allocator for another element type, which is
// what containers use to allocate their internal node types:
//
//	elems := allocgo.Bind[V](d)
//	nodes := allocgo.Rebind[nodeOfV](elems)
//
// # Pointer Rules
//
// Raw blocks live outside the garbage collector's view and must never hold
// Go pointers. Bind inspects the element type once: pointer-bearing types
// are served by the collector instead, so Typed is safe for any T. Callers
// of the raw Allocator interface carry the pointer-free obligation
// themselves.
//
// # Concurrency
//
// Pools, registries, dispatchers, and lists assume single-goroutine use and
// take no locks; sharing one across goroutines requires external
// synchronization. Budget is the exception: it is safe for concurrent use so
// one budget can govern several registries.
package allocgo
