// Package mmap provides anonymous memory mappings for off-heap allocation.
//
// # Overview
//
// Pool regions are backed by anonymous read-write mappings obtained directly
// from the operating system. The memory lives outside the Go heap, so growing
// a pool adds no garbage collector pressure and the region address is stable
// for the lifetime of the mapping.
//
// # Usage
//
//	m, err := mmap.MapAnon(size)
//	if err != nil { ... }
//	defer m.Close()
//
//	// Direct access to the mapped region
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE
//   - Windows: VirtualAlloc with MEM_RESERVE|MEM_COMMIT (demand-paged)
//
// # Pointer Rules
//
// Mapped memory is invisible to the garbage collector. Callers must not store
// Go pointers in it; pointers INTO a mapping may be held in ordinary Go
// variables (the collector ignores addresses outside its heap).
//
// Close is idempotent. Callers must ensure no access to Bytes() after Close
// returns; the pages are gone.
package mmap
