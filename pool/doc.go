// Package pool implements a growable pool of fixed-size memory blocks.
//
// # Overview
//
// A Pool serves blocks of exactly one size. It owns a sequence of off-heap
// regions obtained from the operating system; the first region holds 32
// blocks and every further region doubles the block capacity of the one
// before it. Released blocks are staged on a LIFO free list and reused by
// later acquires. Memory is never returned to the operating system before
// Close; there is no compaction, defragmentation, or coalescing.
//
// # Usage
//
//	p, err := pool.New(24)
//	if err != nil { ... }
//	defer p.Close()
//
//	blk, err := p.Acquire() // one uninitialized 24-byte block
//	if err != nil { ... }
//	p.Release(blk)          // stage for reuse, nothing is freed
//
// # Contract
//
// Acquire returns uninitialized memory. Release performs no validation: the
// address must have been issued by this pool and must not be released twice.
// Violations are undefined behavior. CheckedPool wraps a Pool and turns both
// violations into errors; use it in tests and debug builds.
//
// # Pointer Rules
//
// Blocks live outside the Go heap. They must never hold Go pointers. Pointers
// TO blocks may be stored in ordinary Go variables.
//
// # Concurrency
//
// A Pool is not safe for concurrent use. All methods assume a single
// goroutine; callers that share a pool across goroutines must synchronize
// externally.
package pool
