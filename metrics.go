package allocgo

import "sync/atomic"

// MetricsCollector defines an interface for collecting allocation metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordPoolCreate is called when a registry creates the pool for a
	// block size.
	RecordPoolCreate(blockSize int)

	// RecordAlloc is called after each successful dispatcher allocation.
	// pooled reports whether a size-class pool served the request.
	RecordAlloc(size, n int, pooled bool)

	// RecordFree is called after each dispatcher deallocation.
	RecordFree(size, n int, pooled bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPoolCreate(int)       {}
func (NoopMetricsCollector) RecordAlloc(int, int, bool) {}
func (NoopMetricsCollector) RecordFree(int, int, bool)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PoolCreates atomic.Int64
	PoolAllocs  atomic.Int64
	HeapAllocs  atomic.Int64
	PoolFrees   atomic.Int64
	HeapFrees   atomic.Int64
}

// RecordPoolCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPoolCreate(blockSize int) {
	b.PoolCreates.Add(1)
}

// RecordAlloc implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAlloc(size, n int, pooled bool) {
	if pooled {
		b.PoolAllocs.Add(1)
	} else {
		b.HeapAllocs.Add(1)
	}
}

// RecordFree implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFree(size, n int, pooled bool) {
	if pooled {
		b.PoolFrees.Add(1)
	} else {
		b.HeapFrees.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		PoolCreates: b.PoolCreates.Load(),
		PoolAllocs:  b.PoolAllocs.Load(),
		HeapAllocs:  b.HeapAllocs.Load(),
		PoolFrees:   b.PoolFrees.Load(),
		HeapFrees:   b.HeapFrees.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	PoolCreates int64
	PoolAllocs  int64
	HeapAllocs  int64
	PoolFrees   int64
	HeapFrees   int64
}
