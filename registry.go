package allocgo

import (
	"slices"

	"github.com/hupe1980/allocgo/pool"
)

// DefaultThreshold is the size boundary for pool routing: single-object
// requests of at most this many bytes are pool-served.
const DefaultThreshold = 32

// DefaultRegistry backs the zero-value Dispatch. It lives for the whole
// process; the library never closes it, preserving the one-pool-per-size
// semantics of a process-wide allocator. Use NewRegistry for an explicitly
// managed lifecycle.
var DefaultRegistry = NewRegistry()

// Registry owns one Pool per requested block size, created lazily on first
// use. It is the explicit stand-in for process-global pool state: callers
// that want isolation or teardown construct their own and close it.
//
// Registry is not safe for concurrent use.
type Registry struct {
	threshold int
	pools     map[int]*pool.Pool
	logger    *Logger
	budget    *Budget
	metrics   MetricsCollector
	poolOpts  []pool.Option
	closed    bool
}

// NewRegistry creates an empty registry.
func NewRegistry(optFns ...Option) *Registry {
	o := applyOptions(optFns)
	return &Registry{
		threshold: o.threshold,
		pools:     make(map[int]*pool.Pool),
		logger:    o.logger,
		budget:    o.budget,
		metrics:   o.metricsCollector,
		poolOpts:  o.poolOptions,
	}
}

// Threshold returns the routing boundary in bytes.
func (r *Registry) Threshold() int {
	return r.threshold
}

// Dispatcher returns a Dispatch routing through this registry.
func (r *Registry) Dispatcher() Dispatch {
	return Dispatch{reg: r}
}

// Pool returns the pool serving blocks of exactly size bytes, creating it on
// first request. A creation failure (mapping failure, budget refusal)
// propagates unmodified and leaves the registry without a pool for that size.
func (r *Registry) Pool(size int) (*pool.Pool, error) {
	if r.closed {
		return nil, ErrRegistryClosed
	}
	if p, ok := r.pools[size]; ok {
		return p, nil
	}

	opts := r.poolOpts
	if r.budget != nil {
		opts = append(opts[:len(opts):len(opts)], pool.WithMemoryAcquirer(r.budget))
	}

	p, err := pool.New(size, opts...)
	if err != nil {
		return nil, err
	}
	r.pools[size] = p

	r.logger.LogPoolCreate(size)
	r.metrics.RecordPoolCreate(size)
	return p, nil
}

// Pools returns the number of pools created so far.
func (r *Registry) Pools() int {
	return len(r.pools)
}

// Stats returns a snapshot per pool, ordered by block size.
func (r *Registry) Stats() []pool.Stats {
	sizes := make([]int, 0, len(r.pools))
	for size := range r.pools {
		sizes = append(sizes, size)
	}
	slices.Sort(sizes)

	stats := make([]pool.Stats, 0, len(sizes))
	for _, size := range sizes {
		stats = append(stats, r.pools[size].Stats())
	}
	return stats
}

// Close closes every pool, unmapping all regions in one pass. Blocks issued
// through this registry become invalid. Close is idempotent.
func (r *Registry) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var firstErr error
	for _, p := range r.pools {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.logger.LogRegistryClose(len(r.pools), firstErr)
	r.pools = nil
	return firstErr
}
