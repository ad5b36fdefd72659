package pool

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/allocgo/internal/mmap"
)

// FirstRegionBlocks is the block capacity of a pool's first region.
// Every further region doubles the capacity of the one before it.
const FirstRegionBlocks = 32

// MemoryAcquirer reserves memory ahead of region growth.
//
// AcquireMemory must be fail-fast: it either reserves the amount immediately
// or returns an error, it never blocks. ReleaseMemory returns a prior
// reservation.
type MemoryAcquirer interface {
	AcquireMemory(amount int64) error
	ReleaseMemory(amount int64)
}

// region is one contiguous run of blocks mapped from the OS.
type region struct {
	mapping *mmap.Mapping
	base    unsafe.Pointer
	blocks  int
}

// Stats is a snapshot of pool counters.
//
// Note on semantics:
//   - IssuedBlocks: blocks handed out from regions at least once (historical)
//   - FreeBlocks: blocks currently staged for reuse
//   - OutstandingBlocks: issued blocks not currently staged
//   - TotalAcquires/TotalReleases: cumulative call counts
//   - Grows: regions appended after the first
type Stats struct {
	BlockSize         int
	Regions           int
	CapacityBlocks    int
	IssuedBlocks      int
	FreeBlocks        int
	OutstandingBlocks int
	BytesReserved     uint64
	TotalAcquires     uint64
	TotalReleases     uint64
	Grows             uint64
}

// Pool hands out fixed-size memory blocks from off-heap regions.
//
// Acquire prefers the free list (most recently released block first), then
// the never-issued tail of the newest region, and grows by appending a region
// with double the blocks of the previous one when that tail is exhausted.
// Blocks are returned to the OS only in Close.
//
// Pool is not safe for concurrent use.
type Pool struct {
	blockSize int
	regions   []*region
	cursor    int // next never-issued block in the newest region
	free      []unsafe.Pointer
	issued    int
	reserved  uint64
	closed    bool
	acquirer  MemoryAcquirer

	acquires uint64
	releases uint64
	grows    uint64
}

// Option is a configuration option for Pool.
type Option func(*Pool)

// WithMemoryAcquirer sets the memory acquirer consulted before each region
// is mapped. Region growth fails when the acquirer refuses the reservation.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(p *Pool) {
		p.acquirer = acquirer
	}
}

// New creates a Pool serving blocks of exactly blockSize bytes.
// The first region (FirstRegionBlocks blocks) is mapped eagerly; a mapping
// failure or acquirer refusal propagates unmodified.
func New(blockSize int, opts ...Option) (*Pool, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("pool: block size must be positive, got %d", blockSize)
	}

	p := &Pool{blockSize: blockSize}

	for _, opt := range opts {
		opt(p)
	}

	if err := p.addRegion(FirstRegionBlocks); err != nil {
		return nil, err
	}
	return p, nil
}

// BlockSize returns the fixed byte size of every block this pool serves.
func (p *Pool) BlockSize() int {
	return p.blockSize
}

// Acquire returns the address of one uninitialized block.
//
// The most recently released block is reused first. With an empty free list
// the next never-issued block of the newest region is returned; when the
// region is exhausted a new region with double its block capacity is mapped.
func (p *Pool) Acquire() (unsafe.Pointer, error) {
	if p.closed {
		return nil, ErrClosed
	}

	if n := len(p.free); n > 0 {
		blk := p.free[n-1]
		p.free = p.free[:n-1]
		p.acquires++
		return blk, nil
	}

	r := p.regions[len(p.regions)-1]
	if p.cursor == r.blocks {
		if err := p.grow(); err != nil {
			return nil, err
		}
		r = p.regions[len(p.regions)-1]
	}

	blk := unsafe.Add(r.base, p.cursor*p.blockSize)
	p.cursor++
	p.issued++
	p.acquires++
	return blk, nil
}

// Release stages a previously issued block for reuse. Nothing is freed and
// nothing is validated: block must have been issued by this pool and must not
// be outstanding on the free list already; violations are undefined behavior.
// Release of nil, or after Close, is a no-op.
func (p *Pool) Release(block unsafe.Pointer) {
	if block == nil || p.closed {
		return
	}
	p.free = append(p.free, block)
	p.releases++
}

func (p *Pool) grow() error {
	next := p.regions[len(p.regions)-1].blocks * 2
	if err := p.addRegion(next); err != nil {
		return err
	}
	p.grows++
	return nil
}

func (p *Pool) addRegion(blocks int) error {
	size := blocks * p.blockSize

	if p.acquirer != nil {
		if err := p.acquirer.AcquireMemory(int64(size)); err != nil {
			return fmt.Errorf("pool: reserve %d bytes for block size %d: %w", size, p.blockSize, err)
		}
	}

	m, err := mmap.MapAnon(size)
	if err != nil {
		if p.acquirer != nil {
			p.acquirer.ReleaseMemory(int64(size))
		}
		return fmt.Errorf("pool: map region of %d blocks x %d bytes: %w", blocks, p.blockSize, err)
	}

	p.regions = append(p.regions, &region{
		mapping: m,
		base:    unsafe.Pointer(&m.Bytes()[0]),
		blocks:  blocks,
	})
	p.cursor = 0
	p.reserved += uint64(size)
	return nil
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() Stats {
	capacity := 0
	for _, r := range p.regions {
		capacity += r.blocks
	}
	return Stats{
		BlockSize:         p.blockSize,
		Regions:           len(p.regions),
		CapacityBlocks:    capacity,
		IssuedBlocks:      p.issued,
		FreeBlocks:        len(p.free),
		OutstandingBlocks: p.issued - len(p.free),
		BytesReserved:     p.reserved,
		TotalAcquires:     p.acquires,
		TotalReleases:     p.releases,
		Grows:             p.grows,
	}
}

// Close unmaps every region in one pass and returns the reservation to the
// acquirer. All blocks issued by the pool become invalid. Close is idempotent.
func (p *Pool) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	var firstErr error
	for _, r := range p.regions {
		if err := r.mapping.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if p.acquirer != nil && p.reserved > 0 {
		p.acquirer.ReleaseMemory(int64(p.reserved))
	}

	p.regions = nil
	p.free = nil
	p.cursor = 0
	p.issued = 0
	p.reserved = 0
	return firstErr
}

func (p *Pool) String() string {
	stats := p.Stats()
	return fmt.Sprintf(
		"Pool{size: %d B, regions: %d, capacity: %d blocks, outstanding: %d, free: %d, reserved: %.1f KB}",
		stats.BlockSize,
		stats.Regions,
		stats.CapacityBlocks,
		stats.OutstandingBlocks,
		stats.FreeBlocks,
		float64(stats.BytesReserved)/1024,
	)
}
