package pool

import (
	"fmt"
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2"
)

// CheckedPool wraps a Pool and verifies release discipline.
//
// It tracks the ordinal of every outstanding block in a bitmap and turns the
// pool's documented undefined behaviors (releasing a foreign address,
// releasing the same block twice) into errors. Close reports blocks the
// caller never returned.
//
// CheckedPool is a debugging aid: it adds a region lookup per operation and
// is not meant for hot paths. For correct callers it behaves exactly like the
// Pool it wraps, including LIFO reuse and region growth.
type CheckedPool struct {
	pool        *Pool
	outstanding *roaring.Bitmap
}

// NewChecked creates a CheckedPool serving blocks of exactly blockSize bytes.
func NewChecked(blockSize int, opts ...Option) (*CheckedPool, error) {
	p, err := New(blockSize, opts...)
	if err != nil {
		return nil, err
	}
	return &CheckedPool{
		pool:        p,
		outstanding: roaring.New(),
	}, nil
}

// BlockSize returns the fixed byte size of every block this pool serves.
func (c *CheckedPool) BlockSize() int {
	return c.pool.BlockSize()
}

// Acquire returns one uninitialized block and records it as outstanding.
func (c *CheckedPool) Acquire() (unsafe.Pointer, error) {
	blk, err := c.pool.Acquire()
	if err != nil {
		return nil, err
	}

	ord, err := c.ordinal(blk)
	if err != nil {
		// The inner pool just issued this block; a lookup failure means the
		// wrapper's view of the regions is corrupt.
		panic(err)
	}
	c.outstanding.Add(ord)
	return blk, nil
}

// Release verifies the block and stages it for reuse.
// It returns ErrForeignBlock for addresses this pool never issued and
// ErrDoubleRelease for blocks that are not outstanding.
func (c *CheckedPool) Release(block unsafe.Pointer) error {
	if block == nil {
		return nil
	}

	ord, err := c.ordinal(block)
	if err != nil {
		return err
	}
	if !c.outstanding.Contains(ord) {
		return fmt.Errorf("%w: block %#x (ordinal %d)", ErrDoubleRelease, uintptr(block), ord)
	}

	c.outstanding.Remove(ord)
	c.pool.Release(block)
	return nil
}

// ordinal resolves a block address to its position in the pool's issue order:
// blocks of the first region are 0..31, the second region continues at 32,
// and so on.
func (c *CheckedPool) ordinal(block unsafe.Pointer) (uint32, error) {
	addr := uintptr(block)
	base := 0
	for _, r := range c.pool.regions {
		lo := uintptr(r.base)
		hi := lo + uintptr(r.blocks*c.pool.blockSize)
		if addr >= lo && addr < hi {
			off := addr - lo
			if off%uintptr(c.pool.blockSize) != 0 {
				return 0, fmt.Errorf("%w: %#x is not block-aligned", ErrForeignBlock, addr)
			}
			return uint32(base) + uint32(off/uintptr(c.pool.blockSize)), nil
		}
		base += r.blocks
	}
	return 0, fmt.Errorf("%w: %#x", ErrForeignBlock, addr)
}

// Outstanding returns the number of blocks acquired but not yet released.
func (c *CheckedPool) Outstanding() uint64 {
	return c.outstanding.GetCardinality()
}

// Stats returns a snapshot of the wrapped pool's counters.
func (c *CheckedPool) Stats() Stats {
	return c.pool.Stats()
}

// Close closes the wrapped pool and reports leaked blocks.
// The pool is closed either way; ErrBlocksOutstanding indicates blocks the
// caller acquired and never released.
func (c *CheckedPool) Close() error {
	leaked := c.outstanding.GetCardinality()
	c.outstanding.Clear()

	if err := c.pool.Close(); err != nil {
		return err
	}
	if leaked > 0 {
		return fmt.Errorf("%w: %d block(s)", ErrBlocksOutstanding, leaked)
	}
	return nil
}
