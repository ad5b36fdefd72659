package pool

import "errors"

var (
	// ErrClosed is returned when acquiring from a closed pool.
	ErrClosed = errors.New("pool: closed")

	// ErrForeignBlock indicates a released address that was never issued by this pool.
	ErrForeignBlock = errors.New("pool: block was not issued by this pool")

	// ErrDoubleRelease indicates a block that is already on the free list.
	ErrDoubleRelease = errors.New("pool: block already released")

	// ErrBlocksOutstanding indicates blocks still held by the caller at Close.
	ErrBlocksOutstanding = errors.New("pool: blocks still outstanding")
)
