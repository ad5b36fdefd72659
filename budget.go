package allocgo

import (
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/hupe1980/allocgo/pool"
)

// Budget is a fail-fast memory budget. Wired into a registry (WithBudget) it
// caps the total bytes its pools may reserve from the operating system:
// region growth that would pass the limit fails with ErrBudgetExceeded
// instead of mapping.
//
// AcquireMemory never blocks: the reservation either succeeds immediately
// or is refused; callers own any retry policy. A nil *Budget is a no-op on
// every method, so budgeting is optional without nil checks at call sites.
// Budget is safe for concurrent use; one budget can govern several
// registries.
type Budget struct {
	limit int64
	sem   *semaphore.Weighted // nil if unlimited
	used  atomic.Int64
}

var _ pool.MemoryAcquirer = (*Budget)(nil)

// NewBudget creates a budget with a hard limit in bytes.
// A non-positive limit disables enforcement; usage is still tracked.
func NewBudget(limitBytes int64) *Budget {
	if limitBytes <= 0 {
		return &Budget{}
	}
	return &Budget{
		limit: limitBytes,
		sem:   semaphore.NewWeighted(limitBytes),
	}
}

// AcquireMemory reserves amount bytes, returning ErrBudgetExceeded when the
// reservation would pass the limit.
func (b *Budget) AcquireMemory(amount int64) error {
	if b == nil || amount <= 0 {
		return nil
	}
	if b.sem != nil && !b.sem.TryAcquire(amount) {
		return ErrBudgetExceeded
	}
	b.used.Add(amount)
	return nil
}

// ReleaseMemory returns a prior reservation.
func (b *Budget) ReleaseMemory(amount int64) {
	if b == nil || amount <= 0 {
		return
	}
	if b.sem != nil {
		b.sem.Release(amount)
	}
	b.used.Add(-amount)
}

// MemoryUsage returns the bytes currently reserved.
func (b *Budget) MemoryUsage() int64 {
	if b == nil {
		return 0
	}
	return b.used.Load()
}

// MemoryLimit returns the configured limit in bytes (0 if unlimited).
func (b *Budget) MemoryLimit() int64 {
	if b == nil {
		return 0
	}
	return b.limit
}
