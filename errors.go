package allocgo

import "errors"

var (
	// ErrSizeOverflow is returned when size × count overflows the address space.
	ErrSizeOverflow = errors.New("allocgo: allocation size overflow")

	// ErrBudgetExceeded is returned when a reservation would exceed the budget limit.
	ErrBudgetExceeded = errors.New("allocgo: memory budget exceeded")

	// ErrRegistryClosed is returned when allocating through a closed registry.
	ErrRegistryClosed = errors.New("allocgo: registry closed")
)
