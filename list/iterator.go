package list

// Iterator references one position in a List: a live element or one of the
// two boundary positions. It is a small comparable value: iterators over
// the same position compare equal, and End() can be used as a loop bound.
//
//	for it := l.Begin(); it != l.End(); it = it.Next() {
//	    // it.Value(), it.Set(...)
//	}
//
// Handles are stable: an iterator stays valid across insertions and erasures
// anywhere else in the list, and is invalidated exactly when the node it
// references is erased. Using an invalidated iterator is undefined behavior.
type Iterator[T any] struct {
	list *List[T]
	at   ref
}

// Next returns the iterator one position toward the back. Stepping past the
// last element yields End; stepping from End yields End again.
func (it Iterator[T]) Next() Iterator[T] {
	return Iterator[T]{list: it.list, at: it.list.at(it.at).next}
}

// Prev returns the iterator one position toward the front. Stepping before
// the first element yields the front boundary, where Prev saturates.
func (it Iterator[T]) Prev() Iterator[T] {
	return Iterator[T]{list: it.list, at: it.list.at(it.at).prev}
}

// Valid reports whether the iterator references a live element rather than a
// boundary.
func (it Iterator[T]) Valid() bool {
	return it.list != nil && it.at != frontRef && it.at != backRef
}

// Value returns the referenced element. It panics on a boundary position.
func (it Iterator[T]) Value() T {
	return it.node().elem
}

// Set replaces the referenced element. It panics on a boundary position.
func (it Iterator[T]) Set(v T) {
	it.node().elem = v
}

func (it Iterator[T]) node() *node[T] {
	if !it.Valid() {
		panic("list: iterator does not reference a live element")
	}
	return it.list.at(it.at)
}
