package allocgo

import (
	"reflect"
	"unsafe"
)

// Typed binds an Allocator to a concrete element type T. It carries the
// element size and the one-time pointer analysis of T, so the hot paths do
// no reflection.
//
// The zero value serves from the garbage collector; use Bind to route
// through an allocator.
type Typed[T any] struct {
	a      Allocator
	size   int
	gcOnly bool
}

// Bind creates a Typed[T] over a. Element types that contain Go pointers are
// served by the garbage collector instead of raw blocks (raw allocator
// memory must stay pointer-free), so Bind is safe for any T. Pointer-free
// types flow through a with their exact byte size.
func Bind[T any](a Allocator) Typed[T] {
	t := reflect.TypeFor[T]()
	return Typed[T]{
		a:      a,
		size:   int(t.Size()),
		gcOnly: typeHasPointers(t),
	}
}

// Rebind derives the typed allocator for U from one bound to T, preserving
// the underlying allocator. Containers use it to allocate their internal
// node type with whatever allocator they were given.
func Rebind[U, T any](t Typed[T]) Typed[U] {
	return Bind[U](t.a)
}

// Allocator returns the underlying byte-level allocator (Heap for the zero
// value).
func (t Typed[T]) Allocator() Allocator {
	if t.a == nil {
		return Heap{}
	}
	return t.a
}

// New allocates one zeroed T.
func (t Typed[T]) New() (*T, error) {
	if t.gcOnly || t.size == 0 {
		return new(T), nil
	}
	p, err := t.Allocator().Alloc(t.size, 1)
	if err != nil {
		return nil, err
	}
	ptr := (*T)(p)
	var zero T
	*ptr = zero
	return ptr, nil
}

// Free returns a block obtained from New. The element is not destroyed:
// freeing neither zeroes nor finalizes it.
func (t Typed[T]) Free(p *T) {
	if p == nil || t.gcOnly || t.size == 0 {
		return
	}
	t.Allocator().Free(unsafe.Pointer(p), t.size, 1)
}

// Slice allocates n zeroed elements. Counts above one always take the
// general-purpose path, whatever the element size.
func (t Typed[T]) Slice(n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	if t.gcOnly || t.size == 0 {
		return make([]T, n), nil
	}
	p, err := t.Allocator().Alloc(t.size, n)
	if err != nil {
		return nil, err
	}
	s := unsafe.Slice((*T)(p), n)
	clear(s)
	return s, nil
}

// FreeSlice returns a slice obtained from Slice. The length must match the
// allocating call.
func (t Typed[T]) FreeSlice(s []T) {
	if len(s) == 0 || t.gcOnly || t.size == 0 {
		return
	}
	t.Allocator().Free(unsafe.Pointer(&s[0]), t.size, len(s))
}

// typeHasPointers reports whether values of t contain Go pointers anywhere,
// directly or through nested fields and array elements.
func typeHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Interface, reflect.Map,
		reflect.Chan, reflect.Func, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && typeHasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
