package list

import (
	"iter"

	"github.com/hupe1980/allocgo"
)

// ref is a stable handle into a list's slot table. Links between nodes are
// refs, never Go pointers, which keeps nodes pointer-free whenever the
// element type is and therefore eligible for pool-served allocation.
type ref uint32

const (
	frontRef ref = 0 // front sentinel slot
	backRef  ref = 1 // back sentinel slot
)

// node carries one element and its chain links. The sentinels are nodes too;
// their boundary links loop back on themselves, so walking past either end
// saturates instead of escaping the list.
type node[T any] struct {
	next ref
	prev ref
	elem T
}

// List is a doubly-linked list with O(1) insertion and removal at any
// position and bidirectional iteration. Two sentinel nodes bound the live
// chain and exist for the whole life of the list, so boundary operations
// never branch on emptiness.
//
// Nodes are allocated through the list's allocator, rebound to the internal
// node type. With a pool-backed dispatcher, small pointer-free elements are
// served from size-class pools. Node handles are stable: iterators survive
// insertions and erasures anywhere else in the list and are invalidated only
// for the node they reference once that node is erased.
//
// The zero value is an empty Heap-backed list ready for use. A List must not
// be copied after first use; copy the contents with Clone or CopyFrom.
//
// List is not safe for concurrent use.
type List[T any] struct {
	nodes allocgo.Typed[node[T]]
	slots []*node[T] // ref → node; nil entries are spare
	spare []ref
	front node[T]
	back  node[T]
	size  int

	closed bool
}

// New creates an empty list backed by the general-purpose allocator.
func New[T any]() *List[T] {
	l := &List[T]{}
	l.bind(allocgo.Heap{})
	return l
}

// NewIn creates an empty list whose nodes are allocated through a.
func NewIn[T any](a allocgo.Allocator) *List[T] {
	l := &List[T]{}
	l.bind(a)
	return l
}

// NewCount creates a list of n zero-value elements. An optional allocator
// may follow n; the default is the general-purpose allocator.
func NewCount[T any](n int, a ...allocgo.Allocator) (*List[T], error) {
	var zero T
	return NewFill(n, zero, a...)
}

// NewFill creates a list of n copies of v. An optional allocator may follow
// v; the default is the general-purpose allocator.
func NewFill[T any](n int, v T, a ...allocgo.Allocator) (*List[T], error) {
	var l *List[T]
	if len(a) > 0 && a[0] != nil {
		l = NewIn[T](a[0])
	} else {
		l = New[T]()
	}

	for range n {
		if err := l.PushBack(v); err != nil {
			l.Close()
			return nil, err
		}
	}
	return l, nil
}

// bind routes node allocation through a and resets the chain to empty.
func (l *List[T]) bind(a allocgo.Allocator) {
	l.nodes = allocgo.Bind[node[T]](a)
	l.reset()
}

// reset rebuilds the sentinel chain and slot table of an empty list.
func (l *List[T]) reset() {
	l.front = node[T]{next: backRef, prev: frontRef}
	l.back = node[T]{next: backRef, prev: frontRef}
	l.slots = []*node[T]{&l.front, &l.back}
	l.spare = nil
	l.size = 0
}

func (l *List[T]) lazyInit() {
	if l.closed {
		panic("list: use of closed List")
	}
	if l.slots == nil {
		l.reset()
	}
}

func (l *List[T]) at(r ref) *node[T] {
	return l.slots[r]
}

// newNode allocates a node holding v and returns its handle. Spare slots are
// reused before the table grows.
func (l *List[T]) newNode(v T) (ref, error) {
	n, err := l.nodes.New()
	if err != nil {
		return 0, err
	}
	n.elem = v

	if k := len(l.spare); k > 0 {
		r := l.spare[k-1]
		l.spare = l.spare[:k-1]
		l.slots[r] = n
		return r, nil
	}
	r := ref(len(l.slots))
	l.slots = append(l.slots, n)
	return r, nil
}

// freeNode destroys the element and returns the node to the allocator and
// its slot to the spare list. The element is zeroed first so references it
// held stop pinning their targets.
func (l *List[T]) freeNode(r ref) {
	n := l.slots[r]
	var zero T
	n.elem = zero
	l.nodes.Free(n)
	l.slots[r] = nil
	l.spare = append(l.spare, r)
}

// insertBefore links a new node holding v immediately before pos.
func (l *List[T]) insertBefore(pos ref, v T) (ref, error) {
	r, err := l.newNode(v)
	if err != nil {
		return 0, err
	}

	p := l.at(pos)
	n := l.at(r)
	n.prev = p.prev
	n.next = pos
	l.at(p.prev).next = r
	p.prev = r
	l.size++
	return r, nil
}

// unlink removes r from the chain without destroying the node.
func (l *List[T]) unlink(r ref) {
	n := l.at(r)
	l.at(n.prev).next = n.next
	l.at(n.next).prev = n.prev
	l.size--
}

// Len returns the number of live elements. It is O(1) and safe on the zero
// value and after Close.
func (l *List[T]) Len() int {
	return l.size
}

// Allocator returns the allocator the list was constructed with (Heap for
// the zero value).
func (l *List[T]) Allocator() allocgo.Allocator {
	return l.nodes.Allocator()
}

// PushFront inserts a copy of v at the front. An allocation failure
// propagates unmodified and leaves the list unchanged.
func (l *List[T]) PushFront(v T) error {
	l.lazyInit()
	_, err := l.insertBefore(l.front.next, v)
	return err
}

// PushBack inserts a copy of v at the back. An allocation failure propagates
// unmodified and leaves the list unchanged.
func (l *List[T]) PushBack(v T) error {
	l.lazyInit()
	_, err := l.insertBefore(backRef, v)
	return err
}

// PopFront removes the first element. It is a no-op on an empty list.
func (l *List[T]) PopFront() {
	l.lazyInit()
	if l.size == 0 {
		return
	}
	r := l.front.next
	l.unlink(r)
	l.freeNode(r)
}

// PopBack removes the last element. It is a no-op on an empty list.
func (l *List[T]) PopBack() {
	l.lazyInit()
	if l.size == 0 {
		return
	}
	r := l.back.prev
	l.unlink(r)
	l.freeNode(r)
}

// Front returns the first element. ok is false when the list is empty.
func (l *List[T]) Front() (T, bool) {
	l.lazyInit()
	if l.size == 0 {
		var zero T
		return zero, false
	}
	return l.at(l.front.next).elem, true
}

// Back returns the last element. ok is false when the list is empty.
func (l *List[T]) Back() (T, bool) {
	l.lazyInit()
	if l.size == 0 {
		var zero T
		return zero, false
	}
	return l.at(l.back.prev).elem, true
}

// Insert places a copy of v immediately before pos and returns an iterator
// to the new element. pos must reference a live element of this list or be
// its End; anything else is undefined behavior.
func (l *List[T]) Insert(pos Iterator[T], v T) (Iterator[T], error) {
	l.lazyInit()
	r, err := l.insertBefore(pos.at, v)
	if err != nil {
		return Iterator[T]{}, err
	}
	return Iterator[T]{list: l, at: r}, nil
}

// Erase removes the element pos references and returns an iterator to the
// following element (End when the last element was erased). pos must
// reference a live element of this list; erasing a sentinel or an already
// erased node is undefined behavior.
func (l *List[T]) Erase(pos Iterator[T]) Iterator[T] {
	l.lazyInit()
	next := l.at(pos.at).next
	l.unlink(pos.at)
	l.freeNode(pos.at)
	return Iterator[T]{list: l, at: next}
}

// Begin returns an iterator to the first element, or End when the list is
// empty.
func (l *List[T]) Begin() Iterator[T] {
	l.lazyInit()
	return Iterator[T]{list: l, at: l.front.next}
}

// End returns the iterator one past the last element. It never references a
// live element.
func (l *List[T]) End() Iterator[T] {
	l.lazyInit()
	return Iterator[T]{list: l, at: backRef}
}

// All returns a forward iterator over the elements, front to back.
//
// Mutating the list while ranging is undefined behavior, with one exception:
// stopping early (break) is always safe.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		l.lazyInit()
		for r := l.front.next; r != backRef; r = l.at(r).next {
			if !yield(l.at(r).elem) {
				return
			}
		}
	}
}

// Backward returns a reverse iterator over the elements, back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		l.lazyInit()
		for r := l.back.prev; r != frontRef; r = l.at(r).prev {
			if !yield(l.at(r).elem) {
				return
			}
		}
	}
}

// Clear erases every live element. The sentinels and the allocator binding
// survive; the list is empty and ready for reuse.
func (l *List[T]) Clear() {
	l.lazyInit()
	for r := l.front.next; r != backRef; {
		next := l.at(r).next
		l.freeNode(r)
		r = next
	}
	l.front.next = backRef
	l.back.prev = frontRef
	l.size = 0
}

// Clone returns a deep element-wise copy. The copy's allocator comes from
// the source allocator's SelectOnCopy when it implements allocgo.CopySelector,
// and is the source's allocator value otherwise. A partial copy is torn down
// when an allocation fails mid-way.
func (l *List[T]) Clone() (*List[T], error) {
	l.lazyInit()

	a := l.nodes.Allocator()
	if s, ok := a.(allocgo.CopySelector); ok {
		a = s.SelectOnCopy()
	}

	out := NewIn[T](a)
	if err := out.appendFrom(l); err != nil {
		out.Close()
		return nil, err
	}
	return out, nil
}

// CopyFrom replaces the contents with a deep copy of src. The receiver keeps
// its own allocator unless src's allocator implements allocgo.CopyPropagator
// and reports true, in which case the receiver adopts it. Existing nodes
// are always released through the allocator that produced them first.
// Self-assignment is a no-op.
func (l *List[T]) CopyFrom(src *List[T]) error {
	if l == src {
		return nil
	}
	l.lazyInit()
	src.lazyInit()

	l.Clear()
	if p, ok := src.nodes.Allocator().(allocgo.CopyPropagator); ok && p.PropagateOnCopyAssignment() {
		l.bind(src.nodes.Allocator())
	}
	return l.appendFrom(src)
}

func (l *List[T]) appendFrom(src *List[T]) error {
	for r := src.front.next; r != backRef; r = src.at(r).next {
		if err := l.PushBack(src.at(r).elem); err != nil {
			return err
		}
	}
	return nil
}

// Close erases every element, returns all nodes to the allocator, and
// releases the slot table. Any further use of the list panics; Close itself
// is idempotent.
func (l *List[T]) Close() error {
	if l.closed {
		return nil
	}
	if l.slots != nil {
		for r := l.front.next; r != backRef; {
			next := l.at(r).next
			l.freeNode(r)
			r = next
		}
	}
	l.closed = true
	l.slots = nil
	l.spare = nil
	l.size = 0
	return nil
}
