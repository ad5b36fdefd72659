// Package list implements an allocator-aware doubly-linked list.
//
// # Overview
//
// List[T] keeps its elements in nodes chained between two permanent sentinel
// nodes, giving O(1) insertion and removal at any position and bidirectional
// iteration. Every node is obtained through the list's allocator rebound to
// the node type. With a pool-backed dispatcher, lists of small pointer-free
// elements draw all node storage from size-class pools instead of the
// garbage-collected heap.
//
// # Usage
//
//	reg := allocgo.NewRegistry()
//	defer reg.Close()
//
//	l := list.NewIn[int64](reg.Dispatcher())
//	defer l.Close()
//
//	l.PushBack(1)
//	l.PushBack(2)
//	l.PushFront(0)
//
//	for v := range l.All() {
//	    fmt.Println(v)
//	}
//
// The zero value of List is usable directly and allocates from the Go heap:
//
//	var l list.List[string]
//	l.PushBack("hello")
//
// # Iterators
//
// Begin/End return comparable Iterator values; Insert and Erase address
// positions through them. Node handles are stable, so iterators survive
// mutation anywhere else in the list. See Iterator for the invalidation
// contract.
//
// # Allocator Propagation
//
// Clone consults the source allocator's SelectOnCopy (allocgo.CopySelector)
// to choose the copy's allocator; CopyFrom keeps the destination's allocator
// unless the source's declares PropagateOnCopyAssignment
// (allocgo.CopyPropagator). Absent those interfaces the defaults are the
// source's allocator value and keep-own, respectively.
//
// # Concurrency
//
// A List is not safe for concurrent use. All methods assume a single
// goroutine.
package list
