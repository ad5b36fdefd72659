package list

import (
	"slices"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/allocgo"
)

// countingAlloc delegates to Heap and counts calls. The counters are shared
// pointers so the allocator value itself stays copyable and comparable.
type countingAlloc struct {
	allocs *int
	frees  *int
}

func newCountingAlloc() countingAlloc {
	return countingAlloc{allocs: new(int), frees: new(int)}
}

func (c countingAlloc) Alloc(size, n int) (unsafe.Pointer, error) {
	*c.allocs++
	return allocgo.Heap{}.Alloc(size, n)
}

func (c countingAlloc) Free(p unsafe.Pointer, size, n int) {
	*c.frees++
}

// selectorAlloc hands copies a different allocator.
type selectorAlloc struct {
	countingAlloc
	target allocgo.Allocator
}

func (s selectorAlloc) SelectOnCopy() allocgo.Allocator { return s.target }

// propagatingAlloc declares itself propagating on copy-assignment.
type propagatingAlloc struct {
	countingAlloc
}

func (propagatingAlloc) PropagateOnCopyAssignment() bool { return true }

var (
	_ allocgo.CopySelector   = selectorAlloc{}
	_ allocgo.CopyPropagator = propagatingAlloc{}
)

func TestList_Clone(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		src := New[int]()
		defer src.Close()
		for i := 1; i <= 5; i++ {
			require.NoError(t, src.PushBack(i))
		}

		cp, err := src.Clone()
		require.NoError(t, err)
		defer cp.Close()

		assert.Equal(t, 5, cp.Len())
		assert.Equal(t, []int{1, 2, 3, 4, 5}, slices.Collect(cp.All()))
	})

	t.Run("IndependentOfSourceMutation", func(t *testing.T) {
		src := New[int]()
		defer src.Close()
		require.NoError(t, src.PushBack(1))
		require.NoError(t, src.PushBack(2))

		cp, err := src.Clone()
		require.NoError(t, err)
		defer cp.Close()

		src.PopFront()
		require.NoError(t, src.PushBack(99))
		src.Begin().Set(-1)

		assert.Equal(t, []int{1, 2}, slices.Collect(cp.All()))
	})

	t.Run("IndependentOfSourceClose", func(t *testing.T) {
		reg := allocgo.NewRegistry()
		defer reg.Close()

		src := NewIn[int64](reg.Dispatcher())
		for i := range int64(4) {
			require.NoError(t, src.PushBack(i))
		}

		cp, err := src.Clone()
		require.NoError(t, err)
		defer cp.Close()

		require.NoError(t, src.Close())

		assert.Equal(t, []int64{0, 1, 2, 3}, slices.Collect(cp.All()))
	})

	t.Run("DefaultUsesSourceAllocator", func(t *testing.T) {
		a := newCountingAlloc()
		src := NewIn[int64](a)
		defer src.Close()
		require.NoError(t, src.PushBack(1))
		require.NoError(t, src.PushBack(2))

		cp, err := src.Clone()
		require.NoError(t, err)
		defer cp.Close()

		assert.Equal(t, a, cp.Allocator())
		assert.Equal(t, 4, *a.allocs, "two source nodes plus two copied nodes")
	})

	t.Run("SelectOnCopyChoosesAllocator", func(t *testing.T) {
		target := newCountingAlloc()
		src := NewIn[int64](selectorAlloc{countingAlloc: newCountingAlloc(), target: target})
		defer src.Close()
		require.NoError(t, src.PushBack(7))

		cp, err := src.Clone()
		require.NoError(t, err)
		defer cp.Close()

		assert.Equal(t, target, cp.Allocator())
		assert.Equal(t, 1, *target.allocs, "copy allocates through the selected allocator")
		assert.Equal(t, []int64{7}, slices.Collect(cp.All()))
	})

	t.Run("DispatchClonesOntoSameRegistry", func(t *testing.T) {
		reg := allocgo.NewRegistry()
		defer reg.Close()

		d := reg.Dispatcher()
		src := NewIn[int64](d)
		defer src.Close()
		require.NoError(t, src.PushBack(1))

		cp, err := src.Clone()
		require.NoError(t, err)
		defer cp.Close()

		got, ok := cp.Allocator().(allocgo.Dispatch)
		require.True(t, ok)
		assert.True(t, got.Equal(d))
		assert.Equal(t, 2, reg.Stats()[0].OutstandingBlocks, "both lists draw on the same pool")
	})
}

func TestList_CopyFrom(t *testing.T) {
	t.Run("ReplacesContents", func(t *testing.T) {
		dst := New[int]()
		defer dst.Close()
		require.NoError(t, dst.PushBack(8))
		require.NoError(t, dst.PushBack(9))

		src := New[int]()
		defer src.Close()
		require.NoError(t, src.PushBack(1))
		require.NoError(t, src.PushBack(2))
		require.NoError(t, src.PushBack(3))

		require.NoError(t, dst.CopyFrom(src))
		assert.Equal(t, []int{1, 2, 3}, slices.Collect(dst.All()))
		assert.Equal(t, []int{1, 2, 3}, slices.Collect(src.All()), "source unchanged")
	})

	t.Run("KeepsOwnAllocatorByDefault", func(t *testing.T) {
		own := newCountingAlloc()
		dst := NewIn[int64](own)
		defer dst.Close()
		require.NoError(t, dst.PushBack(8))

		srcAlloc := newCountingAlloc()
		src := NewIn[int64](srcAlloc)
		defer src.Close()
		require.NoError(t, src.PushBack(1))
		require.NoError(t, src.PushBack(2))

		require.NoError(t, dst.CopyFrom(src))

		assert.Equal(t, own, dst.Allocator())
		assert.Equal(t, 1, *own.frees, "old node released through the old allocator")
		assert.Equal(t, 3, *own.allocs, "one original plus two copied nodes")
		assert.Equal(t, 2, *srcAlloc.allocs, "source allocator untouched by the copy")
	})

	t.Run("AdoptsPropagatingAllocator", func(t *testing.T) {
		own := newCountingAlloc()
		dst := NewIn[int64](own)
		defer dst.Close()
		require.NoError(t, dst.PushBack(8))
		require.NoError(t, dst.PushBack(9))

		theirs := propagatingAlloc{countingAlloc: newCountingAlloc()}
		src := NewIn[int64](theirs)
		defer src.Close()
		require.NoError(t, src.PushBack(1))

		require.NoError(t, dst.CopyFrom(src))

		assert.Equal(t, allocgo.Allocator(theirs), dst.Allocator())
		assert.Equal(t, 2, *own.frees, "old nodes still released through the old allocator")
		assert.Equal(t, 2, *theirs.allocs, "one source node plus one copied node")
		assert.Equal(t, []int64{1}, slices.Collect(dst.All()))
	})

	t.Run("SelfAssignmentIsNoop", func(t *testing.T) {
		a := newCountingAlloc()
		l := NewIn[int64](a)
		defer l.Close()
		require.NoError(t, l.PushBack(1))
		require.NoError(t, l.PushBack(2))

		allocsBefore, freesBefore := *a.allocs, *a.frees
		require.NoError(t, l.CopyFrom(l))

		assert.Equal(t, []int64{1, 2}, slices.Collect(l.All()))
		assert.Equal(t, allocsBefore, *a.allocs)
		assert.Equal(t, freesBefore, *a.frees)
	})

	t.Run("FromEmpty", func(t *testing.T) {
		dst := New[int]()
		defer dst.Close()
		require.NoError(t, dst.PushBack(1))

		src := New[int]()
		defer src.Close()

		require.NoError(t, dst.CopyFrom(src))
		assert.Zero(t, dst.Len())
	})
}
