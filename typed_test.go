package allocgo

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTyped_New(t *testing.T) {
	t.Run("PooledForSmallValueType", func(t *testing.T) {
		reg := NewRegistry()
		defer reg.Close()

		tt := Bind[int64](reg.Dispatcher())

		p, err := tt.New()
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Zero(t, *p)

		*p = 42

		require.Equal(t, 1, reg.Pools())
		stats := reg.Stats()
		assert.Equal(t, 8, stats[0].BlockSize)
		assert.Equal(t, 1, stats[0].OutstandingBlocks)

		tt.Free(p)
		assert.Equal(t, 0, reg.Stats()[0].OutstandingBlocks)
	})

	t.Run("ZeroedOnReuse", func(t *testing.T) {
		reg := NewRegistry()
		defer reg.Close()

		tt := Bind[int64](reg.Dispatcher())

		p1, err := tt.New()
		require.NoError(t, err)
		*p1 = 42
		tt.Free(p1)

		p2, err := tt.New()
		require.NoError(t, err)
		assert.Same(t, p1, p2, "most recently freed block is reused first")
		assert.Zero(t, *p2, "reused block must come back zeroed")
	})

	t.Run("PointerfulTypeStaysOnGCHeap", func(t *testing.T) {
		type boxed struct {
			v *int
		}

		reg := NewRegistry()
		defer reg.Close()

		tt := Bind[boxed](reg.Dispatcher())

		n := 7
		p, err := tt.New()
		require.NoError(t, err)
		p.v = &n

		assert.Equal(t, 0, reg.Pools(), "pointerful types never touch raw blocks")

		runtime.GC()
		assert.Equal(t, 7, *p.v)

		tt.Free(p)
	})

	t.Run("ZeroSizeType", func(t *testing.T) {
		reg := NewRegistry()
		defer reg.Close()

		tt := Bind[struct{}](reg.Dispatcher())

		p, err := tt.New()
		require.NoError(t, err)
		require.NotNil(t, p)
		tt.Free(p)

		assert.Equal(t, 0, reg.Pools())
	})

	t.Run("ZeroValueServesFromGC", func(t *testing.T) {
		var tt Typed[int64]

		p, err := tt.New()
		require.NoError(t, err)
		require.NotNil(t, p)
		*p = 9

		tt.Free(p)
	})

	t.Run("FreeNil", func(t *testing.T) {
		reg := NewRegistry()
		defer reg.Close()

		tt := Bind[int64](reg.Dispatcher())
		tt.Free(nil)
	})
}

func TestTyped_Slice(t *testing.T) {
	t.Run("AlwaysGeneralPurpose", func(t *testing.T) {
		reg := NewRegistry()
		defer reg.Close()

		tt := Bind[int64](reg.Dispatcher())

		s, err := tt.Slice(5)
		require.NoError(t, err)
		require.Len(t, s, 5)

		for i := range s {
			assert.Zero(t, s[i])
			s[i] = int64(i)
		}

		assert.Equal(t, 0, reg.Pools(), "multi-element requests bypass the pools")
		tt.FreeSlice(s)
	})

	t.Run("NonPositiveCount", func(t *testing.T) {
		tt := Bind[int64](Heap{})

		s, err := tt.Slice(0)
		require.NoError(t, err)
		assert.Nil(t, s)

		s, err = tt.Slice(-1)
		require.NoError(t, err)
		assert.Nil(t, s)

		tt.FreeSlice(nil)
	})
}

func TestRebind(t *testing.T) {
	reg := NewRegistry()
	defer reg.Close()

	d := reg.Dispatcher()
	tt := Bind[int64](d)

	tb := Rebind[[2]int64](tt)

	p, err := tb.New()
	require.NoError(t, err)
	require.NotNil(t, p)
	p[0], p[1] = 1, 2

	require.Equal(t, 1, reg.Pools())
	assert.Equal(t, 16, reg.Stats()[0].BlockSize, "rebound type routes by its own size")

	tb.Free(p)

	got, ok := tb.Allocator().(Dispatch)
	require.True(t, ok, "rebinding preserves the underlying allocator")
	assert.True(t, got.Equal(d))
}

func TestTyped_Allocator(t *testing.T) {
	var zero Typed[int64]
	assert.Equal(t, Heap{}, zero.Allocator())

	tt := Bind[int64](Heap{})
	assert.Equal(t, Heap{}, tt.Allocator())
}

func TestTypeHasPointers(t *testing.T) {
	type flat struct {
		a int64
		b [4]byte
	}
	type linked struct {
		next *linked
		v    int
	}
	type nested struct {
		f flat
		s string
	}

	reg := NewRegistry()
	defer reg.Close()

	d := reg.Dispatcher()

	// One pooled New per pointer-free type, none for the rest.
	pf, err := Bind[flat](d).New()
	require.NoError(t, err)
	require.NotNil(t, pf)

	pl, err := Bind[linked](d).New()
	require.NoError(t, err)
	require.NotNil(t, pl)

	pn, err := Bind[nested](d).New()
	require.NoError(t, err)
	require.NotNil(t, pn)

	ps, err := Bind[string](d).New()
	require.NoError(t, err)
	require.NotNil(t, ps)

	pa, err := Bind[[3]uint32](d).New()
	require.NoError(t, err)
	require.NotNil(t, pa)

	require.Equal(t, 2, reg.Pools(), "only flat and [3]uint32 are pool-eligible")
	stats := reg.Stats()
	assert.Equal(t, 12, stats[0].BlockSize)
	assert.Equal(t, 16, stats[1].BlockSize)
}

func TestTyped_GCSafety(t *testing.T) {
	reg := NewRegistry()
	defer reg.Close()

	tt := Bind[int64](reg.Dispatcher())

	// Pointers into mapped regions live in a plain Go slice; the collector
	// must neither move nor reclaim what they point at.
	const count = 100
	ptrs := make([]*int64, count)
	for i := range ptrs {
		p, err := tt.New()
		require.NoError(t, err)
		*p = int64(i)*3 + 1
		ptrs[i] = p
	}

	for range 4 {
		runtime.GC()
	}

	for i, p := range ptrs {
		require.Equal(t, int64(i)*3+1, *p)
	}

	for _, p := range ptrs {
		tt.Free(p)
	}
}

func BenchmarkTyped_NewFree_Pooled(b *testing.B) {
	reg := NewRegistry()
	defer reg.Close()

	tt := Bind[int64](reg.Dispatcher())

	b.ReportAllocs()
	for b.Loop() {
		p, err := tt.New()
		if err != nil {
			b.Fatal(err)
		}
		*p = 1
		tt.Free(p)
	}
}

func BenchmarkTyped_NewFree_GC(b *testing.B) {
	tt := Bind[int64](Heap{})

	b.ReportAllocs()
	for b.Loop() {
		p, err := tt.New()
		if err != nil {
			b.Fatal(err)
		}
		*p = 1
		tt.Free(p)
	}
}
