package vector

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	v := New[string]()
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Cap())
	assert.True(t, v.Empty())

	var zero Vector[string]
	assert.True(t, zero.Empty())
	require.NoError(t, zero.PushBack("A"))
	assert.Equal(t, 1, zero.Len())
}

func TestNewSized(t *testing.T) {
	v, err := NewSized[int](3)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 3, v.Cap())
	for i := 0; i < 3; i++ {
		x, err := v.At(i)
		require.NoError(t, err)
		assert.Zero(t, x)
	}

	v, err = NewSized[int](0)
	require.NoError(t, err)
	assert.True(t, v.Empty())

	_, err = NewSized[int](-1)
	assert.ErrorIs(t, err, ErrAllocation)
}

func TestPushBackGrowth(t *testing.T) {
	v := New[int]()
	caps := []int{}
	for i := 0; i < 5; i++ {
		require.NoError(t, v.PushBack(i))
		caps = append(caps, v.Cap())
	}
	// size 1 -> cap 2, size 3 -> cap 6
	assert.Equal(t, []int{2, 2, 6, 6, 6}, caps)
}

func TestOrderPreservedAcrossGrowth(t *testing.T) {
	v := New[int]()
	const n = 1000
	for i := 0; i < n; i++ {
		require.NoError(t, v.PushBack(i))
		assert.LessOrEqual(t, v.Len(), v.Cap())
	}
	assert.Equal(t, n, v.Len())

	i := 0
	for it := v.Begin(); !it.Equal(v.End()); it.Inc() {
		x, err := it.Get()
		require.NoError(t, err)
		assert.Equal(t, i, x)
		i++
	}
	assert.Equal(t, n, i)
}

func TestLenNeverExceedsCap(t *testing.T) {
	v := New[int]()
	check := func() {
		assert.GreaterOrEqual(t, v.Len(), 0)
		assert.LessOrEqual(t, v.Len(), v.Cap())
	}
	for i := 0; i < 50; i++ {
		require.NoError(t, v.PushBack(i))
		check()
		if i%3 == 0 {
			_, err := v.PopBack()
			require.NoError(t, err)
			check()
		}
		if i%7 == 0 && !v.Empty() {
			require.NoError(t, v.Erase(v.Begin()))
			check()
		}
	}
}

func TestPopBack(t *testing.T) {
	v := From("A", "B")
	capBefore := v.Cap()
	x, err := v.PopBack()
	require.NoError(t, err)
	assert.Equal(t, "B", x)
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, capBefore, v.Cap())
}

func TestEmptyContainer(t *testing.T) {
	v := New[string]()
	_, err := v.PopBack()
	assert.ErrorIs(t, err, ErrEmptyContainer)
	assert.True(t, Error.Has(err))

	_, err = v.Back()
	assert.ErrorIs(t, err, ErrEmptyContainer)

	_, err = v.Front()
	assert.ErrorIs(t, err, ErrEmptyContainer)
}

func TestOutOfRange(t *testing.T) {
	v := From("A", "B", "C")
	_, err := v.At(5)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = v.At(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, v.Set(3, "D"), ErrOutOfRange)
	assert.ErrorIs(t, v.EraseAt(3), ErrOutOfRange)
	_, err = v.IteratorAt(4)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestFrontBack(t *testing.T) {
	v := From("A", "B", "C")
	f, err := v.Front()
	require.NoError(t, err)
	assert.Equal(t, "A", f)
	b, err := v.Back()
	require.NoError(t, err)
	assert.Equal(t, "C", b)
}

func TestErase(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		index int
		want  []string
	}{
		{"middle", []string{"A", "B", "C", "D"}, 1, []string{"A", "C", "D"}},
		{"first", []string{"A", "B", "C"}, 0, []string{"B", "C"}},
		{"last", []string{"A", "B", "C"}, 2, []string{"A", "B"}},
		{"only", []string{"A"}, 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := From(tt.input...)
			it, err := v.IteratorAt(tt.index)
			require.NoError(t, err)
			require.NoError(t, v.Erase(it))
			assert.Equal(t, len(tt.want), v.Len())
			assert.Equal(t, tt.want, v.Slice())
		})
	}
}

func TestEraseEndAndForeignIterator(t *testing.T) {
	v := From("A", "B")
	assert.ErrorIs(t, v.Erase(v.End()), ErrOutOfRange)

	other := From("A", "B")
	assert.ErrorIs(t, v.Erase(other.Begin()), ErrIteratorMismatch)
	assert.Equal(t, 2, v.Len())
}

func TestEraseKeepsEarlierIterators(t *testing.T) {
	v := From("A", "B", "C", "D")
	first := v.Begin()
	require.NoError(t, v.EraseAt(2))
	x, err := first.Get()
	require.NoError(t, err)
	assert.Equal(t, "A", x)
	assert.Equal(t, 4, v.Cap())
}

func TestReserve(t *testing.T) {
	v := From(1, 2)
	require.NoError(t, v.Reserve(10))
	assert.Equal(t, 10, v.Cap())
	assert.Equal(t, []int{1, 2}, v.Slice())

	gen := v.Generation()
	require.NoError(t, v.Reserve(5))
	assert.Equal(t, 10, v.Cap())
	assert.Equal(t, gen, v.Generation())

	assert.ErrorIs(t, v.Reserve(-1), ErrAllocation)
}

func TestReserveTooLarge(t *testing.T) {
	v := From(1, 2)
	err := v.Reserve(maxAllocBytes)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.Equal(t, []int{1, 2}, v.Slice())
	assert.Equal(t, 2, v.Cap())
}

func TestClear(t *testing.T) {
	v := From("A", "B")
	v.Clear()
	assert.True(t, v.Empty())
	assert.Equal(t, 0, v.Cap())
	v.Clear()
	assert.True(t, v.Empty())
	assert.Equal(t, 0, v.Cap())

	require.NoError(t, v.PushBack("C"))
	assert.Equal(t, []string{"C"}, v.Slice())
}

func TestCloneIndependence(t *testing.T) {
	x := From("A", "B")
	y := x.Clone()
	require.NoError(t, y.PushBack("C"))
	require.NoError(t, y.Set(0, "Z"))

	assert.Equal(t, 2, x.Len())
	assert.Equal(t, []string{"A", "B"}, x.Slice())
	assert.Equal(t, []string{"Z", "B", "C"}, y.Slice())
}

func TestCloneFunc(t *testing.T) {
	x := From([]int{1}, []int{2})
	y := x.CloneFunc(func(s []int) []int {
		return append([]int(nil), s...)
	})
	p, err := y.Ref(0)
	require.NoError(t, err)
	(*p)[0] = 100

	orig, err := x.At(0)
	require.NoError(t, err)
	assert.Equal(t, 1, orig[0])
}

func TestCopyFrom(t *testing.T) {
	x := From("A", "B")
	y := From("Q")
	y.CopyFrom(x)
	assert.True(t, Equal(x, y))
	require.NoError(t, y.PushBack("C"))
	assert.Equal(t, 2, x.Len())

	x.CopyFrom(x)
	assert.Equal(t, []string{"A", "B"}, x.Slice())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(From("A", "B"), From("A", "B")))
	assert.False(t, Equal(From("A", "B"), From("B", "A")))
	assert.True(t, Equal(New[string](), New[string]()))
	assert.False(t, Equal(From("A", "B"), From("A", "B", "C")))

	calls := 0
	eq := func(a, b string) bool {
		calls++
		return a == b
	}
	assert.False(t, From("A").EqualFunc(From("A", "B"), eq))
	assert.Zero(t, calls)
}

func TestNilOperand(t *testing.T) {
	v := From("A", "B")
	assert.False(t, Equal(v, nil))
	assert.False(t, Equal(nil, v))
	assert.True(t, Equal[string](nil, nil))
	assert.False(t, v.EqualFunc(nil, func(a, b string) bool { return a == b }))

	gen := v.Generation()
	v.CopyFrom(nil)
	assert.True(t, v.Empty())
	assert.Equal(t, 0, v.Cap())
	assert.Greater(t, v.Generation(), gen)
}

func TestFindAndSort(t *testing.T) {
	v := From("Nicholas", "Barry", "Alice")
	it := v.Find(func(s string) bool { return s == "Barry" })
	assert.Equal(t, 1, it.Index())
	assert.True(t, v.Find(func(s string) bool { return s == "Zed" }).Equal(v.End()))

	v.SortFunc(func(a, b string) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	})
	assert.Equal(t, []string{"Alice", "Barry", "Nicholas"}, v.Slice())
}

func TestEach(t *testing.T) {
	v := From(1, 2, 3, 4)
	var seen []int
	v.Each(func(i int, x int) bool {
		seen = append(seen, x)
		return i < 1
	})
	assert.Equal(t, []int{1, 2}, seen)
}

func TestEndToEnd(t *testing.T) {
	v := New[string]()
	for _, s := range []string{"A", "B", "C"} {
		require.NoError(t, v.PushBack(s))
	}
	assert.Equal(t, 3, v.Len())

	require.NoError(t, v.EraseAt(1))
	assert.Equal(t, []string{"A", "C"}, v.Slice())

	require.NoError(t, v.PushBack("D"))
	assert.Equal(t, []string{"A", "C", "D"}, v.Slice())

	c := v.Clone()
	_, err := c.PopBack()
	require.NoError(t, err)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 2, c.Len())
}

func TestErrorsAreClassed(t *testing.T) {
	_, err := From(1).At(2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Contains(t, err.Error(), "vector")
	assert.Contains(t, err.Error(), strconv.Itoa(2))
}
