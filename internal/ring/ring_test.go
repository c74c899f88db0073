package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing_PushWithinCapacity(t *testing.T) {
	r := New[int](3)
	assert.True(t, r.IsEmpty())
	assert.Equal(t, 3, r.Cap())

	r.Push(1)
	r.Push(2)

	assert.False(t, r.IsEmpty())
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []int{1, 2}, r.Items())
}

func TestRing_EvictsOldest(t *testing.T) {
	r := New[string](3)
	r.Push("a")
	r.Push("b")
	r.Push("c")
	r.Push("d")

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"b", "c", "d"}, r.Items())

	r.Push("e")
	assert.Equal(t, []string{"c", "d", "e"}, r.Items())
}

func TestRing_At(t *testing.T) {
	r := New[string](2)
	r.Push("a")
	r.Push("b")

	v, ok := r.At(0)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = r.At(1)
	require.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = r.At(-1)
	assert.False(t, ok)
	_, ok = r.At(2)
	assert.False(t, ok)
}

func TestRing_Reset(t *testing.T) {
	r := New[int](2)
	r.Push(1)
	r.Push(2)
	r.Reset()

	assert.True(t, r.IsEmpty())
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Items())
}

func TestRing_ItemsIsCopy(t *testing.T) {
	r := New[int](2)
	r.Push(1)

	items := r.Items()
	items[0] = 99

	v, ok := r.At(0)
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestRing_WraparoundOrder(t *testing.T) {
	r := New[int](3)

	// Push well past capacity so the head wraps around the backing slice
	// several times; FIFO order must survive every eviction.
	for i := 1; i <= 10; i++ {
		r.Push(i)
	}

	assert.Equal(t, []int{8, 9, 10}, r.Items())

	v, ok := r.At(0)
	require.True(t, ok)
	assert.Equal(t, 8, v)

	v, ok = r.At(2)
	require.True(t, ok)
	assert.Equal(t, 10, v)

	r.Push(11)
	assert.Equal(t, []int{9, 10, 11}, r.Items())
}

func TestRing_ResetAfterWraparound(t *testing.T) {
	r := New[int](2)
	for i := 0; i < 5; i++ {
		r.Push(i)
	}
	r.Reset()

	assert.True(t, r.IsEmpty())
	assert.Empty(t, r.Items())

	r.Push(42)
	assert.Equal(t, []int{42}, r.Items())
}

func TestNew_MinimumCapacity(t *testing.T) {
	r := New[int](0)
	assert.Equal(t, 1, r.Cap())

	r.Push(1)
	r.Push(2)
	assert.Equal(t, []int{2}, r.Items())
}
