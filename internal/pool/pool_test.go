package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Bucket Tests
// =============================================================================

func TestBucketFor(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 0},
		{16, 0},
		{17, 1},
		{32, 1},
		{33, 2},
		{1 << maxShift, maxShift - minShift},
		{1<<maxShift + 1, -1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, bucketFor(tc.n), "bucketFor(%d)", tc.n)
	}
}

// =============================================================================
// Slices Tests
// =============================================================================

func TestSlices_Get(t *testing.T) {
	var p Slices[int]

	s := p.Get(100)
	require.NotNil(t, s)
	assert.Equal(t, 0, len(s), "new slice should have zero length")
	assert.Equal(t, 128, cap(s), "capacity should be rounded up to a bucket size")

	small := p.Get(0)
	assert.Equal(t, 1<<minShift, cap(small))
}

func TestSlices_Get_Oversized(t *testing.T) {
	var p Slices[byte]

	s := p.Get(1<<maxShift + 1)
	assert.Equal(t, 1<<maxShift+1, cap(s))
	p.Put(s) // dropped, must not panic
}

func TestSlices_PutClears(t *testing.T) {
	var p Slices[byte]

	s := p.Get(16)
	s = append(s, "sensitive payload"[:16]...)
	backing := s[:cap(s)]
	p.Put(s)

	for i, b := range backing {
		require.Zero(t, b, "byte %d not cleared", i)
	}
}

func TestSlices_PutDropsOddCapacity(t *testing.T) {
	var p Slices[byte]

	s := make([]byte, 5, 20)
	copy(s, "hello")
	p.Put(s)
	assert.Equal(t, make([]byte, 20), s[:20], "dropped slices are still cleared")
}

func TestSlices_Grow(t *testing.T) {
	var p Slices[int]

	s := append(p.Get(16), 1, 2, 3)
	s = p.Grow(s, 10)
	assert.Equal(t, []int{1, 2, 3}, s)
	assert.Equal(t, 16, cap(s), "no growth needed")

	s = p.Grow(s, 20)
	assert.Equal(t, []int{1, 2, 3}, s)
	assert.GreaterOrEqual(t, cap(s), 32)
}

func TestSlices_Shrink(t *testing.T) {
	var p Slices[int]

	s := append(p.Get(1000), 1, 2, 3, 4, 5)
	require.Equal(t, 1024, cap(s))

	out := p.Shrink(s)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, out)
	assert.Equal(t, 16, cap(out))

	same := p.Shrink(out)
	assert.Equal(t, cap(out), cap(same))
}

func TestBytes_Shared(t *testing.T) {
	b := Bytes.Get(10)
	b = append(b, "abc"...)
	Bytes.Put(b)

	again := Bytes.Get(10)
	assert.Equal(t, 0, len(again))
}
