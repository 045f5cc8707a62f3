package algo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/webike_fleet_analytics_nikita/pkg/algo"
)

func TestBinarySearch_FindsEveryKey(t *testing.T) {
	keys := []string{"a", "b", "c"}
	for want, k := range keys {
		assert.Equal(t, want, algo.BinarySearch(keys, k))
	}
}

func TestBinarySearch_Misses(t *testing.T) {
	keys := []string{"a", "b", "c"}
	for _, probe := range []string{"", "aa", "z"} {
		assert.Equal(t, algo.NotFound, algo.BinarySearch(keys, probe), "probe %q", probe)
	}
}

func TestBinarySearch_Empty(t *testing.T) {
	assert.Equal(t, algo.NotFound, algo.BinarySearch([]int{}, 1))
}

func TestBinarySearch_SingleElement(t *testing.T) {
	assert.Equal(t, 0, algo.BinarySearch([]int{5}, 5))
	assert.Equal(t, algo.NotFound, algo.BinarySearch([]int{5}, 4))
	assert.Equal(t, algo.NotFound, algo.BinarySearch([]int{5}, 6))
}

// With duplicates any matching index is valid.
func TestBinarySearch_Duplicates(t *testing.T) {
	keys := []int{1, 2, 2, 2, 3}
	idx := algo.BinarySearch(keys, 2)
	require.NotEqual(t, algo.NotFound, idx)
	assert.Equal(t, 2, keys[idx])
}

func TestBinarySearch_LargeRange(t *testing.T) {
	keys := make([]int, 10_000)
	for i := range keys {
		keys[i] = i * 2
	}
	for _, i := range []int{0, 1, 4_999, 9_999} {
		assert.Equal(t, i, algo.BinarySearch(keys, i*2))
	}
	assert.Equal(t, algo.NotFound, algo.BinarySearch(keys, 3))
	assert.Equal(t, algo.NotFound, algo.BinarySearch(keys, -1))
	assert.Equal(t, algo.NotFound, algo.BinarySearch(keys, 20_000))
}
