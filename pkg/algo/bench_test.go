package algo_test

import (
	"math/rand"
	"slices"
	"sort"
	"testing"

	"github.com/sm8ta/webike_fleet_analytics_nikita/pkg/algo"
)

func randomFloats(n int) []float64 {
	rng := rand.New(rand.NewSource(1))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64() * 1000
	}
	return out
}

func BenchmarkMergeSort_10k(b *testing.B) {
	in := randomFloats(10_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = algo.MergeSort(in, false)
	}
}

// Baseline: the standard library's stable sort on the same input.
func BenchmarkStdSortStable_10k(b *testing.B) {
	in := randomFloats(10_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cp := slices.Clone(in)
		sort.SliceStable(cp, func(x, y int) bool { return cp[x] < cp[y] })
	}
}

func BenchmarkMergeSortFunc_Structs10k(b *testing.B) {
	type rec struct {
		id   int
		dist float64
	}
	rng := rand.New(rand.NewSource(2))
	in := make([]rec, 10_000)
	for i := range in {
		in[i] = rec{id: i, dist: rng.Float64() * 50}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = algo.MergeSortFunc(in, func(r rec) float64 { return r.dist }, true)
	}
}

func BenchmarkBinarySearch_1M(b *testing.B) {
	keys := make([]int, 1_000_000)
	for i := range keys {
		keys[i] = i
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = algo.BinarySearch(keys, i%len(keys))
	}
}

// Baseline: the standard library's binary search on the same keys.
func BenchmarkStdBinarySearch_1M(b *testing.B) {
	keys := make([]int, 1_000_000)
	for i := range keys {
		keys[i] = i
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = slices.BinarySearch(keys, i%len(keys))
	}
}
