package algo

import "cmp"

// MergeSort returns a sorted copy of items in ascending order, or
// descending when reverse is set. The input slice is never modified.
//
// Complexity: O(n log n) comparisons; the result is a newly allocated
// slice.
func MergeSort[T cmp.Ordered](items []T, reverse bool) []T {
	return MergeSortFunc(items, func(v T) T { return v }, reverse)
}

// MergeSortFunc returns a copy of items sorted by the key extracted
// from each element. The sort is stable: elements with equal keys keep
// their relative input order, in both ascending and descending mode.
// The input slice is never modified.
func MergeSortFunc[T any, K cmp.Ordered](items []T, key func(T) K, reverse bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	return mergeSort(out, key, reverse)
}

func mergeSort[T any, K cmp.Ordered](items []T, key func(T) K, reverse bool) []T {
	if len(items) <= 1 {
		return items
	}
	mid := len(items) / 2
	left := mergeSort(items[:mid], key, reverse)
	right := mergeSort(items[mid:], key, reverse)
	return merge(left, right, key, reverse)
}

// merge combines two sorted runs into one. Ties are taken from the left
// run, which is what keeps the sort stable.
func merge[T any, K cmp.Ordered](left, right []T, key func(T) K, reverse bool) []T {
	out := make([]T, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		takeLeft := key(left[i]) <= key(right[j])
		if reverse {
			takeLeft = key(left[i]) >= key(right[j])
		}
		if takeLeft {
			out = append(out, left[i])
			i++
		} else {
			out = append(out, right[j])
			j++
		}
	}
	out = append(out, left[i:]...)
	return append(out, right[j:]...)
}
