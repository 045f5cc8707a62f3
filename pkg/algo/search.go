package algo

import "cmp"

// NotFound is the index BinarySearch returns when the target is absent.
const NotFound = -1

// BinarySearch returns the index of target in keys, or NotFound. keys
// must already be sorted in ascending order; when duplicate keys are
// present any one of the matching indices may be returned.
//
// Complexity: O(log n).
func BinarySearch[K cmp.Ordered](keys []K, target K) int {
	lo, hi := 0, len(keys)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch {
		case keys[mid] == target:
			return mid
		case keys[mid] < target:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return NotFound
}
