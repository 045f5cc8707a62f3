// Package algo implements the ordering primitives behind the fleet
// facade: a stable merge sort, plain and key-extracting, and an
// iterative binary search over pre-sorted keys.
//
// The sort functions never mutate their input; callers receive a fresh
// slice and may keep references to the old ordering. BinarySearch
// reports a miss with NotFound (-1).
package algo
