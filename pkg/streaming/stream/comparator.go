package stream

import "cmp"

// Comparing returns a comparator ordering elements by the key extracted with key.
func Comparing[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// Reversed returns a comparator imposing the reverse order of compare.
// Elements that compare equal stay equal, so a stable sort keeps their
// source order in both directions.
func Reversed[T any](compare func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		return compare(b, a)
	}
}

// ThenComparing returns a comparator that uses next to break ties of first.
func ThenComparing[T any](first, next func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		if c := first(a, b); c != 0 {
			return c
		}
		return next(a, b)
	}
}

// NaturalOrder returns the ascending comparator of an ordered type.
func NaturalOrder[T cmp.Ordered]() func(a, b T) int {
	return cmp.Compare[T]
}
