// Package collection provides generic helpers for slices.
package collection

// Copy returns a shallow copy of val so that callers cannot mutate the original backing array.
// The result is never nil.
func Copy[T any](val []T) []T {
	dest := make([]T, len(val))
	copy(dest, val)
	return dest
}
