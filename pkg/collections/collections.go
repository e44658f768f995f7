package collections

// Intner is satisfied by *rand.Rand from math/rand/v2.
type Intner interface {
	IntN(n int) int
}

// Apply applies the applicator function to each item in the input slice.
func Apply[T, V any](items []T, applicator func(T) V) []V {
	result := make([]V, len(items))
	for i, item := range items {
		result[i] = applicator(item)
	}
	return result
}

// Pick returns a uniformly chosen item and its index.
// It panics on an empty slice, same as rand.IntN(0).
func Pick[T any](rng Intner, items []T) (T, int) {
	idx := rng.IntN(len(items))
	return items[idx], idx
}

// Count returns how many items satisfy pred.
func Count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}
