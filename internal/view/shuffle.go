package view

import "math/rand"

// Shuffle returns a randomly reordered copy of items; the input is left
// untouched. The home listing uses it so the catalog does not always open on
// the same products.
func Shuffle[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
