// Package iterutil provides small helpers over the standard iterator
// types used by the container iteration surfaces.
package iterutil

import (
	"iter"
)

// Keys returns a new iterator that yields the first element of each
// pair from the input iterator.
func Keys[K, V any](seq iter.Seq2[K, V]) iter.Seq[K] {
	return iter.Seq[K](func(yield func(K) bool) {
		for k := range seq {
			if !yield(k) {
				return
			}
		}
	})
}

// Values returns a new iterator that yields the second element of each
// pair from the input iterator.
func Values[K, V any](seq iter.Seq2[K, V]) iter.Seq[V] {
	return iter.Seq[V](func(yield func(V) bool) {
		for _, v := range seq {
			if !yield(v) {
				return
			}
		}
	})
}
