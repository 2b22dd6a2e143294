// Package ordmap provides a generic map that preserves insertion order
// for iteration. It backs the expiring containers' ordered iteration.
package ordmap

import (
	"iter"
)

type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next *node[K, V]
}

// Map is an insertion-ordered map: iteration yields entries in the
// order their keys were inserted, and re-setting an existing key moves
// it to the end. It is not safe for concurrent use; callers must
// provide their own locking.
type Map[K comparable, V any] struct {
	index      map[K]*node[K, V]
	head, tail *node[K, V]
}

// New creates an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{index: map[K]*node[K, V]{}}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.index)
}

// Get returns the value stored for key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if n, ok := m.index[key]; ok {
		return n.value, true
	}
	var zero V
	return zero, false
}

// Set stores value under key at the end of the iteration order.
// An existing key is removed first, so it also moves to the end.
func (m *Map[K, V]) Set(key K, value V) {
	m.Delete(key)

	n := &node[K, V]{key: key, value: value, prev: m.tail}
	if m.tail != nil {
		m.tail.next = n
	} else {
		m.head = n
	}
	m.tail = n
	m.index[key] = n
}

// Delete removes the entry for key and reports whether it existed.
func (m *Map[K, V]) Delete(key K) bool {
	n, ok := m.index[key]
	if !ok {
		return false
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		m.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		m.tail = n.prev
	}
	delete(m.index, key)
	return true
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() {
	clear(m.index)
	m.head = nil
	m.tail = nil
}

// All returns the entries in insertion order. The iterator walks the
// live list; the caller must not mutate the map during iteration.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for n := m.head; n != nil; n = n.next {
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}
