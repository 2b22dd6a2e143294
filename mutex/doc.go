// Package mutex provides context-aware synchronization primitives.
//
// Mutex is a mutual exclusion lock whose acquisition can be abandoned
// when a context is canceled, following the single-owner discipline:
// whoever acquires the lock is solely responsible for releasing it.
// Cond is the matching wrapper for condition variables.
package mutex
