package zautils

import (
	"context"
	"iter"
	"time"

	"github.com/ZombieAlex/za-utils/internal/iterutil"
)

// ExpiringMap is an insertion-ordered map whose entries optionally
// carry a time-to-live. When an entry's TTL elapses the entry is
// removed and its expiry callback, if any, runs exactly once. Explicit
// removal with Delete or Clear never runs the callback.
//
// All methods are safe for concurrent use. Expiry callbacks run
// outside the container's lock, so an entry is already gone from the
// map by the time its callback observes it.
type ExpiringMap[K KeyConstraint, V ValueConstraint] struct {
	core expiring[K, V]
}

// NewExpiringMap creates a new ExpiringMap.
func NewExpiringMap[K KeyConstraint, V ValueConstraint](opts ...Option[K, V]) *ExpiringMap[K, V] {
	m := &ExpiringMap[K, V]{}
	m.core.init(opts)
	return m
}

// Set inserts or overwrites the entry for key. An existing entry is
// removed first: its timer is cancelled, its expiry callback does not
// run, and the key moves to the end of the iteration order.
//
// TTL and expiry callback fall back to the container defaults when not
// given as options. With an effective TTL the entry expires after at
// least that duration; without one it persists until explicitly
// removed. Returns the map to allow chaining.
func (m *ExpiringMap[K, V]) Set(key K, value V, opts ...EntryOption[K, V]) *ExpiringMap[K, V] {
	m.core.set(key, value, resolveEntryOptions(opts))
	return m
}

// Get returns the value stored for key. It is a pure lookup with no
// side effects.
func (m *ExpiringMap[K, V]) Get(key K) (V, bool) {
	return m.core.get(key)
}

// Has reports whether key is present. It is a pure lookup with no side
// effects.
func (m *ExpiringMap[K, V]) Has(key K) bool {
	return m.core.has(key)
}

// Delete removes the entry for key, cancelling its timer. The expiry
// callback does not run. It reports whether the entry existed.
func (m *ExpiringMap[K, V]) Delete(key K) bool {
	return m.core.delete(key)
}

// Clear removes every entry. No expiry callbacks run.
func (m *ExpiringMap[K, V]) Clear() {
	m.core.clear()
}

// ExpiresAt returns the absolute time the entry for key is scheduled
// to expire. It returns false when the key is absent or has no TTL.
// The time is best-effort: a loaded scheduler may fire late.
func (m *ExpiringMap[K, V]) ExpiresAt(key K) (time.Time, bool) {
	return m.core.expiresAt(key)
}

// ClearExpiry cancels the entry's timer and clears its expiry, leaving
// key and value untouched. The entry persists until explicitly
// removed. It returns false when the key is absent.
func (m *ExpiringMap[K, V]) ClearExpiry(key K) bool {
	return m.core.clearExpiry(key)
}

// SetExpiry re-inserts the entry with its existing value and expiry
// callback under a fresh TTL, moving the key to the end of the
// iteration order. It returns false when the key is absent.
func (m *ExpiringMap[K, V]) SetExpiry(key K, ttl time.Duration) bool {
	return m.core.setExpiry(key, ttl)
}

// SetMinExpiry ensures the entry expires no earlier than now+ttl.
// An expiry already at or past that bound is left unchanged. It only
// raises the bound of an entry that already has one: a missing key and
// a TTL-less entry both return false.
func (m *ExpiringMap[K, V]) SetMinExpiry(key K, ttl time.Duration) bool {
	return m.core.setMinExpiry(key, ttl)
}

// Expire forces immediate expiry of the entry for key: the entry is
// removed and its expiry callback, if any, is invoked and awaited.
// Unlike timer-triggered expiry, a callback error is returned to the
// caller. It reports whether the entry existed.
func (m *ExpiringMap[K, V]) Expire(ctx context.Context, key K) (bool, error) {
	return m.core.expire(ctx, key)
}

// ExpireAll forces expiry of every present entry as Expire does,
// racing all callbacks concurrently and waiting for every one to
// settle. The first callback error is returned.
func (m *ExpiringMap[K, V]) ExpireAll(ctx context.Context) error {
	return m.core.expireAll(ctx)
}

// Entries returns the entries in insertion order. The sequence is a
// snapshot taken per call; mutation during iteration is not observed.
func (m *ExpiringMap[K, V]) Entries() iter.Seq2[K, V] {
	return m.core.all()
}

// Keys returns the keys in insertion order.
func (m *ExpiringMap[K, V]) Keys() iter.Seq[K] {
	return iterutil.Keys(m.core.all())
}

// Values returns the values in insertion order.
func (m *ExpiringMap[K, V]) Values() iter.Seq[V] {
	return iterutil.Values(m.core.all())
}

// ForEach starts f for every entry concurrently, in no particular
// order, and waits for all invocations to settle. The first error is
// returned.
func (m *ExpiringMap[K, V]) ForEach(ctx context.Context, f func(ctx context.Context, key K, value V) error) error {
	return m.core.forEach(ctx, f)
}

// Len returns the current number of entries.
func (m *ExpiringMap[K, V]) Len() int {
	return m.core.len()
}
