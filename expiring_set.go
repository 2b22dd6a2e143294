package zautils

import (
	"context"
	"iter"
	"time"

	"github.com/ZombieAlex/za-utils/internal/iterutil"
)

// ExpiringSet is an insertion-ordered set whose members optionally
// carry a time-to-live. It is the degenerate form of ExpiringMap where
// every member is its own value: expiry callbacks receive the member
// as both key and value, and Entries yields (member, member) pairs for
// API symmetry with the map.
//
// All methods are safe for concurrent use.
type ExpiringSet[K KeyConstraint] struct {
	core expiring[K, K]
}

// NewExpiringSet creates a new ExpiringSet.
func NewExpiringSet[K KeyConstraint](opts ...SetOption[K]) *ExpiringSet[K] {
	s := &ExpiringSet[K]{}
	s.core.init(opts)
	return s
}

// Add inserts or re-inserts value. An existing member is removed
// first: its timer is cancelled, its expiry callback does not run, and
// the member moves to the end of the iteration order.
//
// TTL and expiry callback fall back to the container defaults when not
// given as options. Returns the set to allow chaining.
func (s *ExpiringSet[K]) Add(value K, opts ...EntryOption[K, K]) *ExpiringSet[K] {
	s.core.set(value, value, resolveEntryOptions(opts))
	return s
}

// Has reports whether value is a member. It is a pure lookup with no
// side effects.
func (s *ExpiringSet[K]) Has(value K) bool {
	return s.core.has(value)
}

// Delete removes value from the set, cancelling its timer. The expiry
// callback does not run. It reports whether the member existed.
func (s *ExpiringSet[K]) Delete(value K) bool {
	return s.core.delete(value)
}

// Clear removes every member. No expiry callbacks run.
func (s *ExpiringSet[K]) Clear() {
	s.core.clear()
}

// ExpiresAt returns the absolute time value is scheduled to expire.
// It returns false when the member is absent or has no TTL.
func (s *ExpiringSet[K]) ExpiresAt(value K) (time.Time, bool) {
	return s.core.expiresAt(value)
}

// ClearExpiry cancels the member's timer and clears its expiry; the
// member persists until explicitly removed. It returns false when the
// member is absent.
func (s *ExpiringSet[K]) ClearExpiry(value K) bool {
	return s.core.clearExpiry(value)
}

// SetExpiry re-inserts the member with its existing expiry callback
// under a fresh TTL, moving it to the end of the iteration order. It
// returns false when the member is absent.
func (s *ExpiringSet[K]) SetExpiry(value K, ttl time.Duration) bool {
	return s.core.setExpiry(value, ttl)
}

// SetMinExpiry ensures the member expires no earlier than now+ttl.
// An expiry already at or past that bound is left unchanged. A missing
// member and a TTL-less member both return false.
func (s *ExpiringSet[K]) SetMinExpiry(value K, ttl time.Duration) bool {
	return s.core.setMinExpiry(value, ttl)
}

// Expire forces immediate expiry of the member: it is removed and its
// expiry callback, if any, is invoked and awaited. A callback error is
// returned to the caller. It reports whether the member existed.
func (s *ExpiringSet[K]) Expire(ctx context.Context, value K) (bool, error) {
	return s.core.expire(ctx, value)
}

// ExpireAll forces expiry of every present member as Expire does,
// racing all callbacks concurrently and waiting for every one to
// settle. The first callback error is returned.
func (s *ExpiringSet[K]) ExpireAll(ctx context.Context) error {
	return s.core.expireAll(ctx)
}

// Entries returns (member, member) pairs in insertion order. The
// sequence is a snapshot taken per call.
func (s *ExpiringSet[K]) Entries() iter.Seq2[K, K] {
	return s.core.all()
}

// Values returns the members in insertion order.
func (s *ExpiringSet[K]) Values() iter.Seq[K] {
	return iterutil.Keys(s.core.all())
}

// ForEach starts f for every member concurrently, in no particular
// order, and waits for all invocations to settle. The first error is
// returned.
func (s *ExpiringSet[K]) ForEach(ctx context.Context, f func(ctx context.Context, value K) error) error {
	return s.core.forEach(ctx, func(ctx context.Context, key K, _ K) error {
		return f(ctx, key)
	})
}

// Len returns the current number of members.
func (s *ExpiringSet[K]) Len() int {
	return s.core.len()
}
