package zautils

import (
	"context"
	"iter"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ZombieAlex/za-utils/internal/ordmap"
)

// record is the per-key state of an expiring container.
// Each record owns at most one live timer at a time. The timer field
// doubles as the cancellation token: a fire that finds it nil, or finds
// a different record registered for its key, lost a race against
// Delete, ClearExpiry or re-insertion and must abort without effect.
type record[K KeyConstraint, V ValueConstraint] struct {
	value     V
	expiresAt time.Time // zero when the entry has no TTL
	timer     TimerHandle
	onExpire  ExpiryCallback[K, V]
}

// expiring is the shared core of ExpiringMap and ExpiringSet: an
// insertion-ordered store of records plus the expiry mechanics.
//
// The mutex guards the store and all record fields. Expiry callbacks
// always run outside the lock, so removal of the entry is the first
// observable effect of any expiry.
type expiring[K KeyConstraint, V ValueConstraint] struct {
	mu      sync.Mutex
	entries *ordmap.Map[K, *record[K, V]]
	config  config[K, V]
}

func (c *expiring[K, V]) init(opts []Option[K, V]) {
	c.config = defaultConfig[K, V]()
	for _, opt := range opts {
		opt.apply(&c.config)
	}
	c.entries = ordmap.New[K, *record[K, V]]()
}

// set inserts or overwrites an entry, delete-then-set: an existing
// entry for the key is removed first (its timer cancelled, no callback)
// and the key moves to the end of the iteration order.
func (c *expiring[K, V]) set(key K, value V, opts entryOptions[K, V]) {
	ttl, hasTTL := opts.ttl, opts.hasTTL
	if !hasTTL {
		ttl, hasTTL = c.config.defaultTTL, c.config.hasDefaultTTL
	}
	onExpire := opts.onExpire
	if onExpire == nil {
		onExpire = c.config.defaultOnExpire
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.insertLocked(key, value, ttl, hasTTL, onExpire)
}

// insertLocked is the single insertion path shared by set, SetExpiry
// and SetMinExpiry. It must be called with the mutex held.
func (c *expiring[K, V]) insertLocked(key K, value V, ttl time.Duration, hasTTL bool, onExpire ExpiryCallback[K, V]) {
	c.removeLocked(key)

	rec := &record[K, V]{value: value, onExpire: onExpire}
	c.entries.Set(key, rec)
	if hasTTL {
		rec.expiresAt = c.config.clock.Now().Add(ttl)
		// The fire goroutine takes the mutex first, so scheduling
		// under the lock is safe even for a zero TTL.
		rec.timer = c.config.scheduler.Schedule(ttl, func() {
			c.fire(key, rec)
		})
	}
}

func (c *expiring[K, V]) removeLocked(key K) bool {
	rec, ok := c.entries.Get(key)
	if !ok {
		return false
	}
	if rec.timer != nil {
		rec.timer.Stop()
		rec.timer = nil
	}
	c.entries.Delete(key)
	return true
}

// fire is the timer path of the expiry executor. Removal from the
// store happens before the callback runs, and callback failures are
// routed to the configured sink so the scheduler never observes one.
func (c *expiring[K, V]) fire(key K, rec *record[K, V]) {
	c.mu.Lock()
	cur, ok := c.entries.Get(key)
	if !ok || cur != rec || rec.timer == nil {
		// Cancelled, replaced or already removed while this fire
		// was in flight.
		c.mu.Unlock()
		return
	}
	rec.timer = nil
	c.entries.Delete(key)
	c.mu.Unlock()

	if rec.onExpire == nil {
		return
	}
	ctx := c.config.newContext()
	if err := safeCall(func() error {
		return rec.onExpire(ctx, key, rec.value)
	}); err != nil && c.config.onExpireError != nil {
		c.config.onExpireError(err)
	}
}

func (c *expiring[K, V]) get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.entries.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return c.config.cloner.CloneValue(rec.value), true
}

func (c *expiring[K, V]) has(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries.Get(key)
	return ok
}

func (c *expiring[K, V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// delete removes the entry without invoking its expiry callback.
func (c *expiring[K, V]) delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(key)
}

// clear removes every entry without invoking any expiry callback.
func (c *expiring[K, V]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range c.entries.All() {
		if rec.timer != nil {
			rec.timer.Stop()
			rec.timer = nil
		}
	}
	c.entries.Clear()
}

// expiresAt reports the absolute time the entry is scheduled to expire.
// The value is best-effort: a loaded scheduler may fire the timer late.
func (c *expiring[K, V]) expiresAt(key K) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.entries.Get(key)
	if !ok || rec.expiresAt.IsZero() {
		return time.Time{}, false
	}
	return rec.expiresAt, true
}

// clearExpiry cancels the entry's timer and makes it TTL-less, leaving
// its value and iteration position untouched.
func (c *expiring[K, V]) clearExpiry(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.entries.Get(key)
	if !ok {
		return false
	}
	if rec.timer != nil {
		rec.timer.Stop()
		rec.timer = nil
	}
	rec.expiresAt = time.Time{}
	return true
}

// setExpiry re-inserts the entry with its existing value and callback
// under a fresh TTL. Like any re-insertion it moves the key to the end
// of the iteration order.
func (c *expiring[K, V]) setExpiry(key K, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.entries.Get(key)
	if !ok {
		return false
	}
	c.insertLocked(key, rec.value, ttl, true, rec.onExpire)
	return true
}

// setMinExpiry pushes an entry's expiry out to at least now+ttl.
// It only ever raises the bound of an entry that already has one:
// a missing key and a TTL-less entry both report false.
func (c *expiring[K, V]) setMinExpiry(key K, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.entries.Get(key)
	if !ok || rec.expiresAt.IsZero() {
		return false
	}
	if !rec.expiresAt.Before(c.config.clock.Now().Add(ttl)) {
		return true
	}
	c.insertLocked(key, rec.value, ttl, true, rec.onExpire)
	return true
}

// expire forces immediate expiry of one entry outside the timer path.
// Unlike a timer fire, a callback error propagates to the caller.
func (c *expiring[K, V]) expire(ctx context.Context, key K) (bool, error) {
	c.mu.Lock()
	rec, ok := c.entries.Get(key)
	if !ok {
		c.mu.Unlock()
		return false, nil
	}
	if rec.timer != nil {
		rec.timer.Stop()
		rec.timer = nil
	}
	c.entries.Delete(key)
	c.mu.Unlock()

	if rec.onExpire == nil {
		return true, nil
	}
	return true, rec.onExpire(ctx, key, rec.value)
}

// expireAll forces expiry of every present entry, racing all callbacks
// concurrently and waiting for every one of them to settle. The first
// callback error is returned; later ones are discarded.
func (c *expiring[K, V]) expireAll(ctx context.Context) error {
	keys := c.snapshotKeys()

	var g errgroup.Group
	for _, key := range keys {
		g.Go(func() error {
			_, err := c.expire(ctx, key)
			return err
		})
	}
	return g.Wait()
}

// forEach starts the callback for every entry concurrently and waits
// for all invocations to settle.
func (c *expiring[K, V]) forEach(ctx context.Context, f func(ctx context.Context, key K, value V) error) error {
	pairs := c.snapshot()

	var g errgroup.Group
	for _, p := range pairs {
		g.Go(func() error {
			return f(ctx, p.key, p.value)
		})
	}
	return g.Wait()
}

type pair[K KeyConstraint, V ValueConstraint] struct {
	key   K
	value V
}

func (c *expiring[K, V]) snapshot() []pair[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	pairs := make([]pair[K, V], 0, c.entries.Len())
	for key, rec := range c.entries.All() {
		pairs = append(pairs, pair[K, V]{key: key, value: c.config.cloner.CloneValue(rec.value)})
	}
	return pairs
}

func (c *expiring[K, V]) snapshotKeys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]K, 0, c.entries.Len())
	for key := range c.entries.All() {
		keys = append(keys, key)
	}
	return keys
}

// all returns the entries in insertion order. The snapshot is taken
// when the iterator is created, so mutation during iteration is not
// observed.
func (c *expiring[K, V]) all() iter.Seq2[K, V] {
	pairs := c.snapshot()
	return func(yield func(K, V) bool) {
		for _, p := range pairs {
			if !yield(p.key, p.value) {
				return
			}
		}
	}
}
