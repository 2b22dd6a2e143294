package zautils

import (
	"context"
	"time"
)

// Option is the interface for container-level options.
// The same options serve both containers; for an ExpiringSet the value
// type parameter equals the key type.
type Option[K KeyConstraint, V ValueConstraint] interface {
	apply(*config[K, V])
}

type optionFunc[K KeyConstraint, V ValueConstraint] func(*config[K, V])

func (f optionFunc[K, V]) apply(c *config[K, V]) {
	f(c)
}

// SetOption is a container-level option for an ExpiringSet.
type SetOption[K KeyConstraint] = Option[K, K]

// WithDefaultTTL sets the TTL applied to entries inserted without one.
func WithDefaultTTL[K KeyConstraint, V ValueConstraint](d time.Duration) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		c.defaultTTL = d
		c.hasDefaultTTL = true
	})
}

// WithDefaultExpiryCallback sets the expiry callback applied to entries
// inserted without one.
func WithDefaultExpiryCallback[K KeyConstraint, V ValueConstraint](f ExpiryCallback[K, V]) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		c.defaultOnExpire = f
	})
}

// WithExpireErrorCallback sets the sink for errors returned (or panics
// raised) by expiry callbacks on the timer path. Without a sink such
// failures are discarded.
func WithExpireErrorCallback[K KeyConstraint, V ValueConstraint](f func(error)) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		c.onExpireError = f
	})
}

// WithClock sets the clock used to compute absolute expiry times.
func WithClock[K KeyConstraint, V ValueConstraint](clock Clock) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		c.clock = clock
	})
}

// WithScheduler sets the timer scheduler used to arm expiry timers.
func WithScheduler[K KeyConstraint, V ValueConstraint](scheduler TimerScheduler) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		c.scheduler = scheduler
	})
}

// WithContext sets the provider of the context passed to
// timer-triggered expiry callbacks. The default is context.Background.
func WithContext[K KeyConstraint, V ValueConstraint](f func() context.Context) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		c.newContext = f
	})
}

// WithCloner sets the value cloner applied on Get and iteration.
func WithCloner[K KeyConstraint, V ValueConstraint](cloner ValueCloner[V]) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		c.cloner = cloner
	})
}

type config[K KeyConstraint, V ValueConstraint] struct {
	clock           Clock
	scheduler       TimerScheduler
	newContext      func() context.Context
	defaultTTL      time.Duration
	hasDefaultTTL   bool
	defaultOnExpire ExpiryCallback[K, V]
	onExpireError   func(error)
	cloner          ValueCloner[V]
}

func defaultConfig[K KeyConstraint, V ValueConstraint]() config[K, V] {
	return config[K, V]{
		clock:      SystemClock,
		scheduler:  SystemScheduler,
		newContext: context.Background,
		cloner:     NopValueCloner[V]{},
	}
}

// EntryOption is the interface for per-entry options of Set/Add.
type EntryOption[K KeyConstraint, V ValueConstraint] interface {
	applyEntry(*entryOptions[K, V])
}

type entryOptionFunc[K KeyConstraint, V ValueConstraint] func(*entryOptions[K, V])

func (f entryOptionFunc[K, V]) applyEntry(o *entryOptions[K, V]) {
	f(o)
}

// WithTTL sets the TTL for one entry, overriding the container default.
// A zero or negative duration arms a timer that fires as soon as the
// scheduler allows.
func WithTTL[K KeyConstraint, V ValueConstraint](d time.Duration) EntryOption[K, V] {
	return entryOptionFunc[K, V](func(o *entryOptions[K, V]) {
		o.ttl = d
		o.hasTTL = true
	})
}

// WithExpiryCallback sets the expiry callback for one entry, overriding
// the container default.
func WithExpiryCallback[K KeyConstraint, V ValueConstraint](f ExpiryCallback[K, V]) EntryOption[K, V] {
	return entryOptionFunc[K, V](func(o *entryOptions[K, V]) {
		o.onExpire = f
	})
}

type entryOptions[K KeyConstraint, V ValueConstraint] struct {
	ttl      time.Duration
	hasTTL   bool
	onExpire ExpiryCallback[K, V]
}

func resolveEntryOptions[K KeyConstraint, V ValueConstraint](opts []EntryOption[K, V]) entryOptions[K, V] {
	var o entryOptions[K, V]
	for _, opt := range opts {
		opt.applyEntry(&o)
	}
	return o
}
