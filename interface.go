package zautils

import (
	"context"
	"time"
)

// KeyConstraint is an interface for key constraints.
type KeyConstraint interface {
	comparable
}

// ValueConstraint is an interface for value constraints.
type ValueConstraint interface {
	any
}

// ExpiryCallback is invoked when an entry expires, either because its
// timer fired or because expiry was forced with Expire/ExpireAll.
// It is never invoked for entries removed with Delete or Clear.
//
// For ExpiringSet the member is its own value, so the callback
// receives it twice: once as the key and once as the value.
//
// Timer-triggered invocations run on the timer's goroutine; any
// returned error (or recovered panic) is routed to the container's
// expire-error callback and never escapes the timer path.
type ExpiryCallback[K KeyConstraint, V ValueConstraint] func(ctx context.Context, key K, value V) error

// TimerHandle is a handle to a scheduled single-shot timer.
type TimerHandle interface {
	// Stop cancels the timer.
	// It reports whether the timer was stopped before firing.
	// Stop does not interrupt a callback that has already started.
	Stop() bool
}

// TimerScheduler schedules single-shot timers.
// Implementations must run the callback on its own goroutine, no
// earlier than the requested delay. The delay is best-effort: a
// loaded scheduler may fire late, never early.
type TimerScheduler interface {
	Schedule(d time.Duration, f func()) TimerHandle
}

// TimerSchedulerFunc is a function type that implements the TimerScheduler interface.
type TimerSchedulerFunc func(d time.Duration, f func()) TimerHandle

// Schedule calls the function.
func (f TimerSchedulerFunc) Schedule(d time.Duration, fn func()) TimerHandle {
	return f(d, fn)
}

// SystemScheduler is the default scheduler that uses time.AfterFunc.
var SystemScheduler TimerScheduler = TimerSchedulerFunc(func(d time.Duration, f func()) TimerHandle {
	return time.AfterFunc(d, f)
})
