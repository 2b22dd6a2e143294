package zautils_test

import (
	"sync"
	"time"

	zautils "github.com/ZombieAlex/za-utils"
)

// fakeTimers is a combined Clock and TimerScheduler for deterministic
// expiry tests. Time only moves when advance is called; due timers
// fire synchronously inside advance, in deadline order.
type fakeTimers struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

var _ zautils.Clock = (*fakeTimers)(nil)
var _ zautils.TimerScheduler = (*fakeTimers)(nil)

func newFakeTimers() *fakeTimers {
	return &fakeTimers{now: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
}

func (ft *fakeTimers) Now() time.Time {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return ft.now
}

func (ft *fakeTimers) Schedule(d time.Duration, f func()) zautils.TimerHandle {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	t := &fakeTimer{at: ft.now.Add(d), f: f, owner: ft}
	ft.timers = append(ft.timers, t)
	return t
}

func (ft *fakeTimers) advance(d time.Duration) {
	ft.mu.Lock()
	ft.now = ft.now.Add(d)
	ft.mu.Unlock()

	// Fire outside the scheduler lock: a callback may schedule or
	// cancel further timers.
	for {
		t := ft.nextDue()
		if t == nil {
			return
		}
		t.f()
	}
}

func (ft *fakeTimers) nextDue() *fakeTimer {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	var due *fakeTimer
	for _, t := range ft.timers {
		if t.stopped || t.fired || t.at.After(ft.now) {
			continue
		}
		if due == nil || t.at.Before(due.at) {
			due = t
		}
	}
	if due != nil {
		due.fired = true
	}
	return due
}

type fakeTimer struct {
	at      time.Time
	f       func()
	owner   *fakeTimers
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
