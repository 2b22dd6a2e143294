package mutex

import (
	"context"
	"sync"
)

// Mutex is a mutual exclusion lock that supports context-aware
// acquisition. The zero value is an unlocked mutex.
//
// A Mutex must not be copied after first use.
type Mutex struct {
	once sync.Once
	sem  chan struct{}
}

func (m *Mutex) init() {
	m.sem = make(chan struct{}, 1)
}

// Lock acquires the lock, blocking until it is available or the
// context is done. If the context is done first, the lock is not
// acquired and the context error is returned.
func (m *Mutex) Lock(ctx context.Context) error {
	m.once.Do(m.init)
	select {
	case m.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryLock attempts to acquire the lock without blocking and reports
// whether it succeeded.
func (m *Mutex) TryLock() bool {
	m.once.Do(m.init)
	select {
	case m.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

// Unlock releases the lock.
// It panics if the mutex is not locked.
func (m *Mutex) Unlock() {
	m.once.Do(m.init)
	select {
	case <-m.sem:
	default:
		panic("mutex: unlock of unlocked mutex")
	}
}
