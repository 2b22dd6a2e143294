package mutex_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ZombieAlex/za-utils/mutex"
)

func TestMutex(t *testing.T) {
	t.Parallel()

	t.Run("LockUnlock", func(t *testing.T) {
		t.Parallel()

		var m mutex.Mutex
		if err := m.Lock(context.Background()); err != nil {
			t.Fatalf("Lock() = %v, want nil", err)
		}
		m.Unlock()
		if err := m.Lock(context.Background()); err != nil {
			t.Fatalf("Lock() after Unlock = %v, want nil", err)
		}
		m.Unlock()
	})

	t.Run("TryLock", func(t *testing.T) {
		t.Parallel()

		var m mutex.Mutex
		if !m.TryLock() {
			t.Fatal("TryLock() = false for an unlocked mutex")
		}
		if m.TryLock() {
			t.Error("TryLock() = true for a locked mutex")
		}
		m.Unlock()
		if !m.TryLock() {
			t.Error("TryLock() = false after Unlock")
		}
		m.Unlock()
	})

	t.Run("CancelledContext", func(t *testing.T) {
		t.Parallel()

		var m mutex.Mutex
		if err := m.Lock(context.Background()); err != nil {
			t.Fatal(err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := m.Lock(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Lock() = %v, want %v", err, context.Canceled)
		}

		// The failed Lock must not have consumed the lock.
		m.Unlock()
		if !m.TryLock() {
			t.Error("mutex unusable after an abandoned Lock")
		}
		m.Unlock()
	})

	t.Run("CancelDuringWait", func(t *testing.T) {
		t.Parallel()

		var m mutex.Mutex
		if err := m.Lock(context.Background()); err != nil {
			t.Fatal(err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- m.Lock(ctx)
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()
		if err := <-done; !errors.Is(err, context.Canceled) {
			t.Errorf("Lock() = %v, want %v", err, context.Canceled)
		}
		m.Unlock()
	})

	t.Run("UnlockOfUnlockedPanics", func(t *testing.T) {
		t.Parallel()

		defer func() {
			if recover() == nil {
				t.Error("Unlock of an unlocked mutex did not panic")
			}
		}()
		var m mutex.Mutex
		m.Unlock()
	})

	t.Run("MutualExclusion", func(t *testing.T) {
		t.Parallel()

		var m mutex.Mutex
		counter := 0

		var g errgroup.Group
		for range 8 {
			g.Go(func() error {
				for range 100 {
					if err := m.Lock(context.Background()); err != nil {
						return err
					}
					counter++
					m.Unlock()
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			t.Fatal(err)
		}
		if counter != 800 {
			t.Errorf("counter = %d, want 800", counter)
		}
	})
}
