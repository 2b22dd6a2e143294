package mutex

import (
	"context"
	"sync"
)

// Cond is a wrapper of sync.Cond that can wait with context.
type Cond struct {
	*sync.Cond
}

// WaitCtx waits to be notified or canceled.
// On notification it returns nil with the lock held, as with
// sync.Cond.Wait. If the context is canceled first, it returns the
// context error and the caller no longer holds the lock: the abandoned
// wait is consumed and released in the background, so the caller must
// not unlock.
func (c *Cond) WaitCtx(ctx context.Context) error {
	notified := make(chan struct{})
	go func() {
		defer close(notified)
		c.Cond.Wait()
	}()

	select {
	case <-notified:
		return nil
	case <-ctx.Done():
		go func() {
			defer c.Cond.L.Unlock()
			<-notified
		}()
		return ctx.Err()
	}
}
