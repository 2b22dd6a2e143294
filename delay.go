package zautils

import (
	"context"
	"time"
)

// Delay blocks for at least d, or until ctx is done, whichever comes
// first. It returns nil after the delay elapsed and the context error
// on cancellation. The delay is best-effort: it never returns early
// but may return late under scheduler load.
func Delay(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
