package services

import (
	"context"
	"time"
)

// wait blocks for d, or until ctx is done. The stores use it to simulate the
// latency of a real backend; there is no network here, only local storage.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
