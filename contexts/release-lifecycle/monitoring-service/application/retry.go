package application

import (
	"context"
	"time"
)

// Retry runs fn up to attempts times, doubling the wait from initial up to max.
// It gives up early when ctx ends.
func Retry(ctx context.Context, attempts int, initial time.Duration, max time.Duration, fn func() error) error {
	if attempts <= 1 {
		return fn()
	}
	delay := initial
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
			if delay < max {
				delay *= 2
				if delay > max {
					delay = max
				}
			}
		}
		if err = fn(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}
