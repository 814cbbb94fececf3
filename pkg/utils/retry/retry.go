// Package retry re-runs failing operations until they settle.
package retry

import (
	"context"
	"errors"
	"time"
)

// ErrRetry marks an error whose operation should be tried again.
var ErrRetry = errors.New("retry")

// Backoff blocks until the next attempt may start. It returns
// ctx.Err() when ctx is done before that.
type Backoff func(ctx context.Context) error

// StaticBackoff waits a fixed interval between attempts.
func StaticBackoff(interval time.Duration) Backoff {
	return ExponentialBackoff(interval, 1)
}

// ExponentialBackoff waits initial before the first retry, and r
// times longer for each retry after that.
func ExponentialBackoff(initial time.Duration, r float64) Backoff {
	interval := initial
	return func(ctx context.Context) error {
		timer := time.NewTimer(interval)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			interval = time.Duration(float64(interval) * r)
			return nil
		}
	}
}

// Blocking calls f at once, and calls it again after waiting by b
// for as long as it fails with ErrRetry. It returns f's first
// success, or its first error not marked ErrRetry.
func Blocking[T any](ctx context.Context, b Backoff, f func() (T, error)) (T, error) {
	for {
		got, err := f()
		if err == nil || !errors.Is(err, ErrRetry) {
			return got, err
		}
		if err := b(ctx); err != nil {
			return got, err
		}
	}
}
