package context

import (
	"context"
	"testing"
	"time"
)

// WithTest bounds ctx by the test's deadline, shortened by a second
// so cleanup still has time to run before the test is killed.
func WithTest(ctx context.Context, t *testing.T) (context.Context, func()) {
	deadline, ok := t.Deadline()
	if !ok {
		return ctx, func() {}
	}
	return context.WithDeadline(ctx, deadline.Add(-time.Second))
}
