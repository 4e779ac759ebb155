package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy describes a bounded retry loop: how many attempts in total and how
// long to wait after each failed one. The zero value performs a single attempt.
type Policy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// Linear waits step*1 after the first failure, step*2 after the second, and so on.
func Linear(step time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration { return step * time.Duration(attempt) }
}

// Do runs fn up to MaxAttempts times, sleeping per Backoff between attempts.
// It returns nil on the first success, ctx.Err() if the context ends while
// waiting, and the last error once attempts are exhausted.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		var wait time.Duration
		if p.Backoff != nil {
			wait = p.Backoff(attempt)
		}
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}
