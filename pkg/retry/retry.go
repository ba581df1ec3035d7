package retry

import (
	"context"
	"errors"
	"time"
)

// ErrTransient marks infrastructure failures (timeouts, throttling) that are
// safe to retry. Storage drivers wrap such errors with it; business errors
// are never wrapped and therefore never retried.
var ErrTransient = errors.New("transient store error")

func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

type Policy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
	Retryable   func(err error) bool
}

// Exponential returns base << attempt for attempt 0, 1, 2, ...
func Exponential(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base << attempt
	}
}

// DefaultStorePolicy retries transient store errors 3 times with
// 100ms * 2^attempt backoff.
func DefaultStorePolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Backoff:     Exponential(100 * time.Millisecond),
		Retryable:   IsTransient,
	}
}

// Do runs op until it succeeds, returns a non-retryable error, or the
// attempt budget is exhausted. The last error is returned as-is so callers
// keep their sentinel chains.
func (p Policy) Do(ctx context.Context, op func() error) error {
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsTransient
	}

	var err error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if attempt == p.MaxAttempts-1 {
			break
		}

		var delay time.Duration
		if p.Backoff != nil {
			delay = p.Backoff(attempt)
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		}
	}
	return err
}
