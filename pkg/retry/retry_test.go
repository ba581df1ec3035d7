package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type RetryUnitSuite struct {
	suite.Suite
}

func fastPolicy(attempts int) Policy {
	return Policy{
		MaxAttempts: attempts,
		Backoff:     Exponential(time.Microsecond),
		Retryable:   IsTransient,
	}
}

func (s *RetryUnitSuite) TestDo(t provider.T) {
	t.Run("Should return immediately on success", func(t provider.T) {
		calls := 0

		err := fastPolicy(3).Do(context.Background(), func() error {
			calls++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Should retry transient errors until one attempt succeeds", func(t provider.T) {
		calls := 0

		err := fastPolicy(3).Do(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.Join(ErrTransient, errors.New("timeout"))
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("Should give up after the attempt budget", func(t provider.T) {
		calls := 0
		transient := errors.Join(ErrTransient, errors.New("timeout"))

		err := fastPolicy(3).Do(context.Background(), func() error {
			calls++
			return transient
		})

		assert.ErrorIs(t, err, ErrTransient)
		assert.Equal(t, 3, calls)
	})

	t.Run("Should never retry business errors", func(t provider.T) {
		calls := 0
		boom := errors.New("duplicate vote")

		err := fastPolicy(3).Do(context.Background(), func() error {
			calls++
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("Should stop when the context is cancelled mid-backoff", func(t provider.T) {
		ctx, cancel := context.WithCancel(context.Background())

		policy := Policy{
			MaxAttempts: 3,
			Backoff:     func(int) time.Duration { return time.Hour },
			Retryable:   IsTransient,
		}

		calls := 0
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()
		err := policy.Do(ctx, func() error {
			calls++
			return errors.Join(ErrTransient, errors.New("timeout"))
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("Should honor a custom retryable predicate", func(t provider.T) {
		conflict := errors.New("aggregate conflict")
		policy := Policy{
			MaxAttempts: 2,
			Backoff:     Exponential(time.Microsecond),
			Retryable: func(err error) bool {
				return IsTransient(err) || errors.Is(err, conflict)
			},
		}

		calls := 0
		err := policy.Do(context.Background(), func() error {
			calls++
			if calls == 1 {
				return conflict
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})
}

func (s *RetryUnitSuite) TestExponential(t provider.T) {
	t.Run("Should double per attempt", func(t provider.T) {
		backoff := Exponential(100 * time.Millisecond)

		assert.Equal(t, 100*time.Millisecond, backoff(0))
		assert.Equal(t, 200*time.Millisecond, backoff(1))
		assert.Equal(t, 400*time.Millisecond, backoff(2))
	})
}

func TestRetryUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(RetryUnitSuite))
}
