package fetcher

import (
	"context"
	"time"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/riot"

	"github.com/sethvargo/go-retry"
)

// Policy decides how often and how long to retry. Attempts are numbered from 1.
type Policy struct {
	MaxAttempts int
	Delay       func(attempt int) time.Duration
	Retryable   func(error) bool
}

// Linear waits base*attempt after each failed attempt.
func Linear(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

// DefaultPolicy retries rate-limited calls only; every other failure is final.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: constants.RetryMaxAttempts,
		Delay:       Linear(constants.RetryBaseDelay),
		Retryable:   riot.IsRateLimited,
	}
}

// Backoff returns a fresh backoff for one operation; it stops once MaxAttempts calls were made.
func (p Policy) Backoff() retry.Backoff {
	attempt := 0
	return retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		if attempt >= p.MaxAttempts {
			return 0, true
		}
		return p.Delay(attempt), false
	})
}

// Do runs op until it succeeds, fails with a non-retryable error, or runs out of attempts.
// The last error is returned unwrapped.
func (p Policy) Do(ctx context.Context, op func(context.Context) error) error {
	return retry.Do(ctx, p.Backoff(), func(ctx context.Context) error {
		err := op(ctx)
		if err != nil && p.Retryable != nil && p.Retryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
