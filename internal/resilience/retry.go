// Package resilience provides retry with exponential backoff for
// transient failures, used by background fetches that should not give up
// on the first network hiccup.
package resilience

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Policy defines the retry behavior for an operation.
type Policy struct {
	// MaxRetries is the maximum number of retry attempts (not including
	// the initial call).
	MaxRetries int

	// BaseDelay is the initial delay before the first retry.
	BaseDelay time.Duration

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// UseJitter adds randomness to delays to avoid synchronized retries.
	UseJitter bool
}

// isClientError is implemented by errors that represent a caller mistake
// (4xx-class failures). Such errors are never retried.
type isClientError interface {
	IsClientError() bool
}

// Do executes fn with the given retry policy. It returns nil on the first
// success, the context error if the context ends while waiting, and the
// error from the last attempt when all retries are exhausted. Client
// errors and context errors are returned immediately without retrying.
func Do(ctx context.Context, policy Policy, fn func() error) error {
	var lastErr error

	maxAttempts := policy.MaxRetries + 1

	for attempt := range maxAttempts {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) {
			return err
		}

		// No delay after the final attempt.
		if attempt < maxAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(Backoff(attempt, policy)):
			}
		}
	}

	return lastErr
}

// Backoff returns the delay before the retry following the given attempt
// (0-based). The delay grows exponentially from BaseDelay, capped at
// MaxDelay, with optional jitter between 0.5x and 1.5x.
func Backoff(attempt int, policy Policy) time.Duration {
	base := policy.BaseDelay
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	maxDelay := policy.MaxDelay
	if maxDelay <= 0 {
		maxDelay = 30 * time.Second
	}

	delay := base
	for range attempt {
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
			break
		}
	}

	if policy.UseJitter {
		delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
	}
	if delay > maxDelay {
		delay = maxDelay
	}

	return delay
}

// retryable reports whether the error is worth another attempt.
func retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var clientErr isClientError
	if errors.As(err, &clientErr) && clientErr.IsClientError() {
		return false
	}
	return true
}
