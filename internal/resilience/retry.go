// Package resilience retries filesystem operations that fail transiently,
// such as removing a tree while an editor or indexer still holds a file.
package resilience

import (
	"context"
	"errors"
	"io/fs"
	"math/rand/v2"
	"syscall"
	"time"
)

// RetryPolicy defines how an operation is retried.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// UseJitter scales each delay by a random factor in [0.5, 1.5).
	UseJitter bool

	// ShouldRetry classifies errors. Nil means IsTransientFSError.
	ShouldRetry func(error) bool
}

// DefaultRemovePolicy is used when removing an existing project tree.
var DefaultRemovePolicy = RetryPolicy{
	MaxRetries: 4,
	BaseDelay:  50 * time.Millisecond,
	MaxDelay:   time.Second,
	UseJitter:  true,
}

// Retry calls fn until it succeeds, returns a non-retryable error, the
// retries are exhausted or ctx is done. The last error is returned.
func Retry(ctx context.Context, policy RetryPolicy, fn func() error) error {
	shouldRetry := policy.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = IsTransientFSError
	}

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

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || !shouldRetry(err) {
			return err
		}

		if attempt < maxAttempts-1 {
			delay := CalculateBackoff(attempt, policy.BaseDelay, policy.MaxDelay, policy.UseJitter)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return lastErr
}

// CalculateBackoff returns baseDelay * 2^attempt, capped at maxDelay and
// optionally jittered.
func CalculateBackoff(attempt int, baseDelay, maxDelay time.Duration, useJitter bool) time.Duration {
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}
	if maxDelay <= 0 {
		maxDelay = 30 * time.Second
	}

	delay := baseDelay
	for range attempt {
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
			break
		}
	}

	if useJitter {
		delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
	}
	return min(delay, maxDelay)
}

// IsTransientFSError reports errors that commonly clear up on their own:
// a directory repopulated during removal, or a file briefly locked.
// Permission and not-exist errors are permanent.
func IsTransientFSError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return errors.Is(err, syscall.ENOTEMPTY) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.EAGAIN)
}
