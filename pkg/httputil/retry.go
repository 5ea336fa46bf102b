package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure that Retry should attempt again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// retryDelay is the first backoff delay; tests shorten it.
var retryDelay = 500 * time.Millisecond

// Retry runs fn up to attempts times, doubling delay after each retryable
// failure. Non-retryable errors are returned at once.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return err
}

// IsRetryable reports whether err is wrapped in a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}
