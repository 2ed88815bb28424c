package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork is returned when a remote cache backend cannot be reached.
var ErrNetwork = errors.New("cache backend unreachable")

type retryable struct{ err error }

func (e retryable) Error() string { return e.err.Error() }
func (e retryable) Unwrap() error { return e.err }

// Retryable marks err as transient. Backoff.Do repeats only marked errors.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryable{err}
}

// IsRetryable reports whether err, or anything it wraps, was marked with
// Retryable.
func IsRetryable(err error) bool {
	var r retryable
	return errors.As(err, &r)
}

// Backoff is an exponential retry policy. The zero value makes one attempt.
type Backoff struct {
	Attempts int           // total calls, including the first
	Base     time.Duration // delay before the second call
	Max      time.Duration // delay cap; zero means uncapped
}

// DefaultBackoff is used by caches that are not given a policy.
var DefaultBackoff = Backoff{Attempts: 3, Base: 200 * time.Millisecond, Max: 2 * time.Second}

// delay returns the wait before attempt n (counting from 1 for the first
// retry).
func (b Backoff) delay(n int) time.Duration {
	d := b.Base << (n - 1)
	if b.Max > 0 && (d > b.Max || d <= 0) {
		return b.Max
	}
	return d
}

// Do calls fn until it succeeds, returns an error not marked Retryable, or
// the attempts run out. It returns ctx.Err() when ctx ends while waiting.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	var err error
	for n := 1; ; n++ {
		if err = fn(); err == nil || !IsRetryable(err) || n == attempts {
			return err
		}
		timer := time.NewTimer(b.delay(n))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// RetryWithBackoff runs fn under DefaultBackoff.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Do(ctx, fn)
}
