package swcclient

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Call is one idempotent attempt.
type Call[T any] func(ctx context.Context) (T, error)

// RetryPolicy bounds a retry loop by total elapsed time.
type RetryPolicy struct {
	Enabled         bool
	InitialInterval time.Duration
	// MaxElapsedTime caps the whole loop; zero means DefaultBackoffMaxTime, never unbounded.
	MaxElapsedTime time.Duration
	// Retryable defaults to IsRetryable.
	Retryable func(error) bool
	// Notify is called before each wait.
	Notify func(err error, wait time.Duration)
}

func (p RetryPolicy) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	b.MaxElapsedTime = DefaultBackoffMaxTime
	if p.MaxElapsedTime > 0 {
		b.MaxElapsedTime = p.MaxElapsedTime
	}
	b.Reset()
	return b
}

// Retrying decorates call with exponential backoff plus jitter. Errors the
// predicate rejects are returned at once; retryable ones are returned after
// MaxElapsedTime runs out. A disabled policy returns call unchanged.
func Retrying[T any](p RetryPolicy, call Call[T]) Call[T] {
	if !p.Enabled {
		return call
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}
	return func(ctx context.Context) (T, error) {
		var out T
		op := func() error {
			v, err := call(ctx)
			if err != nil {
				if !retryable(err) {
					return backoff.Permanent(err)
				}
				return err
			}
			out = v
			return nil
		}
		if err := backoff.RetryNotify(op, backoff.WithContext(p.newBackOff(), ctx), p.Notify); err != nil {
			var zero T
			return zero, err
		}
		return out, nil
	}
}
