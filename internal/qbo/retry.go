package qbo

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// RetryPolicy decides whether a failed page request is retried and how long
// to back off first. The zero value never retries; use DefaultRetryPolicy
// for the standard behavior.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// BaseDelay is the backoff unit: the delay before retry n is
	// BaseDelay*2^n plus a uniform jitter in [0, BaseDelay).
	BaseDelay time.Duration

	jitter func() float64
	sleep  func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy retries transient errors up to 4 times (5 attempts
// total) starting from a one second backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 4, BaseDelay: time.Second}
}

// Next maps one failed attempt (zero-based) to a backoff decision.
// Permanent errors and exhausted attempt budgets return false; the caller
// propagates the error as-is or wrapped in ExhaustedError respectively.
func (p RetryPolicy) Next(attempt int, err error) (time.Duration, bool) {
	if !IsTransient(err) || attempt >= p.MaxRetries {
		return 0, false
	}

	jitter := p.jitter
	if jitter == nil {
		jitter = rand.Float64
	}
	delay := time.Duration(1<<uint(attempt))*p.BaseDelay + time.Duration(jitter()*float64(p.BaseDelay))

	// Honor the service's own wait hint when it asks for longer.
	var te *TransientError
	if errors.As(err, &te) && te.RetryAfter > delay {
		delay = te.RetryAfter
	}
	return delay, true
}

// wait blocks for d or until ctx is cancelled, whichever comes first.
func (p RetryPolicy) wait(ctx context.Context, d time.Duration) error {
	if p.sleep != nil {
		return p.sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
