package common

import (
	"context"
	"math/rand"
	"time"
)

// RetryPolicy configures exponential backoff with jitter. Generalizes the
// retry shape used by the embeddings batch call, the LLM extraction chain,
// and the catalog CSV fetch. Broker publishes are not retried.
type RetryPolicy struct {
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// DefaultRetryPolicy is the 3-attempt, exponential-backoff-plus-jitter policy
// spec.md calls for on embedding batches and the LLM chain.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       3,
		InitialBackoff:    time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

func (p RetryPolicy) backoff(attempt int) time.Duration {
	d := float64(p.InitialBackoff)
	for i := 0; i < attempt; i++ {
		d *= p.BackoffMultiplier
	}
	if d > float64(p.MaxBackoff) {
		d = float64(p.MaxBackoff)
	}
	jitter := d * 0.25 * (rand.Float64()*2 - 1)
	d += jitter
	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}

// Retry calls fn until it succeeds, the policy is exhausted, or ctx is
// cancelled. Only errors classified as Transient are retried; anything else
// is returned immediately on the first attempt.
func Retry(ctx context.Context, policy RetryPolicy, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(policy.backoff(attempt - 1)):
			}
		}
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if Classify(err) != Transient {
			return err
		}
	}
	return lastErr
}
