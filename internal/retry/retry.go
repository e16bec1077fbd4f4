package retry

import (
	"context"
	"fmt"
	"time"
)

// Describes how an operation is retried.
//
// A zero MaxAttempts retries forever. A Factor of 1 or less keeps the delay
// fixed; larger factors grow the delay geometrically up to MaxDelay.
type Policy struct {
	Delay       time.Duration // Wait before the second attempt.
	MaxAttempts int           // Total attempts allowed. Zero means unbounded.
	Factor      float64       // Growth factor applied to the delay after each wait.
	MaxDelay    time.Duration // Upper bound for grown delays. Zero means no bound.
}

// Returns an unbounded policy with a constant delay between attempts.
func Fixed(delay time.Duration) Policy {
	return Policy{Delay: delay}
}

// Returns whether the policy never gives up.
func (p Policy) Unbounded() bool {
	return p.MaxAttempts <= 0
}

// Returns a fresh delay schedule for one retry run.
func (p Policy) Backoff() *Backoff {
	return &Backoff{
		current:  p.Delay,
		maxDelay: p.MaxDelay,
		factor:   p.Factor,
	}
}

// Calls op until it succeeds, the policy runs out of attempts, or ctx is done.
//
// After every failed attempt that will be retried, notify (if non-nil) is
// called with the error and the delay about to be waited, so that callers can
// log both. When attempts run out the last error is returned wrapped in
// [ErrExhausted]. Cancellation returns ctx.Err().
func Do[T any](ctx context.Context, p Policy, op func(context.Context) (T, error), notify func(error, time.Duration)) (T, error) {
	var zero T
	backoff := p.Backoff()

	for attempt := 1; ; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		if !p.Unbounded() && attempt >= p.MaxAttempts {
			return zero, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempt, err)
		}

		delay := backoff.Next()
		if notify != nil {
			notify(err, delay)
		}
		if err := Sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
}

// Waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
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
