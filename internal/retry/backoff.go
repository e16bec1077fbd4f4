package retry

import "time"

// Delay schedule for a single retry run.
//
// Not safe for concurrent use; each call to [Do] owns its own schedule.
type Backoff struct {
	current  time.Duration
	maxDelay time.Duration
	factor   float64
}

// Returns the current delay and advances to the next value.
func (b *Backoff) Next() time.Duration {
	current := b.current
	if b.factor > 1 {
		next := time.Duration(float64(b.current) * b.factor)
		if b.maxDelay > 0 {
			next = min(next, b.maxDelay)
		}
		b.current = next
	}
	return current
}
