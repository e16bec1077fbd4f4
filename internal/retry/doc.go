// Package retry runs operations under an injectable retry policy.
//
// A [Policy] describes how long to wait between attempts and how many
// attempts to make. Production code uses [Fixed], which waits the same delay
// forever; tests inject a zero-delay policy with a bounded attempt count so
// that failure paths run without real sleeps.
//
// Example usage:
//
//	dev, err := retry.Do(ctx, retry.Fixed(2*time.Second),
//	    func(ctx context.Context) (*Device, error) {
//	        return open(ctx)
//	    },
//	    func(err error, delay time.Duration) {
//	        slog.Warn("open failed", "error", err, "retry_in", delay)
//	    },
//	)
package retry
