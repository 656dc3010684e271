package connection

import (
	"context"
	"github.com/jpillora/backoff"
	"github.com/rs/zerolog"
	"time"
)

const minRetryDelay = 100 * time.Millisecond

func newBackoff(max time.Duration) *backoff.Backoff {
	if max < minRetryDelay {
		max = minRetryDelay
	}
	return &backoff.Backoff{
		Min:    minRetryDelay,
		Max:    max,
		Factor: 2,
		Jitter: true,
	}
}

// retry calls fn until it succeeds, stop reports true or ctx is done.
// It returns false when it gave up.
func retry(ctx context.Context, l zerolog.Logger, b *backoff.Backoff, stop func() bool, fn func() error) bool {
	defer b.Reset()
	for {
		if stop() {
			return false
		}
		err := fn()
		if err == nil {
			return true
		}
		delay := b.Duration()
		l.Warn().Err(err).Dur("retry-in", delay).Float64("attempt", b.Attempt()).Msg("amqp operation failed")
		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
		}
	}
}
