package retry

import (
	"context"
	"time"

	"meeting-digest/internal/app/api"
)

// Policy bounds one upstream call. MaxAttempts counts the first try.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Timeout     time.Duration
	// OnRetry is called before each extra attempt
	OnRetry func(attempt int, err error)
}

// Do runs fn with a per-attempt timeout. Only errors that api.IsRetryable
// accepts are tried again; anything else, including a timeout, returns
// immediately.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := max(p.MaxAttempts, 1)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = runAttempt(ctx, p.Timeout, fn)
		if err == nil || attempt == attempts || !api.IsRetryable(err) {
			return err
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt+1, err)
		}
		if p.Delay > 0 {
			timer := time.NewTimer(p.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return err
			case <-timer.C:
			}
		}
	}
	return err
}

func runAttempt(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	if timeout <= 0 {
		return fn(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(attemptCtx)
}
