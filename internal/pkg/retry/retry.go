package retry

import (
	"context"
	"time"

	"bundlemart-api/internal/pkg/errs"
)

var ErrAttemptsExhausted = errs.New("retry attempts exhausted")

// Policy is a bounded retry loop shared by every call site that talks to an
// external gateway. Classify decides, per error, whether another attempt is
// worth making and how long to wait before it; returning retry=false stops
// the loop immediately with the original error.
type Policy struct {
	MaxAttempts int
	Classify    func(err error) (backoff time.Duration, retry bool)
}

func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		backoff, retryable := p.classify(lastErr)
		if !retryable {
			return lastErr
		}
		if attempt == p.MaxAttempts {
			break
		}

		if backoff > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return errs.Mark(lastErr, ErrAttemptsExhausted)
}

func (p Policy) classify(err error) (time.Duration, bool) {
	if p.Classify == nil {
		return 0, true
	}
	return p.Classify(err)
}

// Fixed builds a policy that always retries with the same backoff.
func Fixed(maxAttempts int, backoff time.Duration) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Classify: func(error) (time.Duration, bool) {
			return backoff, true
		},
	}
}
