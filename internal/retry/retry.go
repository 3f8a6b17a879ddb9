package retry

import (
	"context"
	"strings"
	"time"
)

// RateLimitMessage is the node error substring that marks a throttled request.
const RateLimitMessage = "request limit reached"

// Policy controls how Do retries a failing call.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// Delay is the wait before the first retry.
	Delay time.Duration
	// Backoff doubles the delay after every retry when set.
	Backoff bool
	// RetryIf decides whether an error is retryable. Nil retries every error.
	RetryIf func(error) bool
	// OnRetry is called before each wait.
	OnRetry func(attempt int, err error)
}

// Exponential retries any error, doubling the delay each time.
func Exponential(maxRetries int, baseDelay time.Duration) Policy {
	return Policy{MaxRetries: maxRetries, Delay: baseDelay, Backoff: true}
}

// RateLimited retries only rate-limit errors: three attempts in total, two seconds apart.
func RateLimited() Policy {
	return Policy{MaxRetries: 2, Delay: 2 * time.Second, RetryIf: IsRateLimited}
}

// IsRateLimited reports whether err carries the node's rate-limit message.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), RateLimitMessage)
}

// Do runs fn until it succeeds, the error is not retryable, retries run out,
// or ctx is cancelled.
func Do(ctx context.Context, p Policy, fn func(context.Context) error) error {
	maxRetries := p.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	delay := p.Delay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}

	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries {
			return err
		}
		if p.RetryIf != nil && !p.RetryIf(err) {
			return err
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if p.Backoff {
			delay *= 2
		}
	}
}

// Value is Do for calls that return a result.
func Value[T any](ctx context.Context, p Policy, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := Do(ctx, p, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}
