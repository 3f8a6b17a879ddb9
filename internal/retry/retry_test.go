package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoStopsOnSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{MaxRetries: 5, Delay: time.Millisecond}, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("boom")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDoExhaustsRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{MaxRetries: 2, Delay: time.Millisecond}, func(context.Context) error {
		calls++
		return errors.New("boom")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDoSkipsNonRetryable(t *testing.T) {
	calls := 0
	p := Policy{MaxRetries: 2, Delay: time.Millisecond, RetryIf: IsRateLimited}
	err := Do(context.Background(), p, func(context.Context) error {
		calls++
		return errors.New("execution reverted: Already liked")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestDoRetriesRateLimit(t *testing.T) {
	calls := 0
	retried := 0
	p := Policy{
		MaxRetries: 2,
		Delay:      time.Millisecond,
		RetryIf:    IsRateLimited,
		OnRetry:    func(int, error) { retried++ },
	}
	err := Do(context.Background(), p, func(context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("429: request limit reached")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 || retried != 1 {
		t.Fatalf("calls = %d retried = %d", calls, retried)
	}
}

func TestDoHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, Policy{MaxRetries: 3, Delay: time.Hour}, func(context.Context) error {
		return errors.New("boom")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestValue(t *testing.T) {
	got, err := Value(context.Background(), Exponential(1, time.Millisecond), func(context.Context) (int, error) {
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Fatalf("got %d, %v", got, err)
	}
}

func TestRateLimitedPolicy(t *testing.T) {
	p := RateLimited()
	if p.MaxRetries != 2 || p.Delay != 2*time.Second || p.Backoff {
		t.Fatalf("unexpected policy: %+v", p)
	}
	if !p.RetryIf(errors.New("request limit reached")) {
		t.Fatalf("rate limit should be retryable")
	}
}
