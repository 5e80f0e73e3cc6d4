package worker

import (
	"context"
	"testing"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/foo"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	// A different domain has its own bucket.
	if err := limiter.Wait(ctx, "http://other.com"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	url := "http://example.com"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Errorf("first wait failed: %v", err)
	}
	// Burst of one is now consumed.
	if limiter.Allow(url) {
		t.Error("expected allow to fail (exhausted tokens)")
	}
	if !limiter.Allow("http://other.com") {
		t.Error("expected allow for other domain")
	}
}

func TestLimiter_SetDomainRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	limiter.SetDomainRate("slow.com", 1, 1)

	if !limiter.Allow("http://slow.com/a") {
		t.Error("expected first request to pass")
	}
	if limiter.Allow("http://slow.com/b") {
		t.Error("expected second request to be limited")
	}
	if !limiter.Allow("http://fast.com/a") {
		t.Error("expected default-rate domain to pass")
	}
}
