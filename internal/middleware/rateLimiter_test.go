package middleware

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestIPRateLimiter_SameIPSharesBucket(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)

	if limiter.GetLimiter("10.0.0.1") != limiter.GetLimiter("10.0.0.1") {
		t.Fatal("same ip got two buckets")
	}
	if !limiter.GetLimiter("10.0.0.1").Allow() {
		t.Fatal("first request should pass")
	}
	if limiter.GetLimiter("10.0.0.1").Allow() {
		t.Fatal("burst of 1 should reject the second request")
	}
	if !limiter.GetLimiter("10.0.0.2").Allow() {
		t.Fatal("another ip must not share the bucket")
	}
}

func TestIPRateLimiter_SweepsIdleVisitors(t *testing.T) {
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(rate.Limit(1), 1)
	limiter.now = func() time.Time { return clock }

	limiter.GetLimiter("10.0.0.1")
	limiter.GetLimiter("10.0.0.2")
	if got := limiter.size(); got != 2 {
		t.Fatalf("visitors = %d, want 2", got)
	}

	clock = clock.Add(visitorIdleTTL / 2)
	limiter.GetLimiter("10.0.0.2")

	clock = clock.Add(visitorIdleTTL/2 + time.Second)
	limiter.GetLimiter("10.0.0.3")

	if got := limiter.size(); got != 2 {
		t.Fatalf("visitors = %d, want the idle one swept", got)
	}
	if _, ok := limiter.visitors["10.0.0.1"]; ok {
		t.Fatal("idle visitor still present")
	}
}
