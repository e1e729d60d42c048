package middleware

import (
	"fmt"
	"testing"
	"time"
)

func TestRateLimiter_AllowWithinLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 3, Window: time.Minute})

	for i := 1; i <= 3; i++ {
		if !rl.Allow("ip:1.2.3.4") {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if rl.Allow("ip:1.2.3.4") {
		t.Error("request 4 should be rejected")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 1, Window: time.Minute})

	if !rl.Allow("ip:1.1.1.1") {
		t.Fatal("first key should be allowed")
	}
	if !rl.Allow("ip:2.2.2.2") {
		t.Error("a different key must have its own window")
	}
	if rl.Allow("ip:1.1.1.1") {
		t.Error("exhausted key should stay rejected")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 1, Window: 10 * time.Millisecond})

	if !rl.Allow("k") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("k") {
		t.Fatal("second request in window should be rejected")
	}

	time.Sleep(15 * time.Millisecond)
	if !rl.Allow("k") {
		t.Error("request after window expiry should be allowed")
	}
}

func TestPreconfiguredLimits(t *testing.T) {
	cases := []struct {
		name string
		rl   *RateLimiter
		max  int
	}{
		{"gallery", NewGalleryRateLimiter(), 120},
		{"feed", NewFeedRateLimiter(), 100},
		{"addVideo", NewAddVideoRateLimiter(), 10},
		{"refresh", NewRefreshRateLimiter(), 20},
		{"stats", NewStatsRateLimiter(), 10},
	}
	for _, tc := range cases {
		key := fmt.Sprintf("test:%s", tc.name)
		for i := 0; i < tc.max; i++ {
			if !tc.rl.Allow(key) {
				t.Fatalf("%s: request %d rejected below the limit of %d", tc.name, i+1, tc.max)
			}
		}
		if tc.rl.Allow(key) {
			t.Errorf("%s: request %d allowed above the limit of %d", tc.name, tc.max+1, tc.max)
		}
	}
}
