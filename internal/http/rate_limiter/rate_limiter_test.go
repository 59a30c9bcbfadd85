package rate_limiter

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestFixedWindowAllowsUpToLimit(t *testing.T) {
	store := NewMemoryWindowStore()
	limiter := NewFixedWindowLimiter(store, 100, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 100; i++ {
		allowed, _, err := limiter.Allow(ctx, "203.0.113.7")
		if err != nil {
			t.Fatalf("request %d: unexpected error: %v", i, err)
		}
		if !allowed {
			t.Fatalf("request %d should be allowed", i)
		}
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "203.0.113.7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("request 101 should be rejected")
	}
	if retryAfter != 60 {
		t.Errorf("expected retry_after 60, got %d", retryAfter)
	}
}

func TestFixedWindowTracksClientsSeparately(t *testing.T) {
	store := NewMemoryWindowStore()
	limiter := NewFixedWindowLimiter(store, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if allowed, _, _ := limiter.Allow(ctx, "10.0.0.1"); !allowed {
			t.Fatal("first client exhausted too early")
		}
	}
	if allowed, _, _ := limiter.Allow(ctx, "10.0.0.1"); allowed {
		t.Fatal("first client should be over limit")
	}
	if allowed, _, _ := limiter.Allow(ctx, "10.0.0.2"); !allowed {
		t.Fatal("second client should have a fresh window")
	}
}

func TestMemoryWindowStoreExpiresWindow(t *testing.T) {
	store := NewMemoryWindowStore()
	ctx := context.Background()

	if _, err := store.IncrWindow(ctx, "api_rate_limit:10.0.0.9", 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)
	count, err := store.IncrWindow(ctx, "api_rate_limit:10.0.0.9", 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected a fresh window after expiry, got count %d", count)
	}
}

type failingStore struct{}

func (failingStore) IncrWindow(context.Context, string, time.Duration) (int64, error) {
	return 0, fmt.Errorf("connection refused")
}

func TestFixedWindowFailsOpen(t *testing.T) {
	limiter := NewFixedWindowLimiter(failingStore{}, 1, time.Minute)

	allowed, _, err := limiter.Allow(context.Background(), "10.0.0.3")
	if err == nil {
		t.Fatal("expected the store error to surface")
	}
	if !allowed {
		t.Fatal("a broken counter backend should not reject requests")
	}
}
