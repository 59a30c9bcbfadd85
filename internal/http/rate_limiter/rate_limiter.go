// Package rate_limiter throttles API clients by IP. The API-wide limit is a
// fixed window counter kept in redis so every instance shares the same
// budget; the login throttle is a local token bucket per visitor.
package rate_limiter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ditservices/asset-tracker/internal/redissvc"
)

// WindowStore is the counter backend for the fixed window limiter.
type WindowStore interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// FixedWindowLimiter allows up to Limit requests per Window for each client
// IP. The counter key opens the window on its first hit and expires with it.
type FixedWindowLimiter struct {
	store  WindowStore
	limit  int64
	window time.Duration
}

func NewFixedWindowLimiter(store WindowStore, limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{store: store, limit: int64(limit), window: window}
}

// Allow reports whether the request from ip fits in the current window and,
// when it does not, how many seconds the client should wait before retrying.
func (l *FixedWindowLimiter) Allow(ctx context.Context, ip string) (allowed bool, retryAfter int, err error) {
	key := fmt.Sprintf("api_rate_limit:%s", ip)
	count, err := l.store.IncrWindow(ctx, key, l.window)
	if err != nil {
		// A broken counter backend must not take the API down.
		return true, 0, err
	}
	if count > l.limit {
		return false, int(l.window / time.Second), nil
	}
	return true, 0, nil
}

// MemoryWindowStore is an in-process WindowStore used by the test suites.
type MemoryWindowStore struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Time
}

func NewMemoryWindowStore() *MemoryWindowStore {
	return &MemoryWindowStore{
		counts:  make(map[string]int64),
		expires: make(map[string]time.Time),
	}
}

func (m *MemoryWindowStore) IncrWindow(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if exp, ok := m.expires[key]; ok && time.Now().After(exp) {
		delete(m.counts, key)
		delete(m.expires, key)
	}
	m.counts[key]++
	if m.counts[key] == 1 {
		m.expires[key] = time.Now().Add(window)
	}
	return m.counts[key], nil
}

// Reset drops every window, for test isolation.
func (m *MemoryWindowStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts = make(map[string]int64)
	m.expires = make(map[string]time.Time)
}

var _ WindowStore = (*redissvc.RedisService)(nil)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*clientLimiter)
	mu       sync.Mutex
)

// GetVisitor returns the login throttle for ip, creating it on first sight.
func GetVisitor(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(1, 3) // 1 request/sec, burst of 3
		visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func StartVisitorCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		mu.Lock()
		for ip, v := range visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(visitors, ip)
			}
		}
		mu.Unlock()
	}
}

func CleanupAllVisitors() {
	mu.Lock()
	defer mu.Unlock()
	visitors = make(map[string]*clientLimiter)
}
