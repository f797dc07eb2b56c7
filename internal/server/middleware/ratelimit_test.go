package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestNewRateLimiter tests rate limiter creation.
func TestNewRateLimiter(t *testing.T) {
	logger := zerolog.Nop()
	rl := NewRateLimiter(20, time.Minute, &logger)

	if rl == nil {
		t.Fatal("NewRateLimiter returned nil")
	}
	if rl.visitors == nil {
		t.Error("visitors map not initialized")
	}
	if rl.limit != 20 {
		t.Errorf("expected limit=20, got %d", rl.limit)
	}
	if rl.window != time.Minute {
		t.Errorf("expected window=1m, got %v", rl.window)
	}
}

// TestRateLimiter_Allow tests basic rate limiting logic.
func TestRateLimiter_Allow(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name          string
		limit         int
		requests      int
		expectedAllow int
	}{
		{name: "within limit", limit: 10, requests: 5, expectedAllow: 5},
		{name: "at limit", limit: 10, requests: 10, expectedAllow: 10},
		{name: "exceeds limit", limit: 10, requests: 15, expectedAllow: 10},
		{name: "zero limit", limit: 0, requests: 5, expectedAllow: 0},
		{name: "single request limit", limit: 1, requests: 3, expectedAllow: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(tt.limit, time.Minute, &logger)
			ip := "192.168.1.1"

			allowed := 0
			for i := 0; i < tt.requests; i++ {
				if rl.allow(ip) {
					allowed++
				}
			}

			if allowed != tt.expectedAllow {
				t.Errorf("expected %d allowed, got %d", tt.expectedAllow, allowed)
			}
		})
	}
}

// TestRateLimiter_WindowReset tests that tokens refill after the window.
func TestRateLimiter_WindowReset(t *testing.T) {
	logger := zerolog.Nop()
	rl := NewRateLimiter(2, 50*time.Millisecond, &logger)
	ip := "192.168.1.2"

	if !rl.allow(ip) || !rl.allow(ip) {
		t.Fatal("first two requests should be allowed")
	}
	if rl.allow(ip) {
		t.Error("third request should be denied")
	}

	time.Sleep(60 * time.Millisecond)

	if !rl.allow(ip) {
		t.Error("request after window reset should be allowed")
	}
}

// TestRateLimiter_PerIP tests that limits are tracked per IP.
func TestRateLimiter_PerIP(t *testing.T) {
	logger := zerolog.Nop()
	rl := NewRateLimiter(1, time.Minute, &logger)

	if !rl.allow("10.0.0.1") {
		t.Error("first IP should be allowed")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("second IP should have its own budget")
	}
	if rl.allow("10.0.0.1") {
		t.Error("first IP should be exhausted")
	}
}

// TestRateLimiter_Concurrent tests concurrent access to the limiter.
func TestRateLimiter_Concurrent(t *testing.T) {
	logger := zerolog.Nop()
	rl := NewRateLimiter(100, time.Minute, &logger)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.allow("172.16.0.1") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 100 {
		t.Errorf("expected exactly 100 allowed, got %d", allowed)
	}
}

// TestRateLimiter_Stop tests that Stop terminates the sweep goroutine and
// is safe to call more than once.
func TestRateLimiter_Stop(t *testing.T) {
	logger := zerolog.Nop()
	rl := NewRateLimiter(5, time.Minute, &logger)

	rl.Stop()
	rl.Stop() // idempotent

	select {
	case <-rl.done:
	default:
		t.Fatal("done channel should be closed after Stop")
	}

	// The limiter itself keeps working after Stop.
	if !rl.allow("192.0.2.1") {
		t.Error("allow should still work after Stop")
	}
}

// TestRateLimit_Middleware tests the HTTP middleware behavior.
func TestRateLimit_Middleware(t *testing.T) {
	logger := zerolog.Nop()
	rl := NewRateLimiter(1, time.Minute, &logger)

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.1:5000"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("first request: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request: expected 429, got %d", rec.Code)
	}
}

// TestRateLimit_ForwardedFor tests the X-Forwarded-For header is honored.
func TestRateLimit_ForwardedFor(t *testing.T) {
	logger := zerolog.Nop()
	rl := NewRateLimiter(1, time.Minute, &logger)

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	makeReq := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:5000"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := makeReq("203.0.113.1"); code != http.StatusOK {
		t.Errorf("expected 200 for first client, got %d", code)
	}
	if code := makeReq("203.0.113.2"); code != http.StatusOK {
		t.Errorf("expected 200 for second client, got %d", code)
	}
	if code := makeReq("203.0.113.1"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 for exhausted client, got %d", code)
	}
}
