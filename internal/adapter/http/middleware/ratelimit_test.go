package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_LimitsPerClient(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	handler := Identity(rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	send := func(remote, userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
		req.RemoteAddr = remote
		if userID != "" {
			req.Header.Set(UserIDHeader, userID)
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1:1000", "user-1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1:1001", "user-1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1002", "user-1"))

	// Switching the claimed identity does not open a new bucket.
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1003", "user-2"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1004", ""))

	// Another address has its own bucket.
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2:1000", "user-1"))
	assert.Equal(t, 2, rl.Len())
}

func TestRateLimiter_IgnoresRotatingForwardedHeaders(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.10:5678"
		req.Header.Set("X-Forwarded-For", "203.0.113."+string(rune('1'+i)))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{204, 429, 429, 429, 429}, codes)
	assert.Equal(t, 1, rl.Len())
}

func TestRateLimiter_UsesAddressResolvedByRealIP(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	handler := chimiddleware.RealIP(rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Real-IP", "198.51.100.2")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	rl.mu.Lock()
	_, ok := rl.limiters["ip:198.51.100.2"]
	rl.mu.Unlock()
	assert.True(t, ok)
}

func TestRateLimiter_CleanupLimiters(t *testing.T) {
	rl := NewRateLimiter(10, 10)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("ip:10.0.0.1")
	now = now.Add(2 * time.Hour)
	rl.getLimiter("ip:10.0.0.2")

	removed := rl.CleanupLimiters(time.Hour)

	require.Equal(t, 1, removed)
	assert.Len(t, rl.limiters, 1)
	assert.Contains(t, rl.limiters, "ip:10.0.0.2")
}

func TestRateLimiter_RunCleanup(t *testing.T) {
	rl := NewRateLimiter(10, 10)
	rl.getLimiter("ip:10.0.0.1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.RunCleanup(ctx, 5*time.Millisecond, 0)
		close(done)
	}()

	require.Eventually(t, func() bool { return rl.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop after cancellation")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded header ignored", headers: map[string]string{"X-Forwarded-For": "203.0.113.7"}, remote: "10.0.0.1:1234", want: "10.0.0.1"},
		{name: "remote addr", remote: "192.0.2.10:5678", want: "192.0.2.10"},
		{name: "address without port", remote: "192.0.2.11", want: "192.0.2.11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}
