package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"wedmarket/pkg/logger"

	"github.com/google/uuid"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})
}

func TestRequestLogging_AssignsRequestID(t *testing.T) {
	var seen string
	h := RequestLogging(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/calendar/vendor/v1", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected generated UUID request ID, got %q", seen)
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("response header = %q, want %q", rec.Header().Get(RequestIDHeader), seen)
	}
}

func TestRequestLogging_ReusesInboundID(t *testing.T) {
	inbound := uuid.New().String()
	var seen string
	h := RequestLogging(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, inbound)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen != inbound {
		t.Errorf("request ID = %q, want inbound %q", seen, inbound)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen == "not-a-uuid" {
		t.Errorf("malformed inbound request ID should be replaced")
	}
}

func TestRecovery_ReturnsInternalError(t *testing.T) {
	h := Recovery(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"code":"INTERNAL_ERROR"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestContentTypeValidation(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		contentType string
		wantStatus  int
	}{
		{"json put", http.MethodPut, "application/json", http.StatusOK},
		{"json with charset", http.MethodPost, "application/json; charset=utf-8", http.StatusOK},
		{"form post", http.MethodPost, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"missing on put", http.MethodPut, "", http.StatusUnsupportedMediaType},
		{"get without body", http.MethodGet, "", http.StatusOK},
		{"delete without body", http.MethodDelete, "", http.StatusOK},
	}

	h := ContentTypeValidation(logger.Discard())(okHandler("ok"))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/availability/vendor/v1/date/2025-06-14", strings.NewReader("{}"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestMaxRequestSize(t *testing.T) {
	var readErr error
	h := MaxRequestSize(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		for readErr == nil {
			_, readErr = r.Body.Read(buf)
		}
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"isAvailable":false}`)))

	if readErr == nil || readErr.Error() != "http: request body too large" {
		t.Errorf("expected body too large error, got %v", readErr)
	}
}

func TestRequestTimeout(t *testing.T) {
	h := RequestTimeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		time.Sleep(30 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "late") {
		t.Errorf("handler output should be dropped after the deadline")
	}
}

func TestRequestTimeout_FastHandler(t *testing.T) {
	h := RequestTimeout(time.Second)(okHandler("done"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, nil, logger.Discard())
	defer rl.Stop()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatalf("first two requests should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Errorf("third request within the window should be rejected")
	}
	if !rl.Allow("10.0.0.2") {
		t.Errorf("other clients have their own bucket")
	}
	if !rl.Allow("") {
		t.Errorf("empty key is never limited")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("10.0.0.1") {
		t.Errorf("request after the window should pass")
	}
}

func TestRateLimit_Returns429(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, ClientIPExtractor, logger.Discard())
	defer rl.Stop()
	h := RateLimit(rl)(okHandler("ok"))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.7:51234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	if rec := send(); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}
	rec := send()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", rec.Header().Get("Retry-After"))
	}
}

func TestClientIPExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.4:8080"
	if got := ClientIPExtractor(req); got != "198.51.100.4" {
		t.Errorf("ClientIPExtractor() = %q", got)
	}
	req.RemoteAddr = "unix-socket"
	if got := ClientIPExtractor(req); got != "unix-socket" {
		t.Errorf("ClientIPExtractor() = %q", got)
	}
}

func TestIdempotency_ReplaysSuccessfulWrite(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	var calls int32
	h := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))

	send := func(method, path, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if key != "" {
			req.Header.Set(DefaultIdempotencyHeader, key)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := send(http.MethodPut, "/api/availability/vendor/v1/date/2025-06-14", "k1")
	second := send(http.MethodPut, "/api/availability/vendor/v1/date/2025-06-14", "k1")

	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if second.Body.String() != first.Body.String() || second.Header().Get("Idempotent-Replay") != "true" {
		t.Errorf("second response was not a replay: %q %v", second.Body.String(), second.Header())
	}

	send(http.MethodPut, "/api/availability/vendor/v1/date/2025-06-15", "k1")
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("same key on another path must not replay")
	}

	send(http.MethodGet, "/api/availability/vendor/v1", "k1")
	send(http.MethodGet, "/api/availability/vendor/v1", "k1")
	if atomic.LoadInt32(&calls) != 4 {
		t.Errorf("safe methods are never replayed, calls = %d", calls)
	}

	send(http.MethodPut, "/api/availability/vendor/v1/date/2025-06-16", "")
	if atomic.LoadInt32(&calls) != 5 {
		t.Errorf("requests without a key pass through")
	}
}

func TestIdempotency_FailuresAreNotCached(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	var calls int32
	h := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/api/availability/vendor/v1/date/2025-06-14", nil)
		req.Header.Set(DefaultIdempotencyHeader, "k2")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("failed responses should not be replayed, calls = %d", calls)
	}
}

func TestInMemoryIdempotencyStore_Expiry(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()
	ctx := context.Background()

	store.Set(ctx, "k", &CachedResponse{StatusCode: http.StatusOK})
	if _, ok := store.Get(ctx, "k"); !ok {
		t.Fatalf("fresh entry should be found")
	}

	store.mu.Lock()
	store.store["k"].CreatedAt = time.Now().Add(-2 * time.Minute)
	store.mu.Unlock()

	if _, ok := store.Get(ctx, "k"); ok {
		t.Errorf("expired entry should not be returned")
	}
}

func TestRedisIdempotencyStore_KeyIsPrefixedHash(t *testing.T) {
	store := NewRedisIdempotencyStore(nil, time.Hour)
	key := store.redisKey("PUT /api/availability/vendor/v1/date/2025-06-14 k1")

	if !strings.HasPrefix(key, "wedmarket:idempotency:") || len(key) != len("wedmarket:idempotency:")+40 {
		t.Errorf("unexpected redis key %q", key)
	}
	if key == store.redisKey("PUT /api/availability/vendor/v1/date/2025-06-14 k2") {
		t.Errorf("different keys should hash differently")
	}
}
