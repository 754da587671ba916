package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLimiter struct {
	allow bool
	key   string
}

func (s *stubLimiter) Allow(key string) bool {
	s.key = key
	return s.allow
}

func TestRateLimitPassesAllowedRequests(t *testing.T) {
	limiter := &stubLimiter{allow: true}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.RemoteAddr = "10.0.0.7:41234"

	RateLimit(limiter, zap.NewNop())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "10.0.0.7", limiter.key)
}

func TestRateLimitRejectsThrottledRequests(t *testing.T) {
	limiter := &stubLimiter{allow: false}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run when throttled")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)

	RateLimit(limiter, zap.NewNop())(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rate_limited", body["error"])
	assert.NotEmpty(t, body["message"])
}
