package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"platbox-gateway/internal/logger"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("GeneratesID", func(t *testing.T) {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = logger.RequestIDFrom(r.Context())
		})

		req := httptest.NewRequest("POST", "/platbox/gateway", nil)
		w := httptest.NewRecorder()
		RequestIDMiddleware(next).ServeHTTP(w, req)

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	})

	t.Run("HonorsInboundID", func(t *testing.T) {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = logger.RequestIDFrom(r.Context())
		})

		req := httptest.NewRequest("POST", "/platbox/gateway", nil)
		req.Header.Set("X-Request-ID", "req-42")
		w := httptest.NewRecorder()
		RequestIDMiddleware(next).ServeHTTP(w, req)

		assert.Equal(t, "req-42", seen)
	})
}

func TestLoggingMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest("GET", "/pay/ord-1", nil)
	w := httptest.NewRecorder()
	LoggingMiddleware(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("AllowsWithinBurst", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/platbox/gateway", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		RateLimitMiddleware(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ThrottlesBeyondBurst", func(t *testing.T) {
		handler := RateLimitMiddleware(next)

		var last int
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest("POST", "/platbox/gateway", nil)
			req.RemoteAddr = "10.0.0.2:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			last = w.Code
		}

		assert.Equal(t, http.StatusTooManyRequests, last)
	})

	t.Run("StrictTierForGateway", func(t *testing.T) {
		limit, burst, tier := resolveRateTier(httptest.NewRequest("POST", "/platbox/gateway", nil))
		assert.Equal(t, limitStrict, limit)
		assert.Equal(t, burstStrict, burst)
		assert.Equal(t, "strict", tier)

		limit, _, tier = resolveRateTier(httptest.NewRequest("GET", "/pay/ord-1", nil))
		assert.Equal(t, limitGeneral, limit)
		assert.Equal(t, "general", tier)
	})
}
