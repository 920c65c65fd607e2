package middleware

import (
	"net/http"

	"platbox-gateway/internal/logger"

	"github.com/google/uuid"
)

// RequestIDMiddleware tags every request with an id that follows it
// through the logs. An inbound X-Request-ID is honored if present.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}

		ctx := logger.WithRequestID(r.Context(), reqID)
		w.Header().Set("X-Request-ID", reqID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
