package web

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/robinvdvleuten/costbasis/telemetry"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// corsOptions lets any origin call the API.
var corsOptions = cors.Options{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowedHeaders: []string{"Content-Type", RequestIDHeader},
	ExposedHeaders: []string{RequestIDHeader},
	MaxAge:         300,
}

// withRequestID tags every request with an ID and a logger carrying it.
// An incoming X-Request-ID is kept.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := r.Context()
		logger := telemetry.Logger(ctx).With("requestID", requestID)
		ctx = telemetry.WithLogger(ctx, logger)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		logger.Debug("request handled", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
