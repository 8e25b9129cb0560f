package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hamisi99-03/BusinessWebsite/internal/auth"
	"github.com/hamisi99-03/BusinessWebsite/internal/metrics"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// customerIDKey is the context key for the authenticated customer ID.
	customerIDKey contextKey = "customer_id"
	// requestIDKey is the context key for the request ID.
	requestIDKey contextKey = "request_id"
)

// CustomerIDFromContext extracts the authenticated customer ID.
// Returns empty string if not found.
func CustomerIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(customerIDKey).(string)
	return id
}

// RequestIDFromContext extracts the request ID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// WithRequestID assigns each request an ID, honoring X-Request-Id if the
// caller set one.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, reqID)))
	})
}

// WithLogging logs every request and feeds the latency histogram.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sr, r)
		duration := time.Since(start)

		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, strconv.Itoa(sr.status)).
			Observe(duration.Seconds())

		slog.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sr.status,
			"duration_ms", duration.Milliseconds(),
			"request_id", RequestIDFromContext(r.Context()),
		)
	})
}

// RequireAuth validates the Bearer token and adds the customer ID to the
// request context. Requests without a valid token get 401.
func RequireAuth(jwtManager *auth.JWTManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeJSONError(w, http.StatusUnauthorized, "unauthenticated", auth.ErrMissingToken.Error())
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeJSONError(w, http.StatusUnauthorized, "unauthenticated", auth.ErrInvalidToken.Error())
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), customerIDKey, claims.CustomerID)
		next(w, r.WithContext(ctx))
	}
}
