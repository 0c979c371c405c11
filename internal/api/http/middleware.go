package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"worklens-backend/internal/logger"
	"worklens-backend/internal/metrics"
	"worklens-backend/internal/security"
)

type contextKey string

const userIDKey contextKey = "user_id"

// userID extracts the authenticated user from the request context. The
// second return is false on unauthenticated requests.
func userID(r *http.Request) (int32, bool) {
	id, ok := r.Context().Value(userIDKey).(int32)
	return id, ok
}

// AuthMiddleware validates the bearer token and injects the user id into the
// request context.
func AuthMiddleware(tm security.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authorization token is not provided"})
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")

			claims, err := tm.ValidateToken(token)
			if err != nil {
				respondError(w, err)
				return
			}
			if claims.Type != security.TokenTypeAccess {
				respondError(w, security.ErrWrongTokenType)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware records request counts and latencies per route template.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		metrics.ObserveHTTPRequest(r.Method, path, strconv.Itoa(rec.status), time.Since(start))
	})
}

// LoggingMiddleware logs each request at debug level.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Debug("http request",
			"method", r.Method, "path", r.URL.Path, "status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
