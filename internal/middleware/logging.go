// Package middleware holds HTTP handler wrappers for billbook's listeners.
package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logging returns a handler that logs every request to next with its method,
// path, status and duration. Server errors are logged at ERROR, client
// errors at WARN, the rest at DEBUG so scrapes stay quiet.
func Logging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case rec.status >= 500:
			logger.Error("HTTP request failed", args...)
		case rec.status >= 400:
			logger.Warn("HTTP request rejected", args...)
		default:
			logger.Debug("HTTP request", args...)
		}
	})
}
