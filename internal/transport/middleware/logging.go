package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ppimu/project-monitoring/pkg/logger"
)

// sensitiveHeaders are header names whose values never reach the logs
var sensitiveHeaders = []string{
	"authorization",
	"cookie",
	"x-api-key",
}

// LoggingMiddleware logs every request and its response status. Bodies are
// never logged; they routinely carry credentials and progress narratives.
func LoggingMiddleware(lg *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := logger.From(r.Context())
			if reqLogger == nil {
				reqLogger = lg
			}

			reqLogger.Info("incoming request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"headers", filterHeaders(r.Header),
			)

			ww := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(ww, r)

			status := ww.status
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			if status >= 500 {
				level = slog.LevelError
			} else if status >= 400 {
				level = slog.LevelWarn
			}

			reqLogger.Log(r.Context(), level, "response",
				"method", r.Method,
				"path", r.URL.Path,
				"status_code", status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func filterHeaders(headers http.Header) map[string]string {
	filtered := make(map[string]string, len(headers))
	for name, values := range headers {
		lower := strings.ToLower(name)

		masked := false
		for _, sensitive := range sensitiveHeaders {
			if strings.Contains(lower, sensitive) {
				masked = true
				break
			}
		}

		if masked {
			filtered[name] = "[FILTERED]"
		} else {
			filtered[name] = strings.Join(values, ", ")
		}
	}
	return filtered
}
