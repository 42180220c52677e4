package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"planetary-server/internal/shared/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// RequestMetrics records each request by its matched route pattern and logs it at debug level.
func RequestMetrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			// ServeMux fills in r.Pattern when it dispatches
			m.ObserveRequest(r.Method, r.Pattern, rec.status, duration)

			slog.Debug("Request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"route", r.Pattern,
				"status", rec.status,
				"duration_ms", duration.Milliseconds(),
			)
		})
	}
}
