package httpapi

import (
	"net/http"
	"time"
)

// statusRecorder captures the response status for instrumentation. A
// handler that never calls WriteHeader implicitly responds 200.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// WithMetrics wraps next so every request is counted and timed.
func WithMetrics(next http.Handler, metrics *Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		metrics.RecordRequest(r.Context(), r.Method, r.URL.Path, recorder.status, time.Since(start).Seconds())
	})
}
