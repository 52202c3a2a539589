package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gridfold/catalogd/pkg/catalogd"
)

// requestIDHeader carries the per-request correlation ID. An inbound
// value is kept so callers can trace across services; otherwise one is
// generated.
const requestIDHeader = "X-Request-Id"

// statusRecorder captures the response status for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withMiddleware wraps next with request ID assignment, panic recovery
// and access logging.
func withMiddleware(next http.Handler, log catalogd.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		defer func() {
			if p := recover(); p != nil {
				log.Error("[%s] panic serving %s %s: %v", requestID, r.Method, r.URL.Path, p)
				writeJSON(rec, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
			}
			log.Info("[%s] %s %s -> %d (%s)", requestID, r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Round(time.Millisecond))
		}()

		next.ServeHTTP(rec, r)
	})
}
