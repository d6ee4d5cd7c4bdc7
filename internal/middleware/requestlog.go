package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/haguru/cookbook/internal/interfaces"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	HTTPRequestDurationSeconds     = "http_request_duration_seconds"
	HTTPRequestDurationSecondsHelp = "Duration of HTTP requests in seconds"

	unmatchedRoute = "unmatched"
)

var (
	HTTPRequestDurationSecondsBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
	HTTPRequestDurationLabels         = []string{"method", "route", "status"}
)

// RequestLogger tags every request with an X-Request-ID, logs it once it
// completes and records its duration. A well-formed incoming id is kept.
func RequestLogger(logger interfaces.Logger, metrics interfaces.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routePattern(r)
			duration := time.Since(start)

			if metrics != nil {
				metrics.ObserveHistogramVec(HTTPRequestDurationSeconds, duration.Seconds(), r.Method, route, strconv.Itoa(status))
			}
			logger.WithContext(map[string]interface{}{"request_id": requestID}).Info("HTTP request",
				"method", r.Method,
				"route", route,
				"path", r.URL.Path,
				"status", status,
				"duration", duration.String(),
				"remote", r.RemoteAddr,
			)
		})
	}
}

// routePattern keeps metric labels bounded by using the matched chi pattern
// instead of the raw path.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return unmatchedRoute
}
