package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Metrics records the matched route pattern rather than the raw path so
// ids do not explode label cardinality.
func (m *Middlewares) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
			if pattern := routeCtx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		m.HTTPMetrics.RecordHTTPRequest(r.Method, route, rec.statusCode, time.Since(start))
	})
}
