package middleware

import (
	"net/http"
	"time"

	"github.com/JonMunkholm/formnav/internal/metrics"
)

// Metrics records request counts, durations and in-flight requests by route.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			done := m.TrackInFlight()
			defer done()

			start := time.Now()
			ww := wrapWriter(w)
			next.ServeHTTP(ww, r)
			m.ObserveRequest(r.Method, routePattern(r), ww.status, time.Since(start))
		})
	}
}
