package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/bodycomp/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a handler panic into a 500 and counts it per route.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				route := routeName(req)
				log.Errorf("http: panic serving %s %s (route %s): %v\n%s", req.Method, req.URL.Path, route, r, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.WithLabelValues(route).Inc()
				}
				http.Error(respWriter, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}
