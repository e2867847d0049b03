package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/vibefit/internal/telemetry/metrics"
)

// PanicRecovery turns a handler panic into a 500, counts it and reports it
// to sentry under the route name.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				routeName := "unmatched"
				if route := mux.CurrentRoute(r); route != nil && route.GetName() != "" {
					routeName = route.GetName()
				}
				log.WithFields(log.Fields{
					"route":  routeName,
					"method": r.Method,
					"path":   r.URL.Path,
				}).Errorf("panic: %v\n%s", recovered, debug.Stack())

				hub := sentry.CurrentHub().Clone()
				hub.Scope().SetTag("route", routeName)
				hub.RecoverWithContext(r.Context(), recovered)

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
