package middleware

import (
	"net/http"
	"time"

	"github.com/pulsohq/pulso/internal/logger"
)

// RequestLog emits one structured log line per request.
func RequestLog(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.WithRequest(r).WithField("duration_ms", time.Since(start).Milliseconds()).Info("request")
		})
	}
}
