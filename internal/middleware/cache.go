package middleware

import "net/http"

// NoStore disables client caching. Metric responses go stale with every
// submission, so the dashboard must hit the server on each load.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
