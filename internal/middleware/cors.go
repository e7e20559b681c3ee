package middleware

import (
	"net/http"

	"github.com/pulsohq/pulso/internal/utils"
)

// CORS lets the dashboard call the API from another origin. The allowed
// origin comes from PULSO_CORS_ORIGIN; the default is permissive so local
// setups work without configuration.
func CORS(next http.Handler) http.Handler {
	origin := utils.EnvOr("PULSO_CORS_ORIGIN", "*")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		h.Set("Access-Control-Max-Age", "600")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
