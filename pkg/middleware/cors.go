package middleware

import (
	"net/http"

	httputil "gymbook/pkg/http"
)

// CORS answers cross-origin preflight requests with an empty 204 and stamps
// the allow headers onto every other response.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allowedOrigin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Set("Access-Control-Max-Age", "3600")

			if r.Method == http.MethodOptions {
				httputil.WriteNoContent(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
