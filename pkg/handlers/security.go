// This file defines middleware used to attach common security headers to
// every HTTP response. The API is consumed by a browser frontend served from
// another origin during development, so permissive CORS headers are set
// alongside the defensive ones.
package handlers

import "net/http"

// SecurityHeaders wraps another http.Handler and sets defensive HTTP headers
// before delegating to it. When served over HTTPS the function also enables
// Strict Transport Security so browsers prefer secure connections on future
// requests. Preflight requests are answered directly.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if r.TLS != nil {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
