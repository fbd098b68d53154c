package middleware

import "net/http"

// SecurityHeaders sets response headers for a JSON-only API that hands out
// bearer tokens. hsts is enabled outside dev, where TLS terminates in front
// of the service.
func SecurityHeaders(hsts bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			// nothing here is meant to be rendered by a browser
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			// register/login bodies carry tokens
			h.Set("Cache-Control", "no-store")
			if hsts {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
