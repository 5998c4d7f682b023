package http

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// BearerAuth rejects requests without the configured token. An empty token
// disables the check. Health, the root probe, preflight and HEAD requests
// are always let through.
func BearerAuth(token string) func(http.Handler) http.Handler {
	token = strings.TrimSpace(token)
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authExempt(r) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				writeDetail(w, http.StatusUnauthorized, "Missing Bearer token")
				return
			}
			supplied := strings.TrimSpace(header[len(bearerPrefix):])
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
				writeDetail(w, http.StatusForbidden, "Invalid Bearer token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authExempt(r *http.Request) bool {
	switch {
	case r.URL.Path == "/health":
		return true
	case r.Method == http.MethodOptions || r.Method == http.MethodHead:
		return true
	case r.URL.Path == "/" && r.Method == http.MethodGet:
		return true
	}
	return false
}
