package http

import (
	"net"
	"net/http"
	"slices"
	"strings"
)

// ProxyHeaders trusts X-Forwarded-For and X-Forwarded-Proto from the given
// peers. "*" trusts every peer. When disabled the request is untouched.
func ProxyHeaders(enabled bool, trusted []string) func(http.Handler) http.Handler {
	trustAll := slices.Contains(trusted, "*")
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, port, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			if trustAll || slices.Contains(trusted, host) {
				if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
					client := strings.TrimSpace(strings.Split(fwd, ",")[0])
					if client != "" {
						if port == "" {
							port = "0"
						}
						r.RemoteAddr = net.JoinHostPort(client, port)
					}
				}
				if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
					r.URL.Scheme = strings.ToLower(strings.Split(proto, ",")[0])
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
