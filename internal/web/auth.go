package web

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
)

// requireReloadToken admits requests carrying "Authorization: Bearer
// <reload token>". With no token configured every request is refused.
func (s *Server) requireReloadToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.reloadToken == "" {
			apiError(w, "reload is disabled", http.StatusForbidden)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apiError(w, "authorization required", http.StatusUnauthorized)
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.reloadToken)) != 1 {
			slog.Warn("rejected reload request", "remote_addr", r.RemoteAddr)
			apiError(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
