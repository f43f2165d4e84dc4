// Package mw contains HTTP middleware for the chainloop backend.
package mw

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
)

// WebhookToken returns a middleware that guards webhook ingestion with a
// shared static secret. The token arrives as the `token` query parameter
// and is compared for equality; a mismatch or missing token is rejected
// with a generic 401 and logged at warning level for audit.
func WebhookToken(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.URL.Query().Get("token")
			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				logger.Warn("unauthorized webhook attempt", "token", token, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"status":  "unauthorized",
					"message": "Invalid or missing token",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
