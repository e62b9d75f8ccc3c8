// Package middleware provides HTTP middleware for API key authentication.
package middleware

import (
	"net/http"
	"strings"
)

// KeyVerifier verifies a presented API key against the stored hash.
// This matches config.KeyConfig without importing it directly.
type KeyVerifier interface {
	VerifyKey(key, storedHash string) bool
}

// APIKeyAuth creates middleware that requires a valid API key on every
// request. The key is accepted either as "Authorization: Bearer <key>"
// or in the X-API-Key header. An empty keyHash disables authentication.
func APIKeyAuth(verifier KeyVerifier, keyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if keyHash == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extractKey(r)
			if key == "" || !verifier.VerifyKey(key, keyHash) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractKey pulls the API key from the Authorization or X-API-Key
// header. The key itself is never logged.
func extractKey(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.Fields(header)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return strings.TrimSpace(r.Header.Get("X-API-Key"))
}
