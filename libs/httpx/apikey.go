package httpx

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const APIKeyHeader = "X-Api-Key"

// WithAPIKey guards mutating routes with a static admin key. keyHash is a
// bcrypt hash of the expected key; an empty hash disables the check (local dev).
func WithAPIKey(keyHash string) Middleware {
	keyHash = strings.TrimSpace(keyHash)
	if keyHash == "" {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(APIKeyHeader))
			if key == "" {
				http.Error(w, "missing api key", http.StatusUnauthorized)
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
				http.Error(w, "invalid api key", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
