package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/Al-Ghoul/KarasChan/internal/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// Authenticate verifies the Bearer token and stores the authenticated
// user id in the request context. Handlers extract it once and pass it
// to core operations as an explicit parameter.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				writeError(w, http.StatusUnauthorized, "Missing or malformed authorization header")
				return
			}

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
