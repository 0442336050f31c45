package middleware

import (
	"context"
	"net/http"
	"strings"
)

// Verifier resolves a bearer token to a user id.
type Verifier interface {
	Verify(token string) (string, error)
}

type contextKey string

const userIDKey contextKey = "user_id"

// UserID returns the authenticated user id attached by RequireAuth, or
// "" when the request did not pass through it.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// RequireAuth validates the Authorization bearer token and injects the
// resolved user id into the request context. A missing token is a 401,
// a token that fails verification is a 403.
func RequireAuth(tokens Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				http.Error(w, `{"error":"access denied"}`, http.StatusUnauthorized)
				return
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				http.Error(w, `{"error":"invalid token"}`, http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
