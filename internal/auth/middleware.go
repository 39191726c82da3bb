package auth

import (
	"context"
	"net/http"
	"strings"
)

// Identity is the authenticated caller, extracted from the bearer token.
type Identity struct {
	Username string
	Role     string
}

type contextKey struct{}

// Middleware rejects requests without a valid bearer token and stores the
// caller's identity in the request context.
func Middleware(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := m.Verify(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			identity := Identity{Username: claims.Subject, Role: claims.Role}

			next.ServeHTTP(w, r.WithContext(
				context.WithValue(r.Context(), contextKey{}, identity),
			))
		})
	}
}

// IdentityFrom returns the authenticated caller, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(Identity)
	return identity, ok
}
