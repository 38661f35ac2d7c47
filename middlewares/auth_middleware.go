package middlewares

import (
	"context"
	"net/http"
	"strings"

	"shanenterprises/utils"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

// RequireAuth rejects requests without a valid Bearer access token and
// stashes the caller's identity on the request context.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}
		if use, _ := claims["use"].(string); use != "access" {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		if id, ok := claims["user_id"].(float64); ok {
			ctx = context.WithValue(ctx, UserIDKey, int64(id))
		}
		if role, ok := claims["role"].(string); ok {
			ctx = context.WithValue(ctx, RoleKey, role)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
