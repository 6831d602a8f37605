package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/response"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/jwt"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

// Authenticator verifies the bearer token, rejects revoked or
// non-access tokens and stashes the caller's identity in the context.
func Authenticator(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			if claims["type"] != "access" {
				response.Unauthorized(w, "Access token required")
				return
			}

			raw := jwtauth.TokenFromHeader(r)
			if raw != "" && jwtService.IsTokenRevoked(raw) {
				response.Unauthorized(w, "Token revoked")
				return
			}

			userID, _ := claims["user_id"].(string)
			if userID == "" {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}
			role, _ := claims["role"].(string)

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, RoleKey, user.Role(role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated caller's id from the context.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// CallerRole returns the authenticated caller's role from the context.
func CallerRole(ctx context.Context) user.Role {
	role, _ := ctx.Value(RoleKey).(user.Role)
	return role
}
