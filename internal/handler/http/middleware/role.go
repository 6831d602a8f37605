package middleware

import (
	"net/http"

	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/response"
)

// RequireHR requires HR or Admin role
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := CallerRole(r.Context())
		if !role.CanApprove() {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin requires Admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CallerRole(r.Context()) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
