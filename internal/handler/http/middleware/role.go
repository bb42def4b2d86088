package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/handler/http/response"
)

// RequireAdmin requires the ADMIN role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(user.RoleAdmin) {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireReviewer requires the ADMIN or HR role.
func RequireReviewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrReviewerAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok || !user.Role(roleStr).IsReviewer() {
			response.HandleError(w, user.ErrReviewerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
