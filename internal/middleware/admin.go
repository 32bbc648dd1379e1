package middleware

import (
	"context"
	"net/http"

	"spinrewards/internal/models"
)

type AccountResolver interface {
	ByID(ctx context.Context, userID string) (models.Account, error)
}

// RequireAdmin gates a route on the caller's directory record carrying the
// ADMIN role. There is no separate admins table; the role lives on the
// account itself.
func RequireAdmin(directory AccountResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			account, err := directory.ByID(r.Context(), userID)
			if err != nil {
				http.Error(w, "unable to verify admin", http.StatusForbidden)
				return
			}
			if account.Role != models.RoleAdmin {
				http.Error(w, "admin privileges required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
