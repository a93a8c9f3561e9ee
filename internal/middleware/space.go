package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"painel-conto/internal/services"
)

// SpaceMiddleware enforces the per-user space and module allow-lists. The
// UserService answers the actual grant questions; this layer only maps the
// answers onto HTTP.
type SpaceMiddleware struct {
	users *services.UserService
}

func NewSpaceMiddleware(users *services.UserService) *SpaceMiddleware {
	return &SpaceMiddleware{users: users}
}

// RequireSpaceAccess rejects requests whose {space_id} path segment lies
// outside the caller's allowed_spaces grant. Admins see every space. Runs
// after Authenticate, so the user id is already in the context.
func (m *SpaceMiddleware) RequireSpaceAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spaceID := mux.Vars(r)["space_id"]
		if spaceID == "" {
			http.Error(w, "Space ID required", http.StatusBadRequest)
			return
		}

		userID, ok := GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Authorization required", http.StatusUnauthorized)
			return
		}

		allowed, err := m.users.CanAccessSpace(r.Context(), userID, spaceID)
		if err != nil {
			http.Error(w, "Failed to resolve permissions", http.StatusInternalServerError)
			return
		}
		if !allowed {
			http.Error(w, "Forbidden: no access to this space", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireModule rejects users whose allowed_modules grant does not include
// the module backing the route. Admins pass every module check.
func (m *SpaceMiddleware) RequireModule(module string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserIDFromContext(r.Context())
			if !ok {
				http.Error(w, "Authorization required", http.StatusUnauthorized)
				return
			}

			allowed, err := m.users.CanAccessModule(r.Context(), userID, module)
			if err != nil {
				http.Error(w, "Failed to resolve permissions", http.StatusInternalServerError)
				return
			}
			if !allowed {
				http.Error(w, "Forbidden: module not enabled for this user", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
