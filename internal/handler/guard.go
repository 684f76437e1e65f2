package handler

import (
	"net/http"

	"github.com/brakwaku/iCenCookiesLLC/internal/usecase"
)

// RequireAuth rejects anonymous requests before the handler runs. Routes
// declare their capability requirements with these guards instead of
// checking inside each handler.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			respondJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: usecase.ErrUnauthorized.Error()})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose identity does not hold exactly the
// given role. The check is strict equality, not a hierarchy: admin does not
// satisfy a customer requirement.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				respondJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: usecase.ErrUnauthorized.Error()})
				return
			}
			if user.Role != role {
				respondJSON(w, http.StatusForbidden, envelope{Success: false, Message: usecase.ErrForbidden.Error()})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
