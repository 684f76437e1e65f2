package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/brakwaku/iCenCookiesLLC/internal/loader"
	"github.com/brakwaku/iCenCookiesLLC/internal/model"
)

type identityKey struct{}

// UserFromContext returns the authenticated user attached by the
// authentication middleware, or nil for an anonymous request.
func UserFromContext(ctx context.Context) *model.User {
	u, _ := ctx.Value(identityKey{}).(*model.User)
	return u
}

func withUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, identityKey{}, u)
}

// Authenticate resolves the request's credential to a user identity. A
// bearer Authorization header takes precedence over the session cookie.
// Requests with no credential at all proceed as anonymous; downstream
// guards decide whether that is acceptable. A credential that is present
// but invalid, expired, or pointing at a deleted user is rejected here.
func (s *Server) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := s.extractToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := s.codec.Verify(token)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "not authorized to access this route"})
			return
		}

		user, err := s.userRepo.GetUser(r.Context(), userID)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "not authorized to access this route"})
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func (s *Server) extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	if cookie, err := r.Cookie(s.cookieName); err == nil {
		return cookie.Value
	}

	return ""
}

// Loaders constructs a fresh loader bundle for each request and carries it
// in the request context. Bundles are never reused, so one request's cache
// cannot serve another's.
func (s *Server) Loaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := loader.NewLoaders(s.productRepo, s.reviewRepo, s.userRepo)
		next.ServeHTTP(w, r.WithContext(loader.WithLoaders(r.Context(), l)))
	})
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
