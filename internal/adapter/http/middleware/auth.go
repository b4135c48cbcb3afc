package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ireporter/ireporter/internal/adapter/http/response"
	"github.com/ireporter/ireporter/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

// TokenValidator turns a bearer token into an actor
type TokenValidator interface {
	ValidateAccessToken(token string) (*domain.Actor, error)
}

// AuthMiddleware resolves the authenticated actor from the Authorization
// header and places it in the request context. Core operations receive the
// actor explicitly from there; nothing below the handlers reads the session.
type AuthMiddleware struct {
	tokens TokenValidator
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth rejects requests without a valid bearer token
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := m.actorFromRequest(r)
		if !ok {
			response.Unauthorized(w, "Invalid or missing access token")
			return
		}
		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
	}
}

// OptionalAuth resolves the actor when a valid token is present and proceeds
// anonymously otherwise
func (m *AuthMiddleware) OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if actor, ok := m.actorFromRequest(r); ok {
			r = r.WithContext(withActor(r.Context(), actor))
		}
		next.ServeHTTP(w, r)
	}
}

// RequireAdmin rejects requests whose actor does not hold the admin role
func (m *AuthMiddleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok || !actor.IsAdmin() {
			response.Forbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) actorFromRequest(r *http.Request) (domain.Actor, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return domain.Actor{}, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return domain.Actor{}, false
	}

	actor, err := m.tokens.ValidateAccessToken(parts[1])
	if err != nil {
		return domain.Actor{}, false
	}
	return *actor, true
}

func withActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext retrieves the authenticated actor placed by the middleware
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
