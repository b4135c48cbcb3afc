package middleware

import (
	"net/http"
	"time"

	"github.com/ireporter/ireporter/internal/adapter/http/response"
	"github.com/ireporter/ireporter/internal/service/ratelimit"
)

// RateLimit guards a mutating endpoint with a per-actor fixed window. The key
// is the authenticated actor when present, the remote address otherwise.
func RateLimit(limiter ratelimit.Service, limit int, window time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if actor, ok := ActorFromContext(r.Context()); ok {
				key = actor.ID
			}

			allowed, err := limiter.Allow(r.Context(), key, limit, window)
			if err != nil {
				// Limiter trouble must not take submissions down
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				response.TooManyRequests(w, "Too many submissions, try again later")
				return
			}

			next.ServeHTTP(w, r)
		}
	}
}
