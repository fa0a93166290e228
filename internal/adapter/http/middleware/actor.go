package middleware

import (
	"context"
	"net/http"

	"github.com/resellerdesk/creditledger/internal/domain"
)

type actorContextKey struct{}

// Actor extracts the acting user from the X-Actor-Id / X-Actor-Name headers
// and stores it in the request context. Requests without the header run as
// the system actor, matching how scripted and scheduled callers behave.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := domain.Actor{
			ID:   r.Header.Get("X-Actor-Id"),
			Name: r.Header.Get("X-Actor-Name"),
		}

		ctx := context.WithValue(r.Context(), actorContextKey{}, actor.OrSystem())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext returns the actor stored by the Actor middleware. The
// system actor is returned when none is present.
func ActorFromContext(ctx context.Context) domain.Actor {
	if actor, ok := ctx.Value(actorContextKey{}).(domain.Actor); ok {
		return actor
	}

	return domain.SystemActor
}
