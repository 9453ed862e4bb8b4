package middleware

import (
	"context"
	"net/http"

	"github.com/SergeyBogomolovv/order-ledger/internal/entities"
)

const (
	ActorIDHeader   = "X-Actor-ID"
	ActorRoleHeader = "X-Actor-Role"
)

type actorKey struct{}

// Actor reads the caller identity set by the gateway. Requests without a
// complete identity pass through anonymously; handlers decide whether that
// is acceptable.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := entities.Actor{
			ID:   r.Header.Get(ActorIDHeader),
			Role: entities.Role(r.Header.Get(ActorRoleHeader)),
		}
		if actor.ID != "" && actor.Role.Valid() {
			r = r.WithContext(WithActor(r.Context(), actor))
		}
		next.ServeHTTP(w, r)
	})
}

func WithActor(ctx context.Context, actor entities.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) (entities.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(entities.Actor)
	return actor, ok
}
