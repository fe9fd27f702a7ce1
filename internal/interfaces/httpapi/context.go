package httpapi

import (
	"context"

	"github.com/riskibarqy/minivoetbal/internal/domain/access"
)

type contextKey string

const (
	actorContextKey contextKey = "access_actor"
	tokenContextKey contextKey = "session_token"
)

func withActor(ctx context.Context, actor access.Actor, token string) context.Context {
	ctx = context.WithValue(ctx, actorContextKey, actor)
	return context.WithValue(ctx, tokenContextKey, token)
}

// actorFromContext never fails: requests without a session act anonymously.
func actorFromContext(ctx context.Context) access.Actor {
	actor, ok := ctx.Value(actorContextKey).(access.Actor)
	if !ok {
		return access.Anonymous()
	}
	return actor
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}
