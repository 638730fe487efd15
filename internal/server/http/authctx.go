package httpserver

import (
	"context"

	"github.com/fiscalfit/server/internal/token"
)

type ctxKey string

const userKey ctxKey = "ff.user"

// withUser stores the verified token payload in the request context.
func withUser(ctx context.Context, p token.Payload) context.Context {
	return context.WithValue(ctx, userKey, p)
}

// userFromCtx fetches the verified token payload from the request context.
func userFromCtx(ctx context.Context) (token.Payload, bool) {
	p, ok := ctx.Value(userKey).(token.Payload)
	return p, ok
}
