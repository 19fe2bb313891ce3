package identity

import (
	"context"
	"time"
)

type ctxKey struct{}

// Identity is the authenticated caller of a request. TokenID and ExpiresAt
// describe the bearer token it was read from.
type Identity struct {
	UserID    int64
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok && id.UserID > 0
}
