package intelitalk

import (
	"context"

	"github.com/goliatone/go-router"
)

var userCtxKey = &contextKey{"user"}

// LocalsUserKey caches the resolved actor in router locals for the rest of
// the render, so a screen only pays for one store read per request.
const LocalsUserKey = "current_user"

type contextKey struct {
	name string
}

// WithContext sets the User in the given context
func WithContext(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// UserFromRouterContext reads the actor cached in router locals.
func UserFromRouterContext(c router.Context) (*User, bool) {
	raw := c.Locals(LocalsUserKey)
	if raw == nil {
		return nil, false
	}
	user, ok := raw.(*User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// CacheUser stores the actor in router locals for downstream handlers.
func CacheUser(c router.Context, user *User) {
	c.Locals(LocalsUserKey, user)
}
