package intelitalk

import (
	"context"
	"fmt"

	"github.com/goliatone/go-router"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// SessionStore persists at most one User record per browser, surviving
// reloads. Reads fail soft: malformed or missing data is simply "no user".
type SessionStore interface {
	Read(c router.Context) (*User, bool)
	Write(c router.Context, user *User) error
	Clear(c router.Context)
}

// AuthAPI covers the three identity changing operations of the remote API.
// Implementations are stateless beyond the HTTP call itself.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*User, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, token, current, next string) error
}

// SessionAuthenticator is the single authority the portal asks about the
// current actor and uses to change it.
type SessionAuthenticator interface {
	CurrentUser(c router.Context) *User
	SignIn(c router.Context, email, password string) (UserRole, error)
	SignOut(c router.Context)
	ChangePassword(c router.Context, current, next string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] PORTAL "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] PORTAL "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] PORTAL "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
