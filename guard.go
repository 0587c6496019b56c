package intelitalk

import (
	"net/http"

	"github.com/goliatone/go-router"
)

// Per request, each guard takes exactly one terminal action: it either
// issues a single redirect or hands off to the wrapped handler. Guards
// never render and never surface errors; an unreadable identity degrades
// to "unauthenticated", which is the safe default.

// RequireRole protects a role scoped screen. No actor redirects to the
// login screen; an actor with a different role is sent to their own home
// (never to a generic unauthorized page).
func RequireRole(session SessionAuthenticator, role UserRole) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			user := session.CurrentUser(c)

			if user == nil {
				return c.Redirect(PathLogin, redirectStatus(c))
			}

			if user.Role != role {
				return c.Redirect(user.Role.HomePath(), redirectStatus(c))
			}

			return next(c)
		}
	}
}

// RequireAuth admits any authenticated actor regardless of role. This is
// the named exception for screens like the password change form, which
// must stay reachable independent of role.
func RequireAuth(session SessionAuthenticator) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if session.CurrentUser(c) == nil {
				return c.Redirect(PathLogin, redirectStatus(c))
			}
			return next(c)
		}
	}
}

// RedirectAuthenticated wraps public screens such as the landing and login
// pages. An identified actor with a known role never sees them; they are
// sent to their role home instead. An actor with an unknown role stays on
// the public screen: their only destination is the public home itself, so
// redirecting would bounce forever. Role homes are guarded rather than
// entry redirected, so no redirect cycle is possible.
func RedirectAuthenticated(session SessionAuthenticator) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if user := session.CurrentUser(c); user != nil && user.Role.IsValid() {
				return c.Redirect(user.Role.HomePath(), redirectStatus(c))
			}
			return next(c)
		}
	}
}

func redirectStatus(c router.Context) int {
	if c.Method() == string(router.GET) {
		return http.StatusFound
	}
	return http.StatusSeeOther
}
