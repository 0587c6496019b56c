package intelitalk

import (
	"github.com/goliatone/go-router"
)

var _ SessionAuthenticator = &SessionManager{}

// SessionManager composes the session store and the API client into the
// actor facing operations. Construct one per application instance and pass
// it by reference; there is no package level current user.
type SessionManager struct {
	api    AuthAPI
	store  SessionStore
	Logger Logger
}

func NewSessionManager(api AuthAPI, store SessionStore, opts ...SessionManagerOption) *SessionManager {
	m := &SessionManager{
		api:    api,
		store:  store,
		Logger: defLogger{},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

type SessionManagerOption func(*SessionManager)

func WithSessionLogger(lgr Logger) SessionManagerOption {
	return func(m *SessionManager) {
		if lgr != nil {
			m.Logger = lgr
		}
	}
}

// CurrentUser answers "who is logged in" from local state only. The first
// read per request hits the store; the result is cached in locals.
func (m *SessionManager) CurrentUser(c router.Context) *User {
	if user, ok := UserFromRouterContext(c); ok {
		return user
	}

	user, ok := m.store.Read(c)
	if !ok {
		return nil
	}

	CacheUser(c, user)
	return user
}

// SignIn authenticates against the remote API and persists the returned
// actor. On failure the error propagates untouched and local state is not
// mutated. Returns the role so the caller can pick a destination.
func (m *SessionManager) SignIn(c router.Context, email, password string) (UserRole, error) {
	user, err := m.api.Login(c.Context(), email, password)
	if err != nil {
		m.Logger.Error("sign in failed for %s: %s", email, err)
		return "", err
	}

	if err := m.store.Write(c, user); err != nil {
		m.Logger.Error("unable to persist session for %s: %s", email, err)
		return "", err
	}

	CacheUser(c, user)
	m.Logger.Info("signed in %s as %s", user.Email, user.Role)

	return user.Role, nil
}

// SignOut notifies the server best effort, then clears local state no
// matter what. The deferred clear runs even if the network call errors,
// times out, or panics: a stuck "logged in" cookie pointing at a dead
// server session is the failure mode this ordering avoids.
func (m *SessionManager) SignOut(c router.Context) {
	user := m.CurrentUser(c)

	defer func() {
		m.store.Clear(c)
		c.Locals(LocalsUserKey, nil)
	}()

	if user == nil {
		return
	}

	if err := m.api.Logout(c.Context(), user.Token); err != nil {
		// Invisible to the user: they still land on the login screen.
		m.Logger.Info("remote logout failed, clearing local session anyway: %s", err)
	}
}

// ChangePassword requires an authenticated actor and fails fast without
// touching the network when there is none. The server re-validates and has
// the final say on the current password.
func (m *SessionManager) ChangePassword(c router.Context, current, next string) error {
	user := m.CurrentUser(c)
	if user == nil {
		return ErrNotAuthenticated
	}

	return m.api.ChangePassword(c.Context(), user.Token, current, next)
}
