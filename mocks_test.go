package intelitalk_test

import (
	"context"
	"sync"

	intelitalk "github.com/dev-saiful/InteliTalk-client"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/mock"
)

// newLocalsCtx returns a MockContext that accepts locals writes and mirrors
// them into LocalsMock, so tests can assert on what a handler cached.
func newLocalsCtx() *router.MockContext {
	ctx := router.NewMockContext()
	ctx.On("Locals", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		if key, ok := args.Get(0).(string); ok {
			ctx.LocalsMock[key] = args.Get(1)
		}
	})
	return ctx
}

// fakeAuthAPI implements intelitalk.AuthAPI with configurable behavior and
// records whether the network was touched at all.
type fakeAuthAPI struct {
	mu             sync.Mutex
	loginFn        func(ctx context.Context, email, password string) (*intelitalk.User, error)
	logoutFn       func(ctx context.Context, token string) error
	changeFn       func(ctx context.Context, token, current, next string) error
	loginCalls     int
	logoutCalls    int
	changeCalls    int
	networkTouched bool
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*intelitalk.User, error) {
	f.mu.Lock()
	f.loginCalls++
	f.networkTouched = true
	f.mu.Unlock()

	if f.loginFn != nil {
		return f.loginFn(ctx, email, password)
	}
	return nil, intelitalk.ErrInvalidCredentials
}

func (f *fakeAuthAPI) Logout(ctx context.Context, token string) error {
	f.mu.Lock()
	f.logoutCalls++
	f.networkTouched = true
	f.mu.Unlock()

	if f.logoutFn != nil {
		return f.logoutFn(ctx, token)
	}
	return nil
}

func (f *fakeAuthAPI) ChangePassword(ctx context.Context, token, current, next string) error {
	f.mu.Lock()
	f.changeCalls++
	f.networkTouched = true
	f.mu.Unlock()

	if f.changeFn != nil {
		return f.changeFn(ctx, token, current, next)
	}
	return nil
}

// memStore implements intelitalk.SessionStore without cookies so session
// manager tests can inspect persistence directly.
type memStore struct {
	user     *intelitalk.User
	writeErr error
	writes   int
	clears   int
}

func (m *memStore) Read(c router.Context) (*intelitalk.User, bool) {
	if m.user == nil {
		return nil, false
	}
	return m.user, true
}

func (m *memStore) Write(c router.Context, user *intelitalk.User) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.user = user
	return nil
}

func (m *memStore) Clear(c router.Context) {
	m.clears++
	m.user = nil
}

// stubSession implements intelitalk.SessionAuthenticator for guard and
// controller tests.
type stubSession struct {
	user        *intelitalk.User
	signInRole  intelitalk.UserRole
	signInErr   error
	changeErr   error
	signIns     int
	signOuts    int
	changeCalls int
}

func (s *stubSession) CurrentUser(c router.Context) *intelitalk.User {
	return s.user
}

func (s *stubSession) SignIn(c router.Context, email, password string) (intelitalk.UserRole, error) {
	s.signIns++
	if s.signInErr != nil {
		return "", s.signInErr
	}
	return s.signInRole, nil
}

func (s *stubSession) SignOut(c router.Context) {
	s.signOuts++
	s.user = nil
}

func (s *stubSession) ChangePassword(c router.Context, current, next string) error {
	s.changeCalls++
	return s.changeErr
}

func teacherUser() *intelitalk.User {
	return &intelitalk.User{
		ID:        "64a1f0c2b7e4d93a5c8e1f77",
		Name:      "Farida Rahman",
		Email:     "farida@university.edu",
		Role:      intelitalk.RoleTeacher,
		Dept:      intelitalk.DeptCSE,
		TeacherID: "T-1042",
		Token:     "bearer-token-abc",
	}
}

func studentUser() *intelitalk.User {
	return &intelitalk.User{
		ID:        "64a1f0c2b7e4d93a5c8e1f88",
		Name:      "Arif Hossain",
		Email:     "arif@university.edu",
		Role:      intelitalk.RoleStudent,
		Dept:      intelitalk.DeptEEE,
		StudentID: "S-2210",
		Token:     "bearer-token-def",
	}
}
