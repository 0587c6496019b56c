package intelitalk_test

import (
	"net/http"
	"testing"

	intelitalk "github.com/dev-saiful/InteliTalk-client"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passThrough(called *bool) router.HandlerFunc {
	return func(c router.Context) error {
		*called = true
		return nil
	}
}

func TestRequireRoleWithoutActorRedirectsToLogin(t *testing.T) {
	session := &stubSession{}
	guard := intelitalk.RequireRole(session, intelitalk.RoleAdmin)

	ctx := router.NewMockContext()
	ctx.On("Method").Return("GET")
	ctx.On("Redirect", intelitalk.PathLogin, []int{http.StatusFound}).Return(nil)

	var called bool
	require.NoError(t, guard(passThrough(&called))(ctx))

	assert.False(t, called)
	ctx.AssertExpectations(t)
}

func TestRequireRoleWrongRoleRedirectsToOwnHome(t *testing.T) {
	session := &stubSession{user: studentUser()}
	guard := intelitalk.RequireRole(session, intelitalk.RoleAdmin)

	ctx := router.NewMockContext()
	ctx.On("Method").Return("GET")
	ctx.On("Redirect", intelitalk.PathStudentHome, []int{http.StatusFound}).Return(nil)

	var called bool
	require.NoError(t, guard(passThrough(&called))(ctx))

	assert.False(t, called)
	ctx.AssertExpectations(t)
}

func TestRequireRoleMatchingRoleAdmits(t *testing.T) {
	session := &stubSession{user: teacherUser()}
	guard := intelitalk.RequireRole(session, intelitalk.RoleTeacher)

	ctx := router.NewMockContext()

	var called bool
	require.NoError(t, guard(passThrough(&called))(ctx))

	assert.True(t, called)
	ctx.AssertNotCalled(t, "Redirect")
}

func TestRequireAuthAdmitsAnyRole(t *testing.T) {
	for _, user := range []*intelitalk.User{teacherUser(), studentUser()} {
		session := &stubSession{user: user}
		guard := intelitalk.RequireAuth(session)

		ctx := router.NewMockContext()

		var called bool
		require.NoError(t, guard(passThrough(&called))(ctx))
		assert.True(t, called)
	}
}

func TestRequireAuthWithoutActorRedirects(t *testing.T) {
	guard := intelitalk.RequireAuth(&stubSession{})

	ctx := router.NewMockContext()
	ctx.On("Method").Return("GET")
	ctx.On("Redirect", intelitalk.PathLogin, []int{http.StatusFound}).Return(nil)

	var called bool
	require.NoError(t, guard(passThrough(&called))(ctx))

	assert.False(t, called)
	ctx.AssertExpectations(t)
}

func TestRedirectAuthenticatedSendsActorHome(t *testing.T) {
	session := &stubSession{user: teacherUser()}
	guard := intelitalk.RedirectAuthenticated(session)

	ctx := router.NewMockContext()
	ctx.On("Method").Return("GET")
	ctx.On("Redirect", intelitalk.PathTeacherHome, []int{http.StatusFound}).Return(nil)

	var called bool
	require.NoError(t, guard(passThrough(&called))(ctx))

	assert.False(t, called)
	ctx.AssertExpectations(t)
}

func TestRedirectAuthenticatedAdmitsUnknownRole(t *testing.T) {
	// An actor whose role is outside the closed set resolves home to "/",
	// the very screen this middleware wraps. They must render it, not
	// bounce to it.
	session := &stubSession{user: &intelitalk.User{
		Name:  "Mystery Actor",
		Email: "mystery@university.edu",
		Role:  intelitalk.UserRole("Director"),
	}}
	guard := intelitalk.RedirectAuthenticated(session)

	ctx := router.NewMockContext()

	var called bool
	require.NoError(t, guard(passThrough(&called))(ctx))

	assert.True(t, called)
	ctx.AssertNotCalled(t, "Redirect")
}

func TestRedirectAuthenticatedAdmitsAnonymous(t *testing.T) {
	guard := intelitalk.RedirectAuthenticated(&stubSession{})

	ctx := router.NewMockContext()

	var called bool
	require.NoError(t, guard(passThrough(&called))(ctx))

	assert.True(t, called)
	ctx.AssertNotCalled(t, "Redirect")
}

func TestGuardRedirectStatusFollowsMethod(t *testing.T) {
	guard := intelitalk.RequireAuth(&stubSession{})

	ctx := router.NewMockContext()
	ctx.On("Method").Return("POST")
	ctx.On("Redirect", intelitalk.PathLogin, []int{http.StatusSeeOther}).Return(nil)

	var called bool
	require.NoError(t, guard(passThrough(&called))(ctx))

	assert.False(t, called)
	ctx.AssertExpectations(t)
}
