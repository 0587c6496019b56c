package intelitalk_test

import (
	"testing"

	intelitalk "github.com/dev-saiful/InteliTalk-client"
	"github.com/stretchr/testify/assert"
)

func TestHomePathIsTotal(t *testing.T) {
	destinations := map[intelitalk.UserRole]string{
		intelitalk.RoleAdmin:   intelitalk.PathAdminHome,
		intelitalk.RoleTeacher: intelitalk.PathTeacherHome,
		intelitalk.RoleStudent: intelitalk.PathStudentHome,
	}

	seen := map[string]bool{}
	for role, want := range destinations {
		got := role.HomePath()
		assert.Equal(t, want, got)
		assert.False(t, seen[got], "destinations must be distinct")
		seen[got] = true
	}

	// Anything outside the closed set falls back to the public home
	// instead of erroring.
	assert.Equal(t, intelitalk.PathPublicHome, intelitalk.UserRole("Director").HomePath())
	assert.Equal(t, intelitalk.PathPublicHome, intelitalk.UserRole("").HomePath())
}

func TestParseRole(t *testing.T) {
	for _, role := range intelitalk.GetAllRoles() {
		parsed, ok := intelitalk.ParseRole(string(role))
		assert.True(t, ok)
		assert.Equal(t, role, parsed)
	}

	_, ok := intelitalk.ParseRole("admin") // roles are case sensitive
	assert.False(t, ok)

	_, ok = intelitalk.ParseRole("Superuser")
	assert.False(t, ok)
}

func TestParseDepartment(t *testing.T) {
	for _, dept := range intelitalk.GetAllDepartments() {
		parsed, ok := intelitalk.ParseDepartment(string(dept))
		assert.True(t, ok)
		assert.Equal(t, dept, parsed)
	}

	_, ok := intelitalk.ParseDepartment("PHYSICS")
	assert.False(t, ok)
}

func TestRoleID(t *testing.T) {
	student := studentUser()
	assert.Equal(t, student.StudentID, student.RoleID())

	teacher := teacherUser()
	assert.Equal(t, teacher.TeacherID, teacher.RoleID())

	admin := &intelitalk.User{Role: intelitalk.RoleAdmin}
	assert.Equal(t, "", admin.RoleID())
}
