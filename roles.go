package intelitalk

// Role destinations. Every redirect site resolves a destination through
// HomePath so the mapping cannot drift between call sites.
const (
	// PathPublicHome is the landing page and the fallback destination
	PathPublicHome = "/"
	// PathLogin is where unauthenticated visitors are sent
	PathLogin = "/login"
	// PathAdminHome is the admin dashboard
	PathAdminHome = "/admin"
	// PathTeacherHome is the teacher dashboard
	PathTeacherHome = "/teacher"
	// PathStudentHome is the student dashboard
	PathStudentHome = "/student"
	// PathGuestChat is the public chat entry point
	PathGuestChat = "/guest"
	// PathChangePassword is reachable by any authenticated actor
	PathChangePassword = "/change-password"
)

// IsValid checks if the role is one of the predefined valid roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// HomePath resolves the dashboard destination for a role. The mapping is
// total: every known role has a distinct fixed destination and anything
// else lands on the public home rather than erroring.
func (r UserRole) HomePath() string {
	switch r {
	case RoleAdmin:
		return PathAdminHome
	case RoleTeacher:
		return PathTeacherHome
	case RoleStudent:
		return PathStudentHome
	default:
		return PathPublicHome
	}
}

// GetAllRoles returns the closed set of portal roles
func GetAllRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleTeacher, RoleStudent}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, role.IsValid()
}

// IsValid checks if the department is one of the academic units
func (d Department) IsValid() bool {
	switch d {
	case DeptCSE, DeptLaw, DeptBangla, DeptBBA, DeptNaval, DeptCivil, DeptMechanical, DeptEEE:
		return true
	default:
		return false
	}
}

// GetAllDepartments returns the closed set of academic units
func GetAllDepartments() []Department {
	return []Department{
		DeptCSE,
		DeptLaw,
		DeptBangla,
		DeptBBA,
		DeptNaval,
		DeptCivil,
		DeptMechanical,
		DeptEEE,
	}
}

// ParseDepartment safely parses a string into a Department type
func ParseDepartment(deptStr string) (Department, bool) {
	dept := Department(deptStr)
	return dept, dept.IsValid()
}
