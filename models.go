package intelitalk

import "fmt"

// UserRole is the portal role assigned by the InteliTalk API
type UserRole string

const (
	// RoleAdmin manages every account and the knowledge base
	RoleAdmin UserRole = "Admin"
	// RoleTeacher manages the students of their department
	RoleTeacher UserRole = "Teacher"
	// RoleStudent chats with the bot and sees their own history
	RoleStudent UserRole = "Student"
)

// Department is one of the academic units served by the platform
type Department string

const (
	DeptCSE        Department = "CSE"
	DeptLaw        Department = "LAW"
	DeptBangla     Department = "BANGLA"
	DeptBBA        Department = "BBA"
	DeptNaval      Department = "NAVAL"
	DeptCivil      Department = "CIVIL"
	DeptMechanical Department = "MECHANICAL"
	DeptEEE        Department = "EEE"
)

// User is the actor record the API returns on login. The API is the source
// of truth for every field; the portal only persists it and reads it back.
// Department is meaningful for Teacher and Student accounts only.
type User struct {
	ID        string     `json:"_id,omitempty"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email,omitempty"`
	Role      UserRole   `json:"role,omitempty"`
	Dept      Department `json:"dept,omitempty"`
	StudentID string     `json:"studentId,omitempty"`
	TeacherID string     `json:"teacherId,omitempty"`
	Token     string     `json:"token,omitempty"`
}

// RoleID returns the role specific identifier, when the role carries one.
func (u *User) RoleID() string {
	switch u.Role {
	case RoleStudent:
		return u.StudentID
	case RoleTeacher:
		return u.TeacherID
	default:
		return ""
	}
}

func (u User) String() string {
	return fmt.Sprintf("user=%s role=%s dept=%s email=%s", u.ID, u.Role, u.Dept, u.Email)
}

// SignupData is the payload for the account creation endpoints
type SignupData struct {
	Name            string     `form:"name" json:"name"`
	Email           string     `form:"email" json:"email"`
	Password        string     `form:"password" json:"password"`
	ConfirmPassword string     `form:"confirm_password" json:"confirmPassword"`
	Role            UserRole   `form:"role" json:"role"`
	Dept            Department `form:"dept" json:"dept"`
	StudentID       string     `form:"student_id" json:"studentId,omitempty"`
	TeacherID       string     `form:"teacher_id" json:"teacherId,omitempty"`
}

// UpdateUserData is the payload for the profile update endpoints
type UpdateUserData struct {
	Name      string     `form:"name" json:"name"`
	Email     string     `form:"email" json:"email"`
	Dept      Department `form:"dept" json:"dept"`
	StudentID string     `form:"student_id" json:"studentId,omitempty"`
	Role      UserRole   `form:"role" json:"role,omitempty"`
}

// Chat is one question and answer exchange with the bot
type Chat struct {
	ID        string `json:"_id,omitempty"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Author    string `json:"author,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// UploadResult describes a stored knowledge base document
type UploadResult struct {
	Message  string `json:"message"`
	FileName string `json:"fileName"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}
