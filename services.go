package intelitalk

import (
	"context"
	"encoding/json"
	"io"
)

// The portal surface is deliberately presentational: each service method is
// one REST call with no local transformation, so the remote API stays the
// single source of truth.

// AdminService wraps the endpoints reserved for Admin accounts.
type AdminService struct {
	client *APIClient
}

func NewAdminService(client *APIClient) *AdminService {
	return &AdminService{client: client}
}

func (s *AdminService) AllUsers(ctx context.Context, token string) ([]User, error) {
	res, err := s.client.get(ctx, "/admin/user", token)
	if err != nil {
		return nil, err
	}
	return res.DecodeUsers()
}

func (s *AdminService) UserByID(ctx context.Context, token, id string) (*User, error) {
	res, err := s.client.get(ctx, "/admin/user/"+id, token)
	if err != nil {
		return nil, err
	}
	return res.DecodeUser()
}

func (s *AdminService) UpdateUser(ctx context.Context, token, id string, data UpdateUserData) (*User, error) {
	res, err := s.client.put(ctx, "/admin/user/"+id, token, data)
	if err != nil {
		return nil, err
	}
	return res.DecodeUser()
}

func (s *AdminService) DeleteUser(ctx context.Context, token, id string) error {
	_, err := s.client.del(ctx, "/admin/user/"+id, token)
	return err
}

// CreateStudent and CreateTeacher hit the role specific signup endpoints;
// only Admin (and Teacher, below) accounts may create users.
func (s *AdminService) CreateStudent(ctx context.Context, token string, data SignupData) (*User, error) {
	res, err := s.client.post(ctx, "/admin/student-signup", token, data)
	if err != nil {
		return nil, err
	}
	return res.DecodeUser()
}

func (s *AdminService) CreateTeacher(ctx context.Context, token string, data SignupData) (*User, error) {
	res, err := s.client.post(ctx, "/admin/teacher-signup", token, data)
	if err != nil {
		return nil, err
	}
	return res.DecodeUser()
}

// UploadPublicPDF feeds the knowledge base available to guests. Bytes in,
// stored URL out; the ingestion pipeline itself lives behind the API.
func (s *AdminService) UploadPublicPDF(ctx context.Context, token, filename string, content io.Reader) (*UploadResult, error) {
	return s.uploadPDF(ctx, "/admin/public/upload/pdf", token, filename, content)
}

// UploadPrivatePDF feeds the knowledge base reserved for signed in users.
func (s *AdminService) UploadPrivatePDF(ctx context.Context, token, filename string, content io.Reader) (*UploadResult, error) {
	return s.uploadPDF(ctx, "/admin/private/upload/pdf", token, filename, content)
}

func (s *AdminService) uploadPDF(ctx context.Context, endpoint, token, filename string, content io.Reader) (*UploadResult, error) {
	res, err := s.client.upload(ctx, endpoint, token, "pdf", filename, content)
	if err != nil {
		return nil, err
	}

	result := &UploadResult{Message: res.Message, FileName: filename}
	if len(res.Data) > 0 {
		if err := json.Unmarshal(res.Data, result); err != nil {
			return nil, NewServerError("unreadable upload receipt: " + err.Error())
		}
	}
	return result, nil
}

// TeacherService wraps the endpoints reserved for Teacher accounts.
type TeacherService struct {
	client *APIClient
}

func NewTeacherService(client *APIClient) *TeacherService {
	return &TeacherService{client: client}
}

func (s *TeacherService) AllStudents(ctx context.Context, token string) ([]User, error) {
	res, err := s.client.get(ctx, "/teacher/students", token)
	if err != nil {
		return nil, err
	}
	return res.DecodeUsers()
}

func (s *TeacherService) StudentByID(ctx context.Context, token, id string) (*User, error) {
	res, err := s.client.get(ctx, "/teacher/student/"+id, token)
	if err != nil {
		return nil, err
	}
	return res.DecodeUser()
}

func (s *TeacherService) CreateStudent(ctx context.Context, token string, data SignupData) (*User, error) {
	res, err := s.client.post(ctx, "/teacher/student-signup", token, data)
	if err != nil {
		return nil, err
	}
	return res.DecodeUser()
}

func (s *TeacherService) UpdateStudent(ctx context.Context, token, id string, data UpdateUserData) (*User, error) {
	res, err := s.client.put(ctx, "/teacher/student/"+id, token, data)
	if err != nil {
		return nil, err
	}
	return res.DecodeUser()
}

func (s *TeacherService) DeleteStudent(ctx context.Context, token, id string) error {
	_, err := s.client.del(ctx, "/teacher/student/"+id, token)
	return err
}

// StudentService wraps the endpoints reserved for Student accounts.
type StudentService struct {
	client *APIClient
}

func NewStudentService(client *APIClient) *StudentService {
	return &StudentService{client: client}
}

// Ask sends a question to the bot and returns the answer text.
func (s *StudentService) Ask(ctx context.Context, token, question string) (string, error) {
	res, err := s.client.get(ctx, "/student?question="+queryEscape(question), token)
	if err != nil {
		return "", err
	}
	return res.Ans, nil
}

// Chats returns the student's question history, newest last.
func (s *StudentService) Chats(ctx context.Context, token, userID string) ([]Chat, error) {
	res, err := s.client.get(ctx, "/student/message/"+userID, token)
	if err != nil {
		return nil, err
	}
	return res.DecodeChats()
}

func (s *StudentService) Profile(ctx context.Context, token, id string) (*User, error) {
	res, err := s.client.get(ctx, "/student/"+id, token)
	if err != nil {
		return nil, err
	}
	return res.DecodeUser()
}

func (s *StudentService) UpdateProfile(ctx context.Context, token, id string, data UpdateUserData) (*User, error) {
	res, err := s.client.put(ctx, "/student/"+id, token, data)
	if err != nil {
		return nil, err
	}
	return res.DecodeUser()
}

// GuestService wraps the public chat entry point. No authentication.
type GuestService struct {
	client *APIClient
}

func NewGuestService(client *APIClient) *GuestService {
	return &GuestService{client: client}
}

func (s *GuestService) Ask(ctx context.Context, question string) (string, error) {
	res, err := s.client.get(ctx, "/guest?question="+queryEscape(question), "")
	if err != nil {
		return "", err
	}
	return res.Ans, nil
}
