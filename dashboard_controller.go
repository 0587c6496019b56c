package intelitalk

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
	"github.com/google/uuid"
)

const guestChatCookie = "intelitalk_guest"

// PortalController renders the role scoped dashboards and the public chat.
// Every screen is a straight read from the remote API; nothing is cached
// or transformed locally.
type PortalController struct {
	Logger  Logger
	Session SessionAuthenticator
	Admin   *AdminService
	Teacher *TeacherService
	Student *StudentService
	Guest   *GuestService
}

type PortalControllerOption func(*PortalController) *PortalController

func WithPortalLogger(lgr Logger) PortalControllerOption {
	return func(c *PortalController) *PortalController {
		if lgr != nil {
			c.Logger = lgr
		}
		return c
	}
}

func NewPortalController(session SessionAuthenticator, client *APIClient, opts ...PortalControllerOption) *PortalController {
	c := &PortalController{
		Logger:  defLogger{},
		Session: session,
		Admin:   NewAdminService(client),
		Teacher: NewTeacherService(client),
		Student: NewStudentService(client),
		Guest:   NewGuestService(client),
	}

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// RegisterPortalRoutes mounts the landing page, the guest chat, and the
// three guarded dashboards.
func RegisterPortalRoutes[T any](app router.Router[T], controller *PortalController) {
	entry := RedirectAuthenticated(controller.Session)
	adminOnly := RequireRole(controller.Session, RoleAdmin)
	teacherOnly := RequireRole(controller.Session, RoleTeacher)
	studentOnly := RequireRole(controller.Session, RoleStudent)

	app.Get(PathPublicHome, controller.Landing, entry).SetName("landing.get")

	// The guest chat is public but not entry redirected: a signed in user
	// may still use it.
	app.Get(PathGuestChat, controller.GuestChat).SetName("guest.get")
	app.Post(PathGuestChat, controller.GuestAsk).SetName("guest.post")

	app.Get(PathAdminHome, controller.AdminHome, adminOnly).SetName("admin.get")
	app.Post(PathAdminHome+"/users", controller.AdminCreateUser, adminOnly).SetName("admin-users.post")
	app.Post(PathAdminHome+"/user/:id/delete", controller.AdminDeleteUser, adminOnly).SetName("admin-user-delete.post")

	app.Get(PathTeacherHome, controller.TeacherHome, teacherOnly).SetName("teacher.get")
	app.Post(PathTeacherHome+"/students", controller.TeacherCreateStudent, teacherOnly).SetName("teacher-students.post")

	app.Get(PathStudentHome, controller.StudentHome, studentOnly).SetName("student.get")
	app.Post(PathStudentHome+"/ask", controller.StudentAsk, studentOnly).SetName("student-ask.post")
}

func (p *PortalController) Landing(ctx router.Context) error {
	return ctx.Render("index", router.ViewContext{})
}

// AdminHome shows the user table and the account creation forms. An API
// failure degrades to an empty table with a flash message; the screen
// itself always renders.
func (p *PortalController) AdminHome(ctx router.Context) error {
	user := p.Session.CurrentUser(ctx)

	users, err := p.Admin.AllUsers(ctx.Context(), user.Token)
	if err != nil {
		p.Logger.Error("admin user list: %s", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  UserMessage(err),
			"system_message": "Unable to load users",
		}).Render("admin", router.ViewContext{
			"user":        user,
			"users":       []User{},
			"roles":       GetAllRoles(),
			"departments": GetAllDepartments(),
		})
	}

	return ctx.Render("admin", router.ViewContext{
		"user":        user,
		"users":       users,
		"roles":       GetAllRoles(),
		"departments": GetAllDepartments(),
	})
}

// SignupPayload is the account creation form
type SignupPayload struct {
	Name            string `form:"name" json:"name"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirmPassword"`
	Role            string `form:"role" json:"role"`
	Dept            string `form:"dept" json:"dept"`
	StudentID       string `form:"student_id" json:"studentId"`
	TeacherID       string `form:"teacher_id" json:"teacherId"`
}

// Validate will validate the payload
func (r SignupPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
		validation.Field(&r.Role, validation.Required, validation.In(string(RoleStudent), string(RoleTeacher))),
		validation.Field(&r.Dept, validation.Required, validation.By(validDepartment)),
	)
}

func validDepartment(value any) error {
	s, _ := value.(string)
	if _, ok := ParseDepartment(s); !ok {
		return errors.New("must be a known department")
	}
	return nil
}

func (r SignupPayload) signupData() SignupData {
	return SignupData{
		Name:            r.Name,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		Role:            UserRole(r.Role),
		Dept:            Department(r.Dept),
		StudentID:       r.StudentID,
		TeacherID:       r.TeacherID,
	}
}

func (p *PortalController) AdminCreateUser(ctx router.Context) error {
	user := p.Session.CurrentUser(ctx)
	payload := new(SignupPayload)

	if err := ctx.Bind(payload); err != nil {
		p.Logger.Error("admin signup parse payload: %s", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing form",
		}).Redirect(PathAdminHome, fiber.StatusSeeOther)
	}

	if err := payload.Validate(); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Check the signup form",
		}).Redirect(PathAdminHome, fiber.StatusSeeOther)
	}

	var err error
	if UserRole(payload.Role) == RoleTeacher {
		_, err = p.Admin.CreateTeacher(ctx.Context(), user.Token, payload.signupData())
	} else {
		_, err = p.Admin.CreateStudent(ctx.Context(), user.Token, payload.signupData())
	}

	if err != nil {
		p.Logger.Error("admin signup: %s", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  UserMessage(err),
			"system_message": "Account creation failed",
		}).Redirect(PathAdminHome, fiber.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Account created",
	}).Redirect(PathAdminHome, fiber.StatusSeeOther)
}

func (p *PortalController) AdminDeleteUser(ctx router.Context) error {
	user := p.Session.CurrentUser(ctx)
	id := ctx.Param("id", "")

	if id == "" {
		return ctx.Redirect(PathAdminHome, fiber.StatusSeeOther)
	}

	if err := p.Admin.DeleteUser(ctx.Context(), user.Token, id); err != nil {
		p.Logger.Error("admin delete user %s: %s", id, err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  UserMessage(err),
			"system_message": "Unable to delete account",
		}).Redirect(PathAdminHome, fiber.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Account deleted",
	}).Redirect(PathAdminHome, fiber.StatusSeeOther)
}

func (p *PortalController) TeacherHome(ctx router.Context) error {
	user := p.Session.CurrentUser(ctx)

	students, err := p.Teacher.AllStudents(ctx.Context(), user.Token)
	if err != nil {
		p.Logger.Error("teacher roster: %s", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  UserMessage(err),
			"system_message": "Unable to load students",
		}).Render("teacher", router.ViewContext{
			"user":        user,
			"students":    []User{},
			"departments": GetAllDepartments(),
		})
	}

	return ctx.Render("teacher", router.ViewContext{
		"user":        user,
		"students":    students,
		"departments": GetAllDepartments(),
	})
}

func (p *PortalController) TeacherCreateStudent(ctx router.Context) error {
	user := p.Session.CurrentUser(ctx)
	payload := new(SignupPayload)

	if err := ctx.Bind(payload); err != nil {
		p.Logger.Error("teacher signup parse payload: %s", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing form",
		}).Redirect(PathTeacherHome, fiber.StatusSeeOther)
	}

	// Teachers only create students; force the role before validating.
	payload.Role = string(RoleStudent)

	if err := payload.Validate(); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Check the signup form",
		}).Redirect(PathTeacherHome, fiber.StatusSeeOther)
	}

	if _, err := p.Teacher.CreateStudent(ctx.Context(), user.Token, payload.signupData()); err != nil {
		p.Logger.Error("teacher signup: %s", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  UserMessage(err),
			"system_message": "Student creation failed",
		}).Redirect(PathTeacherHome, fiber.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Student account created",
	}).Redirect(PathTeacherHome, fiber.StatusSeeOther)
}

func (p *PortalController) StudentHome(ctx router.Context) error {
	user := p.Session.CurrentUser(ctx)

	chats, err := p.Student.Chats(ctx.Context(), user.Token, user.ID)
	if err != nil {
		p.Logger.Error("student history: %s", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  UserMessage(err),
			"system_message": "Unable to load your history",
		}).Render("student", router.ViewContext{
			"user":  user,
			"chats": []Chat{},
		})
	}

	return ctx.Render("student", router.ViewContext{
		"user":  user,
		"chats": chats,
	})
}

// QuestionPayload is the single field chat form
type QuestionPayload struct {
	Question string `form:"question" json:"question"`
}

// Validate will validate the payload
func (r QuestionPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Question, validation.Required, validation.Length(1, 2000)),
	)
}

func (p *PortalController) StudentAsk(ctx router.Context) error {
	user := p.Session.CurrentUser(ctx)
	payload := new(QuestionPayload)

	if err := ctx.Bind(payload); err != nil {
		p.Logger.Error("student ask parse payload: %s", err)
		return ctx.Redirect(PathStudentHome, fiber.StatusSeeOther)
	}

	if err := payload.Validate(); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Ask a question first",
		}).Redirect(PathStudentHome, fiber.StatusSeeOther)
	}

	answer, err := p.Student.Ask(ctx.Context(), user.Token, payload.Question)
	if err != nil {
		p.Logger.Error("student ask: %s", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  UserMessage(err),
			"system_message": "The bot could not answer",
		}).Redirect(PathStudentHome, fiber.StatusSeeOther)
	}

	chats, _ := p.Student.Chats(ctx.Context(), user.Token, user.ID)

	return ctx.Render("student", router.ViewContext{
		"user":     user,
		"chats":    chats,
		"question": payload.Question,
		"answer":   answer,
	})
}

// GuestChat renders the public chat. Guests get a throwaway id so the
// screen can keep a per-visitor transcript in the page without any account.
func (p *PortalController) GuestChat(ctx router.Context) error {
	sessionID := ctx.Cookies(guestChatCookie)
	if sessionID == "" {
		sessionID = uuid.NewString()
		ctx.Cookie(&router.Cookie{
			Name:     guestChatCookie,
			Value:    sessionID,
			Expires:  time.Now().Add(24 * time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}

	return ctx.Render("guest", router.ViewContext{
		"session_id": sessionID,
		"user":       p.Session.CurrentUser(ctx),
	})
}

func (p *PortalController) GuestAsk(ctx router.Context) error {
	payload := new(QuestionPayload)

	if err := ctx.Bind(payload); err != nil {
		p.Logger.Error("guest ask parse payload: %s", err)
		return ctx.Redirect(PathGuestChat, fiber.StatusSeeOther)
	}

	if err := payload.Validate(); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Ask a question first",
		}).Redirect(PathGuestChat, fiber.StatusSeeOther)
	}

	answer, err := p.Guest.Ask(ctx.Context(), payload.Question)
	if err != nil {
		p.Logger.Error("guest ask: %s", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  UserMessage(err),
			"system_message": "The bot could not answer",
		}).Redirect(PathGuestChat, fiber.StatusSeeOther)
	}

	return ctx.Render("guest", router.ViewContext{
		"session_id": ctx.Cookies(guestChatCookie),
		"question":   payload.Question,
		"answer":     answer,
		"user":       p.Session.CurrentUser(ctx),
	})
}
