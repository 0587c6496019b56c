package intelitalk

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
)

// RegisterAuthRoutes mounts the identity screens. The login page is entry
// redirected so an identified actor never sees it; the password change
// screen is reachable by any authenticated actor independent of role.
func RegisterAuthRoutes[T any](app router.Router[T], controller *AuthController) {
	entry := RedirectAuthenticated(controller.Session)
	authed := RequireAuth(controller.Session)

	app.Get(controller.Routes.Login, controller.LoginShow, entry).
		SetName("sign-in.get")
	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("sign-in.post")

	app.Get(controller.Routes.Logout, controller.Logout).
		SetName("sign-out.get")

	app.Get(controller.Routes.ChangePassword, controller.ChangePasswordShow, authed).
		SetName("pwd-change.get")
	app.Post(controller.Routes.ChangePassword, controller.ChangePasswordPost, authed).
		SetName("pwd-change.post")
}

type AuthControllerRoutes struct {
	Login          string
	Logout         string
	ChangePassword string
}

type AuthControllerViews struct {
	Login          string
	ChangePassword string
}

type AuthController struct {
	Debug        bool
	Logger       Logger
	Session      SessionAuthenticator
	Routes       *AuthControllerRoutes
	Views        *AuthControllerViews
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func WithAuthLogger(lgr Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if lgr != nil {
			c.Logger = lgr
		}
		return c
	}
}

func WithSession(session SessionAuthenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Session = session
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:       defLogger{},
		ErrorHandler: defaultErrHandler,
		Routes: &AuthControllerRoutes{
			Login:          PathLogin,
			Logout:         "/logout",
			ChangePassword: PathChangePassword,
		},
		Views: &AuthControllerViews{
			Login:          "login",
			ChangePassword: "change_password",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Session == nil {
		panic("Missing SessionAuthenticator in auth controller...")
	}

	return c
}

func (a *AuthController) LoginShow(ctx router.Context) error {
	return ctx.Render(a.Views.Login, router.ViewContext{
		"errors": nil,
		"record": nil,
	})
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload: %s", err)
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(a.Views.Login, router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
		})
	}

	if a.Debug {
		fmt.Println("======= PORTAL LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("===========================")
	}

	role, err := a.Session.SignIn(ctx, payload.Email, payload.Password)
	if err != nil {
		// Inline message plus a transient notification; the error message
		// is server supplied and safe to show.
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  UserMessage(err),
			"system_message": "Sign in failed",
		}).Render(a.Views.Login, router.ViewContext{
			"errors": map[string]string{"authentication": UserMessage(err)},
			"record": payload,
		})
	}

	return ctx.Redirect(role.HomePath(), fiber.StatusSeeOther)
}

// Logout clears the local session no matter what the server says and
// always lands on the login screen.
func (a *AuthController) Logout(ctx router.Context) error {
	a.Session.SignOut(ctx)
	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "You have been signed out",
	}).Redirect(PathLogin, fiber.StatusSeeOther)
}

func (a *AuthController) ChangePasswordShow(ctx router.Context) error {
	return ctx.Render(a.Views.ChangePassword, router.ViewContext{
		"errors": nil,
		"record": nil,
		"user":   a.Session.CurrentUser(ctx),
	})
}

// ChangePasswordPayload is the form payload
type ChangePasswordPayload struct {
	Password        string `form:"password" json:"password"`
	NewPassword     string `form:"new_password" json:"newPassword"`
	ConfirmPassword string `form:"confirm_password" json:"confirmPassword"`
}

// Validate is the client side fast-fail; the server re-checks everything
// authoritatively.
func (r ChangePasswordPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(6, 100)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.NewPassword)),
		),
	)
}

func (a *AuthController) ChangePasswordPost(ctx router.Context) error {
	payload := new(ChangePasswordPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("change password parse payload: %s", err)
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Check the highlighted fields",
		}).Render(a.Views.ChangePassword, router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
			"user":       a.Session.CurrentUser(ctx),
		})
	}

	if err := a.Session.ChangePassword(ctx, payload.Password, payload.NewPassword); err != nil {
		if IsNotAuthenticated(err) {
			return ctx.Redirect(PathLogin, fiber.StatusSeeOther)
		}

		return flash.WithError(ctx, router.ViewContext{
			"error_message":  UserMessage(err),
			"system_message": "Password change failed",
		}).Render(a.Views.ChangePassword, router.ViewContext{
			"errors": map[string]string{"authentication": UserMessage(err)},
			"record": payload,
			"user":   a.Session.CurrentUser(ctx),
		})
	}

	user := a.Session.CurrentUser(ctx)
	destination := PathLogin
	if user != nil {
		destination = user.Role.HomePath()
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Password updated",
	}).Redirect(destination, fiber.StatusSeeOther)
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("values must match")
		}
		return nil
	}
}

// FormatValidationErrorToMap flattens ozzo field errors for the templates
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, ferr := range fieldErrs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}

	out["form"] = err.Error()
	return out
}

func defaultErrHandler(c router.Context, err error) error {
	return c.Render("errors/500", router.ViewContext{
		"message": err.Error(),
	})
}
