package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	intelitalk "github.com/dev-saiful/InteliTalk-client"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/django/v3"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-router"
	mflash "github.com/goliatone/go-router/middleware/flash"
	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine; the environment may be set by the host.
	_ = godotenv.Load()

	cfg := intelitalk.LoadConfig()

	level := glog.Info
	if cfg.Debug {
		level = glog.Trace
	}

	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(level),
		glog.WithName("portal"),
		glog.WithAddSource(false),
	)

	client := intelitalk.NewAPIClient(
		cfg.APIBaseURL,
		intelitalk.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		intelitalk.WithClientLogger(lgr.GetLogger("api")),
	)

	store := intelitalk.NewCookieSessionStore(
		cfg.HashKey(),
		cfg.BlockKey(),
		intelitalk.WithCookieName(cfg.CookieName),
		intelitalk.WithCookieDuration(cfg.CookieTTL),
		intelitalk.WithCookieSecure(cfg.CookieSecure),
		intelitalk.WithStoreLogger(lgr.GetLogger("session")),
	)

	session := intelitalk.NewSessionManager(
		client,
		store,
		intelitalk.WithSessionLogger(lgr.GetLogger("auth")),
	)

	authController := intelitalk.NewAuthController(
		intelitalk.WithSession(session),
		intelitalk.WithAuthLogger(lgr.GetLogger("auth-http")),
	)
	authController.Debug = cfg.Debug

	portal := intelitalk.NewPortalController(
		session,
		client,
		intelitalk.WithPortalLogger(lgr.GetLogger("portal-http")),
	)

	engine := django.New("./cmd/server/views", ".html")

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		app := router.DefaultFiberOptions(fiber.New(fiber.Config{
			StrictRouting:     false,
			PassLocalsToViews: true,
			Views:             engine,
		}))

		// Multipart uploads stay on the raw fiber app: the router
		// abstraction has no file API, and this is the only route that
		// needs one.
		app.Post("/admin/upload/pdf", adminUploadPDF(store, portal.Admin, lgr.GetLogger("upload")))

		return app
	})

	srv.Router().Use(mflash.New(mflash.ConfigDefault))

	intelitalk.RegisterAuthRoutes(srv.Router(), authController)
	intelitalk.RegisterPortalRoutes(srv.Router(), portal)

	lgr.Info("portal listening", "addr", cfg.ListenAddr, "api", cfg.APIBaseURL)

	srv.Serve(cfg.ListenAddr)

	WaitExitSignal()
}

// adminUploadPDF forwards a knowledge base document to the API. Scope is
// either "public" (guest visible) or "private"; only Admin accounts pass.
func adminUploadPDF(store *intelitalk.CookieSessionStore, admin *intelitalk.AdminService, lgr glog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := store.DecodeValue(c.Cookies(store.CookieName()))
		if !ok {
			return c.Redirect(intelitalk.PathLogin, fiber.StatusSeeOther)
		}
		if user.Role != intelitalk.RoleAdmin {
			return c.Redirect(user.Role.HomePath(), fiber.StatusSeeOther)
		}

		header, err := c.FormFile("pdf")
		if err != nil {
			return c.Redirect(intelitalk.PathAdminHome, fiber.StatusSeeOther)
		}

		file, err := header.Open()
		if err != nil {
			lgr.Error("open upload", "error", err)
			return c.Redirect(intelitalk.PathAdminHome, fiber.StatusSeeOther)
		}
		defer file.Close()

		scope := c.FormValue("scope", "public")
		if scope == "private" {
			_, err = admin.UploadPrivatePDF(c.Context(), user.Token, header.Filename, file)
		} else {
			_, err = admin.UploadPublicPDF(c.Context(), user.Token, header.Filename, file)
		}

		if err != nil {
			lgr.Error("upload pdf", "file", header.Filename, "error", err)
		}

		return c.Redirect(intelitalk.PathAdminHome, fiber.StatusSeeOther)
	}
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
