package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/agrilink-web/internal/application/auth"
	"github.com/jhoicas/agrilink-web/internal/application/view"
	"github.com/jhoicas/agrilink-web/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName string
	AuthUC  *auth.AuthUseCase
	View    *view.Controller
	Views   *session.Store
	Session SessionConfig
	Log     *logger.Logger
}

// Router registra las pantallas HTML y la API JSON de auth.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// Todas las rutas siguientes conocen el usuario de la sesión (o su ausencia).
	app.Use(SessionMiddleware(deps.Session))

	// Pantallas
	viewHandler := NewViewHandler(deps.View, deps.Views, deps.Session, deps.Log)
	app.Get("/", viewHandler.Home)
	app.Get("/view/:screen", viewHandler.Navigate)
	app.Post("/login", viewHandler.SubmitLogin)
	app.Post("/signup", viewHandler.SubmitSignUp)
	app.Post("/logout", viewHandler.Logout)

	// API
	authGroup := app.Group("/api/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Session, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", RequireUser(), authHandler.Logout)
	authGroup.Get("/me", RequireUser(), authHandler.Me)
}
