package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-api/internal/api/http/handlers"
	"github.com/spec-kit/social-api/internal/auth"
	"github.com/spec-kit/social-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Accounts      *handlers.AccountsHandler
	Authenticator *auth.RequestAuthenticator
}

// RegisterRoutes wires HTTP routes. The request authenticator runs on
// every route below the health probes; it only populates the context,
// the Require* guards decide whether identity is mandatory.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.Authenticator.Handle)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	session := authGroup.Group("", auth.RequireAuthenticated())
	session.Post("/refresh", cfg.Auth.Refresh)
	session.Post("/logout", cfg.Auth.Logout)
	session.Get("/me", cfg.Auth.Me)

	accounts := app.Group("/accounts", auth.RequireRole(domain.RoleModerator, domain.RoleAdmin))
	accounts.Get("/:username", cfg.Accounts.Get)
}
