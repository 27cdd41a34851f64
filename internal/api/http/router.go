package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/J-CamiloG/AppKit-API/internal/api/http/handlers"
	apperrors "github.com/J-CamiloG/AppKit-API/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	AppName string
	Version string
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
}

// RegisterRoutes wires HTTP routes. Must run after RegisterMiddlewares so the
// trailing not-found handler renders through the error envelope.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Bienvenido a " + cfg.AppName,
			"version": cfg.Version,
		})
	})

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/register", cfg.Auth.Register)
	api.Post("/login", cfg.Auth.Login)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewRouteNotFound()
	})
}
