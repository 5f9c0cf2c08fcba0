package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MatiasXp0/forca-tatica/internal/api/http/handlers"
	"github.com/MatiasXp0/forca-tatica/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Announcements  *handlers.AnnouncementsHandler
	Uniforms       *handlers.UniformsHandler
	Vehicles       *handlers.VehiclesHandler
	Personnel      *handlers.PersonnelHandler
	Proxy          *handlers.ProxyHandler
	AuthMiddleware *auth.AuthMiddleware
	ProxyKeyHash   string
}

// recordRoutes is the handler set shared by every record collection.
type recordRoutes interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
	Sync(c *fiber.Ctx) error
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	api := app.Group("/api", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	editor := auth.RequireEditor()

	// Static segments must be registered before /:id.
	api.Get("/personnel/hierarchy", cfg.Personnel.Hierarchy)

	registerRecord(api.Group("/announcements"), cfg.Announcements, editor)
	registerRecord(api.Group("/uniforms"), cfg.Uniforms, editor)
	registerRecord(api.Group("/vehicles"), cfg.Vehicles, editor)
	registerRecord(api.Group("/personnel"), cfg.Personnel, editor)

	app.Post("/discord/proxy", auth.RequireProxyKey(cfg.ProxyKeyHash), cfg.Proxy.Handle)
}

func registerRecord(group fiber.Router, h recordRoutes, editor fiber.Handler) {
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Post("/", editor, h.Create)
	group.Put("/:id", editor, h.Update)
	group.Delete("/:id", editor, h.Delete)
	group.Post("/:id/sync", editor, h.Sync)
}
