package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/syncit-hq/syncit-api/internal/handlers"
)

// apiVersions lists the mounted API versions, oldest first. Root
// conveniences redirect to the newest one.
var apiVersions = []string{"v1"}

// LatestVersion returns the newest mounted API version.
func LatestVersion() string {
	return apiVersions[len(apiVersions)-1]
}

// Setup registers the full route table.
func Setup(
	app *fiber.App,
	systemHandler *handlers.SystemHandler,
	healthHandler *handlers.HealthHandler,
	docsHandler *handlers.DocsHandler,
) {
	v1 := app.Group("/v1")

	// Health
	v1.Get("/ping", healthHandler.Ping)
	v1.Get("/health", healthHandler.Status)
	v1.Get("/health/ready", healthHandler.Readiness)
	v1.Get("/health/live", healthHandler.Liveness)

	// Docs
	v1.Get("/docs", docsHandler.SwaggerUI)
	v1.Get("/redoc", docsHandler.Redoc)
	v1.Get("/openapi.json", docsHandler.OpenAPI)

	// Systems
	v1.Post("/systems", systemHandler.Create)
	v1.Get("/systems", systemHandler.List)
	v1.Get("/systems/:id", systemHandler.Read)
	v1.Patch("/systems/:id", systemHandler.Update)
	v1.Delete("/systems/:id", systemHandler.Delete)

	// Root conveniences redirect to the latest version.
	latest := LatestVersion()
	app.Get("/", redirectTo("/"+latest+"/docs"))
	app.Get("/docs", redirectTo("/"+latest+"/docs"))
	app.Get("/redoc", redirectTo("/"+latest+"/redoc"))
	app.Get("/openapi.json", redirectTo("/"+latest+"/openapi.json"))
}

func redirectTo(target string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Redirect(target, fiber.StatusTemporaryRedirect)
	}
}
