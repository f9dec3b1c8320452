package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// DocsHandler serves the API documentation surface for one version.
type DocsHandler struct {
	version string
}

func NewDocsHandler(version string) *DocsHandler {
	return &DocsHandler{version: version}
}

// OpenAPI handles GET /openapi.json.
func (h *DocsHandler) OpenAPI(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"openapi": "3.1.0",
		"info": fiber.Map{
			"title":       "SyncIt API",
			"summary":     "SyncIt API",
			"description": "Sync It API",
			"version":     "0.0.1",
		},
		"paths": fiber.Map{
			"/" + h.version + "/ping":         fiber.Map{"get": operation("get_ping", "Global API ping")},
			"/" + h.version + "/health":       fiber.Map{"get": operation("get_health_status", "Global API Health Check")},
			"/" + h.version + "/health/ready": fiber.Map{"get": operation("get_health_readiness", "Readiness API Health Check for Kubernetes Probe")},
			"/" + h.version + "/health/live":  fiber.Map{"get": operation("get_health_liveness", "Liveness API Health Check for Kubernetes Probe")},
			"/" + h.version + "/systems": fiber.Map{
				"post": operation("create_system", "Create a new system entry"),
				"get":  operation("list_systems", "Get all systems or filtered if payload provided"),
			},
			"/" + h.version + "/systems/{id}": fiber.Map{
				"get":    operation("get_system", "Get a system entry by ID"),
				"patch":  operation("update_system", "Update a system entry"),
				"delete": operation("delete_system", "Delete a system entry"),
			},
		},
	})
}

func operation(id, summary string) fiber.Map {
	return fiber.Map{"operationId": id, "summary": summary}
}

// SwaggerUI handles GET /docs.
func (h *DocsHandler) SwaggerUI(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(`<!DOCTYPE html>
<html>
<head>
  <title>SyncIt API - Swagger UI</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: "/` + h.version + `/openapi.json", dom_id: "#swagger-ui"});
  </script>
</body>
</html>`)
}

// Redoc handles GET /redoc.
func (h *DocsHandler) Redoc(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(`<!DOCTYPE html>
<html>
<head>
  <title>SyncIt API - ReDoc</title>
</head>
<body>
  <redoc spec-url="/` + h.version + `/openapi.json"></redoc>
  <script src="https://cdn.jsdelivr.net/npm/redoc@2/bundles/redoc.standalone.js"></script>
</body>
</html>`)
}
