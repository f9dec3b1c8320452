package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/syncit-hq/syncit-api/internal/database"
	"github.com/syncit-hq/syncit-api/internal/dto"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Ping handles GET /ping.
func (h *HealthHandler) Ping(c *fiber.Ctx) error {
	return c.JSON(dto.PingResponse{Message: "pong"})
}

// Status handles GET /health - the process is up.
func (h *HealthHandler) Status(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok"})
}

// Readiness handles GET /health/ready. Ready only when the database
// probe succeeds; the gateway stops routing traffic on 503.
func (h *HealthHandler) Readiness(c *fiber.Ctx) error {
	if !database.Health(h.db) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "App not loaded yet")
	}
	return c.JSON(dto.HealthResponse{Status: "ok"})
}

// Liveness handles GET /health/live. Always live, whatever the state of
// the dependencies, so the orchestrator never restarts the process off
// this endpoint.
func (h *HealthHandler) Liveness(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok"})
}
