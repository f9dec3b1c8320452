package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/syncit-hq/syncit-api/internal/dto"
	"github.com/syncit-hq/syncit-api/internal/middleware"
	"github.com/syncit-hq/syncit-api/internal/models"
	"github.com/syncit-hq/syncit-api/internal/services"
)

type SystemHandler struct {
	service *services.SystemService
}

func NewSystemHandler(service *services.SystemService) *SystemHandler {
	return &SystemHandler{service: service}
}

func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Params("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid system id '"+raw+"'")
	}
	return id, nil
}

// Create handles POST /systems.
func (h *SystemHandler) Create(c *fiber.Ctx) error {
	var req dto.SystemCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
	}
	sysType, err := req.Validate()
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	system, err := h.service.Create(middleware.Session(c), req.Name, sysType)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(system)
}

// Read handles GET /systems/:id.
func (h *SystemHandler) Read(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	system, err := h.service.Read(middleware.Session(c), id)
	if err != nil {
		return err
	}
	return c.JSON(system)
}

// List handles GET /systems with optional name/type filters.
func (h *SystemHandler) List(c *fiber.Ctx) error {
	var query dto.SystemFilterQuery
	if err := c.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid query parameters: "+err.Error())
	}
	if query.ID != "" {
		if _, err := uuid.Parse(query.ID); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid system id '"+query.ID+"'")
		}
	}

	systems, err := h.service.ReadFilteredOrAll(middleware.Session(c), query.Name, query.Type)
	if err != nil {
		return err
	}
	return c.JSON(systems)
}

// Update handles PATCH /systems/:id with a partial payload.
func (h *SystemHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req dto.SystemUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var sysType *models.SystemType
	if req.Type != nil {
		parsed, err := models.ParseSystemType(*req.Type)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		sysType = &parsed
	}

	system, err := h.service.Update(middleware.Session(c), id, req.Name, sysType)
	if err != nil {
		return err
	}
	return c.JSON(system)
}

// Delete handles DELETE /systems/:id and returns the deleted snapshot.
func (h *SystemHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	system, err := h.service.Delete(middleware.Session(c), id)
	if err != nil {
		return err
	}
	return c.JSON(system)
}
