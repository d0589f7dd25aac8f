package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-platform/internal/api/dto"
	"github.com/spec-kit/event-platform/internal/service"
)

// PlannersHandler manages planner endpoints.
type PlannersHandler struct {
	service *service.PlannerService
}

// NewPlannersHandler constructs handler.
func NewPlannersHandler(plannerService *service.PlannerService) *PlannersHandler {
	return &PlannersHandler{service: plannerService}
}

// Create POST /api/planners.
func (h *PlannersHandler) Create(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.PlannerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	planner, err := h.service.Create(c.UserContext(), principal, service.PlannerInput{
		Title:     req.Title,
		Note:      req.Note,
		EventID:   req.EventID,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewPlannerResponse(planner))
}

// Update PUT /api/planners/:id.
func (h *PlannersHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.PlannerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	planner, err := h.service.Update(c.UserContext(), id, service.PlannerInput{
		Title:     req.Title,
		Note:      req.Note,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPlannerResponse(planner))
}

// Get GET /api/planners/:id.
func (h *PlannersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	planner, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPlannerResponse(planner))
}

// ListByEvent GET /api/planners/event/:eventId.
func (h *PlannersHandler) ListByEvent(c *fiber.Ctx) error {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		return err
	}
	list, err := h.service.ListByEvent(c.UserContext(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPlannerResponses(list))
}

// Delete DELETE /api/planners/:id.
func (h *PlannersHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
