package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-platform/internal/api/dto"
	"github.com/spec-kit/event-platform/internal/service"
)

// BudgetsHandler manages budget lines and event budget allocation.
type BudgetsHandler struct {
	budgets *service.BudgetService
	events  *service.EventService
}

// NewBudgetsHandler constructs handler.
func NewBudgetsHandler(budgets *service.BudgetService, events *service.EventService) *BudgetsHandler {
	return &BudgetsHandler{budgets: budgets, events: events}
}

// Create POST /api/budgets.
func (h *BudgetsHandler) Create(c *fiber.Ctx) error {
	var req dto.BudgetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	budget, err := h.budgets.Create(c.UserContext(), service.BudgetInput{
		EventID:     req.EventID,
		Description: req.Description,
		Cost:        req.Cost,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewBudgetResponse(budget))
}

// Update PUT /api/budgets/:id.
func (h *BudgetsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.BudgetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	budget, err := h.budgets.Update(c.UserContext(), id, service.BudgetInput{
		EventID:     req.EventID,
		Description: req.Description,
		Cost:        req.Cost,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBudgetResponse(budget))
}

// Get GET /api/budgets/:id.
func (h *BudgetsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	budget, err := h.budgets.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBudgetResponse(budget))
}

// ListByEvent GET /api/budgets/events/:eventId.
func (h *BudgetsHandler) ListByEvent(c *fiber.Ctx) error {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		return err
	}
	list, err := h.budgets.ListByEvent(c.UserContext(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBudgetResponses(list))
}

// Delete DELETE /api/budgets/:id.
func (h *BudgetsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.budgets.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Status GET /api/budgets/budget/status/:eventId.
func (h *BudgetsHandler) Status(c *fiber.Ctx) error {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		return err
	}
	status, err := h.budgets.Status(c.UserContext(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBudgetStatusResponse(status))
}

// Allocate PUT /api/budgets/events/:eventId/allocation.
func (h *BudgetsHandler) Allocate(c *fiber.Ctx) error {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		return err
	}
	var req dto.BudgetAllocationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	event, err := h.events.AllocateBudget(c.UserContext(), eventID, req.Budget)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEventResponse(event))
}
