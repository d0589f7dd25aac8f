package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-platform/internal/api/dto"
	"github.com/spec-kit/event-platform/internal/auth"
	"github.com/spec-kit/event-platform/internal/service"
	apperrors "github.com/spec-kit/event-platform/pkg/util/errorutil"
)

// EventsHandler manages event endpoints.
type EventsHandler struct {
	service *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{service: eventService}
}

// Create POST /api/events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	input, err := eventInput(c)
	if err != nil {
		return err
	}
	event, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewEventResponse(event))
}

// Update PUT /api/events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	input, err := eventInput(c)
	if err != nil {
		return err
	}
	event, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEventResponse(event))
}

// Get GET /api/events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	event, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEventResponse(event))
}

// List GET /api/events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	list, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEventResponses(list))
}

// Delete DELETE /api/events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor := ""
	if principal, ok := auth.PrincipalFromContext(c); ok {
		actor = principal.Subject
	}
	if err := h.service.Delete(c.UserContext(), id, actor); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func eventInput(c *fiber.Ctx) (service.EventInput, error) {
	var req dto.EventRequest
	if err := parseBody(c, &req); err != nil {
		return service.EventInput{}, err
	}
	start, err := dto.ParseDate("startDate", req.StartDate)
	if err != nil {
		return service.EventInput{}, apperrors.NewValidationError(err.Error(), nil)
	}
	end, err := dto.ParseDate("endDate", req.EndDate)
	if err != nil {
		return service.EventInput{}, apperrors.NewValidationError(err.Error(), nil)
	}
	return service.EventInput{
		Name:        req.Name,
		Description: req.Description,
		EventType:   req.EventType,
		Budget:      req.Budget,
		StartDate:   start,
		EndDate:     end,
	}, nil
}
