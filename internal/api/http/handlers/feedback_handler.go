package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-platform/internal/api/dto"
	"github.com/spec-kit/event-platform/internal/service"
)

// FeedbackHandler manages event feedback.
type FeedbackHandler struct {
	service *service.FeedbackService
}

// NewFeedbackHandler constructs handler.
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: feedbackService}
}

// Submit POST /api/feedback.
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.FeedbackRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	fb, err := h.service.Submit(c.UserContext(), principal, service.FeedbackInput{
		EventID: req.EventID,
		Stars:   req.Stars,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewFeedbackResponse(fb))
}

// Update PUT /api/feedback/:id.
func (h *FeedbackHandler) Update(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.FeedbackRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	fb, err := h.service.Update(c.UserContext(), principal, id, service.FeedbackInput{
		EventID: req.EventID,
		Stars:   req.Stars,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFeedbackResponse(fb))
}

// Delete DELETE /api/feedback/:id.
func (h *FeedbackHandler) Delete(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), principal, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// List GET /api/feedback.
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	list, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFeedbackResponses(list))
}

// ListByEvent GET /api/feedback/event/:eventId.
func (h *FeedbackHandler) ListByEvent(c *fiber.Ctx) error {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		return err
	}
	list, err := h.service.ListByEvent(c.UserContext(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFeedbackResponses(list))
}
