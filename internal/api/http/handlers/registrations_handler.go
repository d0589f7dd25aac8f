package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-platform/internal/api/dto"
	"github.com/spec-kit/event-platform/internal/service"
)

// RegistrationsHandler manages event sign-ups.
type RegistrationsHandler struct {
	service *service.RegistrationService
}

// NewRegistrationsHandler constructs handler.
func NewRegistrationsHandler(registrationService *service.RegistrationService) *RegistrationsHandler {
	return &RegistrationsHandler{service: registrationService}
}

// Register POST /api/registrations. The caller's Authorization header is
// forwarded to the event service.
func (h *RegistrationsHandler) Register(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.RegistrationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	reg, err := h.service.Register(c.UserContext(), principal, req.EventID, c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewRegistrationResponse(reg))
}

// ListMine GET /api/registrations/my.
func (h *RegistrationsHandler) ListMine(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	list, err := h.service.ListMine(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRegistrationResponses(list))
}

// ListByEvent GET /api/registrations/event/:eventId.
func (h *RegistrationsHandler) ListByEvent(c *fiber.Ctx) error {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		return err
	}
	list, err := h.service.ListByEvent(c.UserContext(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRegistrationResponses(list))
}

// Count GET /api/registrations/event/:eventId/count.
func (h *RegistrationsHandler) Count(c *fiber.Ctx) error {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		return err
	}
	count, err := h.service.CountByEvent(c.UserContext(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(dto.RegistrationCountResponse{EventID: eventID, Count: count})
}
