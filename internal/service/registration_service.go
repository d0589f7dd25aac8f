package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/event-platform/internal/auth"
	"github.com/spec-kit/event-platform/internal/clients/eventclient"
	"github.com/spec-kit/event-platform/internal/domain"
	"github.com/spec-kit/event-platform/internal/events"
	"github.com/spec-kit/event-platform/internal/repository"
	apperrors "github.com/spec-kit/event-platform/pkg/util/errorutil"
)

const alreadyRegistered = "Already registered"

// EventLookup fetches events from the event service.
type EventLookup interface {
	GetEvent(ctx context.Context, id int64, authorization string) (*eventclient.Event, error)
}

// RegistrationService signs users up for events.
type RegistrationService struct {
	registrations repository.RegistrationRepository
	eventLookup   EventLookup
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	now           func() time.Time
}

// NewRegistrationService builds the service.
func NewRegistrationService(repo repository.RegistrationRepository, lookup EventLookup, dispatcher events.Dispatcher, logger *zap.Logger) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		registrations: repo,
		eventLookup:   lookup,
		dispatcher:    dispatcher,
		logger:        logger,
		now:           time.Now,
	}
}

// Register signs the caller up for an event after confirming it exists with
// the event service. authorization is forwarded on that call.
func (s *RegistrationService) Register(ctx context.Context, principal *auth.Principal, eventID int64, authorization string) (*domain.Registration, error) {
	if principal == nil {
		return nil, apperrors.NewUnauthorized(auth.MsgAuthenticationRequired)
	}
	if eventID <= 0 {
		return nil, apperrors.NewValidationError("eventId is required", map[string]any{"eventId": "required"})
	}

	event, err := s.eventLookup.GetEvent(ctx, eventID, authorization)
	if err != nil {
		s.logger.Warn("event lookup failed", zap.Int64("event_id", eventID), zap.Error(err))
		return nil, apperrors.NewUpstreamError("Event service call failed", err)
	}

	exists, err := s.registrations.Exists(ctx, principal.Subject, eventID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if exists {
		return nil, apperrors.NewValidationError(alreadyRegistered, nil)
	}

	reg := &domain.Registration{
		UserEmail:    principal.Subject,
		EventID:      eventID,
		RegisteredAt: s.now().UTC(),
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewValidationError(alreadyRegistered, nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventRegistrationCreated, reg.ID, reg.UserEmail,
		events.RegistrationCreatedPayload{EventID: eventID, EventName: event.Name, UserEmail: reg.UserEmail}))
	return reg, nil
}

// ListMine returns the caller's registrations.
func (s *RegistrationService) ListMine(ctx context.Context, principal *auth.Principal) ([]domain.Registration, error) {
	if principal == nil {
		return nil, apperrors.NewUnauthorized(auth.MsgAuthenticationRequired)
	}
	list, err := s.registrations.ListByUser(ctx, principal.Subject)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return list, nil
}

// ListByEvent returns every registration for an event.
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID int64) ([]domain.Registration, error) {
	list, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return list, nil
}

// CountByEvent returns the number of registrations for an event.
func (s *RegistrationService) CountByEvent(ctx context.Context, eventID int64) (int64, error) {
	count, err := s.registrations.CountByEvent(ctx, eventID)
	if err != nil {
		return 0, apperrors.NewInternalError(err)
	}
	return count, nil
}
