package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/event-platform/internal/domain"
	"github.com/spec-kit/event-platform/internal/events"
	"github.com/spec-kit/event-platform/internal/repository"
	apperrors "github.com/spec-kit/event-platform/pkg/util/errorutil"
)

const (
	maxEventDescription = 1000
	eventNotFound       = "The Event does not exist!"
)

// EventInput carries the writable fields of an event.
type EventInput struct {
	Name        string
	Description string
	EventType   string
	Budget      *float64
	StartDate   *time.Time
	EndDate     *time.Time
}

// EventService manages events.
type EventService struct {
	events     repository.EventRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewEventService builds the service.
func NewEventService(repo repository.EventRepository, dispatcher events.Dispatcher, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{events: repo, dispatcher: dispatcher, logger: logger}
}

// Create validates and stores a new event.
func (s *EventService) Create(ctx context.Context, in EventInput) (*domain.Event, error) {
	event, err := in.toEvent()
	if err != nil {
		return nil, err
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return event, nil
}

// Update replaces every writable field of an event.
func (s *EventService) Update(ctx context.Context, id int64, in EventInput) (*domain.Event, error) {
	event, err := in.toEvent()
	if err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	event.ID = existing.ID
	event.CreatedAt = existing.CreatedAt
	if err := s.events.Update(ctx, event); err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound(eventNotFound)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return event, nil
}

// Get loads a single event.
func (s *EventService) Get(ctx context.Context, id int64) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound(eventNotFound)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return event, nil
}

// List returns all events ordered by id.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	list, err := s.events.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return list, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id int64, actor string) error {
	event, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return apperrors.NewNotFound(eventNotFound)
		}
		return apperrors.NewInternalError(err)
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventEventDeleted, id, actor,
		events.EventDeletedPayload{Name: event.Name}))
	return nil
}

// AllocateBudget sets the amount assigned to an event.
func (s *EventService) AllocateBudget(ctx context.Context, id int64, budget *float64) (*domain.Event, error) {
	if budget != nil && *budget < 0 {
		return nil, apperrors.NewValidationError("budget must not be negative", map[string]any{"budget": *budget})
	}
	if err := s.events.UpdateBudget(ctx, id, budget); err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound(eventNotFound)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return s.Get(ctx, id)
}

func (in EventInput) toEvent() (*domain.Event, error) {
	details := map[string]any{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		details["name"] = "required"
	}
	if len(in.Description) > maxEventDescription {
		details["description"] = "must be at most 1000 characters"
	}
	eventType, err := domain.ParseEventType(in.EventType)
	if err != nil {
		details["eventType"] = err.Error()
	}
	if in.Budget != nil && *in.Budget < 0 {
		details["budget"] = "must not be negative"
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		details["endDate"] = "must not be before startDate"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid event", details)
	}
	return &domain.Event{
		Name:        name,
		Description: in.Description,
		EventType:   eventType,
		Budget:      in.Budget,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}, nil
}
