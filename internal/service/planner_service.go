package service

import (
	"context"
	"strings"

	"github.com/spec-kit/event-platform/internal/auth"
	"github.com/spec-kit/event-platform/internal/domain"
	"github.com/spec-kit/event-platform/internal/repository"
	apperrors "github.com/spec-kit/event-platform/pkg/util/errorutil"
)

// PlannerInput carries a planning note.
type PlannerInput struct {
	Title     string
	Note      string
	EventID   int64
	CreatedBy string
}

// PlannerService manages planning notes attached to events.
type PlannerService struct {
	planners repository.PlannerRepository
	events   repository.EventRepository
}

// NewPlannerService builds the service.
func NewPlannerService(planners repository.PlannerRepository, events repository.EventRepository) *PlannerService {
	return &PlannerService{planners: planners, events: events}
}

// Create stores a note for an existing event. CreatedBy defaults to the caller.
func (s *PlannerService) Create(ctx context.Context, principal *auth.Principal, in PlannerInput) (*domain.Planner, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", map[string]any{"title": "required"})
	}
	if in.EventID <= 0 {
		return nil, apperrors.NewValidationError("eventId is required", nil)
	}
	if _, err := s.events.GetByID(ctx, in.EventID); err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound(eventNotFound)
		}
		return nil, apperrors.NewInternalError(err)
	}

	createdBy := strings.TrimSpace(in.CreatedBy)
	if createdBy == "" && principal != nil {
		createdBy = principal.Subject
	}
	planner := &domain.Planner{Title: title, Note: in.Note, EventID: in.EventID, CreatedBy: createdBy}
	if err := s.planners.Create(ctx, planner); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return planner, nil
}

// Update changes the title, note and author of a planner; the event is fixed.
func (s *PlannerService) Update(ctx context.Context, id int64, in PlannerInput) (*domain.Planner, error) {
	planner, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", map[string]any{"title": "required"})
	}
	planner.Title = title
	planner.Note = in.Note
	if createdBy := strings.TrimSpace(in.CreatedBy); createdBy != "" {
		planner.CreatedBy = createdBy
	}
	if err := s.planners.Update(ctx, planner); err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("Planner not found")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return planner, nil
}

// Get loads one planner.
func (s *PlannerService) Get(ctx context.Context, id int64) (*domain.Planner, error) {
	planner, err := s.planners.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("Planner not found")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return planner, nil
}

// ListByEvent returns an event's planners.
func (s *PlannerService) ListByEvent(ctx context.Context, eventID int64) ([]domain.Planner, error) {
	list, err := s.planners.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return list, nil
}

// Delete removes a planner; deleting a missing planner succeeds.
func (s *PlannerService) Delete(ctx context.Context, id int64) error {
	if err := s.planners.Delete(ctx, id); err != nil && !isNotFound(err) {
		return apperrors.NewInternalError(err)
	}
	return nil
}
