package service

import (
	"context"
	"strings"

	"github.com/spec-kit/event-platform/internal/domain"
	"github.com/spec-kit/event-platform/internal/repository"
	apperrors "github.com/spec-kit/event-platform/pkg/util/errorutil"
)

const defaultBudgetDescription = "NA"

// BudgetInput carries a budget line.
type BudgetInput struct {
	EventID     int64
	Description string
	Cost        *float64
}

// BudgetService manages expense lines and budget status.
type BudgetService struct {
	budgets repository.BudgetRepository
	events  repository.EventRepository
}

// NewBudgetService builds the service.
func NewBudgetService(budgets repository.BudgetRepository, events repository.EventRepository) *BudgetService {
	return &BudgetService{budgets: budgets, events: events}
}

// Create records a budget line for an existing event.
func (s *BudgetService) Create(ctx context.Context, in BudgetInput) (*domain.Budget, error) {
	budget, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.budgets.Create(ctx, budget); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return budget, nil
}

// Update replaces a budget line.
func (s *BudgetService) Update(ctx context.Context, id int64, in BudgetInput) (*domain.Budget, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	budget, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	budget.ID = id
	if err := s.budgets.Update(ctx, budget); err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("Budget not found")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return budget, nil
}

// Get loads one budget line.
func (s *BudgetService) Get(ctx context.Context, id int64) (*domain.Budget, error) {
	budget, err := s.budgets.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("Budget not found")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return budget, nil
}

// ListByEvent returns the budget lines of an event.
func (s *BudgetService) ListByEvent(ctx context.Context, eventID int64) ([]domain.Budget, error) {
	list, err := s.budgets.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return list, nil
}

// Delete removes a budget line; deleting a missing line succeeds.
func (s *BudgetService) Delete(ctx context.Context, id int64) error {
	if err := s.budgets.Delete(ctx, id); err != nil && !isNotFound(err) {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Status compares the event's assigned budget with the sum of its lines.
func (s *BudgetService) Status(ctx context.Context, eventID int64) (domain.BudgetStatus, error) {
	event, err := s.requireEvent(ctx, eventID)
	if err != nil {
		return domain.BudgetStatus{}, err
	}
	items, err := s.budgets.ListByEvent(ctx, eventID)
	if err != nil {
		return domain.BudgetStatus{}, apperrors.NewInternalError(err)
	}
	return domain.ComputeBudgetStatus(event.Budget, items), nil
}

func (s *BudgetService) validate(ctx context.Context, in BudgetInput) (*domain.Budget, error) {
	if in.EventID <= 0 {
		return nil, apperrors.NewValidationError("eventId is required", nil)
	}
	if in.Cost != nil && *in.Cost < 0 {
		return nil, apperrors.NewValidationError("cost must not be negative", map[string]any{"cost": *in.Cost})
	}
	if _, err := s.requireEvent(ctx, in.EventID); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = defaultBudgetDescription
	}
	return &domain.Budget{EventID: in.EventID, Description: description, Cost: in.Cost}, nil
}

func (s *BudgetService) requireEvent(ctx context.Context, eventID int64) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound(eventNotFound)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return event, nil
}
