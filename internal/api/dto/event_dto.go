package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/event-platform/internal/domain"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// EventRequest payload for creating or replacing an event.
type EventRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	EventType   string   `json:"eventType"`
	Budget      *float64 `json:"budget"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
}

// EventResponse representation of an event.
type EventResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	EventType   string   `json:"eventType"`
	Budget      *float64 `json:"budget"`
	StartDate   *string  `json:"startDate"`
	EndDate     *string  `json:"endDate"`
}

// BudgetAllocationRequest sets an event's assigned budget.
type BudgetAllocationRequest struct {
	Budget *float64 `json:"budget"`
}

// BudgetRequest payload for a budget line.
type BudgetRequest struct {
	EventID     int64    `json:"eventId"`
	Description string   `json:"description"`
	Cost        *float64 `json:"cost"`
}

// BudgetResponse representation of a budget line.
type BudgetResponse struct {
	ID          int64    `json:"id"`
	EventID     int64    `json:"eventId"`
	Description string   `json:"description"`
	Cost        *float64 `json:"cost"`
}

// BudgetStatusResponse compares assigned and spent amounts.
type BudgetStatusResponse struct {
	AssignedBudget float64 `json:"assignedBudget"`
	TotalSpent     float64 `json:"totalSpent"`
	Difference     float64 `json:"difference"`
}

// PlannerRequest payload for a planning note.
type PlannerRequest struct {
	Title     string `json:"title"`
	Note      string `json:"note"`
	EventID   int64  `json:"eventId"`
	CreatedBy string `json:"createdBy"`
}

// PlannerResponse representation of a planner.
type PlannerResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Note      string    `json:"note"`
	EventID   int64     `json:"eventId"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ParseDate parses an optional YYYY-MM-DD value.
func ParseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%s must be formatted as YYYY-MM-DD", field)
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

func NewEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		EventType:   string(e.EventType),
		Budget:      e.Budget,
		StartDate:   formatDate(e.StartDate),
		EndDate:     formatDate(e.EndDate),
	}
}

func NewEventResponses(list []domain.Event) []EventResponse {
	items := make([]EventResponse, 0, len(list))
	for i := range list {
		items = append(items, NewEventResponse(&list[i]))
	}
	return items
}

func NewBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{ID: b.ID, EventID: b.EventID, Description: b.Description, Cost: b.Cost}
}

func NewBudgetResponses(list []domain.Budget) []BudgetResponse {
	items := make([]BudgetResponse, 0, len(list))
	for i := range list {
		items = append(items, NewBudgetResponse(&list[i]))
	}
	return items
}

func NewBudgetStatusResponse(s domain.BudgetStatus) BudgetStatusResponse {
	return BudgetStatusResponse{AssignedBudget: s.AssignedBudget, TotalSpent: s.TotalSpent, Difference: s.Difference}
}

func NewPlannerResponse(p *domain.Planner) PlannerResponse {
	return PlannerResponse{
		ID:        p.ID,
		Title:     p.Title,
		Note:      p.Note,
		EventID:   p.EventID,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewPlannerResponses(list []domain.Planner) []PlannerResponse {
	items := make([]PlannerResponse, 0, len(list))
	for i := range list {
		items = append(items, NewPlannerResponse(&list[i]))
	}
	return items
}
