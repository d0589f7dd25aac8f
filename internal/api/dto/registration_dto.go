package dto

import (
	"time"

	"github.com/spec-kit/event-platform/internal/domain"
)

// RegistrationRequest payload.
type RegistrationRequest struct {
	EventID int64 `json:"eventId"`
}

// RegistrationResponse representation of a registration.
type RegistrationResponse struct {
	ID           int64     `json:"id"`
	UserEmail    string    `json:"userEmail"`
	EventID      int64     `json:"eventId"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// RegistrationCountResponse number of registrations for an event.
type RegistrationCountResponse struct {
	EventID int64 `json:"eventId"`
	Count   int64 `json:"count"`
}

// FeedbackRequest payload.
type FeedbackRequest struct {
	EventID int64  `json:"eventId"`
	Stars   int    `json:"stars"`
	Message string `json:"message"`
}

// FeedbackResponse representation of feedback.
type FeedbackResponse struct {
	ID        int64  `json:"id"`
	Stars     int    `json:"stars"`
	Message   string `json:"message"`
	UserEmail string `json:"userEmail"`
	EventID   int64  `json:"eventId"`
}

func NewRegistrationResponse(r *domain.Registration) RegistrationResponse {
	return RegistrationResponse{ID: r.ID, UserEmail: r.UserEmail, EventID: r.EventID, RegisteredAt: r.RegisteredAt}
}

func NewRegistrationResponses(list []domain.Registration) []RegistrationResponse {
	items := make([]RegistrationResponse, 0, len(list))
	for i := range list {
		items = append(items, NewRegistrationResponse(&list[i]))
	}
	return items
}

func NewFeedbackResponse(f *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{ID: f.ID, Stars: f.Stars, Message: f.Message, UserEmail: f.UserEmail, EventID: f.EventID}
}

func NewFeedbackResponses(list []domain.Feedback) []FeedbackResponse {
	items := make([]FeedbackResponse, 0, len(list))
	for i := range list {
		items = append(items, NewFeedbackResponse(&list[i]))
	}
	return items
}
