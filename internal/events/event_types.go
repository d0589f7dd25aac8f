package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered      EventType = "user_registered"
	EventEventDeleted        EventType = "event_deleted"
	EventRegistrationCreated EventType = "registration_created"
	EventFeedbackSubmitted   EventType = "feedback_submitted"
	EventFeedbackUpdated     EventType = "feedback_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ResourceID int64       `json:"resource_id"`
	Actor      string      `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, resourceID int64, actor string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		Actor:      actor,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// EventDeletedPayload payload.
type EventDeletedPayload struct {
	Name string `json:"name"`
}

// RegistrationCreatedPayload payload.
type RegistrationCreatedPayload struct {
	EventID   int64  `json:"event_id"`
	EventName string `json:"event_name"`
	UserEmail string `json:"user_email"`
}

// FeedbackPayload payload for submitted and updated feedback.
type FeedbackPayload struct {
	EventID int64 `json:"event_id"`
	Stars   int   `json:"stars"`
}
