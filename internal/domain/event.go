package domain

import (
	"fmt"
	"strings"
	"time"
)

// EventType classifies an event.
type EventType string

const (
	EventTypeConference EventType = "CONFERENCE"
	EventTypeWorkshop   EventType = "WORKSHOP"
	EventTypeSeminar    EventType = "SEMINAR"
	EventTypeMeetup     EventType = "MEETUP"
	EventTypeWebinar    EventType = "WEBINAR"
	EventTypeConcert    EventType = "CONCERT"
	EventTypeWedding    EventType = "WEDDING"
	EventTypeOther      EventType = "OTHER"
)

var eventTypes = map[EventType]struct{}{
	EventTypeConference: {},
	EventTypeWorkshop:   {},
	EventTypeSeminar:    {},
	EventTypeMeetup:     {},
	EventTypeWebinar:    {},
	EventTypeConcert:    {},
	EventTypeWedding:    {},
	EventTypeOther:      {},
}

// ParseEventType normalizes an event type; an empty value maps to OTHER.
func ParseEventType(value string) (EventType, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return EventTypeOther, nil
	}
	et := EventType(strings.ToUpper(value))
	if _, ok := eventTypes[et]; !ok {
		return "", fmt.Errorf("unknown event type %q", value)
	}
	return et, nil
}

// Event is a scheduled occasion with an optional assigned budget.
type Event struct {
	ID          int64
	Name        string
	Description string
	EventType   EventType
	Budget      *float64
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
