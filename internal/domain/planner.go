package domain

import "time"

// Planner is a planning note attached to an event.
type Planner struct {
	ID        int64
	Title     string
	Note      string
	EventID   int64
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
