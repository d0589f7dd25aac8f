package domain

import "time"

// Registration records a user's attendance sign-up for an event.
type Registration struct {
	ID           int64
	UserEmail    string
	EventID      int64
	RegisteredAt time.Time
}
