package domain

import "time"

const (
	MinFeedbackStars = 1
	MaxFeedbackStars = 5
)

// Feedback is an attendee's rating of an event.
type Feedback struct {
	ID        int64
	Stars     int
	Message   string
	UserEmail string
	EventID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAuthoredBy reports whether the feedback belongs to the given subject.
func (f *Feedback) IsAuthoredBy(subject string) bool {
	return f != nil && f.UserEmail == subject
}
