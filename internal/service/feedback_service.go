package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/event-platform/internal/auth"
	"github.com/spec-kit/event-platform/internal/domain"
	"github.com/spec-kit/event-platform/internal/events"
	"github.com/spec-kit/event-platform/internal/repository"
	apperrors "github.com/spec-kit/event-platform/pkg/util/errorutil"
)

// FeedbackInput carries a rating.
type FeedbackInput struct {
	EventID int64
	Stars   int
	Message string
}

// FeedbackService manages event feedback.
type FeedbackService struct {
	feedback   repository.FeedbackRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewFeedbackService builds the service.
func NewFeedbackService(repo repository.FeedbackRepository, dispatcher events.Dispatcher, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{feedback: repo, dispatcher: dispatcher, logger: logger}
}

// Submit stores feedback authored by the caller.
func (s *FeedbackService) Submit(ctx context.Context, principal *auth.Principal, in FeedbackInput) (*domain.Feedback, error) {
	if principal == nil {
		return nil, apperrors.NewUnauthorized(auth.MsgAuthenticationRequired)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	fb := &domain.Feedback{
		Stars:     in.Stars,
		Message:   in.Message,
		EventID:   in.EventID,
		UserEmail: principal.Subject,
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventFeedbackSubmitted, fb.ID, fb.UserEmail,
		events.FeedbackPayload{EventID: fb.EventID, Stars: fb.Stars}))
	return fb, nil
}

// Update lets the author change their feedback.
func (s *FeedbackService) Update(ctx context.Context, principal *auth.Principal, id int64, in FeedbackInput) (*domain.Feedback, error) {
	if principal == nil {
		return nil, apperrors.NewUnauthorized(auth.MsgAuthenticationRequired)
	}
	fb, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !fb.IsAuthoredBy(principal.Subject) {
		return nil, apperrors.NewForbidden("You cannot edit this feedback")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	fb.Stars = in.Stars
	fb.Message = in.Message
	fb.EventID = in.EventID
	if err := s.feedback.Update(ctx, fb); err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("Feedback not found")
		}
		return nil, apperrors.NewInternalError(err)
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventFeedbackUpdated, fb.ID, fb.UserEmail,
		events.FeedbackPayload{EventID: fb.EventID, Stars: fb.Stars}))
	return fb, nil
}

// Delete removes feedback. Only the author or staff may delete.
func (s *FeedbackService) Delete(ctx context.Context, principal *auth.Principal, id int64) error {
	if principal == nil {
		return apperrors.NewUnauthorized(auth.MsgAuthenticationRequired)
	}
	fb, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !fb.IsAuthoredBy(principal.Subject) && !principal.HasRole(auth.StaffRoles...) {
		return apperrors.NewForbidden("You cannot delete this feedback")
	}
	if err := s.feedback.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return apperrors.NewNotFound("Feedback not found")
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}

// List returns all feedback.
func (s *FeedbackService) List(ctx context.Context) ([]domain.Feedback, error) {
	list, err := s.feedback.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return list, nil
}

// ListByEvent returns feedback for one event.
func (s *FeedbackService) ListByEvent(ctx context.Context, eventID int64) ([]domain.Feedback, error) {
	list, err := s.feedback.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return list, nil
}

func (s *FeedbackService) get(ctx context.Context, id int64) (*domain.Feedback, error) {
	fb, err := s.feedback.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("Feedback not found")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return fb, nil
}

func (in FeedbackInput) validate() error {
	details := map[string]any{}
	if in.EventID <= 0 {
		details["eventId"] = "required"
	}
	if in.Stars < domain.MinFeedbackStars || in.Stars > domain.MaxFeedbackStars {
		details["stars"] = "must be between 1 and 5"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid feedback", details)
	}
	return nil
}
