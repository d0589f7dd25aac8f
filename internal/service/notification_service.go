package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/event-platform/internal/config"
	"github.com/spec-kit/event-platform/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		logger: logger,
		cfg:    cfg,
	}
}

// NotificationEventTypes lists the events that produce notifications.
var NotificationEventTypes = []events.EventType{
	events.EventUserRegistered,
	events.EventRegistrationCreated,
	events.EventFeedbackSubmitted,
	events.EventFeedbackUpdated,
	events.EventEventDeleted,
}

// Handle routes a domain event to its notification handler.
func (n *NotificationService) Handle(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.EventUserRegistered:
		return n.handleUserRegistered(ctx, event)
	case events.EventRegistrationCreated:
		return n.handleRegistrationCreated(ctx, event)
	case events.EventFeedbackSubmitted, events.EventFeedbackUpdated:
		return n.handleFeedback(ctx, event)
	case events.EventEventDeleted:
		return n.handleEventDeleted(ctx, event)
	default:
		return nil
	}
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("actor", event.Actor), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleRegistrationCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("RegistrationCreated", zap.Int64("registration_id", event.ResourceID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleFeedback(ctx context.Context, event events.Event) error {
	n.logger.Info("Feedback", zap.String("type", string(event.Type)), zap.Int64("feedback_id", event.ResourceID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleEventDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("EventDeleted", zap.Int64("event_id", event.ResourceID), zap.String("actor", event.Actor))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", event.Actor),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("resource_id", event.ResourceID),
		zap.String("event_type", string(event.Type)))
}
