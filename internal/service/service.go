package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/event-platform/internal/events"
)

func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// publish emits a domain event; delivery failures are logged, never returned.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil && logger != nil {
		logger.Warn("event delivery failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
