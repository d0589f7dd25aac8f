package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/event-platform/internal/events"
	"github.com/spec-kit/event-platform/internal/service"
)

// ErrQueueFull is returned when the notification queue cannot accept more events.
var ErrQueueFull = errors.New("notification queue full")

const defaultQueueSize = 256

// NotificationWorker delivers notifications off the request path.
type NotificationWorker struct {
	notifications *service.NotificationService
	logger        *zap.Logger
	queue         chan events.Event
	wg            sync.WaitGroup
}

// NewNotificationWorker builds a worker with a bounded queue.
func NewNotificationWorker(notifications *service.NotificationService, queueSize int, logger *zap.Logger) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		notifications: notifications,
		logger:        logger,
		queue:         make(chan events.Event, queueSize),
	}
}

// StartNotificationWorker subscribes the worker to the dispatcher and starts
// consuming until ctx is cancelled.
func StartNotificationWorker(ctx context.Context, dispatcher events.Dispatcher, notifications *service.NotificationService, logger *zap.Logger) *NotificationWorker {
	if dispatcher == nil || notifications == nil {
		return nil
	}
	w := NewNotificationWorker(notifications, defaultQueueSize, logger)
	for _, eventType := range service.NotificationEventTypes {
		dispatcher.Subscribe(eventType, w.Enqueue)
	}
	w.Start(ctx)
	return w
}

// Enqueue accepts an event without blocking. It satisfies events.EventHandler.
func (w *NotificationWorker) Enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
		return nil
	default:
		w.logger.Warn("dropping notification", zap.String("event_type", string(event.Type)))
		return ErrQueueFull
	}
}

// Start launches the consumer goroutine.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				w.drain()
				return
			case event := <-w.queue:
				w.deliver(event)
			}
		}
	}()
}

// Wait blocks until the consumer has exited.
func (w *NotificationWorker) Wait() {
	if w == nil {
		return
	}
	w.wg.Wait()
}

func (w *NotificationWorker) drain() {
	for {
		select {
		case event := <-w.queue:
			w.deliver(event)
		default:
			return
		}
	}
}

func (w *NotificationWorker) deliver(event events.Event) {
	if err := w.notifications.Handle(context.Background(), event); err != nil {
		w.logger.Warn("notification failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
