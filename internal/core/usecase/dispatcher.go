package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/tokensave/buildtrust/internal/core/domain"
	"github.com/tokensave/buildtrust/internal/core/ports"
)

// EventDispatcher fans drained domain events out to the registered
// listeners. A failing listener is logged and skipped; by the time events are
// dispatched the aggregate is already saved, so listener errors never reach
// the use-case caller.
type EventDispatcher struct {
	listeners []ports.EventListener
	logger    *zap.Logger
}

func NewEventDispatcher(logger *zap.Logger, listeners ...ports.EventListener) *EventDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventDispatcher{listeners: listeners, logger: logger}
}

func (d *EventDispatcher) Dispatch(ctx context.Context, events []domain.Event) {
	for _, event := range events {
		for _, listener := range d.listeners {
			if err := listener.Handle(ctx, event); err != nil {
				d.logger.Error("event listener failed",
					zap.String("event", event.EventName()),
					zap.Error(err))
			}
		}
	}
}
