package ports

import (
	"context"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

// EventListener receives domain events drained from an aggregate after a
// successful save. Listener failures are logged by the dispatcher and never
// propagate to the use case caller.
type EventListener interface {
	Handle(ctx context.Context, event domain.Event) error
}
