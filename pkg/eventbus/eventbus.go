// Package eventbus defines the contract for publishing and subscribing to
// domain events.
package eventbus

import (
	"context"

	"github.com/primebank/ledger/pkg/domain/events"
)

// HandlerFunc processes a single dispatched event.
type HandlerFunc func(ctx context.Context, event events.Event) error

// Bus dispatches domain events to registered handlers.
type Bus interface {
	// Emit dispatches the event to all handlers registered for its type.
	Emit(ctx context.Context, event events.Event) error

	// Register subscribes a handler to an event type.
	Register(eventType string, handler HandlerFunc)
}
