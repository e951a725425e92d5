// Package notify bridges committed domain events to the notification hub,
// rendering each event as a human-readable message.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/primebank/ledger/pkg/domain/events"
	"github.com/primebank/ledger/pkg/eventbus"
	"github.com/primebank/ledger/pkg/notification"
)

// Handler returns an event handler that formats the event and broadcasts it
// through the hub. Broadcast is fire-and-forget relative to the ledger
// transaction: the mutation is already committed when a handler runs.
func Handler(hub *notification.Hub, logger *slog.Logger) eventbus.HandlerFunc {
	log := logger.With("handler", "notify")
	return func(ctx context.Context, event events.Event) error {
		msg, ok := format(event)
		if !ok {
			log.Warn("no message format for event", "event_type", event.Type())
			return nil
		}
		hub.Broadcast(msg)
		return nil
	}
}

// Register subscribes the notify handler to every ledger event type.
func Register(bus eventbus.Bus, hub *notification.Hub, logger *slog.Logger) {
	h := Handler(hub, logger)
	for _, eventType := range []string{
		events.AccountCreated{}.Type(),
		events.AccountUpdated{}.Type(),
		events.AccountDeleted{}.Type(),
		events.OperationCreated{}.Type(),
		events.OperationUpdated{}.Type(),
		events.OperationDeleted{}.Type(),
	} {
		bus.Register(eventType, h)
	}
}

func format(event events.Event) (string, bool) {
	switch e := event.(type) {
	case events.AccountCreated:
		return fmt.Sprintf("Welcome new user : %s %s", e.Name, e.Surname), true
	case events.AccountUpdated:
		return fmt.Sprintf("User updated: #%d", e.ID), true
	case events.AccountDeleted:
		return fmt.Sprintf("User deleted: #%d", e.ID), true
	case events.OperationCreated:
		return fmt.Sprintf("User #%d added new operation", e.AccountID), true
	case events.OperationUpdated:
		return fmt.Sprintf("Operation updated: #%d", e.ID), true
	case events.OperationDeleted:
		return fmt.Sprintf("Operation deleted: #%d", e.ID), true
	default:
		return "", false
	}
}
