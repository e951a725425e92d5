// Package notification implements the fan-out hub that delivers textual
// event messages to every connected real-time subscriber. The hub is an
// explicit component constructed at startup and injected where needed; there
// is no process-global subscriber set.
package notification

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Subscriber is a connected real-time listener. Send must be safe to call
// from the broadcasting goroutine.
type Subscriber interface {
	ID() uuid.UUID
	Send(message string) error
}

// Hub maintains the set of active subscribers and broadcasts messages to all
// of them. Delivery is best-effort per subscriber: a subscriber whose Send
// fails is pruned. Messages are not persisted or replayed; a subscriber not
// connected at broadcast time never receives that message.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]Subscriber
	logger *slog.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[uuid.UUID]Subscriber),
		logger: logger.With("component", "notification-hub"),
	}
}

// Connect registers a subscriber.
func (h *Hub) Connect(sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[sub.ID()] = sub
	h.logger.Debug("subscriber connected", "id", sub.ID(), "active", len(h.subs))
}

// Disconnect deregisters a subscriber. Unknown ids are ignored.
func (h *Hub) Disconnect(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
	h.logger.Debug("subscriber disconnected", "id", id, "active", len(h.subs))
}

// Broadcast delivers message to every currently active subscriber.
// Subscribers whose Send fails are removed from the set.
func (h *Hub) Broadcast(message string) {
	h.mu.RLock()
	subs := make([]Subscriber, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	var failed []uuid.UUID
	for _, sub := range subs {
		if err := sub.Send(message); err != nil {
			h.logger.Warn("dropping unreachable subscriber", "id", sub.ID(), "error", err)
			failed = append(failed, sub.ID())
		}
	}
	if len(failed) > 0 {
		h.mu.Lock()
		for _, id := range failed {
			delete(h.subs, id)
		}
		h.mu.Unlock()
	}
}

// Count returns the number of active subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
