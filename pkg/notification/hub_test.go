package notification_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/primebank/ledger/pkg/notification"
	"github.com/stretchr/testify/assert"
)

// fakeSubscriber records delivered messages and can be made to fail.
type fakeSubscriber struct {
	id       uuid.UUID
	messages []string
	fail     bool
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{id: uuid.New()}
}

func (s *fakeSubscriber) ID() uuid.UUID { return s.id }

func (s *fakeSubscriber) Send(message string) error {
	if s.fail {
		return errors.New("connection closed")
	}
	s.messages = append(s.messages, message)
	return nil
}

func newHub() *notification.Hub {
	return notification.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	hub := newHub()
	first := newFakeSubscriber()
	second := newFakeSubscriber()
	hub.Connect(first)
	hub.Connect(second)

	hub.Broadcast("User #1 added new operation")

	assert.Equal(t, []string{"User #1 added new operation"}, first.messages)
	assert.Equal(t, []string{"User #1 added new operation"}, second.messages)
	assert.Equal(t, 2, hub.Count())
}

func TestBroadcastPrunesFailingSubscriber(t *testing.T) {
	hub := newHub()
	healthy := newFakeSubscriber()
	broken := newFakeSubscriber()
	broken.fail = true
	hub.Connect(healthy)
	hub.Connect(broken)

	hub.Broadcast("first")
	assert.Equal(t, 1, hub.Count(), "a subscriber whose send fails is removed")

	hub.Broadcast("second")
	assert.Equal(t, []string{"first", "second"}, healthy.messages)
	assert.Empty(t, broken.messages)
}

func TestDisconnect(t *testing.T) {
	hub := newHub()
	sub := newFakeSubscriber()
	hub.Connect(sub)
	assert.Equal(t, 1, hub.Count())

	hub.Disconnect(sub.ID())
	assert.Equal(t, 0, hub.Count())

	hub.Broadcast("after disconnect")
	assert.Empty(t, sub.messages, "no replay for departed subscribers")

	// Disconnecting an unknown id is a no-op.
	hub.Disconnect(uuid.New())
	assert.Equal(t, 0, hub.Count())
}

func TestBroadcastWithNoSubscribers(t *testing.T) {
	hub := newHub()
	hub.Broadcast("into the void")
	assert.Equal(t, 0, hub.Count())
}

func TestConnectReplacesSameID(t *testing.T) {
	hub := newHub()
	sub := newFakeSubscriber()
	hub.Connect(sub)
	hub.Connect(sub)
	assert.Equal(t, 1, hub.Count())
}
