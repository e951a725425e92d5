// Package ws exposes the WebSocket endpoint that binds client connections
// to the notification hub.
package ws

import (
	"fmt"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/primebank/ledger/pkg/notification"
)

// Routes registers the WebSocket endpoint.
func Routes(app *fiber.App, hub *notification.Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/:id", websocket.New(handler(hub)))
}

// conn adapts a websocket connection to notification.Subscriber. Writes are
// serialized; gorilla-style connections allow one concurrent writer only.
type conn struct {
	id uuid.UUID
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *conn) ID() uuid.UUID { return c.id }

func (c *conn) Send(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, []byte(message))
}

func handler(hub *notification.Hub) func(*websocket.Conn) {
	return func(wsConn *websocket.Conn) {
		clientID := wsConn.Params("id")
		sub := &conn{id: uuid.New(), ws: wsConn}

		hub.Connect(sub)
		hub.Broadcast(fmt.Sprintf("User #%s is now online.", clientID))
		defer func() {
			hub.Disconnect(sub.ID())
			hub.Broadcast(fmt.Sprintf("User #%s is now offline.", clientID))
		}()

		for {
			_, msg, err := wsConn.ReadMessage()
			if err != nil {
				return
			}
			// Messages sent by a client are relayed to everyone.
			hub.Broadcast(string(msg))
		}
	}
}
