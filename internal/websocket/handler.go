package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches a connection to the review feed of customerId and blocks
// until the peer goes away.
func ServeWs(hub *Hub, c *websocket.Conn, customerId uuid.UUID, actorId string) {
	client := &Client{Hub: hub, Conn: c, CustomerId: customerId, ActorId: actorId, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
