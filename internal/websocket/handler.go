package websocket

import (
	"context"

	"github.com/gofiber/websocket/v2"
)

// ServeWs wires one upgraded connection into the hub and the dispatcher and
// pumps it until the peer disconnects.
func ServeWs(hub *Hub, dispatcher *Dispatcher, c *websocket.Conn, userID string) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &Client{
		Hub:        hub,
		Conn:       c,
		UserID:     userID,
		Send:       make(chan []byte, 256),
		dispatcher: dispatcher,
		ctx:        ctx,
		cancel:     cancel,
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // runs on the handler goroutine
}
