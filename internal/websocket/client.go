package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client is a middleman between one websocket connection and the engine.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	// UserID associated with this connection
	UserID string

	// Buffered channel of outbound messages. Never closed: pumps and
	// emitters observe ctx instead, so no goroutine can race a close.
	Send chan []byte

	dispatcher *Dispatcher

	// cancel aborts in-flight turns when the connection drops. Aborted
	// turns stop consuming fragments and are not persisted.
	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
}

// shutdown tears the connection down: cancels in-flight turns and closes the
// underlying conn so readPump unblocks. Safe to call from any goroutine, any
// number of times.
func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		c.cancel()
		if c.Conn != nil {
			c.Conn.Close()
		}
	})
}

// emit serializes an outbound event for this connection. Safe to call from
// pipeline goroutines; blocks until the frame is buffered or the connection
// is torn down.
func (c *Client) emit(event string, data interface{}) {
	frame, err := json.Marshal(Envelope{Event: event, Data: mustMarshal(data)})
	if err != nil {
		return
	}
	select {
	case c.Send <- frame:
	case <-c.ctx.Done():
	}
}

func mustMarshal(data interface{}) json.RawMessage {
	raw, err := json.Marshal(data)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return raw
}

// readPump pumps inbound events from the websocket connection to the
// dispatcher. Each event runs on its own goroutine so a streaming turn
// doesn't block session CRUD on the same connection.
func (c *Client) readPump() {
	defer func() {
		c.shutdown()
		c.Hub.unregister <- c
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("WebSocket", "Unexpected close", map[string]interface{}{
					"user_id": c.UserID,
					"error":   err.Error(),
				})
			}
			break
		}

		go c.dispatcher.Dispatch(c.ctx, raw, c.emit)
	}
}

// writePump pumps outbound messages from the Send channel to the websocket
// connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.shutdown()
	}()

	for {
		select {
		case message := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-c.ctx.Done():
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
