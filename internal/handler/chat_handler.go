package handler

import (
	"asknova-be/internal/pkg/logger"
	internalWS "asknova-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChatHandler owns the websocket entry point of the conversation engine.
type ChatHandler struct {
	hub        *internalWS.Hub
	dispatcher *internalWS.Dispatcher
	logger     logger.ILogger
}

func NewChatHandler(hub *internalWS.Hub, dispatcher *internalWS.Dispatcher, log logger.ILogger) *ChatHandler {
	return &ChatHandler{
		hub:        hub,
		dispatcher: dispatcher,
		logger:     log,
	}
}

// ServeWs upgrades the connection and pumps it until the peer disconnects.
// The user identifies itself via the userId query parameter.
func (h *ChatHandler) ServeWs(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId query parameter is required"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ChatHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, h.dispatcher, conn, userID)
			h.logger.Info("ChatHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the websocket route.
func (h *ChatHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
