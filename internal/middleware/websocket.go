package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It runs after EnsureGame and hands the game and a fresh connection ID over to the upgraded connection.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Locals("gameID")
		if gameID == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		// The connection context is different from the upgrade context, so
		// everything the socket handler needs goes through locals
		c.Locals("wsGameID", gameID)
		c.Locals("wsConnID", uuid.New().String())
		return c.Next()
	}
}
