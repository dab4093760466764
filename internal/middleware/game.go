package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// GameLookup is the part of the game service the middleware needs.
type GameLookup interface {
	GameExists(gameID string) bool
}

// EnsureGame rejects requests whose :gameId does not name a live game and
// stores the id in locals for the handlers.
func EnsureGame(games GameLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}
		if !games.GameExists(gameID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "game not found",
			})
		}

		c.Locals("gameID", gameID)
		return c.Next()
	}
}
