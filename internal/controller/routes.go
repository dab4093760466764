package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chessboard-backend/internal/middleware"
	"github.com/benbeisheim/chessboard-backend/internal/service"
)

// RegisterRoutes mounts the REST and WebSocket endpoints on app.
func RegisterRoutes(app *fiber.App, gameService *service.GameService) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)
	ensureGame := middleware.EnsureGame(gameService)

	// Set up WebSocket routes
	app.Get("/ws/game/:gameId",
		ensureGame,
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		}),
	)

	// Set up REST routes
	gameRoutes := app.Group("/api/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", ensureGame, gameController.GetGameState)
	gameRoutes.Get("/:gameId/draw", ensureGame, gameController.Draw)
	gameRoutes.Post("/:gameId/select", ensureGame, gameController.Select)
	gameRoutes.Post("/:gameId/move", ensureGame, gameController.Move)
	gameRoutes.Post("/:gameId/reset", ensureGame, gameController.Reset)
	gameRoutes.Delete("/:gameId", ensureGame, gameController.EndGame)
}
