package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/benbeisheim/chessboard-backend/internal/service"
	"github.com/benbeisheim/chessboard-backend/internal/ws"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) Select(c *fiber.Ctx) error {
	pos, err := parsePosition(c)
	if err != nil {
		return errorResponse(c, err)
	}
	frame, err := gc.gameService.Select(c.Params("gameId"), pos)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(frame)
}

func (gc *GameController) Move(c *fiber.Ctx) error {
	pos, err := parsePosition(c)
	if err != nil {
		return errorResponse(c, err)
	}
	frame, moved, err := gc.gameService.HandleMove(c.Params("gameId"), pos)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"moved": moved,
		"frame": frame,
	})
}

func (gc *GameController) Reset(c *fiber.Ctx) error {
	frame, err := gc.gameService.Reset(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(frame)
}

func (gc *GameController) Draw(c *fiber.Ctx) error {
	out, err := gc.gameService.Draw(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.SendString(out)
}

func (gc *GameController) EndGame(c *fiber.Ctx) error {
	if err := gc.gameService.EndGame(c.Params("gameId")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parsePosition(c *fiber.Ctx) (model.Position, error) {
	var body ws.PositionPayload
	if err := c.BodyParser(&body); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return body.Position, nil
}

func errorStatus(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrInvalidPosition), errors.Is(err, model.ErrMalformedNotation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
