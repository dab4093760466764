package service

import (
	"fmt"

	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/benbeisheim/chessboard-backend/internal/ws"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := gs.gameManager.NewGameID()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) GameExists(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) Select(gameID string, pos model.Position) (model.Frame, error) {
	return gs.gameManager.Select(gameID, pos)
}

func (gs *GameService) HandleMove(gameID string, pos model.Position) (model.Frame, bool, error) {
	return gs.gameManager.MakeMove(gameID, pos)
}

func (gs *GameService) Reset(gameID string) (model.Frame, error) {
	return gs.gameManager.Reset(gameID)
}

func (gs *GameService) Draw(gameID string) (string, error) {
	return gs.gameManager.Draw(gameID)
}

func (gs *GameService) EndGame(gameID string) error {
	return gs.gameManager.EndGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, connID string, conn Conn) error {
	return gs.gameManager.RegisterConnection(gameID, connID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, connID string) {
	gs.gameManager.UnregisterConnection(gameID, connID)
}

func (gs *GameService) SendError(gameID string, connID string, errorMsg string) error {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return err
	}
	return gs.gameManager.SendTo(gameID, connID, msg)
}
