package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chessboard-backend/internal/service"
	"github.com/benbeisheim/chessboard-backend/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	connID, _ := c.Locals("wsConnID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, connID, c); err != nil {
		log.Printf("failed to register connection: %v", err)
		c.Close()
		return
	}
	// Clean up when connection closes
	defer wsc.gameService.UnregisterConnection(gameID, connID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read error: %v", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(gameID, connID, fmt.Sprintf("parse error: %v", err))
			continue
		}
		if err := wsc.handleMessage(gameID, msg); err != nil {
			wsc.sendError(gameID, connID, err.Error())
		}
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeSelect:
		var payload ws.PositionPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		_, err := wsc.gameService.Select(gameID, payload.Position)
		return err

	case ws.MessageTypeMove:
		var payload ws.PositionPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		// an unreachable target is not an error, the broadcast frame shows the deselection
		_, _, err := wsc.gameService.HandleMove(gameID, payload.Position)
		return err

	case ws.MessageTypeReset:
		_, err := wsc.gameService.Reset(gameID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(gameID, connID, errorMsg string) {
	if err := wsc.gameService.SendError(gameID, connID, errorMsg); err != nil {
		log.Printf("failed to send error to %s: %v", connID, err)
	}
}
