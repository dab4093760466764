package ws

import (
	"encoding/json"

	"github.com/benbeisheim/chessboard-backend/internal/model"
)

// MessageType represents the different kinds of messages exchanged with a board renderer
type MessageType string

const (
	// client -> server intents
	MessageTypeSelect MessageType = "select"
	MessageTypeMove   MessageType = "move"
	MessageTypeReset  MessageType = "reset"

	// server -> client
	MessageTypeGameState    MessageType = "gameState"
	MessageTypeAnimationEnd MessageType = "animationEnd"
	MessageTypeError        MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// PositionPayload carries the square of a select or move intent.
type PositionPayload struct {
	Position model.Position `json:"position"`
}

// AnimationEndPayload tells the renderer to settle the animated piece.
type AnimationEndPayload struct {
	Notation model.Notation `json:"notation"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into a Message of the given type.
func NewMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
