// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/benbeisheim/chessboard-backend/internal/animate"
	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/benbeisheim/chessboard-backend/internal/render"
	"github.com/benbeisheim/chessboard-backend/internal/ws"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type ManagerConfig struct {
	TileSize      int
	FrameInterval time.Duration
	EnforceTurn   bool
	// Debug logs the drawn board after every committed move.
	Debug bool
}

func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		TileSize:      model.DefaultTileSize,
		FrameInterval: animate.DefaultFrameInterval,
	}
}

// session is one board and the renderers watching it. opMu is held from a
// mutation through its render pass and broadcast, so frames reach every client
// in the order they were rendered.
type session struct {
	game    *model.Game
	clients map[string]*client
	mu      sync.RWMutex
	opMu    sync.Mutex
}

func (s *session) snapshotClients() []*client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	return clients
}

type GameManager struct {
	cfg      ManagerConfig
	sessions map[string]*session
	mu       sync.RWMutex
}

func NewGameManager(cfg ManagerConfig) *GameManager {
	return &GameManager{
		cfg:      cfg,
		sessions: make(map[string]*session),
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	game, err := model.NewGame(gameID,
		model.WithTileSize(gm.cfg.TileSize),
		model.WithTurnEnforcement(gm.cfg.EnforceTurn),
	)
	if err != nil {
		return err
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.sessions[gameID]; exists {
		return ErrGameExists
	}
	gm.sessions[gameID] = &session{game: game, clients: make(map[string]*client)}
	return nil
}

func (gm *GameManager) NewGameID() string {
	return uuid.New().String()
}

func (gm *GameManager) session(gameID string) (*session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s, exists := gm.sessions[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return s, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	s, err := gm.session(gameID)
	if err != nil {
		return nil, err
	}
	return s.game, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	s, err := gm.session(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return s.game.Snapshot(), nil
}

func (gm *GameManager) Select(gameID string, pos model.Position) (model.Frame, error) {
	s, err := gm.session(gameID)
	if err != nil {
		return model.Frame{}, err
	}
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.game.Select(pos); err != nil {
		return model.Frame{}, err
	}
	return gm.renderAndBroadcast(s), nil
}

func (gm *GameManager) MakeMove(gameID string, pos model.Position) (model.Frame, bool, error) {
	s, err := gm.session(gameID)
	if err != nil {
		return model.Frame{}, false, err
	}
	s.opMu.Lock()
	defer s.opMu.Unlock()

	moved, err := s.game.Move(pos)
	if err != nil {
		return model.Frame{}, false, err
	}
	frame := gm.renderAndBroadcast(s)
	if moved && gm.cfg.Debug {
		log.Printf("game %s: %s\n%s", gameID, frame.State.LastMove.To, render.Draw(frame.State))
	}
	return frame, moved, nil
}

func (gm *GameManager) Reset(gameID string) (model.Frame, error) {
	s, err := gm.session(gameID)
	if err != nil {
		return model.Frame{}, err
	}
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.game.Reset()
	return gm.renderAndBroadcast(s), nil
}

func (gm *GameManager) Draw(gameID string) (string, error) {
	s, err := gm.session(gameID)
	if err != nil {
		return "", err
	}
	return render.Draw(s.game.Snapshot()), nil
}

// EndGame tears a session down: pending animations are cancelled and every
// connection is closed.
func (gm *GameManager) EndGame(gameID string) error {
	gm.mu.Lock()
	s, exists := gm.sessions[gameID]
	delete(gm.sessions, gameID)
	gm.mu.Unlock()
	if !exists {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	s.mu.Lock()
	clients := s.clients
	s.clients = make(map[string]*client)
	s.mu.Unlock()
	for _, c := range clients {
		c.close()
	}
	return nil
}

func (gm *GameManager) RegisterConnection(gameID string, connID string, conn Conn) error {
	s, err := gm.session(gameID)
	if err != nil {
		return err
	}

	// a broadcast in flight must not land after the joining snapshot
	s.opMu.Lock()
	defer s.opMu.Unlock()

	c := newClient(connID, conn, gm.cfg.FrameInterval)
	s.mu.Lock()
	if old, exists := s.clients[connID]; exists {
		old.close()
	}
	s.clients[connID] = c
	s.mu.Unlock()
	log.Printf("registered connection %s for game %s", connID, gameID)

	// the joining renderer only needs the current board, not a replay of the
	// last animation
	return c.sendFrame(model.Frame{State: s.game.Snapshot()})
}

func (gm *GameManager) UnregisterConnection(gameID string, connID string) {
	s, err := gm.session(gameID)
	if err != nil {
		return
	}

	s.mu.Lock()
	c, exists := s.clients[connID]
	delete(s.clients, connID)
	s.mu.Unlock()
	if exists {
		c.anim.Cancel()
		log.Printf("unregistered connection %s for game %s", connID, gameID)
	}
}

// SendTo writes msg to a single connection through its serialised writer.
func (gm *GameManager) SendTo(gameID string, connID string, msg ws.Message) error {
	s, err := gm.session(gameID)
	if err != nil {
		return err
	}
	s.mu.RLock()
	c, exists := s.clients[connID]
	s.mu.RUnlock()
	if !exists {
		return fmt.Errorf("connection %s not registered", connID)
	}
	return c.send(msg)
}

// renderAndBroadcast runs one render pass and sends the frame to every
// renderer of the session. Callers hold s.opMu.
func (gm *GameManager) renderAndBroadcast(s *session) model.Frame {
	frame := s.game.Render()
	for _, c := range s.snapshotClients() {
		if err := c.sendFrame(frame); err != nil {
			log.Printf("failed to send state to client %s: %v", c.id, err)
			s.mu.Lock()
			if s.clients[c.id] == c {
				delete(s.clients, c.id)
			}
			s.mu.Unlock()
			c.anim.Cancel()
		}
	}
	return frame
}
