package service

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/chessboard-backend/internal/animate"
	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/benbeisheim/chessboard-backend/internal/ws"
)

var errClientClosed = errors.New("client closed")

// Conn is the part of a websocket connection the service writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// client is one renderer attached to a game. Writes are serialised because the
// animation callback fires from its own goroutine.
type client struct {
	id   string
	conn Conn
	mu     sync.Mutex
	closed bool
	anim   *animate.Scheduler
}

func newClient(id string, conn Conn, frameInterval time.Duration) *client {
	return &client{
		id:   id,
		conn: conn,
		anim: animate.NewScheduler(frameInterval),
	}
}

func (c *client) send(msg ws.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClientClosed
	}
	return c.conn.WriteJSON(msg)
}

func (c *client) sendFrame(frame model.Frame) error {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, frame)
	if err != nil {
		return err
	}
	if err := c.send(msg); err != nil {
		return err
	}
	if frame.Animation != nil {
		notation := frame.Animation.Notation
		c.anim.Schedule(func() {
			end, err := ws.NewMessage(ws.MessageTypeAnimationEnd, ws.AnimationEndPayload{Notation: notation})
			if err != nil {
				return
			}
			if err := c.send(end); err != nil && !errors.Is(err, errClientClosed) {
				log.Printf("animation end to client %s: %v", c.id, err)
			}
		})
	}
	return nil
}

// close cancels the pending animation and drops the connection. A callback
// already past the scheduler when close runs finds the client closed and
// writes nothing.
func (c *client) close() {
	c.anim.Cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	_ = c.conn.Close()
}
