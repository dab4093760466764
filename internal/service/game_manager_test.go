package service

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/benbeisheim/chessboard-backend/internal/ws"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
	closed   bool
	fail     bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, v.(ws.Message))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) types() []ws.MessageType {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []ws.MessageType{}
	for _, m := range c.messages {
		out = append(out, m.Type)
	}
	return out
}

func (c *fakeConn) last() ws.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messages[len(c.messages)-1]
}

func newTestService(t *testing.T) (*GameService, string) {
	t.Helper()
	cfg := DefaultManagerConfig()
	cfg.FrameInterval = 2 * time.Millisecond
	gs := NewGameService(NewGameManager(cfg))
	id, err := gs.CreateGame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return gs, id
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestGameNotFound(t *testing.T) {
	t.Parallel()
	gs, _ := newTestService(t)

	if _, err := gs.GetGameState("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrGameNotFound)
	}
	if _, err := gs.Select("missing", "e2"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrGameNotFound)
	}
	if err := gs.EndGame("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrGameNotFound)
	}
	if gs.GameExists("missing") {
		t.Error("missing game reported as existing")
	}
}

func TestCreateGameTwice(t *testing.T) {
	t.Parallel()
	gm := NewGameManager(DefaultManagerConfig())
	if err := gm.CreateGame("one"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := gm.CreateGame("one"); !errors.Is(err, ErrGameExists) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrGameExists)
	}
}

func TestMoveBroadcastsFrameAndAnimationEnd(t *testing.T) {
	t.Parallel()
	gs, id := newTestService(t)
	conn := &fakeConn{}
	if err := gs.RegisterConnection(id, "c1", conn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := gs.Select(id, "e2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	frame, moved, err := gs.HandleMove(id, "e4")
	if err != nil || !moved {
		t.Fatalf("unexpected result: moved=%v err=%v", moved, err)
	}
	want := &model.Animation{Notation: "wPe4", Axis: model.Displacement{X: 0, Y: 2 * model.DefaultTileSize}}
	if diff := cmp.Diff(want, frame.Animation); diff != "" {
		t.Errorf("animation mismatch (-want +got):\n%s", diff)
	}

	waitFor(t, func() bool { return len(conn.types()) == 4 })
	wantTypes := []ws.MessageType{
		ws.MessageTypeGameState, // on register
		ws.MessageTypeGameState, // select
		ws.MessageTypeGameState, // move
		ws.MessageTypeAnimationEnd,
	}
	if diff := cmp.Diff(wantTypes, conn.types()); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}

	var end ws.AnimationEndPayload
	if err := json.Unmarshal(conn.last().Payload, &end); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end.Notation != "wPe4" {
		t.Errorf("unexpected notation: got=%s want=wPe4", end.Notation)
	}

	st, _ := gs.GetGameState(id)
	if st.Turn != model.SideBlack || st.Phase != model.PhaseIdle {
		t.Errorf("unexpected state: %+v", st)
	}
}

func TestRejectedMoveDoesNotAnimate(t *testing.T) {
	t.Parallel()
	gs, id := newTestService(t)
	conn := &fakeConn{}
	_ = gs.RegisterConnection(id, "c1", conn)

	_, _ = gs.Select(id, "e2")
	frame, moved, err := gs.HandleMove(id, "e6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if moved || frame.Animation != nil {
		t.Errorf("unexpected move: moved=%v frame=%+v", moved, frame)
	}
	time.Sleep(10 * time.Millisecond)
	if got := len(conn.types()); got != 3 {
		t.Errorf("unexpected message count: got=%d want=3", got)
	}
}

func TestEndGameClosesConnections(t *testing.T) {
	t.Parallel()
	gs, id := newTestService(t)
	conn := &fakeConn{}
	_ = gs.RegisterConnection(id, "c1", conn)

	_, _ = gs.Select(id, "g1")
	_, _, _ = gs.HandleMove(id, "f3")
	if err := gs.EndGame(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	conn.mu.Lock()
	closed := conn.closed
	conn.mu.Unlock()
	if !closed {
		t.Error("connection left open")
	}
	time.Sleep(10 * time.Millisecond)
	for _, typ := range conn.types() {
		if typ == ws.MessageTypeAnimationEnd {
			t.Error("animation callback ran after teardown")
		}
	}
	if gs.GameExists(id) {
		t.Error("game still registered")
	}
}

func TestBrokenConnectionIsDropped(t *testing.T) {
	t.Parallel()
	gs, id := newTestService(t)
	broken := &fakeConn{}
	_ = gs.RegisterConnection(id, "broken", broken)
	broken.mu.Lock()
	broken.fail = true
	broken.mu.Unlock()

	if _, err := gs.Select(id, "e2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, _ := gs.gameManager.session(id)
	if got := len(s.snapshotClients()); got != 0 {
		t.Errorf("broken client kept: %d clients", got)
	}
}

func TestDraw(t *testing.T) {
	t.Parallel()
	gs, id := newTestService(t)
	out, err := gs.Draw(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == "" {
		t.Error("empty drawing")
	}
}

func (c *fakeConn) lastFrame(t *testing.T) model.Frame {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Type != ws.MessageTypeGameState {
			continue
		}
		var frame model.Frame
		if err := json.Unmarshal(c.messages[i].Payload, &frame); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return frame
	}
	t.Fatal("no gameState received")
	return model.Frame{}
}

func TestConcurrentClientsEndOnCurrentState(t *testing.T) {
	t.Parallel()
	gs, id := newTestService(t)
	conns := []*fakeConn{{}, {}, {}}
	for i, conn := range conns {
		if err := gs.RegisterConnection(id, string(rune('a'+i)), conn); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	intents := [][2]model.Position{
		{"e2", "e4"}, {"e7", "e5"}, {"g1", "f3"}, {"b8", "c6"}, {"e4", "e3"}, {"f3", "g1"},
	}
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				in := intents[(i+w)%len(intents)]
				_, _ = gs.Select(id, in[0])
				if i%3 != 0 {
					_, _, _ = gs.HandleMove(id, in[1])
				}
			}
		}()
	}
	wg.Wait()

	want, err := gs.GetGameState(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the phase moves on once a render pass consumed the animation
	want.Phase = ""
	for i, conn := range conns {
		got := conn.lastFrame(t).State
		got.Phase = ""
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("client %d ended on a stale frame (-want +got):\n%s", i, diff)
		}
	}
}

func TestClosedClientWritesNothing(t *testing.T) {
	t.Parallel()
	conn := &fakeConn{}
	c := newClient("c1", conn, time.Millisecond)
	c.close()

	msg, err := ws.NewMessage(ws.MessageTypeAnimationEnd, ws.AnimationEndPayload{Notation: "wPe4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.send(msg); !errors.Is(err, errClientClosed) {
		t.Errorf("unexpected error: got=%v want=%v", err, errClientClosed)
	}
	if got := len(conn.types()); got != 0 {
		t.Errorf("unexpected message count: got=%d want=0", got)
	}
}
