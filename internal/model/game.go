package model

import (
	"fmt"
	"sync"
)

// Phase is where the board controller sits in its select / move cycle.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSelected  Phase = "selected"
	PhaseAnimating Phase = "animating"
)

// The Game struct owns a single board and is the only thing that mutates it
type Game struct {
	ID string
	mu sync.Mutex

	state   GameState
	movable MovablePath
	pending *Animation

	initial     []Notation
	tileSize    int
	enforceTurn bool
}

// GameState is the read model handed to renderers.
type GameState struct {
	Notations []Notation  `json:"notations"`
	Turn      Side        `json:"turn"`
	Selected  Position    `json:"selected"`
	Movable   []Position  `json:"movable"`
	Phase     Phase       `json:"phase"`
	LastMove  *SimpleMove `json:"lastMove"`
}

// Frame is the output of one render pass.
type Frame struct {
	State     GameState  `json:"state"`
	Animation *Animation `json:"animation"`
}

type gameConfig struct {
	notations   []Notation
	tileSize    int
	enforceTurn bool
}

type GameOption func(*gameConfig)

// WithNotations starts the game from a custom layout instead of the standard one.
func WithNotations(notations []Notation) GameOption {
	return func(cfg *gameConfig) {
		cfg.notations = notations
	}
}

func WithTileSize(size int) GameOption {
	return func(cfg *gameConfig) {
		cfg.tileSize = size
	}
}

// WithTurnEnforcement makes Select ignore pieces of the side not on move.
func WithTurnEnforcement(enforce bool) GameOption {
	return func(cfg *gameConfig) {
		cfg.enforceTurn = enforce
	}
}

func NewGame(id string, opts ...GameOption) (*Game, error) {
	cfg := &gameConfig{
		notations: InitialNotations(),
		tileSize:  DefaultTileSize,
	}
	for _, f := range opts {
		f(cfg)
	}
	occupied := make(map[Position]Notation, len(cfg.notations))
	for _, n := range cfg.notations {
		p, err := Decode(n)
		if err != nil {
			return nil, fmt.Errorf("invalid layout: %w", err)
		}
		if other, exists := occupied[p.Position]; exists {
			return nil, fmt.Errorf("invalid layout: %w: %s and %s share a square", ErrInvalidPosition, other, n)
		}
		occupied[p.Position] = n
	}

	initial := make([]Notation, len(cfg.notations))
	copy(initial, cfg.notations)
	g := &Game{
		ID:          id,
		initial:     initial,
		tileSize:    cfg.tileSize,
		enforceTurn: cfg.enforceTurn,
	}
	g.state = g.newGameState()
	return g, nil
}

func (g *Game) newGameState() GameState {
	notations := make([]Notation, len(g.initial))
	copy(notations, g.initial)
	return GameState{
		Notations: notations,
		Turn:      SideWhite,
		Selected:  "",
		Movable:   []Position{},
		Phase:     PhaseIdle,
		LastMove:  nil,
	}
}

// Select handles a click on pos. An occupied square becomes the selection and
// its movable squares are computed; an empty square, or the square already
// selected, clears the selection. A pending animation is left for Render.
func (g *Game) Select(pos Position) error {
	if !pos.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPosition, string(pos))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if pos == g.state.Selected {
		g.clearSelection()
		return nil
	}

	occ := NewOccupancy(g.state.Notations)
	n, ok := occ.Find(pos)
	if !ok {
		g.clearSelection()
		return nil
	}
	placement, err := Decode(n)
	if err != nil {
		return err
	}
	if g.enforceTurn && placement.Side != g.state.Turn {
		return nil
	}

	movement, err := placement.Piece.Movement()
	if err != nil {
		return err
	}
	movable, err := CalcMovablePath(movement, placement.Position, placement.Side)
	if err != nil {
		return err
	}

	g.movable = FilterBlockedPath(movable, movement.Specials(), occ)
	g.state.Selected = pos
	g.state.Movable = g.movable.Flatten()
	g.state.Phase = PhaseSelected
	return nil
}

// Move commits the selected piece to pos. It reports false, and only clears the
// selection, when pos is not one of the movable squares.
func (g *Game) Move(pos Position) (bool, error) {
	if !pos.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidPosition, string(pos))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	selected := g.state.Selected
	if selected == "" || !g.movable.Contains(pos) {
		g.clearSelection()
		return false, nil
	}

	next := make([]Notation, len(g.state.Notations))
	var animation *Animation
	for i, n := range g.state.Notations {
		next[i] = n
		if animation != nil || n.Position() != selected {
			continue
		}
		placement, err := Decode(n)
		if err != nil {
			return false, err
		}
		moved := Encode(placement.Side, placement.Piece, pos)
		axis, err := CalcAxis(n, moved, g.tileSize)
		if err != nil {
			return false, err
		}
		next[i] = moved
		animation = &Animation{Notation: moved, Axis: axis}
	}
	if animation == nil {
		// the selected piece vanished from under us
		g.clearSelection()
		return false, nil
	}

	g.state.Notations = next
	g.state.Turn = g.state.Turn.Opposite()
	g.state.LastMove = &SimpleMove{From: selected, To: pos}
	g.clearSelection()
	g.state.Phase = PhaseAnimating
	g.pending = animation
	return true, nil
}

// Reset puts the initial layout back and white on move.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = g.newGameState()
	g.movable = nil
	g.pending = nil
}

// Snapshot returns the current state without consuming a pending animation.
func (g *Game) Snapshot() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

// Render returns the state for one render pass together with the pending
// animation, then drops the animation so that no later pass replays it.
func (g *Game) Render() Frame {
	g.mu.Lock()
	defer g.mu.Unlock()

	frame := Frame{State: g.snapshot(), Animation: g.pending}
	g.pending = nil
	if g.state.Phase == PhaseAnimating {
		g.state.Phase = PhaseIdle
	}
	return frame
}

// Board decodes every placed piece.
func (g *Game) Board() []Placement {
	g.mu.Lock()
	defer g.mu.Unlock()

	placements := make([]Placement, 0, len(g.state.Notations))
	for _, n := range g.state.Notations {
		// NewGame validated the layout and Move only writes encoded notations
		p, _ := Decode(n)
		placements = append(placements, p)
	}
	return placements
}

func (g *Game) snapshot() GameState {
	st := g.state
	st.Notations = make([]Notation, len(g.state.Notations))
	copy(st.Notations, g.state.Notations)
	st.Movable = make([]Position, len(g.state.Movable))
	copy(st.Movable, g.state.Movable)
	if g.state.LastMove != nil {
		last := *g.state.LastMove
		st.LastMove = &last
	}
	return st
}

func (g *Game) clearSelection() {
	g.state.Selected = ""
	g.state.Movable = []Position{}
	g.state.Phase = PhaseIdle
	g.movable = nil
}
