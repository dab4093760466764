package model

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedNotation is returned when a notation does not follow the
	// {side}{piece}{position} layout. It signals a programming error upstream.
	ErrMalformedNotation = errors.New("malformed notation")
)

// Notation encodes a single placed piece as {side}{pieceCode}{position}, e.g. "wPe2".
type Notation string

const notationLength = 4

// Placement is a decoded notation.
type Placement struct {
	Side     Side      `json:"side"`
	Piece    PieceType `json:"piece"`
	Position Position  `json:"position"`
}

func (p Placement) Notation() Notation {
	return Encode(p.Side, p.Piece, p.Position)
}

// Encode concatenates the fields. Callers guarantee the charset.
func Encode(side Side, piece PieceType, pos Position) Notation {
	return Notation(string([]byte{byte(side), byte(piece)}) + string(pos))
}

// Decode parses a notation by its fixed character offsets.
func Decode(n Notation) (Placement, error) {
	if len(n) != notationLength {
		return Placement{}, fmt.Errorf("%w: %q has length %d", ErrMalformedNotation, string(n), len(n))
	}
	side, err := ParseSide(n[0])
	if err != nil {
		return Placement{}, fmt.Errorf("%w: %q: %v", ErrMalformedNotation, string(n), err)
	}
	piece, err := ParsePieceType(n[1])
	if err != nil {
		return Placement{}, fmt.Errorf("%w: %q: %v", ErrMalformedNotation, string(n), err)
	}
	pos := n.Position()
	if !pos.Valid() {
		return Placement{}, fmt.Errorf("%w: %q: bad square", ErrMalformedNotation, string(n))
	}
	return Placement{Side: side, Piece: piece, Position: pos}, nil
}

// Position returns the square substring without validating the rest of the token.
func (n Notation) Position() Position {
	if len(n) != notationLength {
		return ""
	}
	return Position(n[2:])
}

// Occupant reports whether a square holds a piece.
type Occupant interface {
	IsPlaced(pos Position) bool
}

// FindByPosition scans the notation list for the piece standing on pos. It is
// linear in the number of pieces; use Occupancy when many lookups are made
// against the same board.
func FindByPosition(notations []Notation, pos Position) (Notation, bool) {
	for _, n := range notations {
		if n.Position() == pos {
			return n, true
		}
	}
	return "", false
}

// Notations adapts a plain notation list to the Occupant interface.
type Notations []Notation

func (ns Notations) IsPlaced(pos Position) bool {
	_, ok := FindByPosition(ns, pos)
	return ok
}

// Occupancy indexes a notation list by square.
type Occupancy map[Position]Notation

func NewOccupancy(notations []Notation) Occupancy {
	occ := make(Occupancy, len(notations))
	for _, n := range notations {
		pos := n.Position()
		if _, exists := occ[pos]; exists {
			// first one wins, same as FindByPosition
			continue
		}
		occ[pos] = n
	}
	return occ
}

func (o Occupancy) Find(pos Position) (Notation, bool) {
	n, ok := o[pos]
	return n, ok
}

func (o Occupancy) IsPlaced(pos Position) bool {
	_, ok := o[pos]
	return ok
}
