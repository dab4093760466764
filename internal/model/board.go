package model

import (
	"errors"
	"fmt"
)

const (
	// BoardSize is the number of files and ranks on the board.
	BoardSize = 8
)

var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrUnknownPiece    = errors.New("unknown piece")
	ErrUnknownSide     = errors.New("unknown side")
)

type Side byte

const (
	SideWhite Side = 'w'
	SideBlack Side = 'b'
)

func ParseSide(c byte) (Side, error) {
	switch s := Side(c); s {
	case SideWhite, SideBlack:
		return s, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSide, c)
}

func (s Side) String() string {
	return string([]byte{byte(s)})
}

func (s Side) Name() string {
	switch s {
	case SideWhite:
		return "white"
	case SideBlack:
		return "black"
	}
	return ""
}

func (s Side) Opposite() Side {
	if s == SideWhite {
		return SideBlack
	}
	return SideWhite
}

// forward is the row delta a pawn of this side advances by.
func (s Side) forward() int {
	if s == SideBlack {
		return -1
	}
	return 1
}

func (s Side) homeRow() int {
	if s == SideBlack {
		return BoardSize - 2
	}
	return 1
}

// MarshalText lets Side travel as "w" / "b" in JSON.
func (s Side) MarshalText() ([]byte, error) {
	return []byte{byte(s)}, nil
}

func (s *Side) UnmarshalText(b []byte) error {
	if len(b) != 1 {
		return fmt.Errorf("%w: %q", ErrUnknownSide, b)
	}
	parsed, err := ParseSide(b[0])
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type PieceType byte

const (
	Pawn   PieceType = 'P'
	Rook   PieceType = 'R'
	Bishop PieceType = 'B'
	Knight PieceType = 'N'
	Queen  PieceType = 'Q'
	King   PieceType = 'K'
)

// PieceTypes lists every piece type in a stable order.
var PieceTypes = []PieceType{Pawn, Rook, Bishop, Knight, Queen, King}

func ParsePieceType(c byte) (PieceType, error) {
	switch p := PieceType(c); p {
	case Pawn, Rook, Bishop, Knight, Queen, King:
		return p, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPiece, c)
}

func (p PieceType) String() string {
	return string([]byte{byte(p)})
}

func (p PieceType) Name() string {
	switch p {
	case Pawn:
		return "pawn"
	case Rook:
		return "rook"
	case Bishop:
		return "bishop"
	case Knight:
		return "knight"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return ""
}

func (p PieceType) MarshalText() ([]byte, error) {
	return []byte{byte(p)}, nil
}

func (p *PieceType) UnmarshalText(b []byte) error {
	if len(b) != 1 {
		return fmt.Errorf("%w: %q", ErrUnknownPiece, b)
	}
	parsed, err := ParsePieceType(b[0])
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Position is a square label such as "e4": a file letter followed by a rank digit.
type Position string

// Coord is a 0-based (column, row) pair. Column 0 is file a, row 0 is rank 1.
type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (c Coord) add(col, row int) Coord {
	return Coord{Col: c.Col + col, Row: c.Row + row}
}

func (c Coord) inBounds() bool {
	return c.Col >= 0 && c.Col < BoardSize && c.Row >= 0 && c.Row < BoardSize
}

func (p Position) Valid() bool {
	_, err := ToCoord(p)
	return err == nil
}

// ToCoord converts a position label into board coordinates.
func ToCoord(p Position) (Coord, error) {
	if len(p) != 2 {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidPosition, string(p))
	}
	c := Coord{Col: int(p[0]) - 'a', Row: int(p[1]) - '1'}
	if !c.inBounds() {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidPosition, string(p))
	}
	return c, nil
}

// ToPosition converts coordinates back into a label. ok is false when the
// coordinates fall off the board; move generation probes past the edge all the
// time, so this is a normal result and not an error.
func ToPosition(col, row int) (Position, bool) {
	c := Coord{Col: col, Row: row}
	if !c.inBounds() {
		return "", false
	}
	return Position([]byte{byte('a' + col), byte('1' + row)}), true
}

// Files and Ranks in rendering order: files left to right, ranks top to bottom.
var (
	Files = []byte("abcdefgh")
	Ranks = []byte("87654321")
)

var backRank = []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// InitialNotations returns the 32 piece standard starting layout. A fresh slice
// is returned on every call.
func InitialNotations() []Notation {
	notations := make([]Notation, 0, 4*BoardSize)
	for i, p := range backRank {
		notations = append(notations, Encode(SideBlack, p, Position([]byte{Files[i], '8'})))
	}
	for _, f := range Files {
		notations = append(notations, Encode(SideBlack, Pawn, Position([]byte{f, '7'})))
	}
	for _, f := range Files {
		notations = append(notations, Encode(SideWhite, Pawn, Position([]byte{f, '2'})))
	}
	for i, p := range backRank {
		notations = append(notations, Encode(SideWhite, p, Position([]byte{Files[i], '1'})))
	}
	return notations
}
