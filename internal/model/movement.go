package model

// Special flags alter how a movement rule is generated or filtered.
type Special uint8

const (
	// SpecialJumpOver lets a piece ignore pieces standing between it and its target.
	SpecialJumpOver Special = 1 << iota
	// SpecialHomeRankDouble keeps only the first step of each direction unless
	// the piece is on its side's home rank.
	SpecialHomeRankDouble
)

func (s Special) Has(flag Special) bool {
	return s&flag != 0
}

func (s Special) Names() []string {
	names := []string{}
	if s.Has(SpecialJumpOver) {
		names = append(names, "jumpover")
	}
	if s.Has(SpecialHomeRankDouble) {
		names = append(names, "homerankdouble")
	}
	return names
}

// Unbounded marks a direction that continues until the board edge.
const Unbounded = 0

// Direction is a ray of repeated unit steps. Steps are side-relative: DRow is
// "forward" for the moving side and is mirrored for black.
type Direction struct {
	DCol  int
	DRow  int
	Range int
}

func (d Direction) limit() int {
	if d.Range == Unbounded {
		return BoardSize - 1
	}
	return d.Range
}

// Movement describes how one piece type moves. Values are shared by every piece
// of that type and must be treated as read-only.
type Movement struct {
	directions []Direction
	specials   Special
}

func (m Movement) Directions() []Direction {
	out := make([]Direction, len(m.directions))
	copy(out, m.directions)
	return out
}

func (m Movement) Specials() Special {
	return m.specials
}

var (
	orthogonal = []Direction{
		{DCol: 0, DRow: 1}, {DCol: 1, DRow: 0}, {DCol: 0, DRow: -1}, {DCol: -1, DRow: 0},
	}
	diagonal = []Direction{
		{DCol: 1, DRow: 1}, {DCol: 1, DRow: -1}, {DCol: -1, DRow: -1}, {DCol: -1, DRow: 1},
	}

	movementPawn = Movement{
		directions: []Direction{{DCol: 0, DRow: 1, Range: 2}},
		specials:   SpecialHomeRankDouble,
	}
	movementRook   = Movement{directions: orthogonal}
	movementBishop = Movement{directions: diagonal}
	movementQueen  = Movement{directions: append(append([]Direction{}, orthogonal...), diagonal...)}
	movementKing   = Movement{directions: withRange(append(append([]Direction{}, orthogonal...), diagonal...), 1)}
	movementKnight = Movement{
		directions: withRange([]Direction{
			{DCol: 1, DRow: 2}, {DCol: 2, DRow: 1}, {DCol: 2, DRow: -1}, {DCol: 1, DRow: -2},
			{DCol: -1, DRow: -2}, {DCol: -2, DRow: -1}, {DCol: -2, DRow: 1}, {DCol: -1, DRow: 2},
		}, 1),
		specials: SpecialJumpOver,
	}
)

func withRange(dirs []Direction, r int) []Direction {
	for i := range dirs {
		dirs[i].Range = r
	}
	return dirs
}

// Movement returns the rule shared by every piece of type p.
func (p PieceType) Movement() (Movement, error) {
	switch p {
	case Pawn:
		return movementPawn, nil
	case Rook:
		return movementRook, nil
	case Bishop:
		return movementBishop, nil
	case Knight:
		return movementKnight, nil
	case Queen:
		return movementQueen, nil
	case King:
		return movementKing, nil
	}
	return Movement{}, ErrUnknownPiece
}

// MovablePath holds one ordered slice of target squares per direction, nearest first.
type MovablePath [][]Position

func (mp MovablePath) Flatten() []Position {
	out := []Position{}
	for _, dir := range mp {
		out = append(out, dir...)
	}
	return out
}

func (mp MovablePath) Contains(pos Position) bool {
	for _, dir := range mp {
		for _, p := range dir {
			if p == pos {
				return true
			}
		}
	}
	return false
}

func (mp MovablePath) Len() int {
	n := 0
	for _, dir := range mp {
		n += len(dir)
	}
	return n
}

// CalcMovablePath expands a movement rule from pos into candidate squares,
// ignoring occupancy. A direction stops at the first step that leaves the board.
func CalcMovablePath(m Movement, pos Position, side Side) (MovablePath, error) {
	origin, err := ToCoord(pos)
	if err != nil {
		return nil, err
	}
	if side != SideWhite && side != SideBlack {
		return nil, ErrUnknownSide
	}
	onHomeRow := origin.Row == side.homeRow()

	movable := make(MovablePath, 0, len(m.directions))
	for _, d := range m.directions {
		limit := d.limit()
		if m.specials.Has(SpecialHomeRankDouble) && !onHomeRow {
			limit = 1
		}
		targets := []Position{}
		cur := origin
		for step := 0; step < limit; step++ {
			cur = cur.add(d.DCol, d.DRow*side.forward())
			target, ok := ToPosition(cur.Col, cur.Row)
			if !ok {
				break
			}
			targets = append(targets, target)
		}
		movable = append(movable, targets)
	}
	return movable, nil
}
