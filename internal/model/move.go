package model

// DefaultTileSize is the rendered width of one square in pixels.
const DefaultTileSize = 45

// Displacement is the offset, in rendering units, between where a piece was and
// where it now stands. Renderers draw the piece at its new square shifted by
// (right: X, top: Y) and ease it back to zero.
type Displacement struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (d Displacement) IsZero() bool {
	return d.X == 0 && d.Y == 0
}

// CalcAxis computes the animation offset between two notations of the same piece.
func CalcAxis(from, to Notation, tileSize int) (Displacement, error) {
	fromPlacement, err := Decode(from)
	if err != nil {
		return Displacement{}, err
	}
	toPlacement, err := Decode(to)
	if err != nil {
		return Displacement{}, err
	}
	// both positions were validated by Decode
	fromCoord, _ := ToCoord(fromPlacement.Position)
	toCoord, _ := ToCoord(toPlacement.Position)
	return Displacement{
		X: (toCoord.Col - fromCoord.Col) * tileSize,
		Y: (toCoord.Row - fromCoord.Row) * tileSize,
	}, nil
}

// SimpleMove records the squares of the last committed move for highlighting.
type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Animation is produced when a move is committed and consumed by exactly one
// render pass.
type Animation struct {
	Notation Notation     `json:"notation"`
	Axis     Displacement `json:"axis"`
}
