// Package render draws a board state for terminals. It consumes exactly what a
// browser renderer gets: the notation list, the selection and the movable set.
package render

import (
	"strings"

	"github.com/fatih/color"

	"github.com/benbeisheim/chessboard-backend/internal/model"
)

var (
	lightCell    = color.New(color.FgBlack, color.BgHiWhite)
	darkCell     = color.New(color.FgBlack, color.BgGreen)
	selectedCell = color.New(color.FgBlack, color.BgYellow)
	movableCell  = color.New(color.FgBlack, color.BgCyan)
	label        = color.New(color.Bold)
)

var symbols = map[model.Side]map[model.PieceType]string{
	model.SideWhite: {
		model.Pawn: "♙", model.Rook: "♖", model.Bishop: "♗", model.Knight: "♘", model.Queen: "♕", model.King: "♔",
	},
	model.SideBlack: {
		model.Pawn: "♟", model.Rook: "♜", model.Bishop: "♝", model.Knight: "♞", model.Queen: "♛", model.King: "♚",
	},
}

// Symbol returns the unicode glyph for a piece.
func Symbol(s model.Side, p model.PieceType) string {
	return symbols[s][p]
}

// Draw renders the state with rank 8 on top. Movable squares without a piece
// are marked with a dot.
func Draw(st model.GameState) string {
	occ := model.NewOccupancy(st.Notations)
	movable := make(map[model.Position]bool, len(st.Movable))
	for _, p := range st.Movable {
		movable[p] = true
	}

	builder := strings.Builder{}
	for _, rank := range model.Ranks {
		_, _ = builder.WriteString(label.Sprintf(" %c ", rank))
		for _, file := range model.Files {
			pos := model.Position([]byte{file, rank})
			sym := " "
			if n, ok := occ.Find(pos); ok {
				if p, err := model.Decode(n); err == nil {
					sym = Symbol(p.Side, p.Piece)
				}
			} else if movable[pos] {
				sym = "·"
			}

			c, _ := model.ToCoord(pos)
			cell := lightCell
			switch {
			case pos == st.Selected:
				cell = selectedCell
			case movable[pos]:
				cell = movableCell
			case (c.Col+c.Row)%2 == 0:
				cell = darkCell
			}
			_, _ = builder.WriteString(cell.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for _, file := range model.Files {
		_, _ = builder.WriteString(label.Sprintf(" %c ", file))
	}
	_, _ = builder.WriteString("\n")
	_, _ = builder.WriteString(label.Sprintf(" %s to move", st.Turn.Name()))
	return builder.String()
}
