package model

import (
	"errors"
	"testing"
)

func TestCalcAxis(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		from, to Notation
		tile     int
		want     Displacement
	}{
		{name: "pawn two squares up", from: "wPe2", to: "wPe4", tile: DefaultTileSize, want: Displacement{X: 0, Y: 2 * DefaultTileSize}},
		{name: "black pawn two squares down", from: "bPe7", to: "bPe5", tile: 45, want: Displacement{X: 0, Y: -90}},
		{name: "knight hop", from: "wNb1", to: "wNc3", tile: 60, want: Displacement{X: 60, Y: 120}},
		{name: "rook slides left", from: "bRh8", to: "bRa8", tile: 10, want: Displacement{X: -70, Y: 0}},
		{name: "no move", from: "wKe1", to: "wKe1", tile: 45, want: Displacement{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := CalcAxis(tt.from, tt.to, tt.tile)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("unexpected result: got=%+v want=%+v", got, tt.want)
			}
		})
	}
}

func TestCalcAxisMalformed(t *testing.T) {
	t.Parallel()
	if _, err := CalcAxis("wPe2", "e4", DefaultTileSize); !errors.Is(err, ErrMalformedNotation) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrMalformedNotation)
	}
	if _, err := CalcAxis("", "wPe4", DefaultTileSize); !errors.Is(err, ErrMalformedNotation) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrMalformedNotation)
	}
}
