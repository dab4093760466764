package model

// FilterBlockedPath prunes candidate squares against the pieces on the board.
//
// Sliding pieces lose every square from the first occupied one onwards, the
// occupied square included. Pieces with SpecialJumpOver keep every empty
// square and drop only the occupied ones. Captures are not produced here.
func FilterBlockedPath(movable MovablePath, specials Special, occ Occupant) MovablePath {
	filtered := make(MovablePath, 0, len(movable))
	for _, dir := range movable {
		if specials.Has(SpecialJumpOver) {
			filtered = append(filtered, removePlaced(dir, occ))
		} else {
			filtered = append(filtered, truncateBlocked(dir, occ))
		}
	}
	return filtered
}

func truncateBlocked(dir []Position, occ Occupant) []Position {
	out := []Position{}
	for _, pos := range dir {
		if occ.IsPlaced(pos) {
			break
		}
		out = append(out, pos)
	}
	return out
}

func removePlaced(dir []Position, occ Occupant) []Position {
	out := []Position{}
	for _, pos := range dir {
		if !occ.IsPlaced(pos) {
			out = append(out, pos)
		}
	}
	return out
}
