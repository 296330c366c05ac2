package board

// MakeNullMove passes the turn without moving a piece -- the search's
// null-move pruning heuristic. The en passant target is cleared, since an
// en passant capture must happen on the very next move or not at all.
func (b *Board) MakeNullMove() {
	b.nullHistory = append(b.nullHistory, nullUndo{ep: b.enPassantTarget})
	b.setEnPassantTarget(NoSquare)
	b.hash ^= b.zt.side
	b.sideToMove = b.sideToMove.Opponent()
}

// UnmakeNullMove reverses the most recent MakeNullMove.
func (b *Board) UnmakeNullMove() {
	n := len(b.nullHistory) - 1
	u := b.nullHistory[n]
	b.nullHistory = b.nullHistory[:n]

	b.sideToMove = b.sideToMove.Opponent()
	b.hash ^= b.zt.side
	b.setEnPassantTarget(u.ep)
}
