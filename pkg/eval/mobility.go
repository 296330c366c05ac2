package eval

import "github.com/ravensworth/cinder/pkg/board"

// mobilityCounts returns the legal move count for each side.
func mobilityCounts(b *board.Board) (white, black int) {
	white = len(b.LegalMovesFor(board.White))
	black = len(b.LegalMovesFor(board.Black))
	return white, black
}
