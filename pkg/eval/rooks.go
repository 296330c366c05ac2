package eval

import "github.com/ravensworth/cinder/pkg/board"

const (
	rookOpenFileBonus     Score = 25
	rookSemiOpenFileBonus Score = 15
	rookSeventhRankBonus  Score = 30
)

// rookPlacementScore rewards rooks on open or semi-open files and on the
// seventh rank (second, from Black's perspective), White-positive.
func rookPlacementScore(b *board.Board) (mg, eg Score) {
	var whitePawnFiles, blackPawnFiles [board.NumFiles]bool
	for sq := board.Square(0); int(sq) < board.NumSquares; sq++ {
		p := b.Piece(sq)
		if p.Kind() != board.Pawn {
			continue
		}
		if p.Color() == board.White {
			whitePawnFiles[sq.File()] = true
		} else {
			blackPawnFiles[sq.File()] = true
		}
	}

	for sq := board.Square(0); int(sq) < board.NumSquares; sq++ {
		p := b.Piece(sq)
		if p.Kind() != board.Rook {
			continue
		}
		file := sq.File()
		var bonus Score
		switch {
		case !whitePawnFiles[file] && !blackPawnFiles[file]:
			bonus = rookOpenFileBonus
		case p.Color() == board.White && !whitePawnFiles[file]:
			bonus = rookSemiOpenFileBonus
		case p.Color() == board.Black && !blackPawnFiles[file]:
			bonus = rookSemiOpenFileBonus
		}

		seventh := (p.Color() == board.White && sq.Rank() == 6) || (p.Color() == board.Black && sq.Rank() == 1)
		if seventh {
			bonus += rookSeventhRankBonus
		}

		if p.Color() == board.White {
			mg += bonus
			eg += bonus
		} else {
			mg -= bonus
			eg -= bonus
		}
	}
	return mg, eg
}
