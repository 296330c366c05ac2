package eval

import "github.com/ravensworth/cinder/pkg/board"

const (
	doubledPenalty  Score = 15
	isolatedPenalty Score = 15
)

// passedBonusByRank is the endgame-weighted bonus for a passed pawn, indexed
// by rank from White's perspective (0 = White's back rank, 7 = Black's back
// rank). A Black passer is mirrored onto the same scale via 7-rank.
var passedBonusByRank = [8]Score{0, 5, 10, 20, 40, 60, 100, 200}

// pawnStructureScore scores doubled pawns, isolated pawns and passed pawns,
// White-positive, for both the middlegame and endgame tables. Passed pawns
// are weighted more heavily in the endgame value, where they matter most.
func pawnStructureScore(b *board.Board) (mg, eg Score) {
	var whiteFiles, blackFiles [board.NumFiles][]int

	for sq := board.Square(0); int(sq) < board.NumSquares; sq++ {
		p := b.Piece(sq)
		if p.Kind() != board.Pawn {
			continue
		}
		if p.Color() == board.White {
			whiteFiles[sq.File()] = append(whiteFiles[sq.File()], sq.Rank())
		} else {
			blackFiles[sq.File()] = append(blackFiles[sq.File()], sq.Rank())
		}
	}

	for file := 0; file < board.NumFiles; file++ {
		if n := len(whiteFiles[file]); n > 1 {
			mg -= doubledPenalty * Score(n-1)
			eg -= doubledPenalty * Score(n-1)
		}
		if n := len(blackFiles[file]); n > 1 {
			mg += doubledPenalty * Score(n-1)
			eg += doubledPenalty * Score(n-1)
		}

		if len(whiteFiles[file]) > 0 && !hasAdjacentPawns(whiteFiles, file) {
			mg -= isolatedPenalty * Score(len(whiteFiles[file]))
			eg -= isolatedPenalty * Score(len(whiteFiles[file]))
		}
		if len(blackFiles[file]) > 0 && !hasAdjacentPawns(blackFiles, file) {
			mg += isolatedPenalty * Score(len(blackFiles[file]))
			eg += isolatedPenalty * Score(len(blackFiles[file]))
		}
	}

	for file := 0; file < board.NumFiles; file++ {
		for _, rank := range whiteFiles[file] {
			if isPassed(blackFiles, file, rank, +1) {
				bonus := passedBonusByRank[clampIndex(rank, len(passedBonusByRank))]
				mg += bonus / 2
				eg += bonus
			}
		}
		for _, rank := range blackFiles[file] {
			if isPassed(whiteFiles, file, rank, -1) {
				bonus := passedBonusByRank[clampIndex(7-rank, len(passedBonusByRank))]
				mg -= bonus / 2
				eg -= bonus
			}
		}
	}
	return mg, eg
}

func hasAdjacentPawns(files [board.NumFiles][]int, file int) bool {
	if file > 0 && len(files[file-1]) > 0 {
		return true
	}
	if file < board.NumFiles-1 && len(files[file+1]) > 0 {
		return true
	}
	return false
}

// isPassed reports whether a pawn on (file, rank) moving in dir (+1 for
// White, -1 for Black) has no enemy pawn on its own file or an adjacent
// file that can ever block or capture it on the way to promotion.
func isPassed(enemyFiles [board.NumFiles][]int, file, rank, dir int) bool {
	for df := -1; df <= 1; df++ {
		f := file + df
		if f < 0 || f >= board.NumFiles {
			continue
		}
		for _, r := range enemyFiles[f] {
			if dir > 0 && r > rank {
				return false
			}
			if dir < 0 && r < rank {
				return false
			}
		}
	}
	return true
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
