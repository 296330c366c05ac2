// Package eval contains static position evaluation: material, piece-square
// tables, pawn structure, bishop pair, rook placement and mobility, tapered
// between middlegame and endgame by remaining non-pawn material.
package eval

import (
	"github.com/ravensworth/cinder/pkg/board"
)

// Evaluator is a static position evaluator.
type Evaluator interface {
	// Evaluate returns the position score in centipawns, from the
	// perspective of the side to move: positive favors the mover.
	Evaluate(b *board.Board) Score
}

// Tapered is the engine's default evaluator: a material + piece-square +
// pawn-structure + mobility evaluation, linearly tapered between
// middlegame and endgame piece-square tables by remaining material.
type Tapered struct{}

// NominalValue is the absolute material value of a piece kind, used by move
// ordering (MVV-LVA) as well as by the evaluator itself.
func NominalValue(k board.Kind) Score {
	switch k {
	case board.Pawn:
		return 100
	case board.Knight:
		return 320
	case board.Bishop:
		return 330
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 20000
	default:
		return 0
	}
}

// phaseWeight is how much each piece kind contributes to the game phase
// counter (24 at the start of the game, 0 with only kings and pawns left).
func phaseWeight(k board.Kind) int {
	switch k {
	case board.Knight, board.Bishop:
		return 1
	case board.Rook:
		return 2
	case board.Queen:
		return 4
	default:
		return 0
	}
}

const maxPhase = 24

func (Tapered) Evaluate(b *board.Board) Score {
	var mg, eg Score
	var phase int
	var whiteBishops, blackBishops int
	var whiteMobility, blackMobility int

	for sq := board.Square(0); int(sq) < board.NumSquares; sq++ {
		p := b.Piece(sq)
		if p.IsEmpty() {
			continue
		}
		k := p.Kind()
		phase += phaseWeight(k)

		m, e := pieceSquareValue(k, sq, p.Color())
		material := NominalValue(k)
		if p.Color() == board.White {
			mg += material + m
			eg += material + e
			if k == board.Bishop {
				whiteBishops++
			}
		} else {
			mg -= material + m
			eg -= material + e
			if k == board.Bishop {
				blackBishops++
			}
		}
	}

	if whiteBishops >= 2 {
		mg += bishopPairBonus
		eg += bishopPairBonus
	}
	if blackBishops >= 2 {
		mg -= bishopPairBonus
		eg -= bishopPairBonus
	}

	pawnMG, pawnEG := pawnStructureScore(b)
	mg += pawnMG
	eg += pawnEG

	rookMG, rookEG := rookPlacementScore(b)
	mg += rookMG
	eg += rookEG

	whiteMobility, blackMobility = mobilityCounts(b)
	mobility := Score(whiteMobility-blackMobility) * mobilityWeight
	mg += mobility
	eg += mobility

	if phase > maxPhase {
		phase = maxPhase
	}
	total := (mg*Score(phase) + eg*Score(maxPhase-phase)) / maxPhase

	if b.SideToMove() == board.Black {
		total = -total
	}
	return total
}

const (
	bishopPairBonus Score = 50
	mobilityWeight  Score = 3
)
