package search

import (
	"context"

	"github.com/ravensworth/cinder/pkg/board"
	"github.com/ravensworth/cinder/pkg/eval"
)

// quiescence extends the search along capture sequences past the nominal
// leaf depth, to avoid the horizon effect of evaluating a position mid
// capture exchange. It always has a "stand pat" option: not capturing, if
// the static evaluation already beats beta or improves on alpha -- unless
// the side to move is in check, in which case standing pat isn't legal and
// every evasion (not just captures) must be considered.
func (s *Searcher) quiescence(ctx context.Context, ply int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	s.nodes++
	if s.nodes%timeCheckInterval == 0 && s.timeUp(ctx) {
		s.abort.Store(true)
	}
	if s.abort.Load() {
		return 0, nil
	}

	inCheck := s.b.InCheck()

	var moves []board.Move
	if inCheck {
		moves = s.b.LegalMoves()
		if len(moves) == 0 {
			return eval.Mated(ply), nil
		}
	} else {
		standPat := s.Eval.Evaluate(s.b)
		if standPat >= beta {
			return beta, nil
		}
		if standPat > alpha {
			alpha = standPat
		}
		moves = s.b.LegalCaptures()
	}
	s.Order.Order(s.b.SideToMove(), moves, board.Move{}, 0)

	var pv []board.Move
	for _, m := range moves {
		s.b.MakeMove(m)
		score, rest := s.quiescence(ctx, ply+1, -beta, -alpha)
		score = -score
		s.b.UnmakeMove()

		if s.abort.Load() {
			return 0, nil
		}

		if score >= beta {
			return beta, nil
		}
		if score > alpha {
			alpha = score
			pv = append([]board.Move{m}, rest...)
		}
	}
	return alpha, pv
}
