package search

import (
	"context"
	"time"

	"go.uber.org/atomic"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"

	"github.com/ravensworth/cinder/pkg/board"
	"github.com/ravensworth/cinder/pkg/eval"
)

const (
	nullMoveMinDepth  = 3
	nullMoveReduction = 2

	lmrMinDepth     = 3
	lmrMinMoveIndex = 4
	lmrReduction    = 1

	timeCheckInterval = 1000

	maxPly = 128
)

// Limits bounds a single Run. A zero value means "no limit" for that
// dimension; at least one of Depth or Movetime should normally be set.
type Limits struct {
	Depth    int
	Nodes    uint64
	Movetime time.Duration
}

// Stats summarizes one completed (or aborted) iterative-deepening pass, for
// both the UCI "info" stream and the engine's own Stats() accessor.
type Stats struct {
	Depth   int
	Score   eval.Score
	Nodes   uint64
	Elapsed time.Duration
	PV      []board.Move
}

// Searcher runs iterative-deepening negamax search over a single board,
// mutated in place by MakeMove/UnmakeMove. Per the engine's single-threaded
// cooperative model, a Searcher is never used by more than one goroutine at
// a time, though Stop may be called from another goroutine to interrupt it
// (the only concurrency the model allows).
type Searcher struct {
	Eval  eval.Evaluator
	TT    *Table
	Order *Ordering

	// Progress, if set, is called synchronously after every completed
	// iteration (the same "info depth=.." moment that's logged), letting a
	// caller stream principal variations to a UCI client as they arrive
	// instead of waiting for Run to return.
	Progress func(Stats)

	b        *board.Board
	nodes    uint64
	abort    atomic.Bool
	deadline time.Time
	useClock bool
}

// NewSearcher constructs a Searcher sharing the given evaluator and
// transposition table (the table persists across searches; the Ordering
// heuristics reset at the start of every Run).
func NewSearcher(e eval.Evaluator, tt *Table) *Searcher {
	return &Searcher{Eval: e, TT: tt, Order: NewOrdering()}
}

// Stop sets the sticky abort flag that the search checks at every node
// (the clock itself is polled every timeCheckInterval nodes). Matches the UCI "stop" command: an in-flight
// search halts promptly rather than running to completion.
func (s *Searcher) Stop() {
	s.abort.Store(true)
}

// Run iterates depth 1..limits.Depth (or until limits.Movetime/limits.Nodes
// is reached, or the search is Stopped), returning the best completed
// iteration's stats. A partially-searched deeper iteration is discarded,
// since its score cannot be trusted.
func (s *Searcher) Run(ctx context.Context, b *board.Board, limits Limits) Stats {
	s.b = b
	s.nodes = 0
	s.abort.Store(false)
	s.Order.Reset()
	s.TT.NewSearch()

	start := time.Now()
	s.useClock = limits.Movetime > 0
	if s.useClock {
		s.deadline = start.Add(limits.Movetime)
	}

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > maxPly {
		maxDepth = maxPly
	}

	var best Stats
	for depth := 1; depth <= maxDepth; depth++ {
		score, pv := s.negamaxRoot(ctx, depth)
		if s.abort.Load() {
			break
		}

		best = Stats{Depth: depth, Score: score, Nodes: s.nodes, Elapsed: time.Since(start), PV: pv}
		logw.Infof(ctx, "info depth=%v score=%v nodes=%v time=%v pv=%v", best.Depth, best.Score, best.Nodes, best.Elapsed, best.PV)
		if s.Progress != nil {
			s.Progress(best)
		}

		if score.IsMate() {
			break
		}
		if limits.Nodes > 0 && s.nodes >= limits.Nodes {
			break
		}
	}
	return best
}

func (s *Searcher) negamaxRoot(ctx context.Context, depth int) (eval.Score, []board.Move) {
	moves := s.b.LegalMoves()
	if len(moves) == 0 {
		if s.b.InCheck() {
			return eval.Mated(0), nil
		}
		return 0, nil
	}

	ttMove := board.Move{}
	if _, _, _, m, ok := s.TT.Read(s.b.Hash()); ok {
		ttMove = m
	}
	s.Order.Order(s.b.SideToMove(), moves, ttMove, 0)

	alpha, beta := eval.NegInf, eval.Inf
	var pv []board.Move
	var bestMove board.Move

	for _, m := range moves {
		s.b.MakeMove(m)
		score, rest := s.negamax(ctx, depth-1, 1, -beta, -alpha)
		score = -score
		s.b.UnmakeMove()

		if s.abort.Load() {
			return alpha, pv
		}

		if score > alpha {
			alpha = score
			bestMove = m
			pv = append([]board.Move{m}, rest...)
		}
	}

	s.TT.Write(s.b.Hash(), depth, alpha, ExactBound, bestMove)
	return alpha, pv
}

// negamax searches one node, returning the score for the side to move and
// its principal variation below this node.
func (s *Searcher) negamax(ctx context.Context, depth, ply int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	s.nodes++
	if s.nodes%timeCheckInterval == 0 && s.timeUp(ctx) {
		s.abort.Store(true)
	}
	if s.abort.Load() {
		return 0, nil
	}

	if ply > 0 && (s.b.IsFiftyMoveDraw() || s.b.IsInsufficientMaterial() || s.b.IsRepetitionDraw()) {
		return 0, nil
	}

	alphaOrig := alpha
	ttMove := board.Move{}
	if d, score, bound, m, ok := s.TT.Read(s.b.Hash()); ok {
		ttMove = m
		if d >= depth {
			switch bound {
			case ExactBound:
				return score, nil
			case LowerBound:
				if score > alpha {
					alpha = score
				}
			case UpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score, nil
			}
		}
	}

	if depth <= 0 {
		return s.quiescence(ctx, ply, alpha, beta)
	}

	inCheck := s.b.InCheck()

	if !inCheck && depth >= nullMoveMinDepth && ply > 0 && s.b.HasNonPawnMaterial(s.b.SideToMove()) {
		s.b.MakeNullMove()
		score, _ := s.negamax(ctx, depth-1-nullMoveReduction, ply+1, -beta, -beta+1)
		score = -score
		s.b.UnmakeNullMove()
		if !s.abort.Load() && score >= beta {
			return beta, nil
		}
	}

	moves := s.b.LegalMoves()
	if len(moves) == 0 {
		if inCheck {
			return eval.Mated(ply), nil
		}
		return 0, nil
	}
	s.Order.Order(s.b.SideToMove(), moves, ttMove, ply)

	var pv []board.Move
	var bestMove board.Move
	bound := UpperBound

	for i, m := range moves {
		reduction := 0
		if depth >= lmrMinDepth && i >= lmrMinMoveIndex && !inCheck && !m.IsCapture() && !m.IsPromotion() {
			reduction = lmrReduction
		}

		s.b.MakeMove(m)
		score, rest := s.negamax(ctx, depth-1-reduction, ply+1, -beta, -alpha)
		score = -score
		if reduction > 0 && score > alpha {
			// Re-search at full depth: the reduced search suggested this
			// move might actually beat alpha, so it deserves a real look.
			score, rest = s.negamax(ctx, depth-1, ply+1, -beta, -alpha)
			score = -score
		}
		s.b.UnmakeMove()

		if s.abort.Load() {
			return 0, nil
		}

		if score > alpha {
			alpha = score
			bestMove = m
			pv = append([]board.Move{m}, rest...)
		}
		if alpha >= beta {
			bound = LowerBound
			if !m.IsCapture() && !m.IsPromotion() {
				s.Order.RecordKiller(ply, m)
				s.Order.RecordHistory(s.b.SideToMove(), m, depth)
			}
			break
		}
	}

	if alpha > alphaOrig && bound != LowerBound {
		bound = ExactBound
	}
	s.TT.Write(s.b.Hash(), depth, alpha, bound, bestMove)
	return alpha, pv
}

func (s *Searcher) timeUp(ctx context.Context) bool {
	if contextx.IsCancelled(ctx) {
		return true
	}
	return s.useClock && time.Now().After(s.deadline)
}
