package search

import (
	"sort"

	"github.com/ravensworth/cinder/pkg/board"
	"github.com/ravensworth/cinder/pkg/eval"
)

const (
	ttMoveScore      = 1_000_000
	captureBaseScore = 200_000
	promotionScore   = 90_000

	// historyCap must stay below killerScore's lower slot so a saturated
	// quiet-move history entry can never outrank a killer, a promotion,
	// a capture or the TT move.
	historyCap   = 60_000
	historyDecay = 4 // scale by (historyDecay-1)/historyDecay on overflow: the *0.75 decay
)

// killerScore holds the ordering scores for the two killer-move slots.
// Not a const: Go doesn't allow array composite literals in a const block.
var killerScore = [2]int{80_000, 79_000}

// Ordering tracks the per-search move-ordering heuristics that outlive a
// single node: killer moves (two quiet moves per ply that caused a cutoff)
// and the history table (quiet from/to squares that have historically
// caused cutoffs, weighted by the depth at which they did).
type Ordering struct {
	killers [][2]board.Move
	history [board.NumColors][64][64]int
}

func NewOrdering() *Ordering {
	return &Ordering{}
}

// Reset clears killers and history for a fresh search.
func (o *Ordering) Reset() {
	o.killers = nil
	o.history = [board.NumColors][64][64]int{}
}

func (o *Ordering) killersAt(ply int) [2]board.Move {
	if ply >= len(o.killers) {
		return [2]board.Move{}
	}
	return o.killers[ply]
}

// RecordKiller records a quiet move that caused a beta cutoff at ply.
func (o *Ordering) RecordKiller(ply int, m board.Move) {
	for len(o.killers) <= ply {
		o.killers = append(o.killers, [2]board.Move{})
	}
	if o.killers[ply][0].Equals(m) {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

// RecordHistory rewards a quiet move that caused a beta cutoff at depth.
func (o *Ordering) RecordHistory(c board.Color, m board.Move, depth int) {
	v := &o.history[c][m.From][m.To]
	*v += depth * depth
	if *v > historyCap {
		for f := 0; f < 64; f++ {
			for t := 0; t < 64; t++ {
				o.history[c][f][t] = o.history[c][f][t] * (historyDecay - 1) / historyDecay
			}
		}
	}
}

// score ranks a move for ordering purposes: higher searches first. The TT
// move (if any) is tried first, then captures by MVV-LVA, then promotions,
// then killer moves, then quiet moves by history score.
func (o *Ordering) score(mover board.Color, m board.Move, ttMove board.Move, ply int) int {
	if !ttMove.Equals(board.Move{}) && m.Equals(ttMove) {
		return ttMoveScore
	}
	if m.IsCapture() {
		victim := eval.NominalValue(m.CapturedPiece.Kind())
		attacker := eval.NominalValue(m.MovingPiece.Kind())
		return captureBaseScore + 10*int(victim) - int(attacker)
	}
	if m.IsPromotion() {
		return promotionScore + int(eval.NominalValue(m.Promotion))
	}
	killers := o.killersAt(ply)
	if m.Equals(killers[0]) {
		return killerScore[0]
	}
	if m.Equals(killers[1]) {
		return killerScore[1]
	}
	return o.history[mover][m.From][m.To]
}

type scoredMove struct {
	move  board.Move
	score int
}

// Order sorts moves in place, best-first, for the given node.
func (o *Ordering) Order(mover board.Color, moves []board.Move, ttMove board.Move, ply int) {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, score: o.score(mover, m, ttMove, ply)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	for i, sm := range scored {
		moves[i] = sm.move
	}
}
