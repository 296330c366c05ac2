// Package engine wires the board, evaluator, search and opening book into
// the public contract an external driver (the UCI-style adapter, a CLI, a
// test harness) uses to play a game: reset, load a position, apply a move,
// ask for the best move, or read back a static evaluation.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"

	"github.com/ravensworth/cinder/pkg/board"
	"github.com/ravensworth/cinder/pkg/board/fen"
	"github.com/ravensworth/cinder/pkg/book"
	"github.com/ravensworth/cinder/pkg/eval"
	"github.com/ravensworth/cinder/pkg/search"
)

var version = build.NewVersion(0, 1, 0)

// IllegalMoveError reports a well-formed move that is not legal in the
// engine's current position. ApplyMove returns this rather than mutating
// the board, per the "illegal moves return a falsey status without
// mutation" rule.
type IllegalMoveError struct {
	Move string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move: %v", e.Move)
}

// Options are engine creation/runtime options.
type Options struct {
	// Depth is the default search depth limit. Zero means no limit
	// (bounded instead by the movetime passed to BestMove).
	Depth uint
	// Hash is the transposition table size, in number of entries. Zero
	// falls back to search.DefaultTableSize.
	Hash uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v}", o.Depth, o.Hash)
}

// Stats mirrors the last completed (or aborted) search, for the external
// contract's stats() accessor and the UCI "info" stream.
type Stats struct {
	// Evaluations reports the search's node count; calls to the evaluator
	// are not counted separately.
	Evaluations uint64
	TimeElapsed time.Duration
	Nodes       uint64
	TTSize      int
}

// Engine encapsulates game-playing logic: a position, a search, an
// evaluator and an opening book. Not safe for concurrent use except that
// Stop may be called from another goroutine while a search is in flight --
// the same single-writer-plus-one-interrupt model the Searcher itself
// follows.
type Engine struct {
	name, author string

	opts Options
	bk   book.Book

	b        *board.Board
	tt       *search.Table
	searcher *search.Searcher
	last     search.Stats
	rand     *rand.Rand

	running bool
	mu      sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithTable overrides the transposition table size (number of entries).
func WithTable(entries int) Option {
	return func(e *Engine) {
		e.tt = search.NewTable(entries)
	}
}

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithBook configures an opening book the engine consults before falling
// back to search. Defaults to book.NoBook.
func WithBook(bk book.Book) Option {
	return func(e *Engine) {
		e.bk = bk
	}
}

// WithSeed seeds the random source used to pick among multiple equally
// good book moves. Defaults to a fixed seed for reproducible play.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rand = rand.New(rand.NewSource(seed))
	}
}

// New constructs an engine at the standard starting position.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:   name,
		author: author,
		bk:     book.NoBook,
		rand:   rand.New(rand.NewSource(1)),
	}
	for _, fn := range opts {
		fn(e)
	}
	if e.tt == nil {
		size := int(e.opts.Hash)
		if size == 0 {
			size = search.DefaultTableSize
		}
		e.tt = search.NewTable(size)
	}
	e.searcher = search.NewSearcher(eval.Tapered{}, e.tt)

	e.b = board.NewInitialBoard()

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetHash(entries uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = entries
	e.tt = search.NewTable(int(entries))
	e.searcher.TT = e.tt
}

// Board returns a clone of the current position, safe for the caller to
// inspect or mutate without affecting the engine.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Clone()
}

// Position returns the current position in textual (FEN) form.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.b)
}

// Reset loads the standard starting position, per the public contract's
// reset_to_initial.
func (e *Engine) Reset(ctx context.Context) error {
	return e.LoadPosition(ctx, fen.Initial)
}

// LoadPosition parses a textual position and replaces the engine's current
// one, per the public contract's load_position. On a malformed position,
// the prior board is left untouched and the error is a *board.ParseError.
func (e *Engine) LoadPosition(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := fen.Decode(position)
	if err != nil {
		return err
	}

	e.haltIfRunning()
	e.b = b

	logw.Infof(ctx, "Loaded position %v", position)
	return nil
}

// ApplyMove applies move, given in long algebraic notation, if it is legal
// in the current position. Per the public contract's apply_move_text, an
// illegal move returns false (as an *IllegalMoveError) without mutating
// the board; a malformed move string returns a *board.ParseError instead.
func (e *Engine) ApplyMove(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidate, err := board.ParseMove(move)
	if err != nil {
		return err
	}

	e.haltIfRunning()

	for _, m := range e.b.LegalMoves() {
		if !m.Equals(candidate) {
			continue
		}
		e.b.MakeMove(m)
		logw.Infof(ctx, "Applied %v", m)
		return nil
	}
	return &IllegalMoveError{Move: move}
}

// TakeBack undoes the most recently applied move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.b.HistoryDepth() == 0 {
		return fmt.Errorf("no move to take back")
	}
	e.haltIfRunning()
	e.b.UnmakeMove()

	logw.Infof(ctx, "Took back last move")
	return nil
}

// BestMove runs iterative-deepening search under the given limits and
// returns the best move found in long algebraic notation, per the public
// contract's best_move. It returns false only when the side to move has
// no legal move (checkmate or stalemate).
func (e *Engine) BestMove(ctx context.Context, movetime time.Duration, maxDepth int) (string, bool) {
	e.mu.Lock()
	b := e.b.Clone()
	depth := maxDepth
	if depth <= 0 {
		depth = int(e.opts.Depth)
	}
	if mv, ok := book.Pick(e.bk, b, e.rand); ok {
		e.mu.Unlock()
		logw.Infof(ctx, "Book move: %v", mv)
		return mv.String(), true
	}
	e.running = true
	e.mu.Unlock()

	limits := search.Limits{Depth: depth, Movetime: movetime}
	stats := e.searcher.Run(ctx, b, limits)

	e.mu.Lock()
	e.running = false
	e.last = stats
	e.mu.Unlock()

	if len(stats.PV) == 0 {
		// A search stopped before its first iteration completes has no PV:
		// fall back to the first legal move, if there is one.
		if moves := b.LegalMoves(); len(moves) > 0 {
			return moves[0].String(), true
		}
		return "", false
	}
	return stats.PV[0].String(), true
}

// StaticEval returns the static evaluation of the current position in
// centipawns, from the side-to-move's perspective, per the public
// contract's static_eval.
func (e *Engine) StaticEval() eval.Score {
	e.mu.Lock()
	defer e.mu.Unlock()

	return eval.Tapered{}.Evaluate(e.b)
}

// Stats returns a summary of the last completed search, per the public
// contract's stats().
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Stats{
		Evaluations: e.last.Nodes,
		TimeElapsed: e.last.Elapsed,
		Nodes:       e.last.Nodes,
		TTSize:      e.tt.Len(),
	}
}

// Stop halts an in-flight BestMove search as promptly as the sticky
// abort flag allows, matching the "stop" command of the external
// protocol.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// SetProgress installs a callback invoked after every completed
// iterative-deepening depth during BestMove, letting a driver (e.g. the
// UCI adapter) stream "info" lines as a search progresses.
func (e *Engine) SetProgress(fn func(search.Stats)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.searcher.Progress = fn
}

func (e *Engine) haltIfRunning() {
	if e.running {
		e.searcher.Stop()
	}
}
