// Package search implements iterative-deepening negamax search over a
// board.Board: null-move pruning, late move reductions, quiescence search,
// a bounded transposition table and MVV-LVA/killer/history move ordering.
package search

import (
	"github.com/ravensworth/cinder/pkg/board"
	"github.com/ravensworth/cinder/pkg/eval"
)

// Bound records whether a transposition table entry's score is exact, or
// only a lower/upper bound because it came from a cutoff.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

type ttEntry struct {
	hash  board.Hash
	depth int
	score eval.Score
	bound Bound
	move  board.Move
	age   int
	used  bool
}

// DefaultTableSize is the default entry count, chosen to keep the table
// within a reasonable memory footprint (roughly 10^6 entries) for a
// lightweight engine rather than a multi-gigabyte hash table.
const DefaultTableSize = 1 << 20

// Table is a fixed-size transposition table keyed by board.Hash modulo the
// table size. Collisions are resolved by a depth-minus-staleness replacement
// policy: a new entry only overwrites an occupied slot if its search depth
// is at least as deep as the existing entry once penalized for how many
// searches have passed since it was written.
type Table struct {
	entries []ttEntry
	age     int
	size    int
}

// NewTable allocates a table with the given number of entries.
func NewTable(entries int) *Table {
	if entries <= 0 {
		entries = DefaultTableSize
	}
	return &Table{entries: make([]ttEntry, entries)}
}

// NewSearch must be called once per Run, so stale entries from prior
// searches become progressively cheaper to evict.
func (t *Table) NewSearch() {
	t.age++
}

// Len reports how many slots are currently occupied.
func (t *Table) Len() int {
	return t.size
}

func (t *Table) slot(hash board.Hash) *ttEntry {
	return &t.entries[uint64(hash)%uint64(len(t.entries))]
}

// Read looks up hash, returning the stored entry only if the slot still
// belongs to this exact position (the index is not a guarantee, since
// different hashes can map to the same slot).
func (t *Table) Read(hash board.Hash) (depth int, score eval.Score, bound Bound, move board.Move, ok bool) {
	e := t.slot(hash)
	if !e.used || e.hash != hash {
		return 0, 0, 0, board.Move{}, false
	}
	return e.depth, e.score, e.bound, e.move, true
}

// Write stores a result, applying the depth-minus-staleness replacement
// policy when the slot is already occupied by a different position.
func (t *Table) Write(hash board.Hash, depth int, score eval.Score, bound Bound, move board.Move) {
	e := t.slot(hash)
	if !e.used {
		t.size++
	} else if e.hash != hash {
		staleness := 2 * (t.age - e.age)
		if depth < e.depth-staleness {
			return // existing entry is still more valuable
		}
	}
	*e = ttEntry{hash: hash, depth: depth, score: score, bound: bound, move: move, age: t.age, used: true}
}
