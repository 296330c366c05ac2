// Package book implements a static, in-memory opening book: a table of
// candidate moves for positions reached by replaying a fixed set of named
// opening lines from the initial position.
package book

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/ravensworth/cinder/pkg/board"
	"github.com/ravensworth/cinder/pkg/eval"
)

// Line is a single opening line in long algebraic notation, e.g.
// "e2e4 e7e5 g1f3 b8c6".
type Line string

func (l Line) Moves() []string {
	return strings.Fields(string(l))
}

// Book looks up candidate moves for a position. Once Find returns no
// candidates for a game, the book should not be consulted again for the
// remainder of that game -- the engine falls through to search.
type Book interface {
	Find(b *board.Board) []board.Move
}

// NoBook never suggests a move.
var NoBook Book = staticBook{}

type staticBook map[board.Hash][]board.Move

func (b staticBook) Find(bd *board.Board) []board.Move {
	return b[bd.Hash()]
}

// New builds a Book from a set of opening lines, by replaying each one from
// the initial position and recording every position reached along the way.
// Positions are keyed by board.Hash, which -- covering exactly placement,
// side to move, castling rights and en passant target -- is precisely the
// position identity the book needs.
func New(lines []Line) (Book, error) {
	table := map[board.Hash]map[board.Move]bool{}

	for _, line := range lines {
		b := board.NewInitialBoard()
		for _, text := range line.Moves() {
			want, err := board.ParseMove(text)
			if err != nil {
				return nil, fmt.Errorf("invalid line %q: %v", line, err)
			}

			var matched board.Move
			found := false
			for _, candidate := range b.LegalMoves() {
				if candidate.Equals(want) {
					matched = candidate
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("invalid line %q: move %v is not legal", line, want)
			}

			if table[b.Hash()] == nil {
				table[b.Hash()] = map[board.Move]bool{}
			}
			table[b.Hash()][matched] = true
			b.MakeMove(matched)
		}
	}

	dedup := staticBook{}
	for hash, set := range table {
		var moves []board.Move
		for m := range set {
			moves = append(moves, m)
		}
		sort.Slice(moves, func(i, j int) bool {
			return eval.NominalValue(moves[i].CapturedPiece.Kind()) > eval.NominalValue(moves[j].CapturedPiece.Kind())
		})
		dedup[hash] = moves
	}
	return dedup, nil
}

// Pick returns a random candidate from the book's suggestions for b, or
// false if the position isn't covered.
func Pick(bk Book, b *board.Board, r *rand.Rand) (board.Move, bool) {
	moves := bk.Find(b)
	if len(moves) == 0 {
		return board.Move{}, false
	}
	return moves[r.Intn(len(moves))], true
}
