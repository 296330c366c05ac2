package book

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravensworth/cinder/pkg/board"
)

func TestNewBookFindsOpeningMove(t *testing.T) {
	bk, err := New([]Line{
		"e2e4 e7e5 g1f3 b8c6",
		"e2e4 c7c5",
		"d2d4 d7d5",
	})
	require.NoError(t, err)

	b := board.NewInitialBoard()
	moves := bk.Find(b)
	require.Len(t, moves, 2, "both e2e4 and d2d4 lines start from the initial position")

	var texts []string
	for _, m := range moves {
		texts = append(texts, m.String())
	}
	assert.Contains(t, texts, "e2e4")
	assert.Contains(t, texts, "d2d4")
}

func TestBookRejectsIllegalLine(t *testing.T) {
	_, err := New([]Line{"e2e5"}) // not a legal pawn move
	assert.Error(t, err)
}

func TestPickReturnsNothingPastBookDepth(t *testing.T) {
	bk, err := New([]Line{"e2e4 e7e5"})
	require.NoError(t, err)

	b := board.NewInitialBoard()
	moves := bk.Find(b)
	require.NotEmpty(t, moves)
	b.MakeMove(moves[0])
	b.MakeMove(board.Move{From: board.E7, To: board.E5, MovingPiece: board.NewPiece(board.Black, board.Pawn)})

	_, ok := Pick(bk, b, rand.New(rand.NewSource(1)))
	assert.False(t, ok, "position past the last book move must not be found")
}

func TestNoBookNeverSuggests(t *testing.T) {
	_, ok := Pick(NoBook, board.NewInitialBoard(), rand.New(rand.NewSource(1)))
	assert.False(t, ok)
}
