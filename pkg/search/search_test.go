package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravensworth/cinder/pkg/board"
	"github.com/ravensworth/cinder/pkg/board/fen"
	"github.com/ravensworth/cinder/pkg/eval"
)

func TestFindsMateInOne(t *testing.T) {
	// White to move: Ra1-a8# is a back-rank mate, black's king boxed in by
	// its own pawns with no blocker or capture available.
	b, err := fen.Decode("6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	require.NoError(t, err)

	s := NewSearcher(eval.Tapered{}, NewTable(1 << 10))
	stats := s.Run(context.Background(), b, Limits{Depth: 1})

	require.NotEmpty(t, stats.PV)
	assert.Equal(t, board.A1, stats.PV[0].From)
	assert.Equal(t, board.A8, stats.PV[0].To)
	assert.True(t, stats.Score.IsMate())
}

func TestIterativeDeepeningRespectsDepthLimit(t *testing.T) {
	b := board.NewInitialBoard()
	s := NewSearcher(eval.Tapered{}, NewTable(1 << 10))
	stats := s.Run(context.Background(), b, Limits{Depth: 3})

	assert.Equal(t, 3, stats.Depth)
	assert.NotEmpty(t, stats.PV)
	assert.Equal(t, 0, b.HistoryDepth(), "search must fully unwind the board")
}

func TestStopHaltsSearch(t *testing.T) {
	b := board.NewInitialBoard()
	s := NewSearcher(eval.Tapered{}, NewTable(1 << 10))
	s.Progress = func(Stats) { s.Stop() } // stop once the first iteration completes
	stats := s.Run(context.Background(), b, Limits{Depth: 20})

	assert.LessOrEqual(t, stats.Depth, 1)
}

func TestMovetimeLimitsSearch(t *testing.T) {
	b := board.NewInitialBoard()
	s := NewSearcher(eval.Tapered{}, NewTable(1 << 10))

	start := time.Now()
	s.Run(context.Background(), b, Limits{Depth: 20, Movetime: 50 * time.Millisecond})
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestTableReplacementPolicy(t *testing.T) {
	tt := NewTable(1)
	h1, h2 := board.Hash(1), board.Hash(2) // collide: table has a single slot

	tt.Write(h1, 4, 100, ExactBound, board.Move{})
	tt.Write(h2, 1, 200, ExactBound, board.Move{})
	_, score, _, _, ok := tt.Read(h1)
	require.True(t, ok, "shallower write must not evict a deeper entry")
	assert.Equal(t, eval.Score(100), score)

	tt.age++
	tt.age++
	tt.Write(h2, 1, 200, ExactBound, board.Move{})
	_, _, _, _, ok = tt.Read(h1)
	assert.False(t, ok, "a sufficiently stale entry must be evictable by a shallower write")
}
