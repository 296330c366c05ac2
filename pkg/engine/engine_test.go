package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravensworth/cinder/pkg/board/fen"
)

func TestNewEngineStartsAtInitialPosition(t *testing.T) {
	e := New(context.Background(), "cinder", "ravensworth")
	assert.Equal(t, fen.Initial, e.Position())
}

func TestLoadPositionRejectsMalformedFEN(t *testing.T) {
	e := New(context.Background(), "cinder", "ravensworth")
	err := e.LoadPosition(context.Background(), "not a fen")
	assert.Error(t, err)
	assert.Equal(t, fen.Initial, e.Position(), "board must be untouched on a failed load")
}

func TestApplyMoveAppliesLegalMove(t *testing.T) {
	e := New(context.Background(), "cinder", "ravensworth")
	require.NoError(t, e.ApplyMove(context.Background(), "e2e4"))
	assert.NotEqual(t, fen.Initial, e.Position())
}

func TestApplyMoveRejectsIllegalMove(t *testing.T) {
	e := New(context.Background(), "cinder", "ravensworth")
	err := e.ApplyMove(context.Background(), "e2e5")
	var illegal *IllegalMoveError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, fen.Initial, e.Position(), "board must be untouched on an illegal move")
}

func TestApplyMoveRejectsMalformedMove(t *testing.T) {
	e := New(context.Background(), "cinder", "ravensworth")
	err := e.ApplyMove(context.Background(), "zz")
	assert.Error(t, err)
}

func TestTakeBackUndoesLastMove(t *testing.T) {
	e := New(context.Background(), "cinder", "ravensworth")
	require.NoError(t, e.ApplyMove(context.Background(), "e2e4"))
	require.NoError(t, e.TakeBack(context.Background()))
	assert.Equal(t, fen.Initial, e.Position())
}

func TestTakeBackWithNoHistoryErrors(t *testing.T) {
	e := New(context.Background(), "cinder", "ravensworth")
	assert.Error(t, e.TakeBack(context.Background()))
}

func TestBestMoveFindsMateInOne(t *testing.T) {
	e := New(context.Background(), "cinder", "ravensworth")
	require.NoError(t, e.LoadPosition(context.Background(), "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1"))

	move, ok := e.BestMove(context.Background(), 0, 3)
	require.True(t, ok)
	assert.Equal(t, "a1a8", move)
}

func TestBestMoveReportsNoMoveOnCheckmate(t *testing.T) {
	// Black to move, mated by the rook on e8 with its own king boxed in
	// by f7/g7/h7: no legal response exists.
	e := New(context.Background(), "cinder", "ravensworth")
	require.NoError(t, e.LoadPosition(context.Background(), "4R1k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1"))

	move, ok := e.BestMove(context.Background(), 0, 2)
	assert.False(t, ok)
	assert.Empty(t, move)
}

func TestStaticEvalIsZeroAtStart(t *testing.T) {
	e := New(context.Background(), "cinder", "ravensworth")
	assert.Equal(t, 0, int(e.StaticEval()))
}

func TestStatsReflectLastSearch(t *testing.T) {
	e := New(context.Background(), "cinder", "ravensworth")
	_, ok := e.BestMove(context.Background(), 200*time.Millisecond, 4)
	require.True(t, ok)

	stats := e.Stats()
	assert.Greater(t, stats.Nodes, uint64(0))
}
