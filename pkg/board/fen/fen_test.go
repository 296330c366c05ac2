package fen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravensworth/cinder/pkg/board"
)

func TestDecodeInitial(t *testing.T) {
	b, err := Decode(Initial)
	require.NoError(t, err)

	assert.Equal(t, board.White, b.SideToMove())
	assert.Equal(t, board.AllCastling, b.CastlingRights())
	assert.Equal(t, board.NoSquare, b.EnPassantTarget())
	assert.Equal(t, 0, b.HalfmoveClock())
	assert.Equal(t, 1, b.FullmoveNumber())
	assert.Equal(t, board.NewPiece(board.White, board.Rook), b.Piece(board.A1))
	assert.Equal(t, board.NewPiece(board.Black, board.King), b.Piece(board.E8))
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, fen := range []string{
		Initial,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"rnbq1rk1/ppp2ppp/3bpn2/3p4/2PP4/2N1PN2/PP3PPP/R1BQKB1R w KQ - 0 7",
		"8/8/8/4k3/8/8/4K3/8 w - - 0 1",
		"4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 5",
	} {
		b, err := Decode(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, Encode(b), fen)
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, fen := range []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
	} {
		_, err := Decode(fen)
		assert.Error(t, err, fen)
	}
}
