package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialBoardPerft(t *testing.T) {
	b := NewInitialBoard()

	// Standard perft node counts for the initial position, depths 1-4.
	want := []uint64{20, 400, 8902, 197281}
	for depth, w := range want {
		got := b.Perft(depth + 1)
		assert.Equal(t, w, got, "depth %v", depth+1)
	}
	assert.Equal(t, 0, b.HistoryDepth(), "perft must leave the board fully unwound")
}

func TestKiwipetePerft(t *testing.T) {
	squares, turn, castling, ep := kiwipeteSetup()
	b, err := NewBoard(squares, turn, castling, ep, 0, 1)
	require.NoError(t, err)

	assert.Equal(t, uint64(48), b.Perft(1))
	assert.Equal(t, uint64(2039), b.Perft(2))
}

// kiwipeteSetup builds the well-known "Kiwipete" stress position:
// r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1
func kiwipeteSetup() ([NumSquares]Piece, Color, Castling, Square) {
	var s [NumSquares]Piece
	place := func(sq Square, c Color, k Kind) { s[sq] = NewPiece(c, k) }

	place(A8, Black, Rook)
	place(E8, Black, King)
	place(H8, Black, Rook)
	place(A7, Black, Pawn)
	place(C7, Black, Pawn)
	place(D7, Black, Pawn)
	place(E7, Black, Queen)
	place(F7, Black, Pawn)
	place(G7, Black, Bishop)
	place(A6, Black, Bishop)
	place(B6, Black, Knight)
	place(E6, Black, Pawn)
	place(F6, Black, Knight)
	place(G6, Black, Pawn)
	place(D5, White, Pawn)
	place(E5, White, Knight)
	place(B4, Black, Pawn)
	place(E4, White, Pawn)
	place(C3, White, Knight)
	place(F3, White, Queen)
	place(H3, Black, Pawn)
	place(A2, White, Pawn)
	place(B2, White, Pawn)
	place(C2, White, Pawn)
	place(D2, White, Bishop)
	place(E2, White, Bishop)
	place(F2, White, Pawn)
	place(G2, White, Pawn)
	place(H2, White, Pawn)
	place(A1, White, Rook)
	place(E1, White, King)
	place(H1, White, Rook)

	return s, White, AllCastling, NoSquare
}

func TestMakeUnmakeRestoresHash(t *testing.T) {
	b := NewInitialBoard()
	before := b.Hash()

	for _, m := range b.LegalMoves() {
		b.MakeMove(m)
		after := b.Hash()
		assert.NotEqual(t, before, after, "hash must change after a move: %v", m)
		b.UnmakeMove()
		assert.Equal(t, before, b.Hash(), "hash must be restored after unmake: %v", m)
	}
}

func TestEnPassantCapture(t *testing.T) {
	// 1. e4 d5 2. e5 f5 3. exf6 e.p.
	var s [NumSquares]Piece
	s[E5] = NewPiece(White, Pawn)
	s[F5] = NewPiece(Black, Pawn)
	s[A1] = NewPiece(White, King)
	s[A8] = NewPiece(Black, King)
	b, err := NewBoard(s, White, NoCastling, F6, 0, 3)
	require.NoError(t, err)

	var found *Move
	for _, m := range b.LegalMoves() {
		if m.From == E5 && m.To == F6 {
			mm := m
			found = &mm
		}
	}
	require.NotNil(t, found)
	assert.True(t, found.IsEnPassant)
	assert.Equal(t, NewPiece(Black, Pawn), found.CapturedPiece)

	b.MakeMove(*found)
	assert.True(t, b.Piece(F5).IsEmpty(), "captured pawn must be removed")
	assert.Equal(t, NewPiece(White, Pawn), b.Piece(F6))
	b.UnmakeMove()
	assert.Equal(t, NewPiece(Black, Pawn), b.Piece(F5), "unmake must restore the captured pawn")
}

func TestCastlingBlockedByAttack(t *testing.T) {
	var s [NumSquares]Piece
	s[E1] = NewPiece(White, King)
	s[H1] = NewPiece(White, Rook)
	s[A8] = NewPiece(Black, King)
	s[F8] = NewPiece(Black, Rook) // attacks f1, the transit square
	b, err := NewBoard(s, White, WhiteKingSide, NoSquare, 0, 1)
	require.NoError(t, err)

	for _, m := range b.LegalMoves() {
		assert.False(t, m.IsCastle, "castling through an attacked square must not be generated as legal")
	}
}

func TestCheckmateHasNoLegalMoves(t *testing.T) {
	// Fool's mate final position: White to move, mated.
	var s [NumSquares]Piece
	s[E1] = NewPiece(White, King)
	s[F3] = NewPiece(White, Pawn)
	s[G4] = NewPiece(White, Pawn)
	s[H2] = NewPiece(White, Pawn)
	s[G1] = NewPiece(White, Knight)
	s[B1] = NewPiece(White, Knight)
	s[A1] = NewPiece(White, Rook)
	s[H1] = NewPiece(White, Rook)
	s[C1] = NewPiece(White, Bishop)
	s[F1] = NewPiece(White, Bishop)
	s[D1] = NewPiece(White, Queen)
	s[A2] = NewPiece(White, Pawn)
	s[B2] = NewPiece(White, Pawn)
	s[C2] = NewPiece(White, Pawn)
	s[D2] = NewPiece(White, Pawn)
	s[E2] = NewPiece(White, Pawn)

	s[E8] = NewPiece(Black, King)
	s[H4] = NewPiece(Black, Queen)
	s[A7] = NewPiece(Black, Pawn)
	s[B7] = NewPiece(Black, Pawn)
	s[C7] = NewPiece(Black, Pawn)
	s[D7] = NewPiece(Black, Pawn)
	s[F7] = NewPiece(Black, Pawn)
	s[G7] = NewPiece(Black, Pawn)
	s[H7] = NewPiece(Black, Pawn)
	s[E5] = NewPiece(Black, Pawn)
	s[A8] = NewPiece(Black, Rook)
	s[H8] = NewPiece(Black, Rook)
	s[B8] = NewPiece(Black, Knight)
	s[C8] = NewPiece(Black, Bishop)
	s[F8] = NewPiece(Black, Bishop)
	s[G8] = NewPiece(Black, Knight)

	b, err := NewBoard(s, White, AllCastling, NoSquare, 0, 1)
	require.NoError(t, err)

	assert.True(t, b.InCheck())
	assert.Empty(t, b.LegalMoves())
}
