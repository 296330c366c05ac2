package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravensworth/cinder/pkg/board"
	"github.com/ravensworth/cinder/pkg/board/fen"
)

func TestInitialPositionIsBalanced(t *testing.T) {
	b := board.NewInitialBoard()
	assert.Equal(t, Score(0), Tapered{}.Evaluate(b))
}

// TestEvaluateAntiSymmetric checks that evaluating a position and its
// mirror (same material and structure, opposite side to move) negate, per
// the evaluator's side-to-move-relative contract.
func TestEvaluateAntiSymmetric(t *testing.T) {
	positions := []string{
		fen.Initial,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 2 3",
	}
	for _, p := range positions {
		b, err := fen.Decode(p)
		require.NoError(t, err, p)
		mirrored, err := fen.Decode(flipSideOnly(p))
		require.NoError(t, err, p)

		assert.Equal(t, Tapered{}.Evaluate(b), -Tapered{}.Evaluate(mirrored), p)
	}
}

// flipSideOnly toggles the active-color field of a FEN string, leaving
// placement untouched -- enough to test the evaluator's sign convention
// without needing a full board mirror.
func flipSideOnly(f string) string {
	out := []rune(f)
	for i, r := range out {
		if r == ' ' && i+1 < len(out) {
			switch out[i+1] {
			case 'w':
				out[i+1] = 'b'
			case 'b':
				out[i+1] = 'w'
			}
			break
		}
	}
	return string(out)
}

func TestNominalValueOrdering(t *testing.T) {
	assert.True(t, NominalValue(board.Pawn) < NominalValue(board.Knight))
	assert.True(t, NominalValue(board.Knight) < NominalValue(board.Rook))
	assert.True(t, NominalValue(board.Rook) < NominalValue(board.Queen))
	assert.True(t, NominalValue(board.Queen) < NominalValue(board.King))
}

func TestMateScoreEncoding(t *testing.T) {
	s := Mating(3)
	assert.True(t, s.IsMate())
	assert.False(t, Score(500).IsMate())
}
