// Package board contains the square-centric chess position representation:
// piece placement, reversible make/unmake, move generation and FEN I/O.
package board

import (
	"fmt"
	"strings"
)

const (
	repetitionLimit    = 3
	noProgressPlyLimit = 100 // fifty-move rule, counted in halfmoves
)

// Board is a mutable chess position plus the metadata (castling rights, en
// passant target, move clocks, king-square cache) needed to make and unmake
// moves and to detect draws. It is mutated in place by MakeMove/UnmakeMove
// and is not safe for concurrent use.
type Board struct {
	squares         [NumSquares]Piece
	sideToMove      Color
	castlingRights  Castling
	enPassantTarget Square
	halfmoveClock   int
	fullmoveNumber  int

	whiteKingSq, blackKingSq Square

	history     []Move
	hash        Hash
	hashHistory []Hash
	repetitions map[Hash]int
	zt          *zobristTable

	nullHistory []nullUndo
}

type nullUndo struct {
	ep Square
}

// NewBoard builds a board from an explicit placement and game state. Used
// by the fen package; prefer NewInitialBoard for the standard start
// position.
func NewBoard(squares [NumSquares]Piece, turn Color, castling Castling, ep Square, halfmove, fullmove int) (*Board, error) {
	b := &Board{
		squares:         squares,
		sideToMove:      turn,
		castlingRights:  castling,
		enPassantTarget: ep,
		halfmoveClock:   halfmove,
		fullmoveNumber:  fullmove,
		whiteKingSq:     NoSquare,
		blackKingSq:     NoSquare,
		repetitions:     map[Hash]int{},
		zt:              defaultZobrist,
	}

	whiteKings, blackKings := 0, 0
	for sq := Square(0); int(sq) < NumSquares; sq++ {
		p := squares[sq]
		if p.Kind() == King {
			if p.Color() == White {
				b.whiteKingSq = sq
				whiteKings++
			} else {
				b.blackKingSq = sq
				blackKings++
			}
		}
	}
	if whiteKings != 1 || blackKings != 1 {
		return nil, fmt.Errorf("invalid position: expected exactly one king per side, got white=%v black=%v", whiteKings, blackKings)
	}

	b.hash = b.zt.hashFromScratch(b)
	b.repetitions[b.hash] = 1
	return b, nil
}

// NewInitialBoard returns a board set to the standard starting position.
func NewInitialBoard() *Board {
	b, err := NewBoard(initialSquares(), White, AllCastling, NoSquare, 0, 1)
	if err != nil {
		panic(err) // the standard position is always valid
	}
	return b
}

func initialSquares() [NumSquares]Piece {
	var s [NumSquares]Piece
	back := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := 0; f < NumFiles; f++ {
		s[NewSquare(f, 0)] = NewPiece(White, back[f])
		s[NewSquare(f, 1)] = NewPiece(White, Pawn)
		s[NewSquare(f, 6)] = NewPiece(Black, Pawn)
		s[NewSquare(f, 7)] = NewPiece(Black, back[f])
	}
	return s
}

func (b *Board) Piece(sq Square) Piece            { return b.squares[sq] }
func (b *Board) SideToMove() Color                { return b.sideToMove }
func (b *Board) CastlingRights() Castling         { return b.castlingRights }
func (b *Board) EnPassantTarget() Square          { return b.enPassantTarget }
func (b *Board) HalfmoveClock() int               { return b.halfmoveClock }
func (b *Board) FullmoveNumber() int              { return b.fullmoveNumber }
func (b *Board) Hash() Hash                       { return b.hash }
func (b *Board) HistoryDepth() int                { return len(b.history) }

func (b *Board) KingSquare(c Color) Square {
	if c == White {
		return b.whiteKingSq
	}
	return b.blackKingSq
}

// Clone returns a deep, independent copy of the board, including history.
// The search itself never needs this -- it mutates a single board in place
// via MakeMove/UnmakeMove, per the single-threaded cooperative model -- but
// the opening book and analysis tooling branch off a position without
// disturbing the caller's board.
func (b *Board) Clone() *Board {
	c := *b
	c.history = append([]Move(nil), b.history...)
	c.hashHistory = append([]Hash(nil), b.hashHistory...)
	c.nullHistory = append([]nullUndo(nil), b.nullHistory...)
	c.repetitions = make(map[Hash]int, len(b.repetitions))
	for k, v := range b.repetitions {
		c.repetitions[k] = v
	}
	return &c
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool {
	return b.IsSquareAttacked(b.KingSquare(b.sideToMove), b.sideToMove.Opponent())
}

// IsFiftyMoveDraw reports the fifty-move (100 halfmove) rule.
func (b *Board) IsFiftyMoveDraw() bool {
	return b.halfmoveClock >= noProgressPlyLimit
}

// IsRepetitionDraw reports whether the current position has occurred for
// the third time. Spec marks threefold repetition as untracked by the
// reference engine but a pure strength addition if added; the search's
// negamax consults it alongside the other draw checks.
func (b *Board) IsRepetitionDraw() bool {
	return b.repetitions[b.hash] >= repetitionLimit
}

// IsInsufficientMaterial reports the drawn-by-insufficient-material cases
// from spec 4.6: K vs K, K+minor vs K, and same-color-bishops K+B vs K+B.
func (b *Board) IsInsufficientMaterial() bool {
	var minorWhite, minorBlack int
	var otherWhite, otherBlack int
	var bishopSquares []Square

	for sq := Square(0); int(sq) < NumSquares; sq++ {
		p := b.squares[sq]
		switch p.Kind() {
		case Empty, King:
			continue
		case Knight, Bishop:
			if p.Kind() == Bishop {
				bishopSquares = append(bishopSquares, sq)
			}
			if p.Color() == White {
				minorWhite++
			} else {
				minorBlack++
			}
		default:
			if p.Color() == White {
				otherWhite++
			} else {
				otherBlack++
			}
		}
	}
	if otherWhite > 0 || otherBlack > 0 {
		return false
	}
	switch {
	case minorWhite == 0 && minorBlack == 0:
		return true
	case minorWhite+minorBlack == 1:
		return true
	case minorWhite == 1 && minorBlack == 1 && len(bishopSquares) == 2:
		return squareColorComplex(bishopSquares[0]) == squareColorComplex(bishopSquares[1])
	default:
		return false
	}
}

// HasNonPawnMaterial reports whether c has any piece besides pawns and its
// king, the usual guard against null-move pruning in pawn-only endgames
// where zugzwang makes "passing" an unsound approximation.
func (b *Board) HasNonPawnMaterial(c Color) bool {
	for sq := Square(0); int(sq) < NumSquares; sq++ {
		p := b.squares[sq]
		if p.Color() != c {
			continue
		}
		switch p.Kind() {
		case Knight, Bishop, Rook, Queen:
			return true
		}
	}
	return false
}

func squareColorComplex(sq Square) int {
	return (sq.File() + sq.Rank()) % 2
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := NumRanks - 1; r >= 0; r-- {
		for f := 0; f < NumFiles; f++ {
			sb.WriteString(b.squares[NewSquare(f, r)].String())
		}
		if r > 0 {
			sb.WriteString("/")
		}
	}
	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), b.sideToMove, b.castlingRights, b.enPassantTarget, b.halfmoveClock, b.fullmoveNumber)
}
