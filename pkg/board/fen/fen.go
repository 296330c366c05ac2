// Package fen contains utilities for reading and writing positions in FEN notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/ravensworth/cinder/pkg/board"
)

const (
	Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Decode returns a new board from a FEN description.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(fen string) (*board.Board, error) {
	// A FEN record contains six fields, separated by a single space.

	parts := strings.Split(strings.TrimSpace(fen), " ")
	if len(parts) != 6 {
		return nil, &board.ParseError{Input: fen, Msg: "invalid number of sections in FEN"}
	}

	// (1) Piece placement (from white's perspective). Each rank is described,
	// starting with rank 8 and ending with rank 1; within each rank, the
	// contents of each square are described from file a through file h.

	var squares [board.NumSquares]board.Piece

	file, rank := 0, 7
	for _, r := range parts[0] {
		switch {
		case r == '/':
			if file != board.NumFiles {
				return nil, &board.ParseError{Input: fen, Msg: "invalid rank length in FEN"}
			}
			file = 0
			rank--

		case unicode.IsDigit(r):
			// Blank squares are noted using digits 1 through 8.
			file += int(r - '0')

		case unicode.IsLetter(r):
			// Each piece is identified by a single letter taken from the
			// standard English names (P, N, B, R, Q, K); White is
			// upper-case, Black is lower-case.
			color, kind, ok := parsePiece(r)
			if !ok {
				return nil, &board.ParseError{Input: fen, Msg: fmt.Sprintf("invalid piece %q in FEN", r)}
			}
			if rank < 0 || file >= board.NumFiles {
				return nil, &board.ParseError{Input: fen, Msg: "invalid number of squares in FEN"}
			}
			squares[board.NewSquare(file, rank)] = board.NewPiece(color, kind)
			file++

		default:
			return nil, &board.ParseError{Input: fen, Msg: "invalid character in FEN"}
		}
	}
	if file != board.NumFiles || rank != 0 {
		return nil, &board.ParseError{Input: fen, Msg: "invalid number of squares in FEN"}
	}

	// (2) Active color. "w" means white moves next, "b" means black.

	turn, ok := parseColor(parts[1])
	if !ok {
		return nil, &board.ParseError{Input: fen, Msg: "invalid active color in FEN"}
	}

	// (3) Castling availability. If neither side can castle, this is
	// "-". Otherwise, this has one or more letters: "K" (White can castle
	// kingside), "Q" (White can castle queenside), "k" (Black can castle
	// kingside), and/or "q" (Black can castle queenside).

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, &board.ParseError{Input: fen, Msg: "invalid castling in FEN"}
	}

	// (4) En passant target square in algebraic notation. If there's no en
	// passant target square, this is "-". If a pawn has just made a
	// 2-square move, this is the square "behind" the pawn.

	ep := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquare(parts[3])
		if err != nil {
			return nil, &board.ParseError{Input: fen, Msg: "invalid en passant in FEN"}
		}
		ep = sq
	}

	// (5) Halfmove clock: the number of halfmoves since the last pawn
	// advance or capture. Used for the fifty move rule.

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, &board.ParseError{Input: fen, Msg: "invalid halfmove clock in FEN"}
	}

	// (6) Fullmove number: starts at 1, incremented after Black's move.

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, &board.ParseError{Input: fen, Msg: "invalid fullmove number in FEN"}
	}

	return board.NewBoard(squares, turn, castling, ep, halfmove, fullmove)
}

// Encode renders a board in FEN notation.
func Encode(b *board.Board) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		blanks := 0
		for file := 0; file < board.NumFiles; file++ {
			p := b.Piece(board.NewSquare(file, rank))
			if p.IsEmpty() {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(p))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if rank > 0 {
			sb.WriteString("/")
		}
	}

	ep := "-"
	if b.EnPassantTarget() != board.NoSquare {
		ep = b.EnPassantTarget().String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), printColor(b.SideToMove()), printCastling(b.CastlingRights()), ep, b.HalfmoveClock(), b.FullmoveNumber())
}

func parseCastling(str string) (board.Castling, bool) {
	if str == "-" {
		return board.NoCastling, true
	}
	var ret board.Castling
	for _, r := range str {
		switch r {
		case 'K':
			ret |= board.WhiteKingSide
		case 'Q':
			ret |= board.WhiteQueenSide
		case 'k':
			ret |= board.BlackKingSide
		case 'q':
			ret |= board.BlackQueenSide
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	return c.String()
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w":
		return board.White, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	return c.String()
}

func parsePiece(r rune) (board.Color, board.Kind, bool) {
	kind, ok := board.ParseKind(r)
	if !ok {
		return 0, 0, false
	}
	if unicode.IsUpper(r) {
		return board.White, kind, true
	}
	return board.Black, kind, true
}

func printPiece(p board.Piece) rune {
	return rune(p.String()[0])
}
