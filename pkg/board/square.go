package board

import "fmt"

// Square is an index into the 8x8 board: index = rank*8 + file, with a1=0
// and h8=63. File and rank both run 0..7 (a..h, 1..8).
type Square int8

const (
	NumSquares = 64
	NumFiles   = 8
	NumRanks   = 8

	// NoSquare is the sentinel used for an absent en passant target.
	NoSquare Square = -1
)

// Named squares used by castling and the perft/test suite.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NewSquare builds a square from 0-based file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank*NumFiles + file)
}

func (s Square) File() int {
	return int(s) % NumFiles
}

func (s Square) Rank() int {
	return int(s) / NumFiles
}

// Valid returns false for NoSquare and out-of-range values.
func (s Square) Valid() bool {
	return s >= 0 && int(s) < NumSquares
}

// ParseSquare parses a square from its two-character algebraic form, e.g. "e4".
func ParseSquare(str string) (Square, error) {
	if len(str) != 2 {
		return NoSquare, newParseError(str, "invalid square")
	}
	file := str[0]
	rank := str[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, newParseError(str, "invalid square")
	}
	return NewSquare(int(file-'a'), int(rank-'1')), nil
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+byte(s.File()), '1'+byte(s.Rank()))
}
