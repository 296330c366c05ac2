package board

import "fmt"

// Move describes a single ply. From/To/MovingPiece/CapturedPiece/Promotion
// are set by the generator; the Saved* fields are filled in by MakeMove and
// consumed by UnmakeMove to fully reverse the mutation, per the undo-record
// contract: captured pawns taken en passant are recorded here too, since
// the destination square itself is empty for that capture.
type Move struct {
	From, To      Square
	MovingPiece   Piece
	CapturedPiece Piece
	Promotion     Kind // Empty if not a promotion

	IsEnPassant bool
	IsCastle    bool

	// Saved* hold the state MakeMove must restore on UnmakeMove.
	SavedCastling   Castling
	SavedEnPassant  Square
	SavedHalfmove   int
}

func (m Move) IsPromotion() bool {
	return m.Promotion != Empty
}

func (m Move) IsCapture() bool {
	return !m.CapturedPiece.IsEmpty()
}

// Equals compares the externally-observable identity of a move: origin,
// destination and promotion piece. Two moves that differ only in captured
// piece or saved undo state are still the same move.
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// String renders long algebraic notation: <from><to>[promotion].
func (m Move) String() string {
	if m.IsPromotion() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// ParseMove parses long algebraic notation, e.g. "e2e4" or "a7a8q". The
// returned move carries no board context (capture/castle/en passant flags
// are filled in when the move is matched against a legal move list).
func ParseMove(str string) (Move, error) {
	if len(str) != 4 && len(str) != 5 {
		return Move{}, newParseError(str, "invalid move")
	}

	from, err := ParseSquare(str[0:2])
	if err != nil {
		return Move{}, newParseError(str, "invalid move")
	}
	to, err := ParseSquare(str[2:4])
	if err != nil {
		return Move{}, newParseError(str, "invalid move")
	}

	m := Move{From: from, To: to}
	if len(str) == 5 {
		kind, ok := ParseKind(rune(str[4]))
		if !ok || kind == Pawn || kind == King {
			return Move{}, newParseError(str, "invalid promotion in move")
		}
		m.Promotion = kind
	}
	return m, nil
}
