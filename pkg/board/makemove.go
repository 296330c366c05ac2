package board

// hashHistory mirrors history 1:1, letting UnmakeMove restore the
// incrementally-maintained Hash exactly rather than recomputing it.
// Kept out of Move itself since Move's shape is part of the documented
// data model and a cached hash isn't one of the fields it specifies.
func (b *Board) pushHash() {
	b.hashHistory = append(b.hashHistory, b.hash)
}

func (b *Board) popHash() {
	n := len(b.hashHistory) - 1
	b.hash = b.hashHistory[n]
	b.hashHistory = b.hashHistory[:n]
}

// remove clears a square, returning its prior content and undoing its
// contribution to the hash.
func (b *Board) remove(sq Square) Piece {
	p := b.squares[sq]
	if !p.IsEmpty() {
		b.hash ^= b.zt.pieceKey(p.Color(), p.Kind(), sq)
	}
	b.squares[sq] = NoPiece
	return p
}

// place sets a square's content (sq must be empty) and folds it into the hash.
func (b *Board) place(sq Square, p Piece) {
	b.squares[sq] = p
	if !p.IsEmpty() {
		b.hash ^= b.zt.pieceKey(p.Color(), p.Kind(), sq)
	}
}

func (b *Board) setCastlingRights(rights Castling) {
	b.hash ^= b.zt.castlingKey(b.castlingRights)
	b.castlingRights = rights
	b.hash ^= b.zt.castlingKey(rights)
}

func (b *Board) setEnPassantTarget(sq Square) {
	b.hash ^= b.zt.enPassantKey(b.enPassantTarget)
	b.enPassantTarget = sq
	b.hash ^= b.zt.enPassantKey(sq)
}

// MakeMove applies m unconditionally: callers are expected to have produced
// m from PseudoLegalMoves (or a LegalMoves-derived list); legality (own
// king not left in check) is the caller's responsibility to test via
// IsSquareAttacked after making the move, per the pseudo-legal-then-filter
// design. Every call must be matched by exactly one UnmakeMove.
func (b *Board) MakeMove(m Move) {
	mover := b.sideToMove

	m.SavedCastling = b.castlingRights
	m.SavedEnPassant = b.enPassantTarget
	m.SavedHalfmove = b.halfmoveClock
	b.pushHash()

	if m.MovingPiece.Kind() == Pawn || m.IsCapture() {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if mover == Black {
		b.fullmoveNumber++
	}

	b.setEnPassantTarget(NoSquare)

	b.remove(m.From)
	placed := m.MovingPiece
	if m.IsPromotion() {
		placed = NewPiece(mover, m.Promotion)
	}

	if m.IsEnPassant {
		dir := NumFiles
		if mover == Black {
			dir = -NumFiles
		}
		epCaptured, _ := step(m.To, -dir, 0)
		b.remove(epCaptured)
	} else if m.IsCapture() {
		b.remove(m.To)
	}
	b.place(m.To, placed)

	if m.IsCastle {
		b.relocateCastlingRook(mover, m.To)
	}

	if m.MovingPiece.Kind() == Pawn {
		dir := NumFiles
		if mover == Black {
			dir = -NumFiles
		}
		if int(m.To)-int(m.From) == 2*dir {
			skipped, _ := step(m.From, dir, 0)
			b.setEnPassantTarget(skipped)
		}
	}

	newRights := b.castlingRights &^ clearedBySquare(m.From) &^ clearedBySquare(m.To)
	if m.MovingPiece.Kind() == King {
		newRights &^= clearedByKingMove(mover)
	}
	if newRights != b.castlingRights {
		b.setCastlingRights(newRights)
	}

	if m.MovingPiece.Kind() == King {
		if mover == White {
			b.whiteKingSq = m.To
		} else {
			b.blackKingSq = m.To
		}
	}

	b.hash ^= b.zt.side
	b.sideToMove = mover.Opponent()

	b.repetitions[b.hash]++
	b.history = append(b.history, m)
}

func (b *Board) relocateCastlingRook(mover Color, kingTo Square) {
	var rookFrom, rookTo Square
	switch kingTo {
	case G1:
		rookFrom, rookTo = H1, F1
	case C1:
		rookFrom, rookTo = A1, D1
	case G8:
		rookFrom, rookTo = H8, F8
	case C8:
		rookFrom, rookTo = A8, D8
	}
	rook := b.remove(rookFrom)
	b.place(rookTo, rook)
}

// UnmakeMove reverses the most recent MakeMove, restoring the board --
// including castling rights, en passant target, halfmove clock, king
// caches and history depth -- bit-for-bit.
func (b *Board) UnmakeMove() {
	n := len(b.history) - 1
	m := b.history[n]
	b.history = b.history[:n]

	b.repetitions[b.hash]--
	if b.repetitions[b.hash] == 0 {
		delete(b.repetitions, b.hash)
	}

	mover := b.sideToMove.Opponent()
	b.sideToMove = mover

	if m.IsCastle {
		b.undoCastlingRook(mover, m.To)
	}

	b.remove(m.To)

	if m.IsEnPassant {
		dir := NumFiles
		if mover == Black {
			dir = -NumFiles
		}
		epCaptured, _ := step(m.To, -dir, 0)
		b.squares[epCaptured] = m.CapturedPiece
	} else if m.IsCapture() {
		b.squares[m.To] = m.CapturedPiece
	}

	b.squares[m.From] = m.MovingPiece

	if m.MovingPiece.Kind() == King {
		if mover == White {
			b.whiteKingSq = m.From
		} else {
			b.blackKingSq = m.From
		}
	}

	b.castlingRights = m.SavedCastling
	b.enPassantTarget = m.SavedEnPassant
	b.halfmoveClock = m.SavedHalfmove
	if mover == Black {
		b.fullmoveNumber--
	}

	b.popHash()
}

func (b *Board) undoCastlingRook(mover Color, kingTo Square) {
	var rookFrom, rookTo Square
	switch kingTo {
	case G1:
		rookFrom, rookTo = H1, F1
	case C1:
		rookFrom, rookTo = A1, D1
	case G8:
		rookFrom, rookTo = H8, F8
	case C8:
		rookFrom, rookTo = A8, D8
	}
	rook := b.squares[rookTo]
	b.squares[rookTo] = NoPiece
	b.squares[rookFrom] = rook
}
