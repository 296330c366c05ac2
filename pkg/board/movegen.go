package board

// promotionKinds is the fixed expansion order for a pawn reaching the last
// rank: one pseudo-legal move per choice of promoted piece.
var promotionKinds = [4]Kind{Queen, Rook, Bishop, Knight}

// PseudoLegalMoves generates every move that respects piece geometry and
// blockers but may leave the moving side's own king in check. LegalMoves
// filters these by playing and testing each one.
func (b *Board) PseudoLegalMoves() []Move {
	return b.PseudoLegalMovesFor(b.sideToMove)
}

// PseudoLegalMovesFor generates pseudo-legal moves for the given side
// regardless of whose turn it actually is, without mutating the board.
// LegalMovesFor filters its output for the evaluator's mobility term, which
// needs both sides' move counts from a single position.
func (b *Board) PseudoLegalMovesFor(side Color) []Move {
	var moves []Move

	for sq := Square(0); int(sq) < NumSquares; sq++ {
		p := b.squares[sq]
		if p.IsEmpty() || p.Color() != side {
			continue
		}
		switch p.Kind() {
		case Pawn:
			b.genPawnMoves(sq, side, &moves)
		case Knight:
			b.genStepMoves(sq, p, knightOffsets[:], 2, &moves)
		case Bishop:
			b.genSlideMoves(sq, p, bishopOffsets[:], &moves)
		case Rook:
			b.genSlideMoves(sq, p, rookOffsets[:], &moves)
		case Queen:
			b.genSlideMoves(sq, p, rookOffsets[:], &moves)
			b.genSlideMoves(sq, p, bishopOffsets[:], &moves)
		case King:
			b.genStepMoves(sq, p, kingOffsets[:], 1, &moves)
		}
	}
	b.genCastling(side, &moves)
	return moves
}

// LegalMoves filters PseudoLegalMoves down to moves that don't leave the
// mover's own king attacked: play each move, test, unplay -- always unplay,
// regardless of whether the move turned out to be legal.
func (b *Board) LegalMoves() []Move {
	return b.LegalMovesFor(b.sideToMove)
}

// LegalMovesFor generates legal moves for the given side regardless of
// whose turn it actually is. It borrows the side-to-move slot to do so --
// isLegal's check reads it to know which king to test -- and restores it
// before returning, so a caller never observes the swap. Used by the
// evaluator's mobility term, which needs both sides' legal move counts from
// a single position.
func (b *Board) LegalMovesFor(side Color) []Move {
	orig := b.sideToMove
	b.sideToMove = side
	defer func() { b.sideToMove = orig }()

	pseudo := b.PseudoLegalMovesFor(side)
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if b.isLegal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// LegalCaptures filters PseudoLegalMoves down to legal captures (including
// en passant and capture-promotions), for quiescence search.
func (b *Board) LegalCaptures() []Move {
	pseudo := b.PseudoLegalMoves()
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if !m.IsCapture() {
			continue
		}
		if b.isLegal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

func (b *Board) isLegal(m Move) bool {
	mover := b.sideToMove
	b.MakeMove(m)
	ok := !b.IsSquareAttacked(b.KingSquare(mover), mover.Opponent())
	b.UnmakeMove()
	return ok
}

func (b *Board) genStepMoves(sq Square, p Piece, offsets []int, maxFileDelta int, moves *[]Move) {
	for _, off := range offsets {
		dest, ok := step(sq, off, maxFileDelta)
		if !ok {
			continue
		}
		target := b.squares[dest]
		if !target.IsEmpty() && target.Color() == p.Color() {
			continue
		}
		*moves = append(*moves, Move{From: sq, To: dest, MovingPiece: p, CapturedPiece: target})
	}
}

func (b *Board) genSlideMoves(sq Square, p Piece, offsets []int, moves *[]Move) {
	for _, off := range offsets {
		cur := sq
		for {
			dest, ok := step(cur, off, 1)
			if !ok {
				break
			}
			target := b.squares[dest]
			if target.IsEmpty() {
				*moves = append(*moves, Move{From: sq, To: dest, MovingPiece: p})
				cur = dest
				continue
			}
			if target.Color() != p.Color() {
				*moves = append(*moves, Move{From: sq, To: dest, MovingPiece: p, CapturedPiece: target})
			}
			break
		}
	}
}

func (b *Board) genPawnMoves(sq Square, side Color, moves *[]Move) {
	p := NewPiece(side, Pawn)
	forward := NumFiles
	startRank, lastRank := 1, 7
	if side == Black {
		forward = -NumFiles
		startRank, lastRank = 6, 0
	}

	addPawnMove := func(m Move) {
		if m.To.Rank() == lastRank {
			for _, promo := range promotionKinds {
				pm := m
				pm.Promotion = promo
				*moves = append(*moves, pm)
			}
			return
		}
		*moves = append(*moves, m)
	}

	// Single push.
	if one, ok := step(sq, forward, 0); ok && b.squares[one].IsEmpty() {
		addPawnMove(Move{From: sq, To: one, MovingPiece: p})

		// Double push, only from the starting rank and only if both the
		// intermediate and destination squares are empty.
		if sq.Rank() == startRank {
			if two, ok := step(one, forward, 0); ok && b.squares[two].IsEmpty() {
				*moves = append(*moves, Move{From: sq, To: two, MovingPiece: p})
			}
		}
	}

	// Diagonal captures, including en passant.
	for _, df := range [2]int{-1, +1} {
		dest, ok := step(sq, forward+df, 1)
		if !ok {
			continue
		}
		target := b.squares[dest]
		if !target.IsEmpty() && target.Color() != side {
			addPawnMove(Move{From: sq, To: dest, MovingPiece: p, CapturedPiece: target})
			continue
		}
		if target.IsEmpty() && dest == b.enPassantTarget {
			capturedSq, _ := step(dest, -forward, 0)
			addPawnMove(Move{
				From: sq, To: dest, MovingPiece: p,
				CapturedPiece: b.squares[capturedSq],
				IsEnPassant:   true,
			})
		}
	}
}

func (b *Board) genCastling(side Color, moves *[]Move) {
	if b.IsSquareAttacked(b.KingSquare(side), side.Opponent()) {
		return // can't castle out of check
	}

	type candidate struct {
		right            Castling
		kingFrom, kingTo Square
		rookFrom, rookTo Square
		between          []Square // must be empty
		safe             []Square // king-from, transit, king-to: must not be attacked
	}

	var candidates []candidate
	if side == White {
		candidates = []candidate{
			{WhiteKingSide, E1, G1, H1, F1, []Square{F1, G1}, []Square{E1, F1, G1}},
			{WhiteQueenSide, E1, C1, A1, D1, []Square{D1, C1, B1}, []Square{E1, D1, C1}},
		}
	} else {
		candidates = []candidate{
			{BlackKingSide, E8, G8, H8, F8, []Square{F8, G8}, []Square{E8, F8, G8}},
			{BlackQueenSide, E8, C8, A8, D8, []Square{D8, C8, B8}, []Square{E8, D8, C8}},
		}
	}

	for _, c := range candidates {
		if !b.castlingRights.Has(c.right) {
			continue
		}
		ok := true
		for _, sq := range c.between {
			if !b.squares[sq].IsEmpty() {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for _, sq := range c.safe {
			if b.IsSquareAttacked(sq, side.Opponent()) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		*moves = append(*moves, Move{
			From: c.kingFrom, To: c.kingTo,
			MovingPiece: NewPiece(side, King),
			IsCastle:    true,
		})
	}
}
