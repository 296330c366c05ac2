package board

import "math/rand"

// Hash is an incrementally-maintained 64-bit position identity, covering
// exactly placement, side to move, castling rights and en passant target --
// the four FEN fields the transposition table keys on (spec design note:
// halfmove clock and fullmove number must never be part of the key).
type Hash uint64

// zobristTable holds the random keys used to build a Hash incrementally.
// Generated once per process (or with a fixed seed, for reproducible
// search/test output) and shared by every Board built from it.
type zobristTable struct {
	piece [NumColors][NumKinds][NumSquares]Hash
	side  Hash
	ep    [NumFiles]Hash
	right [4]Hash // White-K, White-Q, Black-K, Black-Q, matching Castling bit order
}

var defaultZobrist = newZobristTable(1)

func newZobristTable(seed int64) *zobristTable {
	r := rand.New(rand.NewSource(seed))
	t := &zobristTable{}
	for c := Color(0); c < NumColors; c++ {
		for k := Kind(0); k < NumKinds; k++ {
			for sq := 0; sq < NumSquares; sq++ {
				t.piece[c][k][sq] = Hash(r.Uint64())
			}
		}
	}
	t.side = Hash(r.Uint64())
	for f := 0; f < NumFiles; f++ {
		t.ep[f] = Hash(r.Uint64())
	}
	for i := range t.right {
		t.right[i] = Hash(r.Uint64())
	}
	return t
}

func (t *zobristTable) pieceKey(c Color, k Kind, sq Square) Hash {
	return t.piece[c][k][sq]
}

func (t *zobristTable) castlingKey(c Castling) Hash {
	var h Hash
	if c.Has(WhiteKingSide) {
		h ^= t.right[0]
	}
	if c.Has(WhiteQueenSide) {
		h ^= t.right[1]
	}
	if c.Has(BlackKingSide) {
		h ^= t.right[2]
	}
	if c.Has(BlackQueenSide) {
		h ^= t.right[3]
	}
	return h
}

func (t *zobristTable) enPassantKey(sq Square) Hash {
	if sq == NoSquare {
		return 0
	}
	return t.ep[sq.File()]
}

// hashFromScratch recomputes the hash from the board fields directly. Used
// on load/reset; incremental updates during make/unmake are cheaper and are
// applied directly by the mutators in makemove.go and nullmove.go.
func (t *zobristTable) hashFromScratch(b *Board) Hash {
	var h Hash
	for sq := Square(0); int(sq) < NumSquares; sq++ {
		p := b.squares[sq]
		if p.IsEmpty() {
			continue
		}
		h ^= t.pieceKey(p.Color(), p.Kind(), sq)
	}
	if b.sideToMove == Black {
		h ^= t.side
	}
	h ^= t.castlingKey(b.castlingRights)
	h ^= t.enPassantKey(b.enPassantTarget)
	return h
}
