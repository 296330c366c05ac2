package board

// Ray offsets, expressed as square-index deltas. Sliding pieces walk these;
// king and pawn attacks use a single step of the relevant subset.
var (
	rookOffsets   = [4]int{+1, -1, +NumFiles, -NumFiles}
	bishopOffsets = [4]int{+NumFiles + 1, +NumFiles - 1, -NumFiles + 1, -NumFiles - 1}
	kingOffsets   = [8]int{+1, -1, +NumFiles, -NumFiles, +NumFiles + 1, +NumFiles - 1, -NumFiles + 1, -NumFiles - 1}
	knightOffsets = [8]int{+17, +15, +10, +6, -17, -15, -10, -6}
)

// step computes sq+offset, rejecting both off-board results and the
// board-edge wrap that a raw index addition can't otherwise detect: a
// step that would cross from file h to file a (or vice-versa) shows up as
// an implausibly large file delta, so wrap is detected by comparing file
// difference rather than by special-casing the offset.
func step(sq Square, offset, maxFileDelta int) (Square, bool) {
	dest := int(sq) + offset
	if dest < 0 || dest >= NumSquares {
		return NoSquare, false
	}
	d := Square(dest)
	delta := d.File() - sq.File()
	if delta < 0 {
		delta = -delta
	}
	if delta > maxFileDelta {
		return NoSquare, false
	}
	return d, true
}

// IsSquareAttacked reports whether any piece of the given color attacks sq.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	// Pawns: look from sq backwards along the attacker's forward direction.
	pawnDir := -1
	if by == White {
		pawnDir = 1
	}
	for _, df := range [2]int{-1, +1} {
		src, ok := step(sq, -pawnDir*NumFiles+df, 1)
		if ok {
			p := b.squares[src]
			if p.Kind() == Pawn && p.Color() == by {
				return true
			}
		}
	}

	for _, off := range knightOffsets {
		src, ok := step(sq, off, 2)
		if ok {
			p := b.squares[src]
			if p.Kind() == Knight && p.Color() == by {
				return true
			}
		}
	}

	for _, off := range kingOffsets {
		src, ok := step(sq, off, 1)
		if ok {
			p := b.squares[src]
			if p.Kind() == King && p.Color() == by {
				return true
			}
		}
	}

	if raySliderAttacks(b, sq, by, rookOffsets[:], Rook) {
		return true
	}
	if raySliderAttacks(b, sq, by, bishopOffsets[:], Bishop) {
		return true
	}
	return false
}

// raySliderAttacks walks each ray from sq until it hits the board edge or an
// occupied square; that occupant attacks sq iff it belongs to the attacker
// and is a Queen or the ray's own family (Rook for orthogonal rays, Bishop
// for diagonal rays).
func raySliderAttacks(b *Board, sq Square, by Color, offsets []int, family Kind) bool {
	maxDelta := 1
	for _, off := range offsets {
		cur := sq
		for {
			next, ok := step(cur, off, maxDelta)
			if !ok {
				break
			}
			p := b.squares[next]
			if p.IsEmpty() {
				cur = next
				continue
			}
			if p.Color() == by && (p.Kind() == family || p.Kind() == Queen) {
				return true
			}
			break
		}
	}
	return false
}
