package eval

import (
	"fmt"

	"github.com/ravensworth/cinder/pkg/board"
)

// Score is a signed position or move score in centipawns. Evaluator and
// search scores are relative to the side to move: positive favors the
// mover. Mate scores are encoded as +/-(MateValue - ply), so that shorter
// mates always sort ahead of longer ones; IsMate distinguishes a mate score
// from an ordinary material/positional one.
type Score int32

const (
	NegInf          = MinScore - 1
	MinScore  Score = -1 << 20
	MaxScore  Score = 1 << 20
	Inf             = MaxScore + 1

	// MateValue is the score assigned to delivering mate on the current ply.
	// MateThreshold is the boundary above which a score is considered a mate
	// score rather than a material/positional one: any score s with
	// |s| >= MateThreshold encodes "mate in (MateValue-|s|) plies".
	MateValue     Score = 20000
	MateThreshold Score = 19000
)

func (s Score) String() string {
	if s.IsMate() {
		plies := MateValue - abs(s)
		if s > 0 {
			return fmt.Sprintf("mate in %v", (plies+1)/2)
		}
		return fmt.Sprintf("mated in %v", (plies+1)/2)
	}
	return fmt.Sprintf("%v", int32(s))
}

// IsMate reports whether s encodes a forced mate rather than a material score.
func (s Score) IsMate() bool {
	return abs(s) >= MateThreshold
}

// Mated returns the score for being mated in ply plies from the root.
func Mated(ply int) Score {
	return -MateValue + Score(ply)
}

// Mating returns the score for delivering mate in ply plies from the root.
func Mating(ply int) Score {
	return MateValue - Score(ply)
}

func abs(s Score) Score {
	if s < 0 {
		return -s
	}
	return s
}

// Crop clamps s into [MinScore, MaxScore].
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

// Max returns the largest of the given scores.
func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

// Min returns the smallest of the given scores.
func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}

// Unit returns the signed unit for the color: 1 for White and -1 for Black.
func Unit(c board.Color) Score {
	if c == board.White {
		return 1
	}
	return -1
}
