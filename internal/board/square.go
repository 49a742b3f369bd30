package board

import "fmt"

// Square indexes one of the 64 board squares using little-endian
// rank-file mapping: bit 0 is a1, bit 7 is h1, bit 56 is a8, bit 63 is h8.
type Square uint8

// NoSquare marks "no square" (e.g. an absent en-passant target).
const NoSquare Square = 64

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

// NewSquare builds a square from a 0-indexed file/rank pair.
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare decodes two-character algebraic notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("square %q: expected 2 characters", s)
	}

	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("square %q: out of range", s)
	}

	return NewSquare(file, rank), nil
}

// File reports the 0-indexed column (0=a .. 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank reports the 0-indexed row (0=rank1 .. 7=rank8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// IsValid reports whether sq names a real board square.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Mirror flips a square across the board's horizontal midline, converting
// between White's and Black's view of the same file (used by piece-square
// tables, which are authored from White's perspective).
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// RelativeRank reports the rank as seen by c: rank 0 is always that
// color's home rank, rank 7 its promotion rank.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// String renders algebraic notation, or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}
