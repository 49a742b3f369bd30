package board

// Color is White or Black, or NoColor when a lookup found nothing.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other returns the opposing color; White and Black differ in bit 0,
// so flipping it swaps them.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType is a piece kind independent of color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

var pieceTypeNames = [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

func (pt PieceType) String() string {
	if int(pt) >= len(pieceTypeNames) {
		return "None"
	}
	return pieceTypeNames[pt]
}

// pieceTypeChars is indexed by PieceType and gives the lowercase FEN
// letter for each.
const pieceTypeChars = "pnbrqk"

// Char returns the lowercase FEN letter for the piece type.
func (pt PieceType) Char() byte {
	if int(pt) >= len(pieceTypeChars) {
		return ' '
	}
	return pieceTypeChars[pt]
}

// PieceValue gives the material value of each PieceType, in centipawns.
var PieceValue = [7]int{100, 300, 350, 500, 1000, 10000, 0}

// Piece packs a PieceType and Color into one value: pieceType + color*6.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// NewPiece encodes pt/c into a Piece, or NoPiece if either is out of range.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(c)*6 + Piece(pt)
}

func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// pieceChars is WhitePawn..WhiteKing, BlackPawn..BlackKing in Piece order.
const pieceChars = "PNBRQKpnbrqk"

// String returns the FEN letter for the piece: uppercase for White,
// lowercase for Black.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return string(pieceChars[p])
}

// PieceFromChar decodes a FEN piece letter, or NoPiece if c isn't one.
func PieceFromChar(c byte) Piece {
	for i := 0; i < len(pieceChars); i++ {
		if pieceChars[i] == c {
			return Piece(i)
		}
	}
	return NoPiece
}

// Value returns the piece's material value in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}
