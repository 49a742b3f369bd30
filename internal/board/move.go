package board

import "fmt"

// Move encodes a chess move in 24 bits, packed LSB-first:
//
//	bits 0-5:   from square (0-63)
//	bits 6-11:  to square (0-63)
//	bits 12-15: moved piece type (Pawn..King)
//	bits 16-19: promotion piece type (NoPieceType if this isn't a promotion)
//	bit 20:     isCapture
//	bit 21:     isDoublePawnPush
//	bit 22:     isEnPassant
//	bit 23:     isCastling
//
// The zero value is the reserved NULL move.
type Move uint32

const (
	moveFromShift     = 0
	moveToShift       = 6
	movePieceShift    = 12
	movePromoShift    = 16
	moveCaptureBit    = 1 << 20
	moveDoublePushBit = 1 << 21
	moveEnPassantBit  = 1 << 22
	moveCastlingBit   = 1 << 23
	moveSquareMask    = 0x3F
	movePieceMask     = 0xF
)

// NoMove is the reserved null move.
const NoMove Move = 0

// MoveParams carries the fields needed to construct a Move.
type MoveParams struct {
	From, To         Square
	MovedPiece       PieceType
	PromotionPiece   PieceType // NoPieceType, or left zero, if this isn't a promotion
	IsCapture        bool
	IsDoublePawnPush bool
	IsEnPassant      bool
	IsCastling       bool
}

// NewMoveFull packs a move from its component fields.
func NewMoveFull(p MoveParams) Move {
	m := Move(p.From)<<moveFromShift | Move(p.To)<<moveToShift
	m |= Move(p.MovedPiece) << movePieceShift
	promo := p.PromotionPiece
	if promo == Pawn {
		// A pawn is never a promotion piece, so a zero-valued field means none.
		promo = NoPieceType
	}
	m |= Move(promo) << movePromoShift
	if p.IsCapture {
		m |= moveCaptureBit
	}
	if p.IsDoublePawnPush {
		m |= moveDoublePushBit
	}
	if p.IsEnPassant {
		m |= moveEnPassantBit
	}
	if p.IsCastling {
		m |= moveCastlingBit
	}
	return m
}

// NewMove creates a plain, non-special move.
func NewMove(from, to Square, movedPiece PieceType, isCapture bool) Move {
	return NewMoveFull(MoveParams{From: from, To: to, MovedPiece: movedPiece, PromotionPiece: NoPieceType, IsCapture: isCapture})
}

// From returns the origin square.
func (m Move) From() Square {
	return Square((m >> moveFromShift) & moveSquareMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> moveToShift) & moveSquareMask)
}

// MovedPiece returns the type of the piece making the move.
func (m Move) MovedPiece() PieceType {
	return PieceType((m >> movePieceShift) & movePieceMask)
}

// PromotionPiece returns the promotion piece type, or NoPieceType if none.
func (m Move) PromotionPiece() PieceType {
	return PieceType((m >> movePromoShift) & movePieceMask)
}

// IsPromotion returns true if this move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.PromotionPiece() != NoPieceType
}

// IsCapture returns true if this move captures a piece (including en passant).
func (m Move) IsCapture() bool {
	return m&moveCaptureBit != 0
}

// IsDoublePawnPush returns true if this move is a two-square pawn push.
func (m Move) IsDoublePawnPush() bool {
	return m&moveDoublePushBit != 0
}

// IsEnPassant returns true if this move is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m&moveEnPassantBit != 0
}

// IsCastling returns true if this move is a castling move.
func (m Move) IsCastling() bool {
	return m&moveCastlingBit != 0
}

// IsQuiet returns true if the move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// String returns the UCI long-algebraic form of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(promotionChar(m.PromotionPiece()))
	}
	return s
}

func promotionChar(pt PieceType) byte {
	switch pt {
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	default:
		return ' '
	}
}

func promotionFromChar(c byte) (PieceType, bool) {
	switch c {
	case 'n':
		return Knight, true
	case 'b':
		return Bishop, true
	case 'r':
		return Rook, true
	case 'q':
		return Queen, true
	default:
		return NoPieceType, false
	}
}

// ParseMove matches a UCI long-algebraic move string against the pseudo-legal
// moves available in pos. Returns NoMove (with a nil error) if no pseudo-legal
// move matches, mirroring the protocol's "terminates the move list" contract.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	wantPromo := NoPieceType
	if len(s) == 5 {
		promo, ok := promotionFromChar(s[4])
		if !ok {
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		wantPromo = promo
	} else if len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	moves := pos.GeneratePseudoLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		cand := moves.Get(i)
		if cand.From() == from && cand.To() == to && cand.PromotionPiece() == wantPromo {
			return cand, nil
		}
	}
	return NoMove, nil
}

// MoveList is a fixed-size list of moves to avoid heap allocation.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set sets the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list's array.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
