package board

// MoveMode selects which class of moves Make accepts.
type MoveMode int

const (
	// AllMoves lets Make apply every pseudo-legal move.
	AllMoves MoveMode = iota
	// CapturesOnly makes Make reject every non-capture (quiet push
	// promotions included), used by quiescence search.
	CapturesOnly
)

// GenerateLegalMoves generates all legal moves for the position.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return p.filterLegalMoves(ml)
}

// GeneratePseudoLegalMoves generates all pseudo-legal moves (may leave king in check).
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return ml
}

// GenerateCaptures generates all legal capture moves (including capture
// promotions and en passant).
func (p *Position) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	p.generateCaptures(ml)
	return p.filterLegalMoves(ml)
}

// GeneratePseudoLegalCaptures generates capture moves without filtering for
// legality; used by quiescence search, which relies on Make's own
// legality/CapturesOnly rejection instead of pre-filtering.
func (p *Position) GeneratePseudoLegalCaptures() *MoveList {
	ml := NewMoveList()
	p.generateCaptures(ml)
	return ml
}

// generateAllMoves generates all pseudo-legal moves in a fixed order:
// pawn quiet moves, pawn captures, en passant, king moves and castling,
// then the remaining piece types.
func (p *Position) generateAllMoves(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	occupied := p.AllOccupied
	enemies := p.Occupied[them]

	p.generatePawnQuietMoves(ml, us, occupied)
	p.generatePawnCaptureMoves(ml, us, enemies)
	p.generateEnPassantMoves(ml, us)
	p.generateKingMoves(ml, us, enemies)
	p.generateCastlingMoves(ml, us)
	p.generateKnightMoves(ml, us, enemies)
	p.generateBishopMoves(ml, us, enemies, occupied)
	p.generateRookMoves(ml, us, enemies, occupied)
	p.generateQueenMoves(ml, us, enemies, occupied)
}

// generatePawnQuietMoves generates non-capturing pawn pushes, including
// double pushes and push promotions.
func (p *Position) generatePawnQuietMoves(ml *MoveList, us Color, occupied Bitboard) {
	pawns := p.Pieces[us][Pawn]
	empty := ^occupied

	var push1, push2, promotionRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		promotionRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		promotionRank = Rank1
		pushDir = -8
	}

	nonPromo := push1 & ^promotionRank
	for nonPromo != 0 {
		to := nonPromo.PopLSB()
		from := Square(int(to) - pushDir)
		ml.Add(NewMoveFull(MoveParams{From: from, To: to, MovedPiece: Pawn}))
	}

	for push2 != 0 {
		to := push2.PopLSB()
		from := Square(int(to) - 2*pushDir)
		ml.Add(NewMoveFull(MoveParams{From: from, To: to, MovedPiece: Pawn, IsDoublePawnPush: true}))
	}

	promoPush := push1 & promotionRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		from := Square(int(to) - pushDir)
		addPromotions(ml, from, to, false)
	}
}

// generatePawnCaptureMoves generates diagonal pawn captures, including
// capture promotions.
func (p *Position) generatePawnCaptureMoves(ml *MoveList, us Color, enemies Bitboard) {
	pawns := p.Pieces[us][Pawn]

	var attackL, attackR, promotionRank Bitboard
	var pushDir int

	if us == White {
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	nonPromoL := attackL & ^promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		ml.Add(NewMoveFull(MoveParams{From: from, To: to, MovedPiece: Pawn, IsCapture: true}))
	}

	nonPromoR := attackR & ^promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		ml.Add(NewMoveFull(MoveParams{From: from, To: to, MovedPiece: Pawn, IsCapture: true}))
	}

	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		addPromotions(ml, from, to, true)
	}

	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		addPromotions(ml, from, to, true)
	}
}

// generateEnPassantMoves generates en passant captures, if any are available.
func (p *Position) generateEnPassantMoves(ml *MoveList, us Color) {
	if p.EnPassant == NoSquare {
		return
	}
	pawns := p.Pieces[us][Pawn]
	epBB := SquareBB(p.EnPassant)
	var epAttackers Bitboard
	if us == White {
		epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
	} else {
		epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
	}
	for epAttackers != 0 {
		from := epAttackers.PopLSB()
		ml.Add(NewMoveFull(MoveParams{
			From: from, To: p.EnPassant, MovedPiece: Pawn,
			IsCapture: true, IsEnPassant: true,
		}))
	}
}

// addPromotions adds all four promotion moves in Queen, Rook, Bishop, Knight order.
func addPromotions(ml *MoveList, from, to Square, isCapture bool) {
	for _, promo := range [4]PieceType{Queen, Rook, Bishop, Knight} {
		ml.Add(NewMoveFull(MoveParams{
			From: from, To: to, MovedPiece: Pawn, PromotionPiece: promo, IsCapture: isCapture,
		}))
	}
}

// generateKingMoves generates non-castling king moves.
func (p *Position) generateKingMoves(ml *MoveList, us Color, enemies Bitboard) {
	from := p.KingSquare[us]
	attacks := KingAttacks(from) & ^p.Occupied[us]

	for attacks != 0 {
		to := attacks.PopLSB()
		ml.Add(NewMoveFull(MoveParams{From: from, To: to, MovedPiece: King, IsCapture: enemies&SquareBB(to) != 0}))
	}
}

// generateCastlingMoves generates castling moves.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()

	if us == White {
		if p.CastlingRights&WhiteKingSideCastle != 0 {
			if p.AllOccupied&((1<<F1)|(1<<G1)) == 0 {
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
					ml.Add(NewMoveFull(MoveParams{From: E1, To: G1, MovedPiece: King, IsCastling: true}))
				}
			}
		}
		if p.CastlingRights&WhiteQueenSideCastle != 0 {
			if p.AllOccupied&((1<<B1)|(1<<C1)|(1<<D1)) == 0 {
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
					ml.Add(NewMoveFull(MoveParams{From: E1, To: C1, MovedPiece: King, IsCastling: true}))
				}
			}
		}
	} else {
		if p.CastlingRights&BlackKingSideCastle != 0 {
			if p.AllOccupied&((1<<F8)|(1<<G8)) == 0 {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
					ml.Add(NewMoveFull(MoveParams{From: E8, To: G8, MovedPiece: King, IsCastling: true}))
				}
			}
		}
		if p.CastlingRights&BlackQueenSideCastle != 0 {
			if p.AllOccupied&((1<<B8)|(1<<C8)|(1<<D8)) == 0 {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
					ml.Add(NewMoveFull(MoveParams{From: E8, To: C8, MovedPiece: King, IsCastling: true}))
				}
			}
		}
	}
}

func (p *Position) generateKnightMoves(ml *MoveList, us Color, enemies Bitboard) {
	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := KnightAttacks(from) & ^p.Occupied[us]
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMoveFull(MoveParams{From: from, To: to, MovedPiece: Knight, IsCapture: enemies&SquareBB(to) != 0}))
		}
	}
}

func (p *Position) generateBishopMoves(ml *MoveList, us Color, enemies, occupied Bitboard) {
	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, occupied) & ^p.Occupied[us]
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMoveFull(MoveParams{From: from, To: to, MovedPiece: Bishop, IsCapture: enemies&SquareBB(to) != 0}))
		}
	}
}

func (p *Position) generateRookMoves(ml *MoveList, us Color, enemies, occupied Bitboard) {
	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, occupied) & ^p.Occupied[us]
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMoveFull(MoveParams{From: from, To: to, MovedPiece: Rook, IsCapture: enemies&SquareBB(to) != 0}))
		}
	}
}

func (p *Position) generateQueenMoves(ml *MoveList, us Color, enemies, occupied Bitboard) {
	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, occupied) & ^p.Occupied[us]
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMoveFull(MoveParams{From: from, To: to, MovedPiece: Queen, IsCapture: enemies&SquareBB(to) != 0}))
		}
	}
}

// generateCaptures generates capture moves only (including capture
// promotions and en passant) for quiescence search. Quiet push promotions
// are deliberately excluded: Make's CapturesOnly mode rejects any
// non-capturing move outright, so there is no point generating one here.
func (p *Position) generateCaptures(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	enemies := p.Occupied[them]
	occupied := p.AllOccupied

	p.generatePawnCaptureMoves(ml, us, enemies)
	p.generateEnPassantMoves(ml, us)

	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := KnightAttacks(from) & enemies
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMoveFull(MoveParams{From: from, To: to, MovedPiece: Knight, IsCapture: true}))
		}
	}

	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, occupied) & enemies
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMoveFull(MoveParams{From: from, To: to, MovedPiece: Bishop, IsCapture: true}))
		}
	}

	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, occupied) & enemies
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMoveFull(MoveParams{From: from, To: to, MovedPiece: Rook, IsCapture: true}))
		}
	}

	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, occupied) & enemies
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMoveFull(MoveParams{From: from, To: to, MovedPiece: Queen, IsCapture: true}))
		}
	}

	from := p.KingSquare[us]
	attacks := KingAttacks(from) & enemies
	for attacks != 0 {
		to := attacks.PopLSB()
		ml.Add(NewMoveFull(MoveParams{From: from, To: to, MovedPiece: King, IsCapture: true}))
	}
}

// filterLegalMoves filters out illegal moves (those that leave the king in check).
func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := NewMoveList()

	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if p.IsLegal(m) {
			result.Add(m)
		}
	}

	return result
}

// IsLegal returns true if the move is legal (doesn't leave the mover's king
// in check). King moves are checked directly against the destination
// square; all other moves are verified by actually making and unmaking them.
func (p *Position) IsLegal(m Move) bool {
	us := p.SideToMove
	them := us.Other()
	from := m.From()
	ksq := p.KingSquare[us]

	if from == ksq && !m.IsCastling() {
		occ := p.AllOccupied &^ SquareBB(from)
		return p.AttackersByColor(m.To(), them, occ) == 0
	}

	snapshot := *p
	ok := p.Make(m, AllMoves)
	*p = snapshot
	return ok
}

// castlingTable holds the per-square mask applied to CastlingRights whenever
// a move's from/to square touches a rook's or king's home square. Squares
// with no bearing on castling rights carry the all-ones mask (15), leaving
// CastlingRights unchanged when ANDed with it.
var castlingTable [64]CastlingRights

func init() {
	for i := range castlingTable {
		castlingTable[i] = AllCastling // all four right bits set, i.e. a no-op mask
	}
	castlingTable[A1] = 13 // clears WhiteQueenSideCastle (2)
	castlingTable[H1] = 14 // clears WhiteKingSideCastle (1)
	castlingTable[E1] = 12 // clears both white rights (1|2)
	castlingTable[A8] = 7  // clears BlackQueenSideCastle (8)
	castlingTable[H8] = 11 // clears BlackKingSideCastle (4)
	castlingTable[E8] = 3  // clears both black rights (4|8)
}

// Make applies a pseudo-legal move to the position in place. If the move
// leaves the mover's own king in check, the position is restored to its
// pre-move state and Make returns false; the caller is still responsible
// for its own snapshot/restore around search backtracking, since Make's
// internal rollback only covers its own illegal-move rejection.
func (p *Position) Make(m Move, mode MoveMode) bool {
	if mode == CapturesOnly && !m.IsCapture() {
		return false
	}

	snapshot := *p

	us := p.SideToMove
	them := us.Other()
	from := m.From()
	to := m.To()
	pt := m.MovedPiece()

	p.Hash ^= zobristSideToMove
	p.Hash ^= zobristCastling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		p.Hash ^= epKey[p.EnPassant]
	}
	p.EnPassant = NoSquare

	capturedPiece := NoPiece
	if m.IsEnPassant() {
		var capturedSq Square
		if us == White {
			capturedSq = to - 8
		} else {
			capturedSq = to + 8
		}
		capturedPiece = p.removePiece(capturedSq)
		p.Hash ^= zobristPiece[them][Pawn][capturedSq]
	} else if m.IsCapture() {
		capturedPiece = p.removePiece(to)
		p.Hash ^= zobristPiece[them][capturedPiece.Type()][to]
	}

	p.movePiece(from, to)
	p.Hash ^= zobristPiece[us][pt][from]
	p.Hash ^= zobristPiece[us][pt][to]

	if m.IsPromotion() {
		promoPt := m.PromotionPiece()
		p.Pieces[us][Pawn] &^= SquareBB(to)
		p.Pieces[us][promoPt] |= SquareBB(to)
		p.Hash ^= zobristPiece[us][Pawn][to]
		p.Hash ^= zobristPiece[us][promoPt][to]
	}

	if m.IsCastling() {
		var rookFrom, rookTo Square
		if to > from {
			rookFrom = NewSquare(7, from.Rank())
			rookTo = NewSquare(5, from.Rank())
		} else {
			rookFrom = NewSquare(0, from.Rank())
			rookTo = NewSquare(3, from.Rank())
		}
		p.movePiece(rookFrom, rookTo)
		p.Hash ^= zobristPiece[us][Rook][rookFrom]
		p.Hash ^= zobristPiece[us][Rook][rookTo]
	}

	p.CastlingRights &= castlingTable[from] & castlingTable[to]
	p.Hash ^= zobristCastling[p.CastlingRights]

	if m.IsDoublePawnPush() {
		epSquare := Square((int(from) + int(to)) / 2)
		p.EnPassant = epSquare
		p.Hash ^= epKey[epSquare]
	}

	// HalfMoveClock here doubles as the absolute ply counter used to index
	// the killer/history tables and as the TT "never prune at root" test
	// (§4.8 step 1); it increments unconditionally rather than resetting on
	// pawn moves/captures, since fifty-move-rule claim detection is out of
	// scope for this engine.
	p.HalfMoveClock++

	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.UpdateCheckers()

	if p.IsSquareAttacked(p.KingSquare[us], them) {
		*p = snapshot
		return false
	}

	return true
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i)) {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

