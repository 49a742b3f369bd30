package engine

import "github.com/coreengine/chesscore/internal/board"

// Piece-square tables, one per piece type, indexed a1..h8 from White's
// perspective. Black reads the same table through the vertically mirrored
// square. Queen carries no table (zero positional contribution) per the
// material-dominated evaluation this engine uses.
var (
	pawnPST = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	knightPST = [64]int{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	}
	bishopPST = [64]int{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}
	rookPST = [64]int{
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	kingPST = [64]int{
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	}
)

func pstValue(pt board.PieceType, sq board.Square, c board.Color) int {
	if c == board.Black {
		sq = sq.Mirror()
	}
	switch pt {
	case board.Pawn:
		return pawnPST[sq]
	case board.Knight:
		return knightPST[sq]
	case board.Bishop:
		return bishopPST[sq]
	case board.Rook:
		return rookPST[sq]
	case board.King:
		return kingPST[sq]
	default:
		return 0
	}
}

// Evaluate returns a static score for pos from the side-to-move's
// perspective: material plus piece-square placement, with White's
// contribution positive and Black's negated before the final flip.
func Evaluate(pos *board.Position) int {
	score := 0

	for pt := board.Pawn; pt <= board.King; pt++ {
		whiteBB := pos.Pieces[board.White][pt]
		for whiteBB != 0 {
			sq := whiteBB.PopLSB()
			score += board.PieceValue[pt] + pstValue(pt, sq, board.White)
		}
		blackBB := pos.Pieces[board.Black][pt]
		for blackBB != 0 {
			sq := blackBB.PopLSB()
			score -= board.PieceValue[pt] + pstValue(pt, sq, board.Black)
		}
	}

	if pos.SideToMove == board.White {
		return score
	}
	return -score
}
