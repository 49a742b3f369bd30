package engine

import (
	"sort"

	"github.com/coreengine/chesscore/internal/board"
)

const (
	pvScore      = 200000
	captureBase  = 100000
	killer1Score = 90000
	killer2Score = 80000
)

// mvvLva[attacker][victim] scores captures by most-valuable-victim,
// least-valuable-attacker. Built once at init from rank(victim)*100 +
// (5-rank(attacker)) + 100, which spans exactly the stated 100..605 range:
// the cheapest attacker taking the most valuable "victim" (King, which can
// never actually be captured but completes the 6x6 shape) tops out at 605,
// and the most expensive attacker taking a pawn bottoms out at 100.
var mvvLva [6][6]int

func init() {
	for attacker := board.Pawn; attacker <= board.King; attacker++ {
		for victim := board.Pawn; victim <= board.King; victim++ {
			mvvLva[attacker][victim] = 100 + int(victim)*100 + (5 - int(attacker))
		}
	}
}

// MoveOrderer holds the killer-move and history tables used to rank moves
// before each node's move loop. Both tables are indexed by absolute ply /
// piece, matching the search's halfMoveClock-based ply numbering.
type MoveOrderer struct {
	killers [MaxPly][2]board.Move
	history [12][64]int
}

// NewMoveOrderer creates an empty move orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// Reset clears killers and history, used at the start of a fresh search.
func (o *MoveOrderer) Reset() {
	for i := range o.killers {
		o.killers[i] = [2]board.Move{}
	}
	for i := range o.history {
		for j := range o.history[i] {
			o.history[i][j] = 0
		}
	}
}

// ScoreMove implements the four-tier ordering score: PV move, capture
// (MVV-LVA), killer moves, then history.
func (o *MoveOrderer) ScoreMove(m board.Move, pos *board.Position, ply int, pvMove board.Move, scorePv bool) int {
	if scorePv && m == pvMove {
		return pvScore
	}

	if m.IsCapture() {
		var victimType board.PieceType
		if m.IsEnPassant() {
			victimType = board.Pawn
		} else {
			victimType = pos.PieceAt(m.To()).Type()
		}
		attackerType := m.MovedPiece()
		return captureBase + mvvLva[attackerType][victimType]
	}

	if ply < MaxPly {
		if m == o.killers[ply][0] {
			return killer1Score
		}
		if m == o.killers[ply][1] {
			return killer2Score
		}
	}

	piece := board.NewPiece(m.MovedPiece(), pos.SideToMove)
	return o.history[piece][m.To()]
}

// UpdateKillers records a quiet move that caused a beta cutoff at ply,
// shifting the existing first killer down to the second slot.
func (o *MoveOrderer) UpdateKillers(ply int, m board.Move) {
	if ply >= MaxPly {
		return
	}
	if o.killers[ply][0] == m {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

// UpdateHistory bumps the history score for a quiet move that improved alpha.
func (o *MoveOrderer) UpdateHistory(piece board.Piece, to board.Square, depth int) {
	o.history[piece][to] += depth * depth
}

// SortMoves scores every move in ml and stably sorts them by descending
// score, so captures/promotions generated in the same order keep that
// relative order when tied.
func (o *MoveOrderer) SortMoves(ml *board.MoveList, pos *board.Position, ply int, pvMove board.Move, scorePv bool) {
	n := ml.Len()
	scores := make([]int, n)
	for i := 0; i < n; i++ {
		scores[i] = o.ScoreMove(ml.Get(i), pos, ply, pvMove, scorePv)
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return scores[idx[i]] > scores[idx[j]] })

	sorted := make([]board.Move, n)
	for i, k := range idx {
		sorted[i] = ml.Get(k)
	}
	for i, m := range sorted {
		ml.Set(i, m)
	}
}
