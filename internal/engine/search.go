package engine

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/coreengine/chesscore/internal/board"
)

// Inf leaves head-room against overflow when windows are negated.
const Inf = math.MaxInt32 / 2

// MaxPly bounds the PV table, killer table, and history table, and is the
// point at which search returns a static evaluation rather than recursing
// further (an overflow guard, not a tuning parameter).
const MaxPly = 256

// PVTable is the triangular principal-variation table: pvTable[ply][ply..]
// holds the best line found from that ply onward, with length[ply] moves.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Init marks ply as having an empty tail before this node's move loop runs.
func (pv *PVTable) Init(ply int) {
	pv.length[ply] = ply
}

// Update records m as the best move at ply and appends the child's tail.
func (pv *PVTable) Update(ply int, m board.Move) {
	pv.moves[ply][ply] = m
	for next := ply + 1; next < pv.length[ply+1]; next++ {
		pv.moves[ply][next] = pv.moves[ply+1][next]
	}
	pv.length[ply] = pv.length[ply+1]
}

// Line returns the best line found from the root.
func (pv *PVTable) Line() []board.Move {
	return pv.moves[0][:pv.length[0]]
}

// Result is the outcome of a single iterative-deepening depth.
type Result struct {
	Move  board.Move
	Score int
	Depth int
	Nodes int64
	PV    []board.Move
}

// Searcher runs negamax with alpha-beta pruning, null-move pruning, late
// move reductions, principal variation search, killer/history move
// ordering, and quiescence search on a position. One Searcher is parked on
// the UCI driver's single search worker at a time; it is not safe for
// concurrent use by multiple goroutines.
type Searcher struct {
	tt      *TranspositionTable
	orderer *MoveOrderer

	nodes   int64
	stopped atomic.Bool
	stopAt  time.Time

	pv          PVTable
	prevPV      [MaxPly]board.Move
	prevPVLen   int
	followPv    bool
	rootAbsPly  int
}

// NewSearcher creates a Searcher sharing the given transposition table.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{tt: tt, orderer: NewMoveOrderer()}
}

// Stop requests that the current search return as soon as it next checks
// the stop predicate.
func (s *Searcher) Stop() {
	s.stopped.Store(true)
}

// Nodes returns the number of nodes visited by the most recent search.
func (s *Searcher) Nodes() int64 {
	return s.nodes
}

// SearchDepth runs one full-window negamax to the requested depth from pos
// (which is not mutated: it is searched via internal snapshot/restore) and
// returns the result. stopAt is an absolute wall-clock deadline; pass a
// zero time.Time for no deadline (the caller's stop flag is still honored).
func (s *Searcher) SearchDepth(pos *board.Position, depth int, stopAt time.Time) Result {
	s.stopAt = stopAt
	s.rootAbsPly = pos.HalfMoveClock
	s.followPv = s.prevPVLen > 0
	s.pv.length[0] = 0

	snapshot := *pos
	score := s.negamax(pos, depth, -Inf, Inf, 0)
	*pos = snapshot

	line := append([]board.Move(nil), s.pv.Line()...)
	s.prevPVLen = copy(s.prevPV[:], line)

	var best board.Move
	if len(line) > 0 {
		best = line[0]
	}

	return Result{Move: best, Score: score, Depth: depth, Nodes: s.nodes, PV: line}
}

// Reset clears node count, killers, and history ahead of a fresh search
// (but not the transposition table, which persists across searches).
func (s *Searcher) Reset() {
	s.nodes = 0
	s.stopped.Store(false)
	s.orderer.Reset()
	s.prevPVLen = 0
}

func (s *Searcher) checkStop() bool {
	if s.stopped.Load() {
		return true
	}
	if !s.stopAt.IsZero() && !time.Now().Before(s.stopAt) {
		s.stopped.Store(true)
		return true
	}
	return false
}

func (s *Searcher) negamax(pos *board.Position, depth, alpha, beta, ply int) int {
	s.nodes++
	if s.nodes&4095 == 0 && s.checkStop() {
		return 0
	}

	absPly := s.rootAbsPly + ply

	if ply > 0 {
		if v := s.tt.Probe(pos.Hash, int32(alpha), int32(beta), depth); v != NoEntry {
			return int(v)
		}
	}

	s.pv.Init(ply)

	inCheck := pos.InCheck()
	if inCheck {
		depth++
	}

	if depth <= 0 {
		return s.quiescence(pos, alpha, beta, ply)
	}
	if ply >= MaxPly-1 {
		return Evaluate(pos)
	}

	ttFlag := Alpha

	if depth >= 3 && !inCheck && ply > 0 && !pos.IsEndgame() {
		undo := pos.MakeNullMove()
		score := -s.negamax(pos, depth-1-2, -beta, -beta+1, ply+1)
		pos.UnmakeNullMove(undo)
		if s.stopped.Load() {
			return 0
		}
		if score >= beta {
			s.tt.Store(pos.Hash, Beta, int32(beta), depth)
			return beta
		}
	}

	moves := pos.GeneratePseudoLegalMoves()

	pvMove := board.NoMove
	if ply < s.prevPVLen {
		pvMove = s.prevPV[ply]
	}
	scorePv := false
	if s.followPv {
		for i := 0; i < moves.Len(); i++ {
			if moves.Get(i) == pvMove {
				scorePv = true
				break
			}
		}
		if !scorePv {
			s.followPv = false
		}
	}
	s.orderer.SortMoves(moves, pos, clampPly(absPly), pvMove, scorePv)

	legalMoves := 0

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		mover := pos.SideToMove
		snapshot := *pos
		if !pos.Make(m, board.AllMoves) {
			*pos = snapshot
			continue
		}
		legalMoves++

		var score int
		if legalMoves == 1 {
			score = -s.negamax(pos, depth-1, -beta, -alpha, ply+1)
		} else {
			reduced := legalMoves > 4 && depth > 2 && !inCheck && !m.IsCapture() && !m.IsPromotion() && !pos.InCheck()
			if reduced {
				score = -s.negamax(pos, depth-2, -(alpha + 1), -alpha, ply+1)
			} else {
				score = alpha + 1
			}
			if score > alpha {
				score = -s.negamax(pos, depth-1, -(alpha + 1), -alpha, ply+1)
				if score > alpha && score < beta {
					score = -s.negamax(pos, depth-1, -beta, -alpha, ply+1)
				}
			}
		}

		*pos = snapshot

		if s.stopped.Load() {
			break
		}

		if score >= beta {
			if m.IsQuiet() {
				s.orderer.UpdateKillers(clampPly(absPly), m)
			}
			s.tt.Store(pos.Hash, Beta, int32(beta), depth)
			return beta
		}
		if score > alpha {
			if m.IsQuiet() {
				piece := board.NewPiece(m.MovedPiece(), mover)
				s.orderer.UpdateHistory(piece, m.To(), depth)
			}
			alpha = score
			ttFlag = Exact
			s.pv.Update(ply, m)
		}
	}

	if legalMoves == 0 {
		if inCheck {
			return -Inf + 1 + ply
		}
		return 0
	}

	s.tt.Store(pos.Hash, ttFlag, int32(alpha), depth)
	return alpha
}

func (s *Searcher) quiescence(pos *board.Position, alpha, beta, ply int) int {
	s.nodes++
	if s.nodes&4095 == 0 && s.checkStop() {
		return 0
	}

	standPat := Evaluate(pos)
	if standPat >= beta {
		return beta
	}
	if ply >= MaxPly-1 {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := pos.GeneratePseudoLegalCaptures()
	s.orderer.SortMoves(moves, pos, clampPly(s.rootAbsPly+ply), board.NoMove, false)

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		snapshot := *pos
		if !pos.Make(m, board.CapturesOnly) {
			*pos = snapshot
			continue
		}

		score := -s.quiescence(pos, -beta, -alpha, ply+1)
		*pos = snapshot

		if s.stopped.Load() {
			break
		}

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

func clampPly(ply int) int {
	if ply >= MaxPly {
		return MaxPly - 1
	}
	return ply
}
