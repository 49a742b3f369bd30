package engine

import (
	"time"

	"github.com/coreengine/chesscore/internal/board"
)

// Engine bundles a transposition table and a searcher, matching the
// lifetime a UCI session expects: one table that survives ucinewgame
// clears, one searcher parked on the driver's single worker.
type Engine struct {
	tt       *TranspositionTable
	searcher *Searcher
}

// NewEngine creates an Engine with a transposition table sized in
// megabytes.
func NewEngine(ttMegabytes int) *Engine {
	tt := NewTranspositionTable(ttMegabytes)
	return &Engine{tt: tt, searcher: NewSearcher(tt)}
}

// NewGame clears the transposition table and search history, matching the
// UCI ucinewgame command.
func (e *Engine) NewGame() {
	e.tt.Clear()
	e.searcher.Reset()
}

// Resize reallocates the transposition table to the given size in
// megabytes, matching the UCI "setoption name Hash" command.
func (e *Engine) Resize(mb int) {
	e.tt.Resize(mb)
}

// Stop requests that an in-progress search return its current best move.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// IterativeDeepen runs negamax at increasing depths from pos until
// maxDepth is reached, stopAt has passed, or the caller's search is
// stopped, reporting each completed depth's Result to onDepth. It returns
// the last completed Result. The depth-1 Result is always kept and reported,
// even when the search was stopped before depth 1 finished; its Move is
// board.NoMove only if that partial search recorded no line.
func (e *Engine) IterativeDeepen(pos *board.Position, maxDepth int, stopAt time.Time, onDepth func(Result)) Result {
	e.searcher.Reset()

	var last Result
	for depth := 1; depth <= maxDepth; depth++ {
		result := e.searcher.SearchDepth(pos, depth, stopAt)
		if e.searcher.stopped.Load() && depth > 1 {
			break
		}
		last = result
		if onDepth != nil {
			onDepth(result)
		}
		if e.searcher.stopped.Load() {
			break
		}
	}
	return last
}
