// Package uci implements the Universal Chess Interface protocol: a
// line-oriented IO task reading commands from stdin and a long-lived
// search worker parked on a condition variable between searches.
package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coreengine/chesscore/internal/board"
	"github.com/coreengine/chesscore/internal/engine"
	"github.com/coreengine/chesscore/internal/engineerr"
)

// workerState is the search worker's state machine. Only Idle->Searching
// crosses the condition-variable wait.
type workerState int

const (
	stateIdle workerState = iota
	stateSearching
	stateQuitting
)

// maxSearchDepth bounds iterative deepening when a "go" command gives no
// explicit depth (plain "go infinite", bare time control, or no clause at
// all): deep enough that the time control or an explicit stop always ends
// the search first in practice.
const maxSearchDepth = 100

// infiniteCap is the wall-clock ceiling applied to "go infinite" and to any
// "go" with no time clause at all, per spec.
const infiniteCap = 100 * time.Hour

// mateThreshold is the score magnitude above which a result is reported as
// a forced mate rather than a centipawn score.
const mateThreshold = engine.Inf - engine.MaxPly

type searchRequest struct {
	pos    *board.Position
	depth  int
	stopAt time.Time
}

// UCI drives the protocol loop and owns the search worker goroutine.
type UCI struct {
	eng      *engine.Engine
	position *board.Position

	out    io.Writer
	errOut io.Writer

	mu      sync.Mutex
	cond    *sync.Cond
	state   workerState
	req     searchRequest
	workerDone chan struct{}
}

// New creates a UCI driver around eng and starts its search worker.
func New(eng *engine.Engine) *UCI {
	u := &UCI{
		eng:        eng,
		position:   board.NewPosition(),
		out:        os.Stdout,
		errOut:     os.Stderr,
		workerDone: make(chan struct{}),
	}
	u.cond = sync.NewCond(&u.mu)
	go u.searchWorker()
	return u
}

// Run reads commands from stdin until "quit" or EOF.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			u.handleUCIIdentify()
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			u.handleQuit()
			return
		case "setoption":
			u.handleSetOption(args)
		case "d":
			fmt.Fprintln(u.out, u.position.String())
		case "perft":
			u.handlePerft(args)
		default:
			fmt.Fprintf(u.errOut, "info string %v\n", engineerr.NewUnknownCommandError(cmd))
		}
	}
}

func (u *UCI) handleUCIIdentify() {
	fmt.Fprintln(u.out, "id name chesscore")
	fmt.Fprintln(u.out, "id author coreengine")
	fmt.Fprintln(u.out, "option name Hash type spin default 16 min 1 max 4096")
	fmt.Fprintln(u.out, "uciok")
}

func (u *UCI) handleNewGame() {
	u.handleStop()
	u.eng.NewGame()
	u.position = board.NewPosition()
}

// handlePosition implements "position {startpos | fen <FEN>} [moves ...]".
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var pos *board.Position
	var rest []string

	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
		rest = args[1:]
	case "fen":
		end := len(args)
		for i := 1; i < len(args); i++ {
			if args[i] == "moves" {
				end = i
				break
			}
		}
		fen := strings.Join(args[1:end], " ")
		parsed, err := board.ParseFEN(fen)
		if err != nil {
			fmt.Fprintf(u.errOut, "info string %v\n", wrapFENError(fen, err))
			return
		}
		pos = parsed
		rest = args[end:]
	default:
		return
	}

	if len(rest) > 0 && rest[0] == "moves" {
		rest = rest[1:]
	}

	for _, moveStr := range rest {
		m, err := board.ParseMove(moveStr, pos)
		if err != nil {
			fmt.Fprintf(u.errOut, "info string %v\n", engineerr.NewParseError("move", moveStr, err))
			break
		}
		if m == board.NoMove {
			fmt.Fprintf(u.errOut, "info string %v\n", engineerr.NewIllegalMoveError(moveStr, pos.ToFEN()))
			break
		}
		if !pos.Make(m, board.AllMoves) {
			fmt.Fprintf(u.errOut, "info string %v\n", engineerr.NewIllegalMoveError(moveStr, pos.ToFEN()))
			break
		}
	}

	u.position = pos
}

type goOptions struct {
	depth     int
	moveTime  time.Duration
	wtime     time.Duration
	btime     time.Duration
	winc      time.Duration
	binc      time.Duration
	movesToGo int
	infinite  bool
}

// parseGoOptions parses the arguments to a "go" command. A malformed
// numeric argument (e.g. "go depth abc") is reported as a *ParseError
// pointing at the offending character rather than silently treated as 0,
// and aborts parsing so handleGo never starts a search from it.
func parseGoOptions(args []string) (goOptions, *engineerr.ParseError) {
	var opts goOptions
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			n, err := nextInt(args, &i)
			if err != nil {
				return opts, err
			}
			opts.depth = n
		case "movetime":
			n, err := nextInt(args, &i)
			if err != nil {
				return opts, err
			}
			opts.moveTime = time.Duration(n) * time.Millisecond
		case "wtime":
			n, err := nextInt(args, &i)
			if err != nil {
				return opts, err
			}
			opts.wtime = time.Duration(n) * time.Millisecond
		case "btime":
			n, err := nextInt(args, &i)
			if err != nil {
				return opts, err
			}
			opts.btime = time.Duration(n) * time.Millisecond
		case "winc":
			n, err := nextInt(args, &i)
			if err != nil {
				return opts, err
			}
			opts.winc = time.Duration(n) * time.Millisecond
		case "binc":
			n, err := nextInt(args, &i)
			if err != nil {
				return opts, err
			}
			opts.binc = time.Duration(n) * time.Millisecond
		case "movestogo":
			n, err := nextInt(args, &i)
			if err != nil {
				return opts, err
			}
			opts.movesToGo = n
		case "infinite":
			opts.infinite = true
		}
	}
	return opts, nil
}

// nextInt consumes and parses the argument following args[*i], advancing
// *i past it. On a malformed number it returns a *ParseError pointing at
// the first non-digit character's 1-based position within that token.
func nextInt(args []string, i *int) (int, *engineerr.ParseError) {
	if *i+1 >= len(args) {
		return 0, engineerr.NewParseError("number", args[*i], fmt.Errorf("missing value"))
	}
	token := args[*i+1]
	*i++

	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, engineerr.NewParseErrorAt("number", token, firstInvalidDigit(token), err)
	}
	return n, nil
}

// firstInvalidDigit returns the 1-based position of the first character
// in s that isn't part of a valid decimal integer (an optional leading
// sign followed by at least one digit).
func firstInvalidDigit(s string) int {
	start := 0
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		start = 1
	}
	for i := start; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return i + 1
		}
	}
	return start + 1
}

// wrapFENError annotates a FEN parse failure with the offending
// character's position when board.ParseFEN identified one.
func wrapFENError(fen string, err error) *engineerr.ParseError {
	var pe *board.PositionalError
	if errors.As(err, &pe) {
		return engineerr.NewParseErrorAt("fen", fen, pe.Pos, pe.Unwrap())
	}
	return engineerr.NewParseError("fen", fen, err)
}

// estimateMovesToGo guesses the remaining moves in the game from material
// still on the board, used when no "movestogo" clause is given.
func estimateMovesToGo(pos *board.Position) int {
	pieces := pos.AllOccupied.PopCount()
	switch {
	case pieces > 24:
		return 40
	case pieces > 12:
		return 30
	default:
		return 20
	}
}

// planSearch computes the depth ceiling and stop deadline for a "go"
// command: timeForThisMove = (sideTime/movesToGo) + increment - 50ms, an
// "infinite" clause (or no time clause at all) uses a 100-hour cap.
func (u *UCI) planSearch(opts goOptions) (depth int, stopAt time.Time) {
	depth = opts.depth
	if depth <= 0 {
		depth = maxSearchDepth
	}

	switch {
	case opts.infinite:
		stopAt = time.Now().Add(infiniteCap)
	case opts.moveTime > 0:
		stopAt = time.Now().Add(opts.moveTime)
	case opts.wtime > 0 || opts.btime > 0:
		var ourTime, ourInc time.Duration
		if u.position.SideToMove == board.White {
			ourTime, ourInc = opts.wtime, opts.winc
		} else {
			ourTime, ourInc = opts.btime, opts.binc
		}
		movesToGo := opts.movesToGo
		if movesToGo <= 0 {
			movesToGo = estimateMovesToGo(u.position)
		}
		alloc := ourTime/time.Duration(movesToGo) + ourInc - 50*time.Millisecond
		if alloc < 10*time.Millisecond {
			alloc = 10 * time.Millisecond
		}
		stopAt = time.Now().Add(alloc)
	default:
		stopAt = time.Now().Add(infiniteCap)
	}
	return depth, stopAt
}

func (u *UCI) handleGo(args []string) {
	opts, err := parseGoOptions(args)
	if err != nil {
		fmt.Fprintf(u.errOut, "info string %v\n", err)
		return
	}
	depth, stopAt := u.planSearch(opts)

	u.mu.Lock()
	u.req = searchRequest{pos: u.position.Copy(), depth: depth, stopAt: stopAt}
	u.state = stateSearching
	u.mu.Unlock()
	u.cond.Signal()
}

// searchWorker is the long-lived search task: it waits on the condition
// variable for a request, runs iterative deepening to completion (or until
// stopped), emits info/bestmove, and returns to waiting.
func (u *UCI) searchWorker() {
	u.mu.Lock()
	for {
		for u.state == stateIdle {
			u.cond.Wait()
		}
		if u.state == stateQuitting {
			u.mu.Unlock()
			close(u.workerDone)
			return
		}
		req := u.req
		u.mu.Unlock()

		result := u.eng.IterativeDeepen(req.pos, req.depth, req.stopAt, func(r engine.Result) {
			u.writeInfo(r)
		})
		u.writeBestMove(result)

		u.mu.Lock()
		if u.state == stateSearching {
			u.state = stateIdle
		}
	}
}

func (u *UCI) writeInfo(r engine.Result) {
	var score string
	switch {
	case r.Score > mateThreshold:
		plies := engine.Inf - r.Score
		score = fmt.Sprintf("mate %d", (plies+1)/2)
	case r.Score < -mateThreshold:
		plies := engine.Inf + r.Score
		score = fmt.Sprintf("mate %d", -((plies + 1) / 2))
	default:
		score = fmt.Sprintf("cp %d", r.Score)
	}

	pvStrs := make([]string, len(r.PV))
	for i, m := range r.PV {
		pvStrs[i] = m.String()
	}

	fmt.Fprintf(u.out, "info score %s depth %d nodes %d pv %s\n", score, r.Depth, r.Nodes, strings.Join(pvStrs, " "))
}

func (u *UCI) writeBestMove(r engine.Result) {
	fmt.Fprintf(u.out, "bestmove %s\n", r.Move.String())
}

func (u *UCI) handleStop() {
	u.mu.Lock()
	searching := u.state == stateSearching
	u.mu.Unlock()
	if !searching {
		return
	}
	u.eng.Stop()
}

func (u *UCI) handleQuit() {
	u.handleStop()
	u.mu.Lock()
	u.state = stateQuitting
	u.mu.Unlock()
	u.cond.Signal()
	<-u.workerDone
}

func (u *UCI) handleSetOption(args []string) {
	var name, value string
	readingName, readingValue := false, false
	for _, a := range args {
		switch a {
		case "name":
			readingName, readingValue = true, false
		case "value":
			readingName, readingValue = false, true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += a
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += a
			}
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err == nil && mb > 0 {
			u.eng.Resize(mb)
		}
	}
}

// handlePerft runs a node-count test from the current position, a debug
// aid that exercises the same move generation and make/restore machinery
// the search relies on.
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil {
			depth = d
		}
	}

	start := time.Now()
	nodes := perft(u.position.Copy(), depth)
	elapsed := time.Since(start)

	fmt.Fprintf(u.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(u.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Fprintf(u.out, "NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

func perft(pos *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := pos.GeneratePseudoLegalMoves()
	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		snapshot := *pos
		if pos.Make(moves.Get(i), board.AllMoves) {
			nodes += perft(pos, depth-1)
		}
		*pos = snapshot
	}
	return nodes
}
