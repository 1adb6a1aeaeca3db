// Package engine searches for the best move in a position using negamax
// alpha-beta with iterative deepening, a transposition table and
// killer/history move ordering. The search is single-threaded; time and
// node budgets cancel it cooperatively.
package engine

import (
	"sync/atomic"
	"time"

	mg "heron/heronmg"
)

// Score constants, in centipawns. Mate scores are encoded as
// MateScore-ply, so a larger score means a shorter mate.
const (
	Infinity      int32 = 30000
	MateScore     int32 = 29000
	MateThreshold int32 = MateScore - 200
	DrawScore     int32 = 0

	// MaxPly bounds the search depth and sizes the per-ply tables.
	MaxPly = 64
)

// IsMateScore reports whether score encodes a forced mate.
func IsMateScore(score int32) bool {
	return score > MateThreshold || score < -MateThreshold
}

// MateIn converts a mate score to full moves until mate, negative when the
// side to move is being mated.
func MateIn(score int32) int {
	if score > 0 {
		return int(MateScore-score+1) / 2
	}
	return -int(MateScore+score+1) / 2
}

// SearchConfig bounds a search. Zero values mean unlimited; at least one
// bound should be set or the search runs to MaxPly.
type SearchConfig struct {
	MaxDepth  int           // maximum iterative-deepening depth
	TimeLimit time.Duration // wall-clock budget
	NodeLimit uint64        // node budget
}

// Result is the outcome of a search: the chosen move, its score from the
// side to move's point of view, and how much work was done.
type Result struct {
	Move  mg.Move
	Score int32
	Depth int8
	Nodes uint64
	PV    []mg.Move
}

// SearchInfo is passed to the Info callback after each completed
// iteration.
type SearchInfo struct {
	Depth   int8
	Score   int32
	Nodes   uint64
	Elapsed time.Duration
	PV      []mg.Move
}

// Engine owns the search state. It is not safe for concurrent searches,
// but Stop may be called from another goroutine while a search runs.
type Engine struct {
	eval    Evaluator
	tt      *transTable
	killers killerTable
	history [2][64][64]int32

	// Info, when set, receives a progress report after every completed
	// depth iteration.
	Info func(SearchInfo)

	// Per-search state.
	nodes       uint64
	nodeLimit   uint64
	deadline    time.Time
	hasDeadline bool
	stopped     bool
	stopFlag    atomic.Bool

	// stack holds the position keys from the start of the game through
	// the node being searched; entries at rootIndex and beyond belong to
	// the current search path.
	stack     []uint64
	rootIndex int
}

// New returns an engine using the given evaluator.
func New(eval Evaluator) *Engine {
	return &Engine{
		eval: eval,
		tt:   newTransTable(),
	}
}

// Reset clears all state learned from previous searches: the
// transposition table, killers and history scores. Use it between
// unrelated games.
func (e *Engine) Reset() {
	e.tt.clear()
	e.killers.clear()
	e.history = [2][64][64]int32{}
}

// Stop cancels an in-flight search. The search returns its best completed
// iteration.
func (e *Engine) Stop() { e.stopFlag.Store(true) }

// BestMove searches the position and returns the best move found within
// the configured budget. history carries the position keys of the game so
// far (current position last) so the search can score repetitions; nil
// means no prior history. A terminal position yields ErrGameOver.
//
// With identical inputs BestMove is deterministic: full-window search,
// first-found tie breaking and hash-move-first ordering make repeated
// calls agree on both move and score.
func (e *Engine) BestMove(b *mg.Board, history []uint64, cfg SearchConfig) (Result, error) {
	rootMoves := b.LegalMoves()
	if len(rootMoves) == 0 || b.HalfmoveClock() >= 100 || b.InsufficientMaterial() {
		return Result{}, mg.ErrGameOver
	}
	if countHash(history, b.Hash()) >= 3 {
		return Result{}, mg.ErrGameOver
	}

	e.beginSearch(b, history, cfg)

	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	start := time.Now()
	var result Result
	haveResult := false
	var pv pvLine

	for depth := 1; depth <= maxDepth; depth++ {
		pv.clear()
		score := e.searchRoot(b, rootMoves, int8(depth), &pv)
		if e.stopped {
			break
		}
		result = Result{
			Move:  pv.moves[0],
			Score: score,
			Depth: int8(depth),
			Nodes: e.nodes,
			PV:    append([]mg.Move(nil), pv.moves...),
		}
		haveResult = true
		if e.Info != nil {
			e.Info(SearchInfo{
				Depth:   int8(depth),
				Score:   score,
				Nodes:   e.nodes,
				Elapsed: time.Since(start),
				PV:      result.PV,
			})
		}
		if IsMateScore(score) {
			break
		}
	}

	if !haveResult {
		// Budget expired before depth 1 finished. Any legal move beats
		// forfeiting on time.
		result = Result{
			Move:  rootMoves[0],
			Score: e.eval.Evaluate(b),
			Depth: 0,
			Nodes: e.nodes,
		}
	}
	result.Nodes = e.nodes
	return result, nil
}

func (e *Engine) beginSearch(b *mg.Board, history []uint64, cfg SearchConfig) {
	e.nodes = 0
	e.stopped = false
	e.stopFlag.Store(false)
	e.nodeLimit = cfg.NodeLimit
	e.hasDeadline = cfg.TimeLimit > 0
	if e.hasDeadline {
		e.deadline = time.Now().Add(cfg.TimeLimit)
	}
	e.killers.clear()

	e.stack = e.stack[:0]
	if len(history) > 0 {
		e.stack = append(e.stack, history...)
	} else {
		e.stack = append(e.stack, b.Hash())
	}
	e.rootIndex = len(e.stack) - 1
}

// checkBudget flips the stop flag once any budget is exhausted. It is
// called every few thousand nodes to keep the overhead down.
func (e *Engine) checkBudget() {
	if e.stopFlag.Load() {
		e.stopped = true
		return
	}
	if e.nodeLimit > 0 && e.nodes >= e.nodeLimit {
		e.stopped = true
		return
	}
	if e.hasDeadline && !time.Now().Before(e.deadline) {
		e.stopped = true
	}
}

func countHash(hashes []uint64, hash uint64) int {
	n := 0
	for _, h := range hashes {
		if h == hash {
			n++
		}
	}
	return n
}

// pvLine collects the principal variation while the search unwinds.
type pvLine struct {
	moves []mg.Move
}

func (pv *pvLine) clear() { pv.moves = pv.moves[:0] }

// update sets pv to m followed by the child's line.
func (pv *pvLine) update(m mg.Move, child *pvLine) {
	pv.moves = append(pv.moves[:0], m)
	pv.moves = append(pv.moves, child.moves...)
}
