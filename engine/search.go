package engine

import (
	mg "heron/heronmg"
)

// searchRoot runs one full-window iteration over the root moves. It
// returns the score of the best move; the move itself lands in pv. The
// caller has already ruled out terminal positions, so rootMoves is never
// empty.
func (e *Engine) searchRoot(b *mg.Board, rootMoves []mg.Move, depth int8, pv *pvLine) int32 {
	alpha, beta := -Infinity, Infinity
	hash := b.Hash()

	var hashMove mg.Move
	if entry, ok := e.tt.probe(hash); ok {
		hashMove = entry.move
	}

	var childPV pvLine
	var bestMove mg.Move
	scored := e.scoreMoves(b, rootMoves, hashMove, 0)
	for i := range scored {
		m := pickNext(scored, i)
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		e.stack = append(e.stack, b.Hash())
		childPV.clear()
		score := -e.alphabeta(b, -beta, -alpha, depth-1, 1, &childPV)
		e.stack = e.stack[:len(e.stack)-1]
		b.UnmakeMove(m, st)

		if e.stopped {
			return 0
		}
		if score > alpha {
			alpha = score
			bestMove = m
			pv.update(m, &childPV)
		}
	}

	e.tt.store(hash, depth, 0, bestMove, alpha, ExactFlag)
	return alpha
}

// alphabeta is a fail-hard negamax search. Scores are from the point of
// view of the side to move on b. The caller pushes b's position key onto
// e.stack before calling, so repetition detection sees the full path.
func (e *Engine) alphabeta(b *mg.Board, alpha, beta int32, depth, ply int8, pv *pvLine) int32 {
	e.nodes++
	if e.nodes&4095 == 0 {
		e.checkBudget()
	}
	if e.stopped {
		return 0
	}

	if e.isRepetition(b.Hash()) || b.InsufficientMaterial() {
		return DrawScore
	}

	if depth <= 0 || ply >= MaxPly {
		return e.eval.Evaluate(b)
	}

	moves := b.LegalMoves()
	if len(moves) == 0 {
		if b.InCheck(b.SideToMove()) {
			return -(MateScore - int32(ply))
		}
		return DrawScore
	}
	// Checkmate outranks the fifty-move rule, so the clock is checked
	// only after the mate test.
	if b.HalfmoveClock() >= 100 {
		return DrawScore
	}

	hash := b.Hash()
	var hashMove mg.Move
	if entry, found := e.tt.probe(hash); found {
		hashMove = entry.move
		if ok, score := entry.usable(depth, ply, alpha, beta); ok {
			return score
		}
	}

	var childPV pvLine
	var bestMove mg.Move
	flag := AlphaFlag
	scored := e.scoreMoves(b, moves, hashMove, ply)
	for i := range scored {
		m := pickNext(scored, i)
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		e.stack = append(e.stack, b.Hash())
		childPV.clear()
		score := -e.alphabeta(b, -beta, -alpha, depth-1, ply+1, &childPV)
		e.stack = e.stack[:len(e.stack)-1]
		b.UnmakeMove(m, st)

		if e.stopped {
			return 0
		}
		if score >= beta {
			e.recordCutoff(b, m, depth, ply)
			e.tt.store(hash, depth, ply, m, beta, BetaFlag)
			return beta
		}
		if score > alpha {
			alpha = score
			flag = ExactFlag
			bestMove = m
			pv.update(m, &childPV)
		}
	}

	e.tt.store(hash, depth, ply, bestMove, alpha, flag)
	return alpha
}

// isRepetition reports whether the position at the top of the search stack
// is a draw by repetition for search purposes: any earlier occurrence
// inside the current search path counts, while positions from the actual
// game must have occurred twice before.
func (e *Engine) isRepetition(hash uint64) bool {
	prior := 0
	for i := len(e.stack) - 2; i >= 0; i-- {
		if e.stack[i] != hash {
			continue
		}
		if i >= e.rootIndex {
			return true
		}
		prior++
		if prior >= 2 {
			return true
		}
	}
	return false
}
