package engine

import (
	mg "heron/heronmg"
)

type scoredMove struct {
	move  mg.Move
	score int32
}

// Ordering offsets. Hash moves first, then promotions, then captures by
// MVV-LVA, then killers, then everything else by history score.
const (
	hashMoveOffset  int32 = 25000
	promotionOffset int32 = 20000
	captureOffset   int32 = 15000
	killerOffset    int32 = 2000
)

// mvvLva[victim][attacker] ranks captures: the bigger the victim and the
// smaller the attacker, the earlier the capture is tried.
var mvvLva = [7][7]int32{
	mg.Pawn:   {0, 14, 13, 12, 11, 10, 9},
	mg.Knight: {0, 24, 23, 22, 21, 20, 19},
	mg.Bishop: {0, 34, 33, 32, 31, 30, 29},
	mg.Rook:   {0, 44, 43, 42, 41, 40, 39},
	mg.Queen:  {0, 54, 53, 52, 51, 50, 49},
}

// killerTable keeps the two most recent quiet moves that caused a beta
// cutoff at each ply.
type killerTable [MaxPly + 1][2]mg.Move

func (k *killerTable) insert(m mg.Move, ply int8) {
	if m != k[ply][0] {
		k[ply][1] = k[ply][0]
		k[ply][0] = m
	}
}

func (k *killerTable) clear() {
	for ply := range k {
		k[ply][0], k[ply][1] = 0, 0
	}
}

// scoreMoves assigns an ordering score to each move. hashMove is the
// transposition-table move for this position, if any.
func (e *Engine) scoreMoves(b *mg.Board, moves []mg.Move, hashMove mg.Move, ply int8) []scoredMove {
	us := b.SideToMove()
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		var score int32
		switch {
		case m == hashMove:
			score = hashMoveOffset
		case m.Promotion() != mg.NoPiece:
			score = promotionOffset + pieceValue[m.Promotion().Type()]
		case m.IsCapture():
			score = captureOffset + mvvLva[m.Captured().Type()][m.Piece().Type()]
		case m == e.killers[ply][0]:
			score = killerOffset + 200
		case m == e.killers[ply][1]:
			score = killerOffset
		default:
			score = clamp(e.history[us][m.From()][m.To()], 0, killerOffset-1)
		}
		scored[i].move = m
		scored[i].score = score
	}
	return scored
}

// pickNext selection-sorts one move to the front of the remainder and
// returns it. Ties keep generation order, which keeps the search
// deterministic.
func pickNext(moves []scoredMove, i int) mg.Move {
	best := i
	for j := i + 1; j < len(moves); j++ {
		if moves[j].score > moves[best].score {
			best = j
		}
	}
	moves[i], moves[best] = moves[best], moves[i]
	return moves[i].move
}

// recordCutoff boosts the quiet move that refuted the node: killer slot
// plus a depth-weighted history bonus.
func (e *Engine) recordCutoff(b *mg.Board, m mg.Move, depth, ply int8) {
	if m.IsCapture() || m.Promotion() != mg.NoPiece {
		return
	}
	e.killers.insert(m, ply)
	us := b.SideToMove()
	h := &e.history[us][m.From()][m.To()]
	*h += int32(depth) * int32(depth)
	if *h >= killerOffset {
		e.ageHistory()
	}
}

// ageHistory halves every history counter so recent cutoffs dominate and
// scores stay below the killer band.
func (e *Engine) ageHistory() {
	for c := range e.history {
		for from := range e.history[c] {
			for to := range e.history[c][from] {
				e.history[c][from][to] /= 2
			}
		}
	}
}
