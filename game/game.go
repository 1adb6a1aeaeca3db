// Package game layers full game bookkeeping on top of the move core: the
// position-hash history for repetition detection, an undo stack, captured
// piece lists and terminal-state classification.
package game

import (
	mg "heron/heronmg"
)

type undoRecord struct {
	move  mg.Move
	state mg.MoveState
}

// Game is a full chess game in progress. It owns its board; callers that
// need the raw position use Board() but must not mutate it.
//
// A Game is not safe for concurrent use.
type Game struct {
	board    *mg.Board
	hashes   []uint64 // position keys, initial position included
	undo     []undoRecord
	captured [2][]mg.Piece // indexed by the color of the captured piece
}

// New starts a game from the standard starting position.
func New() *Game {
	g, err := NewFromFEN(mg.FENStartPos)
	if err != nil {
		panic(err)
	}
	return g
}

// NewFromFEN starts a game from an arbitrary position. Repetition counting
// begins at this position; earlier history is unknowable from a FEN.
func NewFromFEN(fen string) (*Game, error) {
	b, err := mg.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{
		board:  b,
		hashes: []uint64{b.Hash()},
	}, nil
}

// Board exposes the underlying position, read-only by convention.
func (g *Game) Board() *mg.Board { return g.board }

// FEN renders the current position.
func (g *Game) FEN() string { return g.board.ToFEN() }

// LegalMoves returns every legal move in the current position.
func (g *Game) LegalMoves() []mg.Move { return g.board.LegalMoves() }

// HistoryHashes returns the position keys seen so far, oldest first and
// the current position last. The slice is shared; callers must not modify
// it.
func (g *Game) HistoryHashes() []uint64 { return g.hashes }

// Captured returns the pieces of the given color captured so far, in
// capture order.
func (g *Game) Captured(c mg.Color) []mg.Piece {
	out := make([]mg.Piece, len(g.captured[c]))
	copy(out, g.captured[c])
	return out
}

// MaterialPoints sums the classic point values of the given side's
// captures, i.e. the material that side has won.
func (g *Game) MaterialPoints(c mg.Color) int {
	pts := 0
	for _, p := range g.captured[c.Other()] {
		pts += p.Points()
	}
	return pts
}

// Resolve turns a from/to pair (plus an optional promotion type) into the
// unique legal move it denotes. It returns ErrIncompleteMove when the pair
// is a promotion but no piece was chosen, and ErrIllegalMove when no legal
// move matches.
func (g *Game) Resolve(from, to mg.Square, promotion mg.PieceType) (mg.Move, error) {
	matched := false
	for _, m := range g.board.LegalMoves() {
		if m.From() != from || m.To() != to {
			continue
		}
		matched = true
		if m.Promotion().Type() == promotion {
			return m, nil
		}
	}
	if matched {
		// Only promotions differ among moves sharing from/to.
		return 0, mg.ErrIncompleteMove
	}
	return 0, mg.ErrIllegalMove
}

// Apply plays a move. The move must come from LegalMoves or Resolve; a
// move that is not legal in the current position is rejected with
// ErrIllegalMove and the game is unchanged. Once the game is over every
// further Apply fails with ErrGameOver.
func (g *Game) Apply(m mg.Move) error {
	if g.Status().Terminal() {
		return mg.ErrGameOver
	}
	if !g.isLegal(m) {
		return mg.ErrIllegalMove
	}
	ok, st := g.board.MakeMove(m)
	if !ok {
		return mg.ErrIllegalMove
	}
	g.undo = append(g.undo, undoRecord{move: m, state: st})
	g.hashes = append(g.hashes, g.board.Hash())
	if taken := m.Captured(); taken != mg.NoPiece {
		g.captured[taken.Color()] = append(g.captured[taken.Color()], taken)
	}
	return nil
}

func (g *Game) isLegal(m mg.Move) bool {
	for _, lm := range g.board.LegalMoves() {
		if lm == m {
			return true
		}
	}
	return false
}

// Undo takes back the most recent move, restoring the position, the hash
// history and the captured lists. Undoing out of a terminal state makes
// the game playable again.
func (g *Game) Undo() error {
	if len(g.undo) == 0 {
		return mg.ErrNoHistory
	}
	rec := g.undo[len(g.undo)-1]
	g.undo = g.undo[:len(g.undo)-1]
	g.board.UnmakeMove(rec.move, rec.state)
	g.hashes = g.hashes[:len(g.hashes)-1]
	if taken := rec.move.Captured(); taken != mg.NoPiece {
		lst := g.captured[taken.Color()]
		g.captured[taken.Color()] = lst[:len(lst)-1]
	}
	return nil
}

// Status classifies the current position. Checkmate and stalemate are
// decided first, then the automatic draws in order: fifty-move rule,
// threefold repetition, insufficient material.
func (g *Game) Status() Status {
	side := g.board.SideToMove()
	inCheck := g.board.InCheck(side)

	if !g.board.HasLegalMoves() {
		if inCheck {
			return Status{State: Checkmate, Side: side}
		}
		return Status{State: Stalemate, Side: side}
	}
	if g.board.HalfmoveClock() >= 100 {
		return Status{State: Draw, Side: side, Reason: FiftyMove}
	}
	if g.repetitions(g.board.Hash()) >= 3 {
		return Status{State: Draw, Side: side, Reason: Repetition}
	}
	if g.board.InsufficientMaterial() {
		return Status{State: Draw, Side: side, Reason: InsufficientMaterial}
	}
	if inCheck {
		return Status{State: Check, Side: side}
	}
	return Status{State: Ongoing, Side: side}
}

func (g *Game) repetitions(hash uint64) int {
	n := 0
	for _, h := range g.hashes {
		if h == hash {
			n++
		}
	}
	return n
}
