package game

import mg "heron/heronmg"

// State classifies a position from the point of view of the side to move.
type State uint8

const (
	Ongoing State = iota
	Check
	Checkmate
	Stalemate
	Draw
)

func (s State) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// DrawReason says which rule produced a Draw state.
type DrawReason uint8

const (
	NoDraw DrawReason = iota
	FiftyMove
	Repetition
	InsufficientMaterial
)

func (r DrawReason) String() string {
	switch r {
	case FiftyMove:
		return "fifty-move rule"
	case Repetition:
		return "threefold repetition"
	case InsufficientMaterial:
		return "insufficient material"
	}
	return "none"
}

// Status is the full game verdict: the state, the side it applies to (the
// side to move), and the draw reason when the state is Draw.
type Status struct {
	State  State
	Side   mg.Color
	Reason DrawReason
}

// Terminal reports whether the game is over.
func (s Status) Terminal() bool {
	switch s.State {
	case Checkmate, Stalemate, Draw:
		return true
	}
	return false
}
