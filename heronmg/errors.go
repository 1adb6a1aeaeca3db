package heronmg

import "errors"

// Sentinel errors shared by the move-generation core and the layers above
// it. Callers match them with errors.Is.
var (
	// ErrIllegalMove reports a move that is not legal in the current
	// position (wrong piece, blocked path, or leaves the king in check).
	ErrIllegalMove = errors.New("illegal move")

	// ErrIncompleteMove reports a pawn move to the last rank with no
	// promotion piece chosen.
	ErrIncompleteMove = errors.New("incomplete move: promotion piece required")

	// ErrNoHistory reports an undo with no moves left to take back.
	ErrNoHistory = errors.New("no move to undo")

	// ErrGameOver reports an operation on a finished game.
	ErrGameOver = errors.New("game is over")
)
