package heronmg

// MoveState snapshots the irreversible parts of the position before a move
// so UnmakeMove can restore them exactly.
type MoveState struct {
	castling CastlingRights
	ep       Square
	halfmove int
	fullmove int
	hash     uint64
}

// castleMask maps a square to the castling rights that survive a move
// touching it. Covers king moves, rook moves and rook captures in one
// lookup per end of the move.
var castleMask [64]CastlingRights

func init() {
	for sq := range castleMask {
		castleMask[sq] = CastleWhiteKing | CastleWhiteQueen | CastleBlackKing | CastleBlackQueen
	}
	castleMask[0] &^= CastleWhiteQueen
	castleMask[4] &^= CastleWhiteKing | CastleWhiteQueen
	castleMask[7] &^= CastleWhiteKing
	castleMask[56] &^= CastleBlackQueen
	castleMask[60] &^= CastleBlackKing | CastleBlackQueen
	castleMask[63] &^= CastleBlackKing
}

// castleRookSquares returns the rook's origin and destination for a castle
// of the given side and flag.
func castleRookSquares(us Color, flag uint8) (from, to Square) {
	if us == White {
		if flag == FlagCastleKing {
			return 7, 5
		}
		return 0, 3
	}
	if flag == FlagCastleKing {
		return 63, 61
	}
	return 56, 59
}

// epCaptureSquare returns the square of the pawn removed by an en-passant
// capture landing on to.
func epCaptureSquare(to Square, us Color) Square {
	if us == White {
		return to - 8
	}
	return to + 8
}

// MakeMove applies a pseudo-legal move. If the move would leave the moving
// side's king in check it is undone in place and MakeMove returns false;
// the board is unchanged in that case. On success the returned MoveState
// must be handed back to UnmakeMove to take the move back.
//
// The Zobrist key, bitboards, mailbox and clocks are all updated
// incrementally.
func (b *Board) MakeMove(m Move) (bool, MoveState) {
	st := MoveState{
		castling: b.castling,
		ep:       b.ep,
		halfmove: b.halfmove,
		fullmove: b.fullmove,
		hash:     b.hash,
	}
	us := b.stm
	them := us.Other()
	from, to := m.From(), m.To()

	if b.ep != NoSquare {
		b.hash ^= zobristEnPassant[b.ep.File()]
		b.ep = NoSquare
	}

	if m.IsCapture() {
		capSq := to
		if m.Flag() == FlagEnPassant {
			capSq = epCaptureSquare(to, us)
		}
		b.removePiece(capSq)
	}

	b.removePiece(from)
	if promo := m.Promotion(); promo != NoPiece {
		b.addPiece(to, promo)
	} else {
		b.addPiece(to, m.Piece())
	}

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(us, m.Flag())
		b.addPiece(rookTo, b.removePiece(rookFrom))
	}

	if newRights := b.castling & castleMask[from] & castleMask[to]; newRights != b.castling {
		b.hash ^= zobristCastle[b.castling] ^ zobristCastle[newRights]
		b.castling = newRights
	}

	if m.Flag() == FlagDoublePush {
		b.ep = (from + to) / 2
		b.hash ^= zobristEnPassant[b.ep.File()]
	}

	b.stm = them
	b.hash ^= zobristSide

	if b.attacked(b.kingSq[us], them, b.AllOccupied()) {
		b.UnmakeMove(m, st)
		return false, MoveState{}
	}

	if m.Piece().Type() == Pawn || m.IsCapture() {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
	if us == Black {
		b.fullmove++
	}
	return true, st
}

// UnmakeMove reverses a move previously applied by MakeMove, restoring the
// snapshot fields and the Zobrist key wholesale.
func (b *Board) UnmakeMove(m Move, st MoveState) {
	us := m.Piece().Color()
	from, to := m.From(), m.To()

	b.stm = us

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(us, m.Flag())
		b.addPiece(rookFrom, b.removePiece(rookTo))
	}

	b.removePiece(to)
	b.addPiece(from, m.Piece())

	if captured := m.Captured(); captured != NoPiece {
		capSq := to
		if m.Flag() == FlagEnPassant {
			capSq = epCaptureSquare(to, us)
		}
		b.addPiece(capSq, captured)
	}

	b.castling = st.castling
	b.ep = st.ep
	b.halfmove = st.halfmove
	b.fullmove = st.fullmove
	b.hash = st.hash
}
