package heronmg

// promotionTypes lists the promotion targets in generation order.
var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// PseudoMovesInto appends every pseudo-legal move for the side to move to
// dst and returns the extended slice. Pseudo-legal means piece movement
// rules only; moves that leave the own king in check are still included
// and are weeded out by MakeMove or LegalMovesInto.
func (b *Board) PseudoMovesInto(dst []Move) []Move {
	us := b.stm
	them := us.Other()
	own := b.occ[us]
	enemy := b.occ[them]
	occ := own | enemy

	dst = b.pawnMoves(dst, us, them, occ, enemy)

	for pieces := b.byType[us][Knight]; pieces != 0; {
		from := Square(popLSB(&pieces))
		dst = b.leaperMoves(dst, from, knightAttacks[from]&^own, MakePiece(us, Knight))
	}
	for pieces := b.byType[us][Bishop]; pieces != 0; {
		from := Square(popLSB(&pieces))
		dst = b.leaperMoves(dst, from, BishopAttacks(from, occ)&^own, MakePiece(us, Bishop))
	}
	for pieces := b.byType[us][Rook]; pieces != 0; {
		from := Square(popLSB(&pieces))
		dst = b.leaperMoves(dst, from, RookAttacks(from, occ)&^own, MakePiece(us, Rook))
	}
	for pieces := b.byType[us][Queen]; pieces != 0; {
		from := Square(popLSB(&pieces))
		att := (RookAttacks(from, occ) | BishopAttacks(from, occ)) &^ own
		dst = b.leaperMoves(dst, from, att, MakePiece(us, Queen))
	}

	kingFrom := b.kingSq[us]
	dst = b.leaperMoves(dst, kingFrom, kingAttacks[kingFrom]&^own, MakePiece(us, King))
	dst = b.castleMoves(dst, us, occ)

	return dst
}

// leaperMoves emits one move per set bit of the target mask, recording any
// capture from the mailbox.
func (b *Board) leaperMoves(dst []Move, from Square, targets uint64, piece Piece) []Move {
	for targets != 0 {
		to := Square(popLSB(&targets))
		dst = append(dst, NewMove(from, to, piece, b.grid[to], NoPiece, FlagNone))
	}
	return dst
}

func (b *Board) pawnMoves(dst []Move, us, them Color, occ, enemy uint64) []Move {
	piece := MakePiece(us, Pawn)
	var push, startRank, promoRank int
	if us == White {
		push, startRank, promoRank = 8, 1, 7
	} else {
		push, startRank, promoRank = -8, 6, 0
	}

	for pawns := b.byType[us][Pawn]; pawns != 0; {
		from := Square(popLSB(&pawns))

		// Single and double pushes.
		to := from + Square(push)
		if occ&bb(to) == 0 {
			if to.Rank() == promoRank {
				for _, pt := range promotionTypes {
					dst = append(dst, NewMove(from, to, piece, NoPiece, MakePiece(us, pt), FlagNone))
				}
			} else {
				dst = append(dst, NewMove(from, to, piece, NoPiece, NoPiece, FlagNone))
				if from.Rank() == startRank {
					to2 := to + Square(push)
					if occ&bb(to2) == 0 {
						dst = append(dst, NewMove(from, to2, piece, NoPiece, NoPiece, FlagDoublePush))
					}
				}
			}
		}

		// Captures, en passant included.
		for targets := pawnAttackFrom[us][from] & enemy; targets != 0; {
			to := Square(popLSB(&targets))
			captured := b.grid[to]
			if to.Rank() == promoRank {
				for _, pt := range promotionTypes {
					dst = append(dst, NewMove(from, to, piece, captured, MakePiece(us, pt), FlagNone))
				}
			} else {
				dst = append(dst, NewMove(from, to, piece, captured, NoPiece, FlagNone))
			}
		}
		if b.ep != NoSquare && pawnAttackFrom[us][from]&bb(b.ep) != 0 {
			dst = append(dst, NewMove(from, b.ep, piece, MakePiece(them, Pawn), NoPiece, FlagEnPassant))
		}
	}
	return dst
}

// castleMoves emits castling moves whose path is clear and whose rook is
// still home. Check constraints on the king's start and transit squares
// are enforced in LegalMovesInto.
func (b *Board) castleMoves(dst []Move, us Color, occ uint64) []Move {
	piece := MakePiece(us, King)
	rook := MakePiece(us, Rook)
	if us == White {
		if b.castling&CastleWhiteKing != 0 && occ&(bb(5)|bb(6)) == 0 && b.grid[7] == rook {
			dst = append(dst, NewMove(4, 6, piece, NoPiece, NoPiece, FlagCastleKing))
		}
		if b.castling&CastleWhiteQueen != 0 && occ&(bb(1)|bb(2)|bb(3)) == 0 && b.grid[0] == rook {
			dst = append(dst, NewMove(4, 2, piece, NoPiece, NoPiece, FlagCastleQueen))
		}
	} else {
		if b.castling&CastleBlackKing != 0 && occ&(bb(61)|bb(62)) == 0 && b.grid[63] == rook {
			dst = append(dst, NewMove(60, 62, piece, NoPiece, NoPiece, FlagCastleKing))
		}
		if b.castling&CastleBlackQueen != 0 && occ&(bb(57)|bb(58)|bb(59)) == 0 && b.grid[56] == rook {
			dst = append(dst, NewMove(60, 58, piece, NoPiece, NoPiece, FlagCastleQueen))
		}
	}
	return dst
}

// castleTransit returns the square the king passes over for a castle move.
func castleTransit(m Move) Square {
	if m.Flag() == FlagCastleKing {
		return m.From() + 1
	}
	return m.From() - 1
}

// LegalMovesInto appends every legal move for the side to move to dst.
// Each pseudo-legal move is vetted by making and unmaking it; castles are
// additionally rejected when the king starts in check or crosses an
// attacked square.
func (b *Board) LegalMovesInto(dst []Move) []Move {
	us := b.stm
	them := us.Other()
	pseudo := b.PseudoMovesInto(make([]Move, 0, 64))

	var inCheck bool
	var checkKnown bool
	for _, m := range pseudo {
		if m.IsCastle() {
			if !checkKnown {
				inCheck = b.InCheck(us)
				checkKnown = true
			}
			if inCheck || b.IsSquareAttacked(castleTransit(m), them) {
				continue
			}
		}
		if ok, st := b.MakeMove(m); ok {
			b.UnmakeMove(m, st)
			dst = append(dst, m)
		}
	}
	return dst
}

// LegalMoves returns every legal move for the side to move.
func (b *Board) LegalMoves() []Move {
	return b.LegalMovesInto(make([]Move, 0, 48))
}

// HasLegalMoves reports whether the side to move has at least one legal
// move. Combined with InCheck this distinguishes checkmate from stalemate.
func (b *Board) HasLegalMoves() bool {
	us := b.stm
	them := us.Other()
	for _, m := range b.PseudoMovesInto(make([]Move, 0, 64)) {
		if m.IsCastle() {
			if b.InCheck(us) || b.IsSquareAttacked(castleTransit(m), them) {
				continue
			}
		}
		if ok, st := b.MakeMove(m); ok {
			b.UnmakeMove(m, st)
			return true
		}
	}
	return false
}
