package heronmg

import "math/bits"

// Board holds the full position: bitboards per side and piece type, a
// mailbox array for square lookups, and the game-state fields (side to
// move, castling rights, en-passant target, clocks, Zobrist key).
//
// Exactly one king per side must be present at all times; the board keeps
// a denormalized king-square index alongside the bitboards so check
// detection never scans for the king.
type Board struct {
	byType [2][7]uint64 // [color][PieceType] piece bitboards; index 0 unused
	occ    [2]uint64    // occupancy per color
	grid   [64]Piece    // mailbox, NoPiece when empty

	kingSq [2]Square // king location index per color

	stm      Color
	castling CastlingRights
	ep       Square // en-passant target, or NoSquare
	halfmove int    // half-moves since last capture or pawn move
	fullmove int    // starts at 1, incremented after Black's move

	hash uint64 // incremental Zobrist key
}

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.stm }

// CastlingRights returns the current castling permissions bitmask.
func (b *Board) CastlingRights() CastlingRights { return b.castling }

// EnPassant returns the en-passant target square, or NoSquare.
func (b *Board) EnPassant() Square { return b.ep }

// HalfmoveClock returns the fifty-move-rule counter, in half-moves.
func (b *Board) HalfmoveClock() int { return b.halfmove }

// FullmoveNumber returns the full-move counter.
func (b *Board) FullmoveNumber() int { return b.fullmove }

// Hash returns the position's Zobrist key. The key covers piece placement,
// side to move, castling rights and the en-passant file.
func (b *Board) Hash() uint64 { return b.hash }

// PieceAt returns the piece on sq, or NoPiece.
func (b *Board) PieceAt(sq Square) Piece { return b.grid[sq] }

// KingSquare returns the location of the given side's king.
func (b *Board) KingSquare(c Color) Square { return b.kingSq[c] }

// Occupied returns the occupancy bitboard of one side.
func (b *Board) Occupied(c Color) uint64 { return b.occ[c] }

// AllOccupied returns the bitboard of every occupied square.
func (b *Board) AllOccupied() uint64 { return b.occ[White] | b.occ[Black] }

// Pieces returns the bitboard of one side's pieces of the given type.
func (b *Board) Pieces(c Color, pt PieceType) uint64 { return b.byType[c][pt] }

// bb returns a bitboard with only sq set.
func bb(sq Square) uint64 { return 1 << uint(sq) }

// popLSB removes the lowest set bit from mask and returns its index.
func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

// addPiece places p on an empty square, keeping bitboards, the mailbox,
// the king index and the Zobrist key in sync.
func (b *Board) addPiece(sq Square, p Piece) {
	c := p.Color()
	b.grid[sq] = p
	b.occ[c] |= bb(sq)
	b.byType[c][p.Type()] |= bb(sq)
	if p.Type() == King {
		b.kingSq[c] = sq
	}
	b.hash ^= zobristPiece[p][sq]
}

// removePiece clears sq and returns the piece that was there.
func (b *Board) removePiece(sq Square) Piece {
	p := b.grid[sq]
	if p == NoPiece {
		return NoPiece
	}
	c := p.Color()
	b.grid[sq] = NoPiece
	b.occ[c] &^= bb(sq)
	b.byType[c][p.Type()] &^= bb(sq)
	b.hash ^= zobristPiece[p][sq]
	return p
}

// InsufficientMaterial reports whether neither side retains enough
// material to deliver checkmate: bare kings, a lone minor piece, or
// one same-colored bishop each.
func (b *Board) InsufficientMaterial() bool {
	heavy := b.byType[White][Pawn] | b.byType[Black][Pawn] |
		b.byType[White][Rook] | b.byType[Black][Rook] |
		b.byType[White][Queen] | b.byType[Black][Queen]
	if heavy != 0 {
		return false
	}
	wMinors := b.byType[White][Knight] | b.byType[White][Bishop]
	bMinors := b.byType[Black][Knight] | b.byType[Black][Bishop]
	wCount := bits.OnesCount64(wMinors)
	bCount := bits.OnesCount64(bMinors)
	if wCount+bCount <= 1 {
		return true
	}
	if wCount == 1 && bCount == 1 &&
		b.byType[White][Bishop] != 0 && b.byType[Black][Bishop] != 0 {
		wSq := Square(bits.TrailingZeros64(b.byType[White][Bishop]))
		bSq := Square(bits.TrailingZeros64(b.byType[Black][Bishop]))
		return (wSq.File()+wSq.Rank())%2 == (bSq.File()+bSq.Rank())%2
	}
	return false
}

// Validate cross-checks the mailbox against the bitboards, the king index
// and the incremental Zobrist key. It exists for tests and debugging;
// normal play never needs it.
func (b *Board) Validate() bool {
	var occ [2]uint64
	var byType [2][7]uint64
	var kingSq [2]Square
	kingSq[White], kingSq[Black] = NoSquare, NoSquare
	for sq := Square(0); sq < 64; sq++ {
		p := b.grid[sq]
		if p == NoPiece {
			continue
		}
		c := p.Color()
		occ[c] |= bb(sq)
		byType[c][p.Type()] |= bb(sq)
		if p.Type() == King {
			kingSq[c] = sq
		}
	}
	if occ != b.occ || byType != b.byType || kingSq != b.kingSq {
		return false
	}
	return b.hash == b.ComputeZobrist()
}
