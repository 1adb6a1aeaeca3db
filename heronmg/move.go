package heronmg

import "strings"

// Move packs a full move description into 32 bits:
//
//	bits  0-5   origin square
//	bits  6-11  destination square
//	bits 12-15  moved piece code
//	bits 16-19  captured piece code (NoPiece if quiet)
//	bits 20-23  promotion piece code (NoPiece if none)
//	bits 24-26  special-move flag
//
// A move is a plain value; it carries no board state.
type Move uint32

const (
	moveToShift      = 6
	movePieceShift   = 12
	moveCaptureShift = 16
	movePromoteShift = 20
	moveFlagShift    = 24
)

// Special-move flags. Promotions are indicated by a non-zero promotion piece.
const (
	FlagNone uint8 = iota
	FlagDoublePush
	FlagEnPassant
	FlagCastleKing
	FlagCastleQueen
)

// NewMove assembles a move from its components.
func NewMove(from, to Square, piece, captured, promotion Piece, flag uint8) Move {
	return Move(uint32(from&0x3F) |
		uint32(to&0x3F)<<moveToShift |
		uint32(piece&0xF)<<movePieceShift |
		uint32(captured&0xF)<<moveCaptureShift |
		uint32(promotion&0xF)<<movePromoteShift |
		uint32(flag&0x7)<<moveFlagShift)
}

// From returns the origin square.
func (m Move) From() Square { return Square(uint32(m) & 0x3F) }

// To returns the destination square.
func (m Move) To() Square { return Square(uint32(m) >> moveToShift & 0x3F) }

// Piece returns the moved piece code.
func (m Move) Piece() Piece { return Piece(uint32(m) >> movePieceShift & 0xF) }

// Captured returns the captured piece code, or NoPiece. For en-passant
// captures this is the pawn removed from its own square, not the
// destination square.
func (m Move) Captured() Piece { return Piece(uint32(m) >> moveCaptureShift & 0xF) }

// Promotion returns the piece the pawn promotes to, or NoPiece.
func (m Move) Promotion() Piece { return Piece(uint32(m) >> movePromoteShift & 0xF) }

// Flag returns the special-move flag.
func (m Move) Flag() uint8 { return uint8(uint32(m) >> moveFlagShift & 0x7) }

// IsCapture reports whether the move removes an enemy piece, en passant included.
func (m Move) IsCapture() bool { return m.Captured() != NoPiece }

// IsCastle reports whether the move is a king- or queen-side castle.
func (m Move) IsCastle() bool {
	f := m.Flag()
	return f == FlagCastleKing || f == FlagCastleQueen
}

// String renders the move in long algebraic form ("e2e4", "e7e8q").
func (m Move) String() string {
	if m == 0 {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if promo := m.Promotion(); promo != NoPiece {
		s += strings.ToLower(string(charFromPiece(promo)))
	}
	return s
}
