package heronmg

// Piece identifies a colored piece on the board. White pieces use codes 1-6;
// black pieces set bit 3 on top of the same type code, so that
//   - p & 7 yields the colorless type in [1..6]
//   - p & 8 != 0 means Black
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is the colorless piece kind, used to index per-type tables.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Type strips the color from the piece code.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece maps to White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// MakePiece combines a side and a colorless type into a piece code.
func MakePiece(c Color, pt PieceType) Piece {
	if pt == NoPieceType {
		return NoPiece
	}
	p := Piece(pt)
	if c == Black {
		p |= 8
	}
	return p
}

// Points returns the classic material value of the piece in pawns
// (1/3/3/5/9, king 0), used for captured-material accounting.
func (p Piece) Points() int {
	switch p.Type() {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	default:
		return 0
	}
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// CastlingRights is a bitmask of the four castling permissions.
type CastlingRights uint8

const (
	CastleWhiteKing CastlingRights = 1 << iota
	CastleWhiteQueen
	CastleBlackKing
	CastleBlackQueen
)

// Square indexes a board square 0-63, a1=0 .. h8=63.
type Square int

const NoSquare Square = -1

// SquareAt builds a square from file and rank indices in [0,7].
func SquareAt(file, rank int) Square { return Square(rank*8 + file) }

// File returns the square's file index, 0 for the a-file.
func (s Square) File() int { return int(s) % 8 }

// Rank returns the square's rank index, 0 for rank 1.
func (s Square) Rank() int { return int(s) / 8 }

func (s Square) String() string {
	if s == NoSquare {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}

// ParseSquare converts algebraic coordinates ("e4") to a Square.
func ParseSquare(alg string) (Square, bool) {
	if len(alg) != 2 {
		return NoSquare, false
	}
	file, rank := alg[0], alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, false
	}
	return SquareAt(int(file-'a'), int(rank-'1')), true
}
