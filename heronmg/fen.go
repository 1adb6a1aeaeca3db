package heronmg

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the standard starting position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceChars = map[byte]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop,
	'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop,
	'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

func charFromPiece(p Piece) byte {
	const white = " PNBRQK"
	const black = " pnbrqk"
	if p.Color() == Black {
		return black[p.Type()]
	}
	return white[p.Type()]
}

// NewBoard returns a board set up in the standard starting position.
func NewBoard() *Board {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseFEN builds a board from a FEN record. All six fields are required.
// The position must contain exactly one king per side.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("fen: expected 6 fields, got %d", len(fields))
	}

	b := &Board{}
	b.kingSq[White], b.kingSq[Black] = NoSquare, NoSquare

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}
	for r, rankStr := range ranks {
		rank := 7 - r
		file := 0
		for i := 0; i < len(rankStr); i++ {
			ch := rankStr[i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p, ok := pieceChars[ch]
			if !ok {
				return nil, fmt.Errorf("fen: bad piece char %q", ch)
			}
			if file > 7 {
				return nil, fmt.Errorf("fen: rank %d overflows", rank+1)
			}
			b.addPiece(SquareAt(file, rank), p)
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("fen: rank %d has %d files", rank+1, file)
		}
	}
	if b.kingSq[White] == NoSquare || b.kingSq[Black] == NoSquare {
		return nil, fmt.Errorf("fen: missing king")
	}

	switch fields[1] {
	case "w":
		b.stm = White
	case "b":
		b.stm = Black
	default:
		return nil, fmt.Errorf("fen: bad side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				b.castling |= CastleWhiteKing
			case 'Q':
				b.castling |= CastleWhiteQueen
			case 'k':
				b.castling |= CastleBlackKing
			case 'q':
				b.castling |= CastleBlackQueen
			default:
				return nil, fmt.Errorf("fen: bad castling char %q", fields[2][i])
			}
		}
	}

	b.ep = NoSquare
	if fields[3] != "-" {
		sq, ok := ParseSquare(fields[3])
		if !ok {
			return nil, fmt.Errorf("fen: bad en-passant square %q", fields[3])
		}
		b.ep = sq
	}

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("fen: bad halfmove clock %q", fields[4])
	}
	b.halfmove = halfmove

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("fen: bad fullmove number %q", fields[5])
	}
	b.fullmove = fullmove

	b.hash = b.ComputeZobrist()
	return b, nil
}

// ToFEN renders the position as a FEN record.
func (b *Board) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.grid[SquareAt(file, rank)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(charFromPiece(p))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.stm == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if b.castling == 0 {
		sb.WriteByte('-')
	} else {
		if b.castling&CastleWhiteKing != 0 {
			sb.WriteByte('K')
		}
		if b.castling&CastleWhiteQueen != 0 {
			sb.WriteByte('Q')
		}
		if b.castling&CastleBlackKing != 0 {
			sb.WriteByte('k')
		}
		if b.castling&CastleBlackQueen != 0 {
			sb.WriteByte('q')
		}
	}

	fmt.Fprintf(&sb, " %s %d %d", b.ep.String(), b.halfmove, b.fullmove)
	return sb.String()
}
