package engine

import (
	"math/bits"

	mg "heron/heronmg"
)

// Evaluator scores a position in centipawns from the side to move's point
// of view. Implementations must be deterministic and must not mutate the
// board.
type Evaluator interface {
	Evaluate(b *mg.Board) int32
}

// pieceValue holds the centipawn material values, indexed by PieceType.
var pieceValue = [7]int32{0, 100, 320, 330, 500, 900, 0}

// Piece-square tables from White's point of view, a1 first. Black uses the
// vertically mirrored square.
var pst = [7][64]int32{
	mg.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	mg.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	mg.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	mg.Rook: {
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	mg.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 0, -10,
		0, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	mg.King: {
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	},
}

// mobilityWeight is the centipawn bonus per reachable square, indexed by
// PieceType. Only sliders count; knight and king placement is already
// captured by the tables above.
var mobilityWeight = [7]int32{0, 0, 0, 3, 2, 1, 0}

// MaterialEvaluator is the baseline evaluation: material, fixed
// piece-square bonuses and slider mobility. It is stateless, so one value
// can be shared.
type MaterialEvaluator struct{}

// Evaluate returns the balance from the side to move's point of view.
func (MaterialEvaluator) Evaluate(b *mg.Board) int32 {
	occ := b.AllOccupied()
	var score int32
	for c := mg.White; c <= mg.Black; c++ {
		sign := int32(1)
		if c == mg.Black {
			sign = -1
		}
		for pt := mg.Pawn; pt <= mg.King; pt++ {
			for pieces := b.Pieces(c, pt); pieces != 0; {
				sq := mg.Square(popLSB(&pieces))

				var attacks uint64
				switch pt {
				case mg.Bishop:
					attacks = mg.BishopAttacks(sq, occ)
				case mg.Rook:
					attacks = mg.RookAttacks(sq, occ)
				case mg.Queen:
					attacks = mg.RookAttacks(sq, occ) | mg.BishopAttacks(sq, occ)
				}
				if attacks != 0 {
					free := attacks &^ b.Occupied(c)
					score += sign * mobilityWeight[pt] * int32(bits.OnesCount64(free))
				}

				if c == mg.Black {
					sq ^= 56 // mirror rank
				}
				score += sign * (pieceValue[pt] + pst[pt][sq])
			}
		}
	}
	if b.SideToMove() == mg.Black {
		return -score
	}
	return score
}

func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}
