package heronmg

import "math/bits"

// Precomputed attack masks, filled once at package init.
var (
	knightAttacks [64]uint64
	kingAttacks   [64]uint64
	// pawnAttackFrom[c][sq] is the set of squares a pawn of color c attacks
	// from sq. Looked up in reverse for attack queries.
	pawnAttackFrom [2][64]uint64

	// Directional rays excluding the origin square. The first two
	// directions in each table run toward increasing square indices so a
	// single blocker scan works for both tables.
	// Rook order: N, E, S, W. Bishop order: NE, NW, SE, SW.
	rookRays   [64][4]uint64
	bishopRays [64][4]uint64
)

func init() {
	initLeaperTables()
	initRayTables()
}

func initLeaperTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}

	mask := func(sq int, offsets [8][2]int) uint64 {
		var m uint64
		file, rank := sq%8, sq/8
		for _, off := range offsets {
			r, f := rank+off[0], file+off[1]
			if r >= 0 && r < 8 && f >= 0 && f < 8 {
				m |= 1 << uint(r*8+f)
			}
		}
		return m
	}

	for sq := 0; sq < 64; sq++ {
		knightAttacks[sq] = mask(sq, knightOffsets)
		kingAttacks[sq] = mask(sq, kingOffsets)

		file, rank := sq%8, sq/8
		if rank < 7 {
			if file > 0 {
				pawnAttackFrom[White][sq] |= 1 << uint((rank+1)*8+file-1)
			}
			if file < 7 {
				pawnAttackFrom[White][sq] |= 1 << uint((rank+1)*8+file+1)
			}
		}
		if rank > 0 {
			if file > 0 {
				pawnAttackFrom[Black][sq] |= 1 << uint((rank-1)*8+file-1)
			}
			if file < 7 {
				pawnAttackFrom[Black][sq] |= 1 << uint((rank-1)*8+file+1)
			}
		}
	}
}

func initRayTables() {
	// Direction deltas as (rank, file) steps, matching the table order
	// documented above. Indices 0 and 1 move toward higher squares.
	rookDirs := [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	bishopDirs := [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	ray := func(sq int, dr, df int) uint64 {
		var m uint64
		r, f := sq/8+dr, sq%8+df
		for r >= 0 && r < 8 && f >= 0 && f < 8 {
			m |= 1 << uint(r*8+f)
			r += dr
			f += df
		}
		return m
	}

	for sq := 0; sq < 64; sq++ {
		for d := 0; d < 4; d++ {
			rookRays[sq][d] = ray(sq, rookDirs[d][0], rookDirs[d][1])
			bishopRays[sq][d] = ray(sq, bishopDirs[d][0], bishopDirs[d][1])
		}
	}
}

// rayAttacks scans the four directions of a ray table, truncating each ray
// at the first blocker (which stays in the attack set, capture or not).
func rayAttacks(sq int, occ uint64, rays *[64][4]uint64) uint64 {
	var att uint64
	for d := 0; d < 4; d++ {
		r := rays[sq][d]
		if blockers := r & occ; blockers != 0 {
			var first int
			if d < 2 {
				first = bits.TrailingZeros64(blockers)
			} else {
				first = 63 - bits.LeadingZeros64(blockers)
			}
			r &^= rays[first][d]
		}
		att |= r
	}
	return att
}

// RookAttacks returns the rook attack set from sq under the given occupancy.
func RookAttacks(sq Square, occ uint64) uint64 { return rayAttacks(int(sq), occ, &rookRays) }

// BishopAttacks returns the bishop attack set from sq under the given occupancy.
func BishopAttacks(sq Square, occ uint64) uint64 { return rayAttacks(int(sq), occ, &bishopRays) }

// IsSquareAttacked reports whether sq is attacked by any piece of the given
// side. Attack sets are computed directly from the tables; this never calls
// back into move legality filtering.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.attacked(sq, by, b.AllOccupied())
}

func (b *Board) attacked(sq Square, by Color, occ uint64) bool {
	// A pawn of color `by` attacks sq exactly when a pawn of the other
	// color on sq would attack the pawn's square.
	if pawnAttackFrom[by.Other()][sq]&b.byType[by][Pawn] != 0 {
		return true
	}
	if knightAttacks[sq]&b.byType[by][Knight] != 0 {
		return true
	}
	if kingAttacks[sq]&b.byType[by][King] != 0 {
		return true
	}
	if RookAttacks(sq, occ)&(b.byType[by][Rook]|b.byType[by][Queen]) != 0 {
		return true
	}
	if BishopAttacks(sq, occ)&(b.byType[by][Bishop]|b.byType[by][Queen]) != 0 {
		return true
	}
	return false
}

// InCheck reports whether the given side's king is attacked.
func (b *Board) InCheck(c Color) bool {
	return b.IsSquareAttacked(b.kingSq[c], c.Other())
}
