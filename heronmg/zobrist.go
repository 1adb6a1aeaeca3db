package heronmg

import "math/rand"

// Zobrist key tables. A fixed seed keeps hashes reproducible across runs,
// which the tests rely on.
var (
	zobristPiece     [15][64]uint64 // indexed by piece code and square
	zobristCastle    [16]uint64     // indexed by the castling-rights bitmask
	zobristEnPassant [8]uint64      // indexed by en-passant file
	zobristSide      uint64         // XORed in when Black is to move
)

func init() {
	rnd := rand.New(rand.NewSource(0x4E5A07))
	for p := range zobristPiece {
		for sq := range zobristPiece[p] {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	for cr := range zobristCastle {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// ComputeZobrist rebuilds the position key from scratch. MakeMove keeps the
// key updated incrementally; this is the reference for validation.
func (b *Board) ComputeZobrist() uint64 {
	var key uint64
	for sq := Square(0); sq < 64; sq++ {
		if p := b.grid[sq]; p != NoPiece {
			key ^= zobristPiece[p][sq]
		}
	}
	if b.stm == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[b.castling]
	if b.ep != NoSquare {
		key ^= zobristEnPassant[b.ep.File()]
	}
	return key
}
