package heronmg

// Perft counts the leaf nodes of the legal move tree to the given depth.
// It exercises generation, make and unmake together, which makes it the
// primary correctness check for the whole move core.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		nodes += Perft(b, depth-1)
		b.UnmakeMove(m, st)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move, matching the
// "divide" output of other engines for narrowing down discrepancies.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	for _, m := range b.LegalMoves() {
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		out[m] = Perft(b, depth-1)
		b.UnmakeMove(m, st)
	}
	return out
}
