package heronmg_test

import (
	"testing"

	mg "heron/heronmg"
)

func legalSet(t *testing.T, fen string) map[string]bool {
	t.Helper()
	b, err := mg.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	set := make(map[string]bool)
	for _, m := range b.LegalMoves() {
		set[m.String()] = true
	}
	return set
}

func TestCastlingGeneration(t *testing.T) {
	// Both castles available.
	moves := legalSet(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if !moves["e1g1"] || !moves["e1c1"] {
		t.Fatal("expected both castles to be legal")
	}

	// Queenside path blocked on b1; only b1 matters for the rook, but the
	// king's path must also be clear.
	moves = legalSet(t, "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1")
	if moves["e1c1"] {
		t.Fatal("queenside castle through an occupied square")
	}
	if !moves["e1g1"] {
		t.Fatal("kingside castle should be unaffected")
	}

	// King in check: no castling at all.
	moves = legalSet(t, "r3k2r/8/8/8/4r3/8/8/R3K2R w KQkq - 0 1")
	if moves["e1g1"] || moves["e1c1"] {
		t.Fatal("castled out of check")
	}

	// Transit square f1 attacked: kingside forbidden, queenside fine.
	moves = legalSet(t, "r3k2r/8/8/8/5r2/8/8/R3K2R w KQkq - 0 1")
	if moves["e1g1"] {
		t.Fatal("castled through an attacked square")
	}
	if !moves["e1c1"] {
		t.Fatal("queenside castle should still be legal")
	}

	// Destination g1 attacked: MakeMove's legality filter must catch it.
	moves = legalSet(t, "r3k2r/8/8/8/6r1/8/8/R3K2R w KQkq - 0 1")
	if moves["e1g1"] {
		t.Fatal("castled into check")
	}

	// No rights, rooks still home.
	moves = legalSet(t, "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1")
	if moves["e1g1"] || moves["e1c1"] {
		t.Fatal("castled without rights")
	}
}

func TestEnPassantGeneration(t *testing.T) {
	moves := legalSet(t, "4k3/8/8/2pP4/8/8/8/4K3 w - c6 0 2")
	if !moves["d5c6"] {
		t.Fatal("en-passant capture missing")
	}

	// Same position without the ep square: no capture.
	moves = legalSet(t, "4k3/8/8/2pP4/8/8/8/4K3 w - - 0 2")
	if moves["d5c6"] {
		t.Fatal("en passant without a target square")
	}

	// The classic horizontal pin: capturing ep removes both pawns from
	// the fifth rank and exposes the king to the rook.
	moves = legalSet(t, "8/8/8/r1pP2K1/8/8/8/4k3 w - c6 0 2")
	if moves["d5c6"] {
		t.Fatal("en passant left the king in check")
	}
}

func TestPromotionGeneration(t *testing.T) {
	b, err := mg.ParseFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var promos []mg.Move
	for _, m := range b.LegalMoves() {
		if m.Promotion() != mg.NoPiece {
			promos = append(promos, m)
		}
	}
	if len(promos) != 4 {
		t.Fatalf("got %d promotions, want 4", len(promos))
	}
	seen := make(map[mg.PieceType]bool)
	for _, m := range promos {
		seen[m.Promotion().Type()] = true
	}
	for _, pt := range []mg.PieceType{mg.Queen, mg.Rook, mg.Bishop, mg.Knight} {
		if !seen[pt] {
			t.Errorf("missing promotion to piece type %d", pt)
		}
	}
}

func TestHasLegalMoves(t *testing.T) {
	cases := []struct {
		fen  string
		want bool
	}{
		{mg.FENStartPos, true},
		{"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", false}, // fool's mate
		{"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", false},                                // stalemate
		{"7k/5Q2/6K1/8/8/8/8/8 w - - 0 1", true},
	}
	for _, tc := range cases {
		b, err := mg.ParseFEN(tc.fen)
		if err != nil {
			t.Fatal(err)
		}
		if got := b.HasLegalMoves(); got != tc.want {
			t.Errorf("%s: HasLegalMoves = %v, want %v", tc.fen, got, tc.want)
		}
	}
}

func TestIsSquareAttacked(t *testing.T) {
	b, err := mg.ParseFEN("4k3/8/8/8/8/8/3N4/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	knightTargets := []string{"b1", "b3", "c4", "e4", "f3", "f1"}
	for _, alg := range knightTargets {
		sq, _ := mg.ParseSquare(alg)
		if !b.IsSquareAttacked(sq, mg.White) {
			t.Errorf("knight on d2 should attack %s", alg)
		}
	}
	for _, alg := range []string{"d3", "a8", "h5"} {
		sq, _ := mg.ParseSquare(alg)
		if b.IsSquareAttacked(sq, mg.White) {
			t.Errorf("%s should not be attacked by white", alg)
		}
	}
}
