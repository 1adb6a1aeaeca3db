package game_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/notnil/chess"

	"heron/game"
	mg "heron/heronmg"
)

func mustApply(t *testing.T, g *game.Game, uci string) {
	t.Helper()
	from, ok := mg.ParseSquare(uci[:2])
	if !ok {
		t.Fatalf("bad square in %q", uci)
	}
	to, ok := mg.ParseSquare(uci[2:4])
	if !ok {
		t.Fatalf("bad square in %q", uci)
	}
	promo := mg.NoPieceType
	if len(uci) == 5 {
		switch uci[4] {
		case 'q':
			promo = mg.Queen
		case 'r':
			promo = mg.Rook
		case 'b':
			promo = mg.Bishop
		case 'n':
			promo = mg.Knight
		}
	}
	m, err := g.Resolve(from, to, promo)
	if err != nil {
		t.Fatalf("Resolve(%s): %v", uci, err)
	}
	if err := g.Apply(m); err != nil {
		t.Fatalf("Apply(%s): %v", uci, err)
	}
}

func TestFoolsMate(t *testing.T) {
	g := game.New()
	for _, uci := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		mustApply(t, g, uci)
	}
	st := g.Status()
	if st.State != game.Checkmate {
		t.Fatalf("state = %v, want checkmate", st.State)
	}
	if st.Side != mg.White {
		t.Fatalf("mated side = %v, want white", st.Side)
	}
	if !st.Terminal() {
		t.Fatal("checkmate must be terminal")
	}

	// The game is sticky once over: even a well-formed move is refused.
	m := mg.NewMove(mg.SquareAt(0, 1), mg.SquareAt(0, 2), mg.WhitePawn, mg.NoPiece, mg.NoPiece, mg.FlagNone)
	if err := g.Apply(m); !errors.Is(err, mg.ErrGameOver) {
		t.Fatalf("Apply after mate: %v, want ErrGameOver", err)
	}

	// Undo reopens it.
	if err := g.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if g.Status().Terminal() {
		t.Fatal("undo should reopen the game")
	}
	mustApply(t, g, "d8h4")
	if g.Status().State != game.Checkmate {
		t.Fatal("replaying the mate should end the game again")
	}
}

func TestCheckStatus(t *testing.T) {
	g := game.New()
	for _, uci := range []string{"e2e4", "f7f6", "d1h5"} {
		mustApply(t, g, uci)
	}
	st := g.Status()
	if st.State != game.Check || st.Side != mg.Black {
		t.Fatalf("status = %+v, want black in check", st)
	}
	if st.Terminal() {
		t.Fatal("check is not terminal")
	}
}

func TestStalemate(t *testing.T) {
	g, err := game.NewFromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	st := g.Status()
	if st.State != game.Stalemate || st.Side != mg.Black {
		t.Fatalf("status = %+v, want black stalemated", st)
	}
}

func TestFiftyMoveDraw(t *testing.T) {
	g, err := game.NewFromFEN("7k/8/8/8/8/8/8/R6K w - - 99 80")
	if err != nil {
		t.Fatal(err)
	}
	if g.Status().Terminal() {
		t.Fatal("99 half-moves is not yet a draw")
	}
	mustApply(t, g, "a1a2")
	st := g.Status()
	if st.State != game.Draw || st.Reason != game.FiftyMove {
		t.Fatalf("status = %+v, want fifty-move draw", st)
	}
	if err := g.Undo(); err != nil {
		t.Fatal(err)
	}
	if g.Status().Terminal() {
		t.Fatal("undo should rewind the clock")
	}
}

func TestThreefoldRepetition(t *testing.T) {
	g := game.New()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for _, uci := range shuffle {
		mustApply(t, g, uci)
	}
	if g.Status().Terminal() {
		t.Fatal("two occurrences are not a repetition draw")
	}
	for _, uci := range shuffle {
		mustApply(t, g, uci)
	}
	st := g.Status()
	if st.State != game.Draw || st.Reason != game.Repetition {
		t.Fatalf("status = %+v, want repetition draw", st)
	}
}

func TestInsufficientMaterialDraw(t *testing.T) {
	// Rook takes the last pawn, leaving king vs king.
	g, err := game.NewFromFEN("7k/r7/8/8/8/8/P7/7K b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	mustApply(t, g, "a7a2")
	if g.Status().Terminal() {
		t.Fatal("king and rook versus king is not a draw")
	}
	mustApply(t, g, "h1g1")
	// Give the rook away.
	mustApply(t, g, "a2a1")
	mustApply(t, g, "g1f2")
	mustApply(t, g, "a1f1")
	mustApply(t, g, "f2f1")
	st := g.Status()
	if st.State != game.Draw || st.Reason != game.InsufficientMaterial {
		t.Fatalf("status = %+v, want insufficient-material draw", st)
	}
}

func TestResolvePromotion(t *testing.T) {
	g, err := game.NewFromFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	a7, a8 := mg.SquareAt(0, 6), mg.SquareAt(0, 7)

	if _, err := g.Resolve(a7, a8, mg.NoPieceType); !errors.Is(err, mg.ErrIncompleteMove) {
		t.Fatalf("promotion without a piece: %v, want ErrIncompleteMove", err)
	}
	m, err := g.Resolve(a7, a8, mg.Knight)
	if err != nil {
		t.Fatalf("Resolve underpromotion: %v", err)
	}
	if m.Promotion().Type() != mg.Knight {
		t.Fatalf("promotion type = %v, want knight", m.Promotion().Type())
	}
	if _, err := g.Resolve(a7, mg.SquareAt(3, 3), mg.NoPieceType); !errors.Is(err, mg.ErrIllegalMove) {
		t.Fatalf("nonsense move: %v, want ErrIllegalMove", err)
	}
}

func TestUndoBookkeeping(t *testing.T) {
	g := game.New()
	if err := g.Undo(); !errors.Is(err, mg.ErrNoHistory) {
		t.Fatalf("Undo on fresh game: %v, want ErrNoHistory", err)
	}

	startFEN := g.FEN()
	mustApply(t, g, "e2e4")
	mustApply(t, g, "d7d5")
	mustApply(t, g, "e4d5")

	if got := g.Captured(mg.Black); len(got) != 1 || got[0] != mg.BlackPawn {
		t.Fatalf("Captured(black) = %v, want one black pawn", got)
	}
	if pts := g.MaterialPoints(mg.White); pts != 1 {
		t.Fatalf("white material points = %d, want 1", pts)
	}
	if len(g.HistoryHashes()) != 4 {
		t.Fatalf("history length = %d, want 4", len(g.HistoryHashes()))
	}

	mustApply(t, g, "d8d5")
	if got := g.Captured(mg.White); len(got) != 1 || got[0] != mg.WhitePawn {
		t.Fatalf("Captured(white) = %v, want one white pawn", got)
	}

	for i := 0; i < 4; i++ {
		if err := g.Undo(); err != nil {
			t.Fatalf("Undo %d: %v", i, err)
		}
	}
	if g.FEN() != startFEN {
		t.Fatalf("after undos: %s, want %s", g.FEN(), startFEN)
	}
	if len(g.Captured(mg.White))+len(g.Captured(mg.Black)) != 0 {
		t.Fatal("captured lists must be empty after full undo")
	}
	if len(g.HistoryHashes()) != 1 {
		t.Fatalf("history length = %d, want 1", len(g.HistoryHashes()))
	}
}

func TestEnPassantWindow(t *testing.T) {
	g := game.New()
	mustApply(t, g, "e2e4")
	if ep := g.Board().EnPassant(); ep.String() != "e3" {
		t.Fatalf("ep square = %s, want e3", ep)
	}
	mustApply(t, g, "g8f6")
	if ep := g.Board().EnPassant(); ep != mg.NoSquare {
		t.Fatalf("ep square = %s, want none", ep)
	}
}

func moveSet(g *game.Game) []string {
	moves := g.LegalMoves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

func oracleMoveSet(og *chess.Game) []string {
	moves := og.ValidMoves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

// TestLegalMovesAgainstOracle walks deterministic games, comparing the
// legal move set against an independent rules library at every ply.
func TestLegalMovesAgainstOracle(t *testing.T) {
	fens := []string{
		mg.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		g, err := game.NewFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		opt, err := chess.FEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		oracle := chess.NewGame(opt, chess.UseNotation(chess.UCINotation{}))

		for ply := 0; ply < 30; ply++ {
			mine := moveSet(g)
			theirs := oracleMoveSet(oracle)
			if len(mine) != len(theirs) {
				t.Fatalf("%s ply %d: %d moves, oracle has %d\nmine:   %v\noracle: %v",
					fen, ply, len(mine), len(theirs), mine, theirs)
			}
			for i := range mine {
				if mine[i] != theirs[i] {
					t.Fatalf("%s ply %d: move %q vs oracle %q", fen, ply, mine[i], theirs[i])
				}
			}
			if len(mine) == 0 || g.Status().Terminal() {
				break
			}
			// Always play the lexicographically smallest move so the
			// walk is reproducible.
			mustApply(t, g, mine[0])
			if err := oracle.MoveStr(mine[0]); err != nil {
				t.Fatalf("%s ply %d: oracle rejected %s: %v", fen, ply, mine[0], err)
			}
		}
	}
}
