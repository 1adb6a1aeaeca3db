package main

import (
	"errors"
	"strings"
	"testing"

	"heron/game"
	mg "heron/heronmg"
)

func TestParseUCIMove(t *testing.T) {
	g := game.New()
	m, err := parseUCIMove(g, "e2e4")
	if err != nil {
		t.Fatalf("parseUCIMove(e2e4): %v", err)
	}
	if m.String() != "e2e4" {
		t.Fatalf("parsed move renders as %s", m)
	}

	for _, bad := range []string{"", "e2", "e2e9", "e2e4x", "e2e5q"} {
		if _, err := parseUCIMove(g, bad); err == nil {
			t.Errorf("parseUCIMove(%q) succeeded", bad)
		}
	}

	// An illegal but well-formed move.
	if _, err := parseUCIMove(g, "e2e5"); !errors.Is(err, mg.ErrIllegalMove) {
		t.Errorf("parseUCIMove(e2e5): %v, want ErrIllegalMove", err)
	}
}

func TestParseUCIMovePromotion(t *testing.T) {
	g, err := game.NewFromFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := parseUCIMove(g, "a7a8"); !errors.Is(err, mg.ErrIncompleteMove) {
		t.Fatalf("bare promotion: %v, want ErrIncompleteMove", err)
	}
	m, err := parseUCIMove(g, "a7a8r")
	if err != nil {
		t.Fatalf("parseUCIMove(a7a8r): %v", err)
	}
	if m.Promotion().Type() != mg.Rook {
		t.Fatalf("promotion type = %v, want rook", m.Promotion().Type())
	}
}

func TestSetPosition(t *testing.T) {
	st := &uciState{game: game.New()}

	if err := st.setPosition([]string{"startpos", "moves", "e2e4", "e7e5", "g1f3"}); err != nil {
		t.Fatalf("setPosition startpos+moves: %v", err)
	}
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	if got := st.game.FEN(); got != want {
		t.Fatalf("FEN = %s, want %s", got, want)
	}

	fen := "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	if err := st.setPosition(append([]string{"fen"}, strings.Fields(fen)...)); err != nil {
		t.Fatalf("setPosition fen: %v", err)
	}
	if got := st.game.FEN(); got != fen {
		t.Fatalf("FEN = %s, want %s", got, fen)
	}

	if err := st.setPosition([]string{"startpos", "moves", "e2e5"}); err == nil {
		t.Fatal("setPosition accepted an illegal move")
	}
}
