// Command heron is the UCI front end: it keeps one game in sync with the
// GUI's position commands and hands search requests to the engine.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"heron/engine"
	"heron/game"
	mg "heron/heronmg"
)

func atoi(s string) int { v, _ := strconv.Atoi(s); return v }

type uciState struct {
	game   *game.Game
	eng    *engine.Engine
	search chan struct{} // closed when the running search finishes
}

func main() {
	st := &uciState{
		game: game.New(),
		eng:  engine.New(engine.MaterialEvaluator{}),
	}
	st.eng.Info = printInfo

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		switch parts[0] {
		case "uci":
			fmt.Println("id name Heron")
			fmt.Println("id author Heron developers")
			fmt.Println("uciok")
		case "isready":
			st.waitSearch()
			fmt.Println("readyok")
		case "ucinewgame":
			st.waitSearch()
			st.game = game.New()
			st.eng.Reset()
		case "position":
			st.waitSearch()
			if err := st.setPosition(parts[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "position: %v\n", err)
			}
		case "go":
			st.waitSearch()
			st.startSearch(parts[1:])
		case "stop":
			st.eng.Stop()
			st.waitSearch()
		case "quit":
			st.eng.Stop()
			st.waitSearch()
			return
		}
	}
}

// waitSearch blocks until the in-flight search, if any, has printed its
// bestmove.
func (st *uciState) waitSearch() {
	if st.search != nil {
		<-st.search
		st.search = nil
	}
}

func (st *uciState) setPosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing position kind")
	}

	var moves []string
	for i, a := range args {
		if a == "moves" {
			moves = args[i+1:]
			args = args[:i]
			break
		}
	}

	switch args[0] {
	case "startpos":
		st.game = game.New()
	case "fen":
		g, err := game.NewFromFEN(strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		st.game = g
	default:
		return fmt.Errorf("unknown position kind %q", args[0])
	}

	for _, uciMove := range moves {
		m, err := parseUCIMove(st.game, uciMove)
		if err != nil {
			return fmt.Errorf("move %s: %w", uciMove, err)
		}
		if err := st.game.Apply(m); err != nil {
			return fmt.Errorf("move %s: %w", uciMove, err)
		}
	}
	return nil
}

func (st *uciState) startSearch(args []string) {
	var cfg engine.SearchConfig
	side := st.game.Board().SideToMove()
	var clock, increment time.Duration

	for i := 0; i < len(args); i++ {
		next := func() int {
			if i+1 < len(args) {
				i++
				return atoi(args[i])
			}
			return 0
		}
		switch args[i] {
		case "depth":
			cfg.MaxDepth = next()
		case "movetime":
			cfg.TimeLimit = time.Duration(next()) * time.Millisecond
		case "nodes":
			cfg.NodeLimit = uint64(next())
		case "infinite":
			// No bounds; the GUI sends stop.
		case "wtime":
			if v := next(); side == mg.White {
				clock = time.Duration(v) * time.Millisecond
			}
		case "btime":
			if v := next(); side == mg.Black {
				clock = time.Duration(v) * time.Millisecond
			}
		case "winc":
			if v := next(); side == mg.White {
				increment = time.Duration(v) * time.Millisecond
			}
		case "binc":
			if v := next(); side == mg.Black {
				increment = time.Duration(v) * time.Millisecond
			}
		}
	}
	if cfg.TimeLimit == 0 && clock > 0 {
		// Rough allocation: a thirtieth of the clock plus most of the
		// increment.
		cfg.TimeLimit = clock/30 + increment*3/4
	}

	g := st.game
	done := make(chan struct{})
	st.search = done
	go func() {
		defer close(done)
		res, err := st.eng.BestMove(g.Board(), g.HistoryHashes(), cfg)
		if err != nil {
			fmt.Println("bestmove (none)")
			return
		}
		fmt.Printf("bestmove %s\n", res.Move)
	}()
}

func printInfo(info engine.SearchInfo) {
	var score string
	if engine.IsMateScore(info.Score) {
		score = fmt.Sprintf("mate %d", engine.MateIn(info.Score))
	} else {
		score = fmt.Sprintf("cp %d", info.Score)
	}
	ms := info.Elapsed.Milliseconds()
	nps := int64(0)
	if ms > 0 {
		nps = int64(info.Nodes) * 1000 / ms
	}
	var pv strings.Builder
	for _, m := range info.PV {
		pv.WriteByte(' ')
		pv.WriteString(m.String())
	}
	fmt.Printf("info depth %d score %s nodes %d time %d nps %d pv%s\n",
		info.Depth, score, info.Nodes, ms, nps, pv.String())
}

// parseUCIMove resolves a long-algebraic move string ("e2e4", "e7e8q")
// against the game's legal moves.
func parseUCIMove(g *game.Game, s string) (mg.Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return 0, mg.ErrIllegalMove
	}
	from, ok := mg.ParseSquare(s[:2])
	if !ok {
		return 0, mg.ErrIllegalMove
	}
	to, ok := mg.ParseSquare(s[2:4])
	if !ok {
		return 0, mg.ErrIllegalMove
	}
	promo := mg.NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = mg.Queen
		case 'r':
			promo = mg.Rook
		case 'b':
			promo = mg.Bishop
		case 'n':
			promo = mg.Knight
		default:
			return 0, mg.ErrIllegalMove
		}
	}
	return g.Resolve(from, to, promo)
}
