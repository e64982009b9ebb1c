//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pkg/profile"

	"github.com/brannigan/chesscore/internal/config"
	"github.com/brannigan/chesscore/internal/logging"
	"github.com/brannigan/chesscore/internal/movegen"
	"github.com/brannigan/chesscore/internal/moveslice"
	"github.com/brannigan/chesscore/internal/position"
	"github.com/brannigan/chesscore/internal/search"
	"github.com/brannigan/chesscore/internal/training"
)

func main() {
	configPath := flag.String("config", "chesscore.toml", "path to a TOML configuration file")
	profileMode := flag.String("profile", "", "enable profiling: cpu, mem, or block")
	trainMode := flag.Bool("train", false, "run the self-play training driver instead of the UCI loop")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chesscore: config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(&cfg.Log)

	if p := startProfiling(*profileMode); p != nil {
		defer p.Stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		cancel()
	}()

	if *trainMode {
		runTraining(ctx, cfg)
		return
	}
	runUci(ctx, cfg)
}

func startProfiling(mode string) interface{ Stop() } {
	switch mode {
	case "cpu":
		return profile.Start(profile.CPUProfile)
	case "mem":
		return profile.Start(profile.MemProfile)
	case "block":
		return profile.Start(profile.BlockProfile)
	default:
		return nil
	}
}

func runTraining(ctx context.Context, cfg *config.Settings) {
	session := training.NewSession(&cfg.Training, &cfg.Search)
	if err := session.Run(ctx); err != nil {
		logging.GetLog().Errorf("training session ended with error: %v", err)
	}
}

// runUci is a minimal UCI command loop: enough to accept "position",
// "go" and "stop" and drive the search engine from a GUI or test
// harness, without implementing every optional UCI command.
func runUci(ctx context.Context, cfg *config.Settings) {
	eng := search.NewSearch(&cfg.Search)
	pos := position.NewPosition()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "uci":
			fmt.Println("id name chesscore")
			fmt.Println("id author chesscore contributors")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			eng.NewGame()
		case "position":
			pos = parsePositionCommand(fields[1:])
		case "go":
			limits := parseGoCommand(fields[1:])
			result := eng.StartSearch(ctx, pos, limits)
			fmt.Println(search.BestMoveLine(result))
		case "stop":
			eng.Stop()
		case "quit":
			return
		}
	}
}

func parsePositionCommand(args []string) *position.Position {
	pos := position.NewPosition()
	if len(args) == 0 {
		return pos
	}
	idx := 0
	if args[0] == "startpos" {
		idx = 1
	} else if args[0] == "fen" {
		fenParts := []string{}
		idx = 1
		for idx < len(args) && args[idx] != "moves" {
			fenParts = append(fenParts, args[idx])
			idx++
		}
		if p, err := position.NewPositionFen(strings.Join(fenParts, " ")); err == nil {
			pos = p
		}
	}
	if idx < len(args) && args[idx] == "moves" {
		for _, moveStr := range args[idx+1:] {
			applyUciMove(pos, moveStr)
		}
	}
	return pos
}

func applyUciMove(pos *position.Position, moveStr string) {
	// matched against the legal move list rather than decoded directly,
	// since a UCI move string alone does not disambiguate castling,
	// en passant or promotion encodings
	for _, m := range legalMovesOf(pos) {
		if m.String() == moveStr {
			pos.DoMove(m)
			return
		}
	}
}

func legalMovesOf(pos *position.Position) moveslice.MoveSlice {
	return movegen.GenerateLegalMoves(pos)
}

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func parseGoCommand(args []string) search.Limits {
	var limits search.Limits
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			if i < len(args) {
				fmt.Sscanf(args[i], "%d", &limits.Depth)
			}
		case "movetime":
			i++
			if i < len(args) {
				var ms int
				fmt.Sscanf(args[i], "%d", &ms)
				limits.MoveTime = msDuration(ms)
			}
		case "infinite":
			limits.Infinite = true
		}
	}
	return limits
}
