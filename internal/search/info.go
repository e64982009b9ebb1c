//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package search

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/brannigan/chesscore/internal/moveslice"
	"github.com/brannigan/chesscore/internal/types"
	"github.com/brannigan/chesscore/internal/util"
)

var printer = message.NewPrinter(language.German)

// infoLine renders one iteration's result as a UCI "info" string. This
// is a producing-only stringifier: the engine emits these lines, it
// never needs to parse them back in.
func (s *Search) infoLine(depth int, value types.Value, pv moveslice.MoveSlice) string {
	elapsed := time.Since(s.startTime)
	nodes := s.nodes
	nps := util.Nps(nodes, elapsed)

	var sb strings.Builder
	fmt.Fprintf(&sb, "info depth %d score %s nodes %s nps %s time %d hashfull %d pv %s",
		depth,
		scoreToken(value),
		printer.Sprintf("%d", nodes),
		printer.Sprintf("%d", nps),
		elapsed.Milliseconds(),
		s.tt.Hashfull(),
		pv.String(),
	)
	return sb.String()
}

// scoreToken renders a Value the way UCI's "score" field expects:
// "cp <n>" for a plain evaluation or "mate <n>" for a forced mate,
// counted in full moves rather than plies.
func scoreToken(v types.Value) string {
	return v.String()
}

// BestMoveLine renders the final UCI "bestmove" line for a completed
// search.
func BestMoveLine(res Result) string {
	if res.PonderMove.IsValid() {
		return fmt.Sprintf("bestmove %s ponder %s", res.BestMove, res.PonderMove)
	}
	return fmt.Sprintf("bestmove %s", res.BestMove)
}
