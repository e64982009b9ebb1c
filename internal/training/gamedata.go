//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package training

import "github.com/brannigan/chesscore/internal/types"

// outcome labels a finished game from White's perspective.
type outcome int

const (
	outcomeUnknown outcome = iota
	outcomeWhiteWin
	outcomeBlackWin
	outcomeDraw
)

// score renders the outcome as the numeric result White's POV training
// corpus expects: 1.0 for a White win, 0.0 for a Black win, 0.5 for a
// draw.
func (o outcome) score() float64 {
	switch o {
	case outcomeWhiteWin:
		return 1.0
	case outcomeBlackWin:
		return 0.0
	case outcomeDraw:
		return 0.5
	default:
		return 0.5
	}
}

// GameData is one recorded position from a self-play game: the FEN at
// that point, the position's static/search evaluation already flipped
// to White's point of view, and a link to the position recorded
// immediately before it. Games are built up as a reverse-linked list
// (newest first) since a worker only knows the final outcome after the
// game ends, at which point every prior position needs that same
// label attached.
type GameData struct {
	Fen          string
	WhitePovEval types.Value
	MovePlayed   types.Move
	Prev         *GameData
}

// label walks the list from tail to head, writing one labelled-FEN
// line per position to write, using result as seen from White's
// perspective for every line regardless of which side was to move.
func (g *GameData) label(result outcome, write func(fen string, whitePovEval types.Value, score float64)) {
	for node := g; node != nil; node = node.Prev {
		write(node.Fen, node.WhitePovEval, result.score())
	}
}
