//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package evaluator

import (
	"github.com/brannigan/chesscore/internal/position"
	"github.com/brannigan/chesscore/internal/types"
)

// endgamePhaseThreshold is the game-phase score, computed from
// remaining non-pawn material, below which the king piece-square
// table switches from its middlegame to its endgame shape.
const endgamePhaseThreshold = 1300

// Accumulator is a POD evaluation cache holding only the static score
// of the position it was computed for. The search does not use it: it
// calls Evaluate for every node that needs a static evaluation.
type Accumulator struct {
	StaticEval types.Value
	Valid      bool
}

// CopyFrom resets a (typically child-ply) accumulator to a blank,
// invalid state derived from parent, keeping parent's static score.
func (a *Accumulator) CopyFrom(parent *Accumulator) {
	a.StaticEval = parent.StaticEval
	a.Valid = false
}

// Evaluate computes a static material-plus-positional score for pos,
// from the perspective of the side to move: positive means the side
// to move is better.
func Evaluate(pos *position.Position) types.Value {
	var mg [2]int32
	nonPawnMaterial := pos.MaterialNonPawn(types.White) + pos.MaterialNonPawn(types.Black)
	endgame := nonPawnMaterial < endgamePhaseThreshold

	for sq := types.Square(0); sq < types.SqLength; sq++ {
		pc := pos.PieceAt(sq)
		if pc == types.PieceNone {
			continue
		}
		c := pc.ColorOf()
		var table *[64]int16
		switch pc.TypeOf() {
		case types.Pawn:
			table = &pawnPst
		case types.Knight:
			table = &knightPst
		case types.Bishop:
			table = &bishopPst
		case types.Rook:
			table = &rookPst
		case types.Queen:
			table = &queenPst
		case types.King:
			if endgame {
				table = &kingEndPst
			} else {
				table = &kingMidPst
			}
		}
		mg[c] += int32(pc.TypeOf().ValueOf())
		mg[c] += int32(pstValue(table, c, sq))
	}

	score := mg[types.White] - mg[types.Black]
	if pos.NextPlayer() == types.Black {
		score = -score
	}
	return clampValue(score)
}

func clampValue(v int32) types.Value {
	if v > int32(types.ValueMax) {
		return types.ValueMax
	}
	if v < int32(types.ValueMin) {
		return types.ValueMin
	}
	return types.Value(v)
}
