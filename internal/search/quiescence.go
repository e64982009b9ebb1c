//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package search

import (
	"context"

	"github.com/brannigan/chesscore/internal/evaluator"
	"github.com/brannigan/chesscore/internal/movegen"
	"github.com/brannigan/chesscore/internal/moveslice"
	"github.com/brannigan/chesscore/internal/position"
	"github.com/brannigan/chesscore/internal/types"
)

// quiescenceMaxPly bounds quiescence search: once the ply from the
// root exceeds types.MaxDepth by more than this many plies it returns
// without searching further, guarding against runaway check-evasion
// chains in positions with perpetual check sequences.
const quiescenceMaxPly = 32

// quiescence resolves tactical noise (captures and, while in check,
// all evasions) at the leaves of the main search so the static
// evaluation is never trusted in a position where the side to move is
// about to lose material to an obvious recapture.
func (s *Search) quiescence(ctx context.Context, pos *position.Position, ply int, alpha, beta types.Value) types.Value {
	s.nodes++
	s.stats.QNodes++
	if s.nodes%checkInterval == 0 && (ctx.Err() != nil || s.isStopped()) {
		return 0
	}

	inCheck := pos.HasCheck()

	var standPat types.Value
	if !inCheck {
		standPat = evaluator.Evaluate(pos)
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	if ply-int(types.MaxDepth) > quiescenceMaxPly {
		return alpha
	}

	var moves moveslice.MoveSlice
	if inCheck {
		movegen.GenerateEvasions(pos, &moves)
	} else {
		movegen.GeneratePseudoLegalCaptures(pos, &moves)
	}

	bestValue := standPat
	if inCheck {
		bestValue = -types.ValueInf
	}

	legalMoves := 0
	for _, m := range moves {
		if !inCheck && s.cfg.UseQuiescence {
			if see := movegen.See(pos, m); see < 0 {
				continue
			}
		}

		pos.DoMove(m)
		if !pos.WasLegalMove() {
			pos.UndoMove()
			continue
		}
		legalMoves++

		value := -s.quiescence(ctx, pos, ply+1, -beta, -alpha)
		pos.UndoMove()

		if s.isStopped() || ctx.Err() != nil {
			return 0
		}

		if value > bestValue {
			bestValue = value
			if value > alpha {
				alpha = value
			}
		}
		if alpha >= beta {
			break
		}
	}

	if inCheck && legalMoves == 0 {
		return -types.ValueCheckMate + types.Value(ply)
	}

	// Stalemate is not detected here: outside check only captures and
	// promotions are generated, so having none of them says nothing
	// about whether the side to move has a legal move.
	return bestValue
}
