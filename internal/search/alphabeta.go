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
	"github.com/brannigan/chesscore/internal/transpositiontable"
	"github.com/brannigan/chesscore/internal/types"
)

// checkInterval is how many nodes pass between clock/stop checks,
// chosen so the check's overhead is negligible next to node search
// cost while still keeping "go movetime" responsive.
const checkInterval = 2048

func (s *Search) rootSearch(ctx context.Context, pos *position.Position, depth int, alpha, beta types.Value) types.Value {
	return s.negamax(ctx, pos, depth, 0, alpha, beta, types.Root)
}

// negamax is the fail-soft alpha-beta search. It returns the best
// score found for the side to move at pos, which may fall outside
// [alpha, beta] (fail-soft) to give the caller more information for
// aspiration re-search decisions.
func (s *Search) negamax(ctx context.Context, pos *position.Position, depth, ply int, alpha, beta types.Value, nodeKind types.NodeKind) types.Value {
	s.pvTable[ply] = s.pvTable[ply][:0]

	if depth <= 0 {
		return s.quiescence(ctx, pos, ply, alpha, beta)
	}

	s.nodes++
	if s.limits.Nodes > 0 && s.nodes >= s.limits.Nodes {
		s.Stop()
		return 0
	}
	if s.nodes%checkInterval == 0 {
		if ctx.Err() != nil || s.isStopped() {
			return 0
		}
	}

	isPV := nodeKind != types.NonPV
	inCheck := pos.HasCheck()

	if nodeKind != types.Root {
		if pos.IsDraw() {
			return types.ValueDraw
		}
		// mate distance pruning: a mate found deeper than ply cannot
		// improve on a mate already provable closer to the root
		alpha = maxValue(alpha, -types.ValueCheckMate+types.Value(ply))
		beta = minValue(beta, types.ValueCheckMate-types.Value(ply))
		if alpha >= beta {
			return alpha
		}
	}

	key := pos.ZobristKey()
	var ttMove types.Move
	var ttStaticEval types.Value
	var haveTtStaticEval bool
	if s.cfg.UseTranspositionTable {
		if entry, ok := s.tt.Probe(key); ok {
			s.stats.TtHits++
			ttMove = entry.Move
			ttStaticEval = entry.StaticEval
			haveTtStaticEval = true
			if !isPV && int(entry.Depth) >= depth {
				v := transpositiontable.ValueFromTt(entry.Value, ply)
				switch entry.Bound {
				case types.Exact:
					s.stats.TtCuts++
					return v
				case types.Lower:
					if v >= beta {
						s.stats.TtCuts++
						return v
					}
				case types.Upper:
					if v <= alpha {
						s.stats.TtCuts++
						return v
					}
				}
			}
		}
	}

	var staticEval types.Value
	switch {
	case inCheck:
		staticEval = -types.ValueInf
	case haveTtStaticEval:
		staticEval = ttStaticEval
	default:
		staticEval = evaluator.Evaluate(pos)
	}

	if !isPV && !inCheck {
		if s.cfg.UseReverseFutility && depth <= 8 {
			margin := types.Value(s.cfg.ReverseFutilityMargin * depth)
			if staticEval-margin >= beta {
				s.stats.ReverseFutility++
				return staticEval
			}
		}

		if s.cfg.UseNullMovePruning && depth > s.cfg.NullMoveMinDepth &&
			pos.MaterialNonPawn(pos.NextPlayer()) > 0 && staticEval >= beta {
			pos.DoNullMove()
			reduction := s.cfg.NullMoveReduction
			nullValue := -s.negamax(ctx, pos, depth-reduction, ply+1, -beta, -beta+1, types.NonPV)
			pos.UndoNullMove()
			if s.isStopped() || ctx.Err() != nil {
				return 0
			}
			if nullValue >= beta {
				s.stats.NullMoveCuts++
				if nullValue >= types.ValueCheckMateThreshold {
					nullValue = beta
				}
				return nullValue
			}
		}
	}

	selector := movegen.NewSelector(pos, ttMove, s.kt, s.ht, ply, inCheck)

	bestValue := -types.ValueInf
	bestMove := types.MoveNone
	originalAlpha := alpha
	moveCount := 0

	for {
		m := selector.Next()
		if !m.IsValid() {
			break
		}

		isCapture := pos.PieceAt(m.To()) != types.PieceNone

		pos.DoMove(m)
		if !pos.WasLegalMove() {
			pos.UndoMove()
			continue
		}
		moveCount++

		isEnPassant := m.MoveType() == types.EnPassant
		isQueenPromotion := m.MoveType() == types.Promotion && m.PromotionType() == types.Queen
		interesting := isCapture || isEnPassant || isQueenPromotion
		isQuiet := !interesting

		expectedNonPv := !isPV || moveCount > 1

		if expectedNonPv && s.cfg.UseFutilityPruning && depth < s.cfg.FutilityMaxDepth && !inCheck && !interesting {
			margin := types.Value(s.cfg.ReverseFutilityMargin * depth)
			if staticEval+margin <= alpha {
				s.stats.FutilityPrunes++
				pos.UndoMove()
				continue
			}
		}

		reduction := 1
		if s.cfg.UseLateMoveReduction {
			reduction = lmrReduction(moveCount, depth)
			if reduction > 1 {
				s.stats.LateMoveReduces++
			}
		}

		childDepth := depth - 1
		var value types.Value
		if expectedNonPv {
			value = -s.negamax(ctx, pos, depth-reduction, ply+1, -alpha-1, -alpha, types.NonPV)
		}
		if isPV && (moveCount == 1 || value > alpha) {
			value = -s.negamax(ctx, pos, childDepth, ply+1, -beta, -alpha, childNodeKind(nodeKind))
		}

		pos.UndoMove()

		if s.isStopped() || ctx.Err() != nil {
			return 0
		}

		if value >= beta {
			s.stats.BetaCutoffs++
			if moveCount == 1 {
				s.stats.FirstMoveCutoffs++
			}
			if isQuiet {
				s.kt.Store(ply, m)
				s.ht.Update(pos.NextPlayer(), m, depth)
				s.ht.StoreCounterMove(pos.NextPlayer(), pos.LastMove(), m)
			}
			if s.cfg.UseTranspositionTable {
				s.tt.Put(key, m, transpositiontable.ValueToTt(value, ply), staticEval, depth, types.Lower)
			}
			return value
		} else if value > alpha {
			alpha = value
			s.pvTable[ply] = append(append(moveslice.MoveSlice{}, m.MoveOf()), s.pvTable[ply+1]...)
		} else if isQuiet {
			s.ht.Penalize(pos.NextPlayer(), m, depth)
		}

		if value > bestValue {
			bestValue = value
			bestMove = m
		}
	}

	if moveCount == 0 {
		if inCheck {
			bestValue = -types.ValueCheckMate + types.Value(ply)
		} else {
			bestValue = types.ValueDraw
		}
	}

	if s.cfg.UseTranspositionTable {
		score := bestValue
		if score == -types.ValueInf {
			score = staticEval
		}
		bound := types.Exact
		if bestValue <= originalAlpha {
			bound = types.Upper
		} else if bestValue >= beta {
			bound = types.Lower
		}
		s.tt.Put(key, bestMove, transpositiontable.ValueToTt(score, ply), staticEval, depth, bound)
	}

	return bestValue
}

// lmrReduction computes the late-move-reduction depth cut for the
// legalMoves-th move searched at depth: 2 plies once more than one
// legal move has been tried and depth leaves room for it, else 1.
func lmrReduction(legalMoves, depth int) int {
	if legalMoves > 1 && depth > 1 {
		return 2
	}
	return 1
}

func childNodeKind(parent types.NodeKind) types.NodeKind {
	if parent == types.NonPV {
		return types.NonPV
	}
	return types.PV
}
