//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package movegen

import (
	"github.com/brannigan/chesscore/internal/history"
	"github.com/brannigan/chesscore/internal/moveslice"
	"github.com/brannigan/chesscore/internal/position"
	"github.com/brannigan/chesscore/internal/types"
)

type stage int

const (
	stageTT stage = iota
	stageGenCaptures
	stageGoodCaptures
	stageKillers
	stageGenQuiets
	stageQuiets
	stageDone
)

// Selector produces moves for one search node in stages: the
// transposition table move first, then all captures ordered by SEE
// (losing captures last), then killer moves that are pseudo-legal
// here, then the remaining quiet moves ordered by
// history score. A search that cuts off early never pays the cost of
// generating or sorting later stages.
type Selector struct {
	pos     *position.Position
	ttMove  types.Move
	killers *KillerTable
	hist    *history.HistoryTable
	ply     int
	inCheck bool

	stage    stage
	captures moveslice.MoveSlice
	quiets   moveslice.MoveSlice
	idx      int
}

// NewSelector creates a move selector for the given node. hist may be
// nil, in which case quiet moves are returned in generation order.
func NewSelector(pos *position.Position, ttMove types.Move, killers *KillerTable, hist *history.HistoryTable, ply int, inCheck bool) *Selector {
	return &Selector{
		pos:     pos,
		ttMove:  ttMove.MoveOf(),
		killers: killers,
		hist:    hist,
		ply:     ply,
		inCheck: inCheck,
		stage:   stageTT,
	}
}

// Next returns the next move to try, or MoveNone once the selector is
// exhausted.
func (s *Selector) Next() types.Move {
	for {
		switch s.stage {
		case stageTT:
			s.stage = stageGenCaptures
			if s.ttMove.IsValid() {
				return s.ttMove
			}
		case stageGenCaptures:
			GeneratePseudoLegalCaptures(s.pos, &s.captures)
			for i, m := range s.captures {
				s.captures[i] = m.SetValue(See(s.pos, m))
			}
			s.captures.Sort()
			s.idx = 0
			s.stage = stageGoodCaptures
		case stageGoodCaptures:
			for s.idx < len(s.captures) {
				m := s.captures[s.idx]
				s.idx++
				if m.MoveOf() == s.ttMove {
					continue
				}
				return m
			}
			s.stage = stageKillers
			s.idx = 0
		case stageKillers:
			if s.killers != nil {
				ks := s.killers.Get(s.ply)
				var all moveslice.MoveSlice
				for s.idx < killersPerPly {
					m := ks[s.idx]
					s.idx++
					if !m.IsValid() || m.MoveOf() == s.ttMove || s.captures.Contains(m) {
						continue
					}
					if all == nil {
						GeneratePseudoLegalMoves(s.pos, &all)
					}
					if !all.Contains(m) {
						continue
					}
					return m
				}
			}
			s.stage = stageGenQuiets
			s.idx = 0
		case stageGenQuiets:
			var all moveslice.MoveSlice
			if s.inCheck {
				GenerateEvasions(s.pos, &all)
			} else {
				GeneratePseudoLegalMoves(s.pos, &all)
			}
			captureSet := make(map[types.Move]bool, len(s.captures))
			for _, m := range s.captures {
				captureSet[m.MoveOf()] = true
			}
			for _, m := range all {
				if captureSet[m.MoveOf()] {
					continue
				}
				if s.hist != nil {
					score := s.hist.Score(s.pos.NextPlayer(), m) / 64
					if score > int32(types.ValueMax) {
						score = int32(types.ValueMax)
					} else if score < int32(-types.ValueMax) {
						score = int32(-types.ValueMax)
					}
					m = m.SetValue(types.Value(score))
				}
				s.quiets.PushBack(m)
			}
			s.quiets.Sort()
			s.idx = 0
			s.stage = stageQuiets
		case stageQuiets:
			for s.idx < len(s.quiets) {
				m := s.quiets[s.idx]
				s.idx++
				if m.MoveOf() == s.ttMove || (s.killers != nil && s.killers.IsKiller(s.ply, m)) {
					continue
				}
				return m
			}
			s.stage = stageDone
			return types.MoveNone
		default:
			return types.MoveNone
		}
	}
}
