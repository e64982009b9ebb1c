//
// chesscore - a search core for a chess engine, written in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package search

import "fmt"

// Statistics accumulates counters over one search, reset at the start
// of every StartSearch call and returned in Result.Stats for
// post-mortem strength testing (e.g. confirming a pruning technique
// actually fires). The UCI info line does not include them.
type Statistics struct {
	Nodes            int64
	QNodes           int64
	TtHits           int64
	TtCuts           int64
	NullMoveCuts     int64
	ReverseFutility  int64
	FutilityPrunes   int64
	LateMoveReduces  int64
	AspirationRetries int64
	BetaCutoffs      int64
	FirstMoveCutoffs int64
}

// MoveOrderingQuality returns the fraction of beta cutoffs that
// occurred on the first move tried, a standard proxy for how good
// move ordering is: close to 1.0 means the selector is presenting
// refutations first almost every time.
func (s *Statistics) MoveOrderingQuality() float64 {
	if s.BetaCutoffs == 0 {
		return 0
	}
	return float64(s.FirstMoveCutoffs) / float64(s.BetaCutoffs)
}

func (s *Statistics) String() string {
	return fmt.Sprintf(
		"nodes=%d qnodes=%d ttHits=%d ttCuts=%d nullMoveCuts=%d rfpPrunes=%d fpPrunes=%d lmr=%d aspirationRetries=%d moveOrdering=%.2f",
		s.Nodes, s.QNodes, s.TtHits, s.TtCuts, s.NullMoveCuts, s.ReverseFutility, s.FutilityPrunes,
		s.LateMoveReduces, s.AspirationRetries, s.MoveOrderingQuality(),
	)
}
